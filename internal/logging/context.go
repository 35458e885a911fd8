package logging

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldOperation names the catalog or storage operation in progress.
	FieldOperation = "operation"
	// FieldStoreKind names the snapshot kind (text, binary, sqlite).
	FieldStoreKind = "store_kind"
	// FieldEntity names the entity type a line refers to.
	FieldEntity = "entity"
	// FieldEntityID carries the entity identifier.
	FieldEntityID = "entity_id"
	// FieldFile carries a snapshot file path.
	FieldFile = "file"
	// FieldUsername carries a customer username. Passwords are never logged.
	FieldUsername = "username"
)

type contextKey int

const (
	operationKey contextKey = iota
	storeKindKey
)

// WithOperation tags ctx with the running operation name.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey, strings.TrimSpace(operation))
}

// OperationFromContext returns the operation set by WithOperation.
func OperationFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	op, ok := ctx.Value(operationKey).(string)
	return op, ok && op != ""
}

// WithStoreKind tags ctx with the storage kind being read or written.
func WithStoreKind(ctx context.Context, kind string) context.Context {
	return context.WithValue(ctx, storeKindKey, strings.TrimSpace(kind))
}

// StoreKindFromContext returns the kind set by WithStoreKind.
func StoreKindFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	kind, ok := ctx.Value(storeKindKey).(string)
	return kind, ok && kind != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if op, ok := OperationFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldOperation, op))
	}
	if kind, ok := StoreKindFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStoreKind, kind))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
