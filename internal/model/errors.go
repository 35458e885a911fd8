package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFormat           = errors.New("format error")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrUnsupportedType  = errors.New("unsupported type")
	ErrValidation       = errors.New("validation error")
	ErrPlayListLimit    = errors.New("playlist limit reached")
	ErrNotLoggedIn      = errors.New("no customer logged in")
	ErrWrongCredentials = errors.New("wrong username or password")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "catalog failure"
	}
	return strings.Join(parts, ": ")
}

// FormatError reports a record that could not be decoded. Line is 1-based and
// zero when the record did not come from a file.
type FormatError struct {
	File   string
	Line   int
	Field  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("format error")
	if e.File != "" {
		b.WriteString(": ")
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	} else if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Field != "" {
		b.WriteString(": field ")
		b.WriteString(e.Field)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func (e *FormatError) Unwrap() error { return e.Err }

// AtLine returns err annotated with file and line when it is a FormatError.
// Other errors are returned unchanged.
func AtLine(err error, file string, line int) error {
	var fe *FormatError
	if !errors.As(err, &fe) {
		return err
	}
	annotated := *fe
	annotated.File = file
	annotated.Line = line
	return &annotated
}
