// Package logging assembles structured slog loggers for tunevault.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so storage and catalog code can tag
// lines with the running operation and snapshot kind. NewNop gives tests and
// wiring code a logger that cannot fail.
package logging
