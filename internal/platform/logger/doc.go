// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, plus helpers to carry request-scoped loggers in a
// context.Context and to capture log output in tests.
package logger
