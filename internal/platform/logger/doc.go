// Package logger provides structured logging for the application.
//
// It builds a JSON log/slog handler from configuration and carries
// request-scoped loggers through context.Context so that repositories can log
// with the caller's trace ID without taking a logger parameter on every call.
package logger
