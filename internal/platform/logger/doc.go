// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Request-scoped loggers (tagged with a trace id by the
// HTTP trace middleware) travel through context.Context via WithLogger and FromContext.
package logger
