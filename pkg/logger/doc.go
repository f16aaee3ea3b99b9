// Package logger builds the application's slog.Logger: JSON or text
// output, environment presets, and a handler decorator that injects
// request-scoped attributes (request ID, tenant) from the context on
// every log call.
package logger
