// Package httpserver runs the platform's HTTP listener: configurable
// timeouts, signal-aware graceful shutdown, and a probe handler for
// liveness/readiness endpoints.
package httpserver
