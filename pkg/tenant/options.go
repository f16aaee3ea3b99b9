package tenant

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrorHandler turns a resolution failure into an HTTP response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	cache        Cache
	cacheTTL     time.Duration
	errorHandler ErrorHandler
	skipPaths    []string
	loginPath    string
	logger       *slog.Logger
}

// Option configures the resolution middleware.
type Option func(*config)

// WithCache sets a custom cache implementation in front of the directory.
func WithCache(cache Cache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithCacheTTL sets how long resolved tenants stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithSkipPaths replaces the path prefixes that bypass resolution.
func WithSkipPaths(prefixes ...string) Option {
	return func(c *config) {
		c.skipPaths = prefixes
	}
}

// WithLoginPath sets the exact path allowed through without a resolved
// tenant. The login handler performs its own tenant selection and
// reports its own error when none is supplied.
func WithLoginPath(path string) Option {
	return func(c *config) {
		c.loginPath = path
	}
}

// WithLogger sets a logger for resolution failures worth operator attention.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNoSubdomain):
		http.Error(w, fmt.Sprintf(
			"unable to determine tenant: supply the %s header or call through a tenant subdomain", DefaultHeader),
			http.StatusBadRequest)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
