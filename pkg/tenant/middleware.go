package tenant

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Default bypass prefixes: backoffice management, health probes and API
// documentation are tenant-agnostic and never trigger resolution.
var DefaultSkipPaths = []string{
	"/api/backoffice",
	"/health",
	"/swagger",
	"/openapi",
}

// Middleware resolves the tenant for every request outside the bypass
// list and binds it to the request context. It is the only component
// allowed to create the binding; everything downstream reads it.
//
// Failure semantics:
//   - no subdomain candidate and not the login path: 400, terminal;
//   - unknown or inactive subdomain: 404 naming the subdomain, terminal.
//
// There is no fallback schema. Requests that fail resolution never
// reach downstream handlers.
func Middleware(resolver Resolver, directory Directory, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cache:        NewInMemoryCache(),
		cacheTTL:     5 * time.Minute,
		errorHandler: defaultErrorHandler,
		skipPaths:    DefaultSkipPaths,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			subdomain, err := resolver.Resolve(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			if subdomain == "" {
				// The tenant login endpoint selects its tenant in the
				// request body and reports its own error when missing.
				if cfg.loginPath != "" && r.URL.Path == cfg.loginPath {
					next.ServeHTTP(w, r)
					return
				}
				cfg.errorHandler(w, r, ErrNoSubdomain)
				return
			}
			subdomain = strings.ToLower(subdomain)

			if cached, ok := cfg.cache.Get(r.Context(), subdomain); ok {
				// A cached record may have been deactivated since it was
				// stored; treat it exactly like a miss in the directory.
				if !cached.Active {
					cfg.errorHandler(w, r, notFound(subdomain))
					return
				}
				next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), cached)))
				return
			}

			t, err := directory.GetActiveBySubdomain(r.Context(), subdomain)
			if err != nil {
				if errors.Is(err, ErrTenantNotFound) {
					cfg.errorHandler(w, r, notFound(subdomain))
					return
				}
				if cfg.logger != nil {
					cfg.logger.ErrorContext(r.Context(), "tenant directory lookup failed",
						slog.String("subdomain", subdomain), slog.Any("error", err))
				}
				cfg.errorHandler(w, r, err)
				return
			}
			if !t.Active {
				cfg.errorHandler(w, r, notFound(subdomain))
				return
			}

			cfg.cache.Set(r.Context(), subdomain, t, cfg.cacheTTL)
			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

// notFound wraps ErrTenantNotFound with the subdomain that failed so the
// response body can name it. The wording is identical for unknown and
// deactivated tenants.
func notFound(subdomain string) error {
	return fmt.Errorf("tenant %q not found: %w", subdomain, ErrTenantNotFound)
}

// RequireTenant guards routes that must run with a binding. It returns
// 404 when none exists; the resolution middleware is expected to have
// run earlier in the chain.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
