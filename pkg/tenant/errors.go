package tenant

import "errors"

var (
	// ErrTenantNotFound is returned for subdomains that either do not
	// exist or belong to a deactivated tenant. The two cases share one
	// error so responses never disclose which of them applied.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrNoSubdomain is returned when neither the override header nor
	// the request host yields a subdomain candidate.
	ErrNoSubdomain = errors.New("no tenant subdomain in request")

	// ErrNoTenantInContext is returned when a handler that requires a
	// binding runs without one.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
