// Package tenant implements the request-to-tenant resolution core of the
// platform: it maps every inbound HTTP request to exactly one tenant of
// the shared multi-schema database, or rejects it.
//
// # Resolution
//
// A candidate subdomain comes from the X-Tenant-Subdomain header when
// present, otherwise from the first label of the request host. The
// candidate is looked up in the tenant Directory; only active tenants
// resolve. The resolved tenant snapshot is bound to the request context
// and stays immutable for the lifetime of the request.
//
//	resolver := tenant.DefaultResolver("app.example.com")
//	r.Use(tenant.Middleware(resolver, directory,
//		tenant.WithLoginPath("/api/tenant/auth/login"),
//	))
//
// Paths under the backoffice, health and API documentation prefixes are
// tenant-agnostic and bypass resolution entirely.
//
// # Binding
//
// Downstream code reads the binding with FromContext or, for the
// database layer, SchemaFromContext. Requests that failed resolution
// never reach downstream handlers, so a missing binding on a guarded
// route is a wiring bug, not a client error.
//
// # Caching
//
// Lookups go through a Cache (in-memory by default, Redis-backed via
// NewRedisCache) so hot tenants do not hit the directory on every
// request. Deactivation takes effect at the latest after the cache TTL.
package tenant
