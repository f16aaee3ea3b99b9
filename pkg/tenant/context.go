package tenant

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithTenant binds a resolved tenant to the context. The binding is
// single-assignment by convention: only the resolution middleware calls
// this, once per request, and nothing downstream may rebind a different
// tenant for the remainder of the request.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext retrieves the bound tenant snapshot.
// Returns nil, false when the request carries no binding.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(contextKey{}).(*Tenant)
	return t, ok && t != nil
}

// SchemaFromContext retrieves just the bound schema name. This is the
// accessor the database layer uses to pin the search path.
func SchemaFromContext(ctx context.Context) (string, bool) {
	t, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return t.SchemaName, true
}

// MustFromContext retrieves the bound tenant and panics if there is none.
// Use only in handlers mounted behind the resolution middleware.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return t
}

// LoggerExtractor returns a logger ContextExtractor that annotates log
// records with the bound tenant subdomain and schema.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if t, ok := FromContext(ctx); ok {
			return slog.Group("tenant",
				slog.String("subdomain", t.Subdomain),
				slog.String("schema", t.SchemaName),
			), true
		}
		return slog.Attr{}, false
	}
}
