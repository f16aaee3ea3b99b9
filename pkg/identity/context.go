package identity

import "context"

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithClaims stores the verified principal in the context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// FromContext retrieves the verified principal.
// Returns nil, false on unauthenticated requests.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok && claims != nil
}
