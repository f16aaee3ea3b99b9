package authz

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pratoflow/tenantcore/pkg/identity"
	"github.com/pratoflow/tenantcore/pkg/tenant"
)

// ImpersonationHeader is the per-request elevation signal. It is never
// encoded in a token: re-validating it on every request against the
// freshly resolved tenant bounds a stolen header's blast radius to a
// single request against a tenant that passed the resolver's
// existence-and-active check.
const ImpersonationHeader = "X-Backoffice-Impersonation"

// Policy selects which principals may reach a route group. One
// parameterized policy replaces what would otherwise be two
// near-duplicate authorization handlers.
type Policy int

const (
	// RequireImpersonation admits only a backoffice principal that
	// presents a truthy impersonation header on a request with a
	// resolved tenant binding.
	RequireImpersonation Policy = iota

	// TenantOrImpersonator admits a genuine tenant principal without
	// further checks (the token itself scopes it to its own tenant), or
	// a backoffice principal satisfying RequireImpersonation. This is
	// the policy applied to tenant-scoped business routes.
	TenantOrImpersonator
)

// Allowed is the decision predicate: stateless, side-effect free, two
// claim inputs plus one external fact (binding present). A missing
// principal always denies.
func (p Policy) Allowed(r *http.Request) bool {
	claims, ok := identity.FromContext(r.Context())
	if !ok {
		return false
	}

	switch {
	case claims.IsTenant():
		return p == TenantOrImpersonator
	case claims.IsBackoffice():
		if !impersonating(r) {
			return false
		}
		_, bound := tenant.FromContext(r.Context())
		return bound
	default:
		return false
	}
}

// impersonating reports whether the elevation header is present and
// truthy. Absent, empty and unparsable values all read as false.
func impersonating(r *http.Request) bool {
	value := strings.ToLower(strings.TrimSpace(r.Header.Get(ImpersonationHeader)))
	if value == "" {
		return false
	}
	truthy, err := strconv.ParseBool(value)
	return err == nil && truthy
}

// Middleware enforces the policy. Every denial is the same plain 403,
// regardless of which condition failed.
func Middleware(p Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !p.Allowed(r) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
