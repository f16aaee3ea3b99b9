package tenant

import (
	"net/http"
	"strings"
)

// DefaultHeader is the subdomain override header. It exists for clients
// that cannot reach the platform through a tenant subdomain (local
// development, native apps, reverse proxies that rewrite Host).
const DefaultHeader = "X-Tenant-Subdomain"

// Resolver extracts a candidate subdomain from an HTTP request.
// An empty string means the request carries no candidate; resolvers do
// not decide whether that is an error.
type Resolver interface {
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(r *http.Request) (string, error)

func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// HeaderResolver reads the subdomain from a request header.
// Header values are matched case-insensitively: "ACME" and "acme"
// identify the same tenant.
type HeaderResolver struct {
	Name string
}

// NewHeaderResolver creates a header resolver, defaulting to DefaultHeader.
func NewHeaderResolver(name string) *HeaderResolver {
	if name == "" {
		name = DefaultHeader
	}
	return &HeaderResolver{Name: name}
}

func (h *HeaderResolver) Resolve(r *http.Request) (string, error) {
	return strings.ToLower(strings.TrimSpace(r.Header.Get(h.Name))), nil
}

// HostResolver derives the subdomain from the first label of the request
// host ("acme.app.example" yields "acme"). "www" never resolves; it is
// the platform's own landing host.
type HostResolver struct {
	// BaseDomain, when set, restricts resolution to hosts of the exact
	// form "<subdomain>.<BaseDomain>". When empty, any host with at
	// least three labels resolves to its first label.
	BaseDomain string
}

// NewHostResolver creates a host resolver for the given base domain.
func NewHostResolver(baseDomain string) *HostResolver {
	return &HostResolver{BaseDomain: strings.ToLower(baseDomain)}
}

func (h *HostResolver) Resolve(r *http.Request) (string, error) {
	host := strings.ToLower(r.Host)

	// Strip port if present.
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	if h.BaseDomain != "" {
		suffix := "." + h.BaseDomain
		if !strings.HasSuffix(host, suffix) {
			return "", nil
		}
		sub := strings.TrimSuffix(host, suffix)
		if sub == "" || sub == "www" || strings.Contains(sub, ".") {
			// Bare base domain, www, or a nested label we do not serve.
			return "", nil
		}
		return sub, nil
	}

	// Without a configured base domain the host must have the shape
	// subdomain.domain.tld; two labels is the bare domain itself.
	parts := strings.Split(host, ".")
	if len(parts) < 3 || parts[0] == "" || parts[0] == "www" {
		return "", nil
	}
	return parts[0], nil
}

// CompositeResolver tries resolvers in order and returns the first
// non-empty candidate. The order is the precedence contract: placing
// the header resolver first makes the override header win over Host.
type CompositeResolver struct {
	Resolvers []Resolver
}

// NewCompositeResolver creates a resolver chain.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	for _, resolver := range c.Resolvers {
		sub, err := resolver.Resolve(r)
		if err != nil {
			return "", err
		}
		if sub != "" {
			return sub, nil
		}
	}
	return "", nil
}

// DefaultResolver returns the production resolution chain: the override
// header first, then the host name.
func DefaultResolver(baseDomain string) Resolver {
	return NewCompositeResolver(
		NewHeaderResolver(DefaultHeader),
		NewHostResolver(baseDomain),
	)
}
