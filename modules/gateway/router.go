package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pratoflow/tenantcore/pkg/authz"
	"github.com/pratoflow/tenantcore/pkg/domaincheck"
	"github.com/pratoflow/tenantcore/pkg/httpserver"
	"github.com/pratoflow/tenantcore/pkg/identity"
	"github.com/pratoflow/tenantcore/pkg/requestid"
	"github.com/pratoflow/tenantcore/pkg/tenant"
)

// DefaultLoginPath is the tenant login endpoint allowed through
// resolution unresolved; the login handler selects its own tenant.
const DefaultLoginPath = "/api/tenant/auth/login"

// DomainCheckPath is the TLS admission endpoint consumed by the edge.
const DomainCheckPath = "/validate-domain"

// Options wires the request pipeline and the collaborator surfaces.
// Collaborator route groups are optional; only the pipeline itself is
// owned here.
type Options struct {
	Logger    *slog.Logger
	Directory tenant.Directory
	Verifier  *identity.Verifier

	// BaseDomain is the platform domain tenants live under
	// (e.g. "app.example.com" serves tenants at "<sub>.app.example.com").
	BaseDomain string

	// LoginPath overrides DefaultLoginPath when set.
	LoginPath string

	// TenantCache overrides the default in-memory resolution cache.
	TenantCache tenant.Cache

	// TenantCacheTTL overrides how long resolved tenants stay cached.
	TenantCacheTTL time.Duration

	// HealthProbes run on GET /health (readiness when non-empty).
	HealthProbes []func(context.Context) error

	// DomainCheckRPS/-Burst throttle the admission endpoint per IP.
	DomainCheckRPS   float64
	DomainCheckBurst int

	// TenantRoutes mounts the tenant-scoped business surface. It runs
	// behind resolution, authentication and the tenant-or-impersonator
	// policy.
	TenantRoutes func(r chi.Router)

	// BackofficeRoutes mounts the management surface under
	// /api/backoffice, authenticated but tenant-agnostic.
	BackofficeRoutes func(r chi.Router)

	// TenantLogin handles the login path; it receives requests both
	// with and without a resolved tenant binding.
	TenantLogin http.Handler
}

// Router assembles the pipeline described by the platform contract:
//
//	request id -> tenant resolution -> authentication -> authorization -> handler
//
// Resolution happens-before authorization on every tenant-scoped route;
// the bypass prefixes and the admission endpoint never resolve.
func Router(opts Options) chi.Router {
	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	if opts.DomainCheckRPS <= 0 {
		opts.DomainCheckRPS = 5
	}
	if opts.DomainCheckBurst <= 0 {
		opts.DomainCheckBurst = 10
	}

	resolver := tenant.DefaultResolver(opts.BaseDomain)
	tenantOpts := []tenant.Option{
		tenant.WithLoginPath(loginPath),
		tenant.WithSkipPaths(append(append([]string{}, tenant.DefaultSkipPaths...), DomainCheckPath)...),
		tenant.WithLogger(opts.Logger),
	}
	if opts.TenantCache != nil {
		tenantOpts = append(tenantOpts, tenant.WithCache(opts.TenantCache))
	}
	if opts.TenantCacheTTL > 0 {
		tenantOpts = append(tenantOpts, tenant.WithCacheTTL(opts.TenantCacheTTL))
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(tenant.Middleware(resolver, opts.Directory, tenantOpts...))

	r.Get("/health", httpserver.HealthCheckHandler(opts.Logger, opts.HealthProbes...))

	r.With(domaincheck.RateLimit(opts.DomainCheckRPS, opts.DomainCheckBurst)).
		Method(http.MethodGet, DomainCheckPath,
			domaincheck.New(opts.Directory, opts.BaseDomain))

	if opts.TenantLogin != nil {
		r.Method(http.MethodPost, loginPath, opts.TenantLogin)
	}

	if opts.BackofficeRoutes != nil {
		r.Route("/api/backoffice", func(bo chi.Router) {
			bo.Use(identity.Middleware(opts.Verifier, nil))
			opts.BackofficeRoutes(bo)
		})
	}

	if opts.TenantRoutes != nil {
		r.Group(func(tr chi.Router) {
			tr.Use(identity.Middleware(opts.Verifier, nil))
			tr.Use(authz.Middleware(authz.TenantOrImpersonator))
			tr.Use(tenant.RequireTenant(nil))
			opts.TenantRoutes(tr)
		})
	}

	return r
}
