package domaincheck_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pratoflow/tenantcore/pkg/domaincheck"
	"github.com/pratoflow/tenantcore/pkg/tenant"
)

// directoryWith allows exactly the given subdomains.
func directoryWith(subdomains ...string) tenant.Directory {
	known := make(map[string]struct{}, len(subdomains))
	for _, s := range subdomains {
		known[s] = struct{}{}
	}
	return tenant.DirectoryFunc(func(_ context.Context, subdomain string) (*tenant.Tenant, error) {
		if _, ok := known[subdomain]; !ok {
			return nil, tenant.ErrTenantNotFound
		}
		return &tenant.Tenant{
			ID:         1,
			Subdomain:  subdomain,
			SchemaName: tenant.SchemaName(subdomain, 1),
			Active:     true,
		}, nil
	})
}

func check(h http.Handler, domain string) *httptest.ResponseRecorder {
	target := "/validate-domain"
	if domain != "" {
		target = fmt.Sprintf("/validate-domain?domain=%s", domain)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	t.Parallel()

	handler := domaincheck.New(directoryWith("acme"), "pratoflow.com")

	t.Run("active tenant domain is allowed", func(t *testing.T) {
		t.Parallel()

		rec := check(handler, "acme.pratoflow.com")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "domain allowed", rec.Body.String())
	})

	t.Run("lookup is case-insensitive and ignores a trailing dot", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, http.StatusOK, check(handler, "ACME.Pratoflow.COM").Code)
		assert.Equal(t, http.StatusOK, check(handler, "acme.pratoflow.com.").Code)
	})

	t.Run("missing domain parameter", func(t *testing.T) {
		t.Parallel()

		rec := check(handler, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("denials are uniform", func(t *testing.T) {
		t.Parallel()

		denied := map[string]string{
			"unknown tenant":      "ghost.pratoflow.com",
			"wrong base domain":   "acme.evil.com",
			"base domain itself":  "pratoflow.com",
			"nested subdomain":    "a.acme.pratoflow.com",
			"reserved www":        "www.pratoflow.com",
			"reserved backoffice": "backoffice.pratoflow.com",
			"suffix trick":        "notpratoflow.com",
		}
		for name, domain := range denied {
			rec := check(handler, domain)
			assert.Equal(t, http.StatusNotFound, rec.Code, name)
			assert.Equal(t, "domain not allowed\n", rec.Body.String(), name)
		}
	})

	t.Run("custom reserved list replaces the default", func(t *testing.T) {
		t.Parallel()

		custom := domaincheck.New(directoryWith("www", "internal"), "pratoflow.com", "internal")
		assert.Equal(t, http.StatusOK, check(custom, "www.pratoflow.com").Code)
		assert.Equal(t, http.StatusNotFound, check(custom, "internal.pratoflow.com").Code)
	})

	t.Run("directory failure is a 500, not a denial", func(t *testing.T) {
		t.Parallel()

		failing := tenant.DirectoryFunc(func(context.Context, string) (*tenant.Tenant, error) {
			return nil, errors.New("directory unavailable")
		})
		rec := check(domaincheck.New(failing, "pratoflow.com"), "acme.pratoflow.com")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := domaincheck.RateLimit(1, 2)(next)

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/validate-domain?domain=acme.pratoflow.com", nil)
		req.RemoteAddr = ip + ":51234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("burst is honored, then throttled", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

		rec := send("10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})

	t.Run("buckets are per client IP", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)
	})

	t.Run("X-Real-IP takes precedence over RemoteAddr", func(t *testing.T) {
		t.Parallel()

		limited := domaincheck.RateLimit(1, 1)(next)
		for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
			req := httptest.NewRequest(http.MethodGet, "/validate-domain", nil)
			req.RemoteAddr = fmt.Sprintf("10.0.1.%d:40000", i)
			req.Header.Set("X-Real-IP", "203.0.113.9")
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, req)
			assert.Equal(t, want, rec.Code)
		}
	})
}
