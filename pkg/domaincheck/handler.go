package domaincheck

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pratoflow/tenantcore/pkg/tenant"
)

// DefaultReserved are subdomains the platform keeps for itself. They
// are denied regardless of what the directory says.
var DefaultReserved = []string{"www", "api", "app", "mail", "admin", "backoffice"}

// Handler answers the edge proxy's certificate admission question:
// may a certificate be issued for this domain? It allows exactly the
// active tenant subdomains under the platform base domain.
//
// Denials share one status and body whatever the reason (wrong base
// domain, reserved name, unknown or inactive tenant) so the endpoint
// cannot be used to enumerate tenants.
type Handler struct {
	directory  tenant.Directory
	baseDomain string
	reserved   map[string]struct{}
}

// New creates the admission handler. When no reserved names are given,
// DefaultReserved applies.
func New(directory tenant.Directory, baseDomain string, reserved ...string) *Handler {
	if len(reserved) == 0 {
		reserved = DefaultReserved
	}
	set := make(map[string]struct{}, len(reserved))
	for _, name := range reserved {
		set[strings.ToLower(name)] = struct{}{}
	}
	return &Handler{
		directory:  directory,
		baseDomain: strings.ToLower(baseDomain),
		reserved:   set,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	domain := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("domain")))
	if domain == "" {
		http.Error(w, "missing domain parameter", http.StatusBadRequest)
		return
	}
	domain = strings.TrimSuffix(domain, ".")

	suffix := "." + h.baseDomain
	if !strings.HasSuffix(domain, suffix) {
		h.deny(w)
		return
	}
	subdomain := strings.TrimSuffix(domain, suffix)
	if subdomain == "" || strings.Contains(subdomain, ".") {
		h.deny(w)
		return
	}
	if _, isReserved := h.reserved[subdomain]; isReserved {
		h.deny(w)
		return
	}

	if _, err := h.directory.GetActiveBySubdomain(r.Context(), subdomain); err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			h.deny(w)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("domain allowed"))
}

func (h *Handler) deny(w http.ResponseWriter) {
	http.Error(w, "domain not allowed", http.StatusNotFound)
}
