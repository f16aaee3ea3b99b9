package tenant

import (
	"context"
	"fmt"
	"time"
)

// Tenant is the directory record for one customer account. Each tenant
// owns exactly one PostgreSQL schema inside the shared database.
type Tenant struct {
	ID         int64     `json:"id"`
	Subdomain  string    `json:"subdomain"`
	SchemaName string    `json:"schema_name"`
	Active     bool      `json:"active"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SchemaName derives the schema name assigned when a tenant is created.
// The name is immutable afterwards. The numeric suffix keeps it unique
// even if the subdomain is released and registered again later.
func SchemaName(subdomain string, id int64) string {
	return fmt.Sprintf("%s_%d", subdomain, id)
}

// Directory loads tenant records from the authoritative store.
// It is the single read dependency of the resolution core.
type Directory interface {
	// GetActiveBySubdomain returns the active tenant owning the given
	// subdomain. Missing and inactive tenants are both reported as
	// ErrTenantNotFound so callers can never tell the two apart.
	GetActiveBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
}

// DirectoryFunc adapts a function to the Directory interface.
type DirectoryFunc func(ctx context.Context, subdomain string) (*Tenant, error)

func (f DirectoryFunc) GetActiveBySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	return f(ctx, subdomain)
}
