package tenantpg

import (
	"context"
	"fmt"

	"github.com/pratoflow/tenantcore/pkg/pg"
	"github.com/pratoflow/tenantcore/pkg/tenant"
)

// Directory reads the authoritative tenant table in the public schema.
//
// Lookups run before any tenant binding exists, so the directory talks
// to the plain pool (or anything satisfying pg.DB), never through the
// schema router.
type Directory struct {
	db pg.DB
}

// New creates a directory backed by the given database handle.
func New(db pg.DB) *Directory {
	return &Directory{db: db}
}

// The WHERE clause folds "missing" and "inactive" into one result so the
// caller receives a single ErrTenantNotFound for both cases.
const getActiveBySubdomainQuery = `
SELECT id, subdomain, schema_name, is_active, created_by, created_at, updated_at
FROM tenants
WHERE subdomain = $1 AND is_active`

func (d *Directory) GetActiveBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := d.db.QueryRow(ctx, getActiveBySubdomainQuery, subdomain).Scan(
		&t.ID,
		&t.Subdomain,
		&t.SchemaName,
		&t.Active,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("tenant directory lookup: %w", err)
	}
	return &t, nil
}
