package tenantpg_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratoflow/tenantcore/pkg/tenant"
	"github.com/pratoflow/tenantcore/pkg/tenantpg"
)

// stubDB routes QueryRow to a canned row and records the arguments it
// was called with.
type stubDB struct {
	row      stubRow
	lastSQL  string
	lastArgs []any
}

func (s *stubDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unexpected Exec")
}

func (s *stubDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (s *stubDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.lastSQL = sql
	s.lastArgs = args
	return s.row
}

type stubRow struct {
	tenant *tenant.Tenant
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.tenant.ID
	*dest[1].(*string) = r.tenant.Subdomain
	*dest[2].(*string) = r.tenant.SchemaName
	*dest[3].(*bool) = r.tenant.Active
	*dest[4].(*string) = r.tenant.CreatedBy
	*dest[5].(*time.Time) = r.tenant.CreatedAt
	*dest[6].(*time.Time) = r.tenant.UpdatedAt
	return nil
}

func TestDirectory_GetActiveBySubdomain(t *testing.T) {
	t.Parallel()

	t.Run("returns the active tenant", func(t *testing.T) {
		t.Parallel()

		now := time.Now().UTC().Truncate(time.Second)
		want := &tenant.Tenant{
			ID:         42,
			Subdomain:  "acme",
			SchemaName: "acme_42",
			Active:     true,
			CreatedBy:  "ops@pratoflow.com",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		db := &stubDB{row: stubRow{tenant: want}}

		got, err := tenantpg.New(db).GetActiveBySubdomain(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, []any{"acme"}, db.lastArgs)
		assert.Contains(t, db.lastSQL, "is_active")
	})

	t.Run("missing row maps to ErrTenantNotFound", func(t *testing.T) {
		t.Parallel()

		db := &stubDB{row: stubRow{err: pgx.ErrNoRows}}

		got, err := tenantpg.New(db).GetActiveBySubdomain(context.Background(), "ghost")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("infrastructure errors are wrapped, not masked", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection reset")
		db := &stubDB{row: stubRow{err: cause}}

		got, err := tenantpg.New(db).GetActiveBySubdomain(context.Background(), "acme")
		assert.Nil(t, got)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}
