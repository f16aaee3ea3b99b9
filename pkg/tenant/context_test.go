package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratoflow/tenantcore/pkg/tenant"
)

func TestContextBinding(t *testing.T) {
	t.Parallel()

	t.Run("roundtrip", func(t *testing.T) {
		t.Parallel()

		bound := testTenant("acme", 1, true)
		ctx := tenant.WithTenant(context.Background(), bound)

		got, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, bound, got)
	})

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()

		got, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("nil tenant reads as unbound", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithTenant(context.Background(), nil)
		_, ok := tenant.FromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("schema accessor", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithTenant(context.Background(), testTenant("acme", 7, true))
		schema, ok := tenant.SchemaFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "acme_7", schema)

		_, ok = tenant.SchemaFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("must panics when unbound", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			tenant.MustFromContext(context.Background())
		})
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := tenant.LoggerExtractor()

	t.Run("bound context", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithTenant(context.Background(), testTenant("acme", 1, true))
		attr, ok := extract(ctx)
		require.True(t, ok)
		assert.Equal(t, "tenant", attr.Key)
	})

	t.Run("unbound context", func(t *testing.T) {
		t.Parallel()

		_, ok := extract(context.Background())
		assert.False(t, ok)
	})
}
