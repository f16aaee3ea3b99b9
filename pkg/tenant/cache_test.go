package tenant_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratoflow/tenantcore/pkg/tenant"
)

func TestInMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCacheWithSize(10)
		defer cache.Close()

		acme := testTenant("acme", 1, true)
		cache.Set(ctx, "acme", acme, time.Minute)

		got, ok := cache.Get(ctx, "acme")
		require.True(t, ok)
		assert.Equal(t, acme, got)
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCacheWithSize(10)
		defer cache.Close()

		_, ok := cache.Get(ctx, "missing")
		assert.False(t, ok)
	})

	t.Run("expired entry", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCacheWithSize(10)
		defer cache.Close()

		cache.Set(ctx, "acme", testTenant("acme", 1, true), 10*time.Millisecond)
		time.Sleep(30 * time.Millisecond)

		_, ok := cache.Get(ctx, "acme")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCacheWithSize(10)
		defer cache.Close()

		cache.Set(ctx, "acme", testTenant("acme", 1, true), time.Minute)
		cache.Delete(ctx, "acme")

		_, ok := cache.Get(ctx, "acme")
		assert.False(t, ok)
	})

	t.Run("eviction keeps size bounded", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCacheWithSize(3)
		defer cache.Close()

		for i := 0; i < 5; i++ {
			sub := fmt.Sprintf("tenant%d", i)
			cache.Set(ctx, sub, testTenant(sub, int64(i+1), true), time.Minute)
		}

		var present int
		for i := 0; i < 5; i++ {
			if _, ok := cache.Get(ctx, fmt.Sprintf("tenant%d", i)); ok {
				present++
			}
		}
		assert.LessOrEqual(t, present, 3)
	})

	t.Run("zero ttl is ignored", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCacheWithSize(10)
		defer cache.Close()

		cache.Set(ctx, "acme", testTenant("acme", 1, true), 0)
		_, ok := cache.Get(ctx, "acme")
		assert.False(t, ok)
	})
}

func TestNopCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := tenant.NopCache{}

	cache.Set(ctx, "acme", testTenant("acme", 1, true), time.Minute)
	_, ok := cache.Get(ctx, "acme")
	assert.False(t, ok)
	assert.NoError(t, cache.Close())
}
