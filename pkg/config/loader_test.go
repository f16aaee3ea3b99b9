package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratoflow/tenantcore/pkg/config"
)

// Distinct types per test: Load caches by config type, so sharing one
// type across tests would leak values between them.

func TestLoad(t *testing.T) {
	type serverConfig struct {
		Addr    string `env:"TEST_LOAD_ADDR" envDefault:":8080"`
		Workers int    `env:"TEST_LOAD_WORKERS" envDefault:"4"`
	}

	t.Setenv("TEST_LOAD_ADDR", ":9090")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 4, cfg.Workers, "default applies when the variable is unset")
}

func TestLoadCachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CACHE_VALUE" envDefault:"first"`
	}

	t.Setenv("TEST_CACHE_VALUE", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	// Later loads of the same type see the cached parse, not the
	// mutated environment.
	t.Setenv("TEST_CACHE_VALUE", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestLoadRequiredVariable(t *testing.T) {
	type strictConfig struct {
		Secret string `env:"TEST_STRICT_SECRET,required"`
	}

	var cfg strictConfig
	assert.Error(t, config.Load(&cfg))
}

func TestLoadNilPointer(t *testing.T) {
	assert.ErrorIs(t, config.Load[struct{}](nil), config.ErrNilPointer)
}

func TestMustLoadPanics(t *testing.T) {
	type panicConfig struct {
		Secret string `env:"TEST_PANIC_SECRET,required"`
	}

	assert.Panics(t, func() {
		var cfg panicConfig
		config.MustLoad(&cfg)
	})
}
