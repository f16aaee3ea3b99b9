package main

import (
	"context"
	"os"
	"time"

	"github.com/pratoflow/tenantcore/modules/gateway"
	"github.com/pratoflow/tenantcore/pkg/config"
	"github.com/pratoflow/tenantcore/pkg/environment"
	"github.com/pratoflow/tenantcore/pkg/httpserver"
	"github.com/pratoflow/tenantcore/pkg/identity"
	"github.com/pratoflow/tenantcore/pkg/logger"
	"github.com/pratoflow/tenantcore/pkg/pg"
	"github.com/pratoflow/tenantcore/pkg/redis"
	"github.com/pratoflow/tenantcore/pkg/requestid"
	"github.com/pratoflow/tenantcore/pkg/tenant"
	"github.com/pratoflow/tenantcore/pkg/tenantpg"
)

type appConfig struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	Addr       string `env:"SERVER_ADDR" envDefault:":8080"`
	BaseDomain string `env:"PLATFORM_BASE_DOMAIN,required"`
	SigningKey string `env:"AUTH_SIGNING_KEY,required"`

	TenantCacheTTL time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
}

func main() {
	ctx := context.Background()

	var appCfg appConfig
	var pgCfg pg.Config
	var redisCfg redis.Config
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)

	log := logger.New(
		logger.WithEnvironment(environment.Environment(appCfg.Env), "tenantcore"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.ErrorContext(ctx, "database connect failed", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		log.ErrorContext(ctx, "migrations failed", logger.Error(err))
		os.Exit(1)
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.ErrorContext(ctx, "redis connect failed", logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	verifier, err := identity.NewVerifier([]byte(appCfg.SigningKey))
	if err != nil {
		log.ErrorContext(ctx, "verifier init failed", logger.Error(err))
		os.Exit(1)
	}

	directory := tenantpg.New(pool)

	router := gateway.Router(gateway.Options{
		Logger:         log,
		Directory:      directory,
		Verifier:       verifier,
		BaseDomain:     appCfg.BaseDomain,
		TenantCache:    tenant.NewRedisCache(redisClient),
		TenantCacheTTL: appCfg.TenantCacheTTL,
		HealthProbes: []func(context.Context) error{
			pg.Healthcheck(pool),
			redis.Healthcheck(redisClient),
		},
	})

	srv := httpserver.New(
		httpserver.WithAddr(appCfg.Addr),
		httpserver.WithReadTimeout(15*time.Second),
		httpserver.WithWriteTimeout(30*time.Second),
		httpserver.WithIdleTimeout(60*time.Second),
		httpserver.WithLogger(log),
	)
	if err := srv.Run(ctx, router); err != nil {
		log.ErrorContext(ctx, "server exited with error", logger.Error(err))
		os.Exit(1)
	}
}
