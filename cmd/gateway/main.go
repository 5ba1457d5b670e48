package main

import (
	"context"
	"fmt"
	"time"

	"github.com/finpay/gateway/internal/cache"
	"github.com/finpay/gateway/internal/config"
	"github.com/finpay/gateway/internal/gateway"
	handlerHTTP "github.com/finpay/gateway/internal/handler/http"
	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/observe"
	"github.com/finpay/gateway/internal/ratelimit"
	"github.com/finpay/gateway/internal/rpc"
	"github.com/finpay/gateway/internal/server"
	"github.com/finpay/gateway/internal/service"
	"github.com/finpay/gateway/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// tokenSweepInterval controls how often expired refresh tokens are purged.
const tokenSweepInterval = time.Hour

func main() {
	printBuildInfo()

	log := logger.NewLogger("finpay-gateway")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	cacheStore, err := cache.NewRedisStore(ctx, cfg.Storage.Cache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to cache")
	}
	responseCache := cache.New(cacheStore, cfg.Storage.Cache.DefaultTTL, log)

	if cfg.Observability.ExporterAddress != "" {
		provider, providerErr := observe.NewProvider(ctx, cfg.Observability, log)
		if providerErr != nil {
			log.Fatal().Err(providerErr).Msg("error configuring telemetry")
		}
		defer func() {
			if shutdownErr := provider.Shutdown(context.Background()); shutdownErr != nil {
				log.Err(shutdownErr).Msg("telemetry shutdown failed")
			}
		}()
	}

	tracker, err := observe.NewTracker(cfg.Observability.ServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating tracker")
	}

	backends, err := rpc.NewBackends(cfg.Backends, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to backends")
	}
	defer backends.Close()

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, responseCache, *cfg, log)

	dispatcher := gateway.NewDispatcher(backends, responseCache, tracker)
	limiter := ratelimit.New(cfg.RateLimit, log)
	janitor := service.NewTokenJanitor(storages.RefreshTokenRepository, tokenSweepInterval, log)

	handler := handlerHTTP.NewHandler(services, dispatcher, limiter, log)

	srv := server.NewServer(handler.Init(), cfg.Server, log, limiter, janitor)
	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
