package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"donation-api/internal/adapter/repo"
	"donation-api/internal/http/handlers"
	httpapi "donation-api/internal/http/httpapi"
	"donation-api/internal/infra"
	"donation-api/internal/infra/geoip"
	"donation-api/internal/metrics"
	"donation-api/internal/notify"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	stores, err := repo.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid store configuration")
	}

	app := handlers.NewApp(stores.Donations, stores.Contacts, stores.Pinger, logger)
	app.Metrics = metrics.New()

	publisher, err := notify.DialAMQP(cfg.AMQPURL, cfg.AMQPQueue, logger, app.Metrics)
	if err != nil {
		logger.Error().Err(err).Msg("submission notifications disabled")
	} else if publisher != nil {
		app.Publisher = publisher
		defer publisher.Close()
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Error().Err(err).Msg("geoip lookups disabled")
	}
	defer resolver.Close()

	router := httpapi.NewRouter(app, httpapi.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		CountryLookup:  resolver.Lookup(),
		Logger:         logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("store", string(stores.Kind)).Strs("origins", cfg.AllowedOrigins).Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	if err := stores.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to close store")
	}
	logger.Info().Msg("server stopped")
}
