package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"tripbook/internal/app"
	"tripbook/internal/config"
	"tripbook/internal/geo"
	"tripbook/internal/handler"
	"tripbook/internal/logger"
	internalRedis "tripbook/internal/redis"
	"tripbook/internal/repository/postgres"
	"tripbook/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()
	log := logger.New(cfg.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize New Relic")
		} else {
			log.Info().Str("app", cfg.NewRelic.AppName).Msg("New Relic enabled")
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("connected to PostgreSQL")

	if err := app.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to run schema migration")
	}

	// Redis is optional: without it the API runs uncached, with no recent
	// searches and no idempotency replay.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("connected to Redis")
	}

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg, log)

	// Start server in goroutine.
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, log zerolog.Logger) *http.Server {
	// Initialize repositories.
	tripRepo := postgres.NewTripRepository(db, log)
	vehicleRepo := postgres.NewVehicleRepository(db, log)
	settingsRepo := postgres.NewSettingsRepository(db, log)

	// Initialize Redis-backed stores when Redis is available.
	var (
		tripCache   service.TripCache
		recentStore *internalRedis.RecentSearchStore
	)
	if redisClient != nil {
		tripCache = internalRedis.NewTripCacheStore(redisClient)
		recentStore = internalRedis.NewRecentSearchStore(redisClient)
	}

	// Initialize services.
	tripService := service.NewTripService(tripRepo, vehicleRepo, tripCache, log)
	vehicleService := service.NewVehicleService(vehicleRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	earningsService := service.NewEarningsService(tripRepo)

	// Initialize geo clients.
	nominatim := geo.NewNominatimClient(cfg.Geo, log)
	osrm := geo.NewOSRMClient(cfg.Geo, log)

	// Initialize handlers.
	tripHandler := handler.NewTripHandler(tripService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	earningsHandler := handler.NewEarningsHandler(earningsService)
	placeHandler := handler.NewPlaceHandler(nominatim, osrm, recentStore)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		TripHandler:     tripHandler,
		VehicleHandler:  vehicleHandler,
		SettingsHandler: settingsHandler,
		EarningsHandler: earningsHandler,
		PlaceHandler:    placeHandler,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
