package main

import (
	"context"
	"fmt"
	"net/http"

	"parcelbridge/cmd"
	httpin "parcelbridge/internal/adapters/in/http"
	"parcelbridge/internal/adapters/out/postgres/bagrepo"
	"parcelbridge/internal/adapters/out/postgres/manifestrepo"
	"parcelbridge/internal/adapters/out/postgres/shipmentrepo"
	"parcelbridge/internal/adapters/out/redisdedup"
	"parcelbridge/internal/core/ports"
	"parcelbridge/internal/jobs"
	"parcelbridge/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()

	// A missing .env is fine; variables may come from the environment.
	_ = godotenv.Load(".env")

	cfg, err := cmd.LoadConfig(ctx)
	if err != nil {
		gommonlog.Fatalf("failed to load configuration: %v", err)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	gormDB, err := gorm.Open(gormpostgres.Open(cfg.DB.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("failed to run database migrations")
	}

	var dedup ports.BookingDeduplicator
	if cfg.Redis.Addr != "" {
		client, err := redisdedup.Connect(ctx, redisdedup.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		dedup = redisdedup.NewBookingDeduplicator(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("booking deduplication enabled")
	} else {
		log.Info().Msg("booking deduplication disabled; REDIS_ADDR not set")
	}

	root := cmd.NewCompositionRoot(cfg, gormDB, dedup, log)

	handlers, err := root.CreateHandlers()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application handlers")
	}

	jobManager := jobs.NewJobManager(root.CreateGetDepartingManifestsQueryHandler(), log)
	if err := jobManager.StartAll(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduled jobs")
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpin.NewValidator()
	e.HTTPErrorHandler = httpin.NewHTTPErrorHandler(log)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	httpin.NewServer(handlers).RegisterRoutes(e)

	log.Info().Str("port", cfg.HTTPPort).Msg("starting http server")
	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.TrackingEventDTO{},
		&shipmentrepo.DeliveryProofDTO{},
		&bagrepo.BagDTO{},
		&bagrepo.BagShipmentDTO{},
		&bagrepo.AirInvoiceDTO{},
		&manifestrepo.ManifestDTO{},
		&manifestrepo.ManifestBagDTO{},
		&manifestrepo.ManifestShipmentDTO{},
		&manifestrepo.ManifestExportDTO{},
	)
}
