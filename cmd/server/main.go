package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/kecicz/activerecord-fb-adapter/internal/config"
	"github.com/kecicz/activerecord-fb-adapter/internal/controller"
	"github.com/kecicz/activerecord-fb-adapter/internal/database"
	"github.com/kecicz/activerecord-fb-adapter/internal/database/metadata"
	"github.com/kecicz/activerecord-fb-adapter/internal/logging"
	"github.com/kecicz/activerecord-fb-adapter/internal/middleware"
	"github.com/kecicz/activerecord-fb-adapter/internal/schema"
	"github.com/kecicz/activerecord-fb-adapter/internal/utils"
)

var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("FB_CONFIG_FILE"))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := logging.New(cfg.Logging)

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewPrometheusMetrics(registry)

	// Initialize database connection
	db, err := config.InitDatabase(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	// Initialize infrastructure
	dialect := database.NewFirebirdDialect(cfg.Schema.BooleanDomain)
	mapper := utils.NewDataTypeMapper(cfg.Schema.BooleanDomain)
	conn := database.NewInstrumentedConnection(database.NewSQLConnection(db, dialect), logger, metrics)
	healthChecker := database.NewHealthChecker(db, conn)

	// Provision the boolean domain ahead of the first migration
	if cfg.Schema.ProvisionOnStartup {
		statements := schema.NewSchemaStatements(conn, dialect, mapper, schema.Settings{
			SequenceSuffix:      cfg.Schema.SequenceSuffix,
			MaxIdentifierLength: cfg.Schema.MaxIdentifierLength,
		}, logger, metrics)
		if err := statements.EnsureBooleanDomain(ctx); err != nil {
			logger.WithError(err).Warn("Boolean domain provisioning failed, continuing")
		}
	}

	// Initialize controllers
	schemaController := controller.NewSchemaController(metadata.NewCatalogReader(conn, dialect, mapper), logger)
	healthController := controller.NewHealthController(healthChecker, version)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(logging.RequestLogger(logger))
	router.Use(metrics.PrometheusMiddleware())

	// Add rate limiting if enabled
	if cfg.Security.EnableRateLimit {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RPM:   cfg.Security.RateLimitPerMinute,
			Burst: cfg.Security.RateLimitBurst,
		}, metrics)
		go rateLimiter.Run(ctx)
		router.Use(rateLimiter.RateLimit())
	}

	// Health check endpoint (always available)
	router.GET("/health", healthController.HealthCheck)

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	// API v1 group
	api := router.Group("/api/v1")
	api.GET("/health", healthController.HealthCheck)
	schemaController.RegisterRoutes(api)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.WithFields(logrus.Fields{
		"addr":    addr,
		"version": version,
	}).Info("Starting server")

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Graceful shutdown failed")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("Failed to start server")
	}
}
