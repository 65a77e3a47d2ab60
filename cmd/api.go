package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/amity-sujit/quadroute/config"
	"github.com/amity-sujit/quadroute/internal/api"
	"github.com/amity-sujit/quadroute/internal/cache"
	"github.com/amity-sujit/quadroute/internal/database"
	"github.com/amity-sujit/quadroute/internal/messaging"
	"github.com/amity-sujit/quadroute/internal/metrics"
	"github.com/amity-sujit/quadroute/internal/models"
	"github.com/amity-sujit/quadroute/internal/repositories"
	"github.com/amity-sujit/quadroute/internal/search"
	"github.com/amity-sujit/quadroute/internal/services"
	"github.com/amity-sujit/quadroute/internal/tracing"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long:  `Start the HTTP API server for delivery and dairy distribution operations`,
	RunE:  runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}

	// Configure logging
	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize database connections
	quadrouteDB, dairyDB, err := initDatabases(cfg)
	if err != nil {
		return err
	}

	// Initialize cache
	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis cache, continuing without caching")
	}

	// Initialize tracer
	tracer, err := tracing.NewTracer(cfg.Tracing)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
	}

	// Initialize Elasticsearch client
	elasticClient, err := search.NewElasticClient(cfg.Elastic)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Elasticsearch client, continuing without search functionality")
	}

	// Initialize Azure Service Bus publisher
	bus, err := messaging.NewServiceBusClient(cfg.Azure, "api")
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Service Bus client, continuing without events")
	}

	// Initialize metrics
	metricsCollector := metrics.NewMetrics()
	metricsCollector.SetHealth("database", true)

	// Initialize services
	deliveryService := services.NewDeliveryService(
		repositories.NewCustomerRepository(quadrouteDB),
		repositories.NewStoreRepository(quadrouteDB),
		repositories.NewVehicleRepository(quadrouteDB),
		repositories.NewOrderRepository(quadrouteDB),
		redisCache, bus, metricsCollector)
	tenantService := services.NewTenantService(repositories.NewTenantRepository(quadrouteDB), redisCache)
	dairyService := services.NewDairyService(repositories.NewDairyRepository(dairyDB))

	// Initialize and start the server
	server := api.NewServer(cfg, deliveryService, tenantService, dairyService, elasticClient, metricsCollector, tracer)

	// Start the server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Server error")
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	// Shutdown the server
	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	if bus != nil {
		if err := bus.Close(); err != nil {
			log.Error().Err(err).Msg("Service Bus close error")
		}
	}

	log.Info().Msg("Shutting down API server")
	return nil
}

func initDatabases(cfg config.Config) (*gorm.DB, *gorm.DB, error) {
	// Initialize delivery schema database
	quadrouteDB, err := database.Connect(cfg.QuadrouteDB)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to quadroute database")
	}

	// Initialize dairy distribution database
	dairyDB, err := database.Connect(cfg.DairyDB)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to dairy database")
	}

	if err := models.SetupModels(quadrouteDB); err != nil {
		return nil, nil, errors.Wrap(err, "failed to run quadroute migrations")
	}
	if err := models.SetupDairyModels(dairyDB); err != nil {
		return nil, nil, errors.Wrap(err, "failed to run dairy migrations")
	}

	return quadrouteDB, dairyDB, nil
}
