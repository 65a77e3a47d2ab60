package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/amity-sujit/quadroute/config"
	"github.com/amity-sujit/quadroute/internal/messaging"
	"github.com/amity-sujit/quadroute/internal/metrics"
	"github.com/amity-sujit/quadroute/internal/repositories"
	"github.com/amity-sujit/quadroute/internal/search"
	"github.com/amity-sujit/quadroute/internal/services"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the background worker",
	Long:  `Start the background worker to index order events from Azure Service Bus into Elasticsearch`,
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
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

	// Create an error group to manage goroutines
	g, ctx := errgroup.WithContext(ctx)

	// Initialize database connections
	quadrouteDB, _, err := initDatabases(cfg)
	if err != nil {
		return err
	}

	// Initialize Elasticsearch client
	elasticClient, err := search.NewElasticClient(cfg.Elastic)
	if err != nil {
		return err
	}

	// Initialize metrics
	metricsCollector := metrics.NewMetrics()

	// Initialize the indexer
	indexer := services.NewIndexerService(
		repositories.NewOrderRepository(quadrouteDB),
		repositories.NewCustomerRepository(quadrouteDB),
		repositories.NewVehicleRepository(quadrouteDB),
		elasticClient, metricsCollector, cfg.Worker.SweepWindow)

	// Initialize Azure Service Bus client
	bus, err := messaging.NewServiceBusClient(cfg.Azure, "worker")
	if err != nil {
		return err
	}
	defer func() {
		if err := bus.Close(); err != nil {
			log.Error().Err(err).Msg("Service Bus close error")
		}
	}()

	// Start the service bus processor
	g.Go(func() error {
		log.Info().Str("queue", cfg.Azure.QueueName).Msg("Starting order event processor")
		return bus.Receive(ctx, indexer.HandleOrderEvent)
	})

	// Start the reindex sweep as a fallback for missed events
	g.Go(func() error {
		log.Info().Dur("interval", cfg.Worker.SweepInterval).Msg("Starting reindex sweep")

		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return err
		}

		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Worker.SweepInterval),
			gocron.NewTask(func() {
				if err := indexer.ReindexRecent(ctx); err != nil {
					log.Error().Err(err).Msg("Reindex sweep failed")
				}
			}),
		)
		if err != nil {
			return err
		}

		// Start the scheduler
		scheduler.Start()

		// Wait for context cancellation
		<-ctx.Done()

		// Shutdown the scheduler
		return scheduler.Shutdown()
	})

	// Wait for any goroutine to exit
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker error")
		return err
	}

	log.Info().Msg("Worker shutting down gracefully")
	return nil
}
