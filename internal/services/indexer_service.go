package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/amity-sujit/quadroute/internal/messaging"
	"github.com/amity-sujit/quadroute/internal/metrics"
	"github.com/amity-sujit/quadroute/internal/models"
	"github.com/amity-sujit/quadroute/internal/repositories"
	"github.com/amity-sujit/quadroute/internal/search"
)

// IndexerService keeps the order search index in sync with the database. It
// consumes order events and also runs a periodic sweep over recently updated
// orders as a fallback for missed events.
type IndexerService struct {
	orders      repositories.OrderRepository
	customers   repositories.CustomerRepository
	vehicles    repositories.VehicleRepository
	elastic     *search.ElasticClient
	metrics     *metrics.Metrics
	sweepWindow time.Duration
}

func NewIndexerService(
	orders repositories.OrderRepository,
	customers repositories.CustomerRepository,
	vehicles repositories.VehicleRepository,
	elastic *search.ElasticClient,
	m *metrics.Metrics,
	sweepWindow time.Duration,
) *IndexerService {
	return &IndexerService{
		orders:      orders,
		customers:   customers,
		vehicles:    vehicles,
		elastic:     elastic,
		metrics:     m,
		sweepWindow: sweepWindow,
	}
}

// HandleOrderEvent indexes the order referenced by an event. Events for
// orders that no longer exist are dropped.
func (s *IndexerService) HandleOrderEvent(ctx context.Context, event messaging.OrderEvent) error {
	order, err := s.orders.GetByID(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Warn().Str("order_id", event.OrderID).Str("event", event.Type).
				Msg("Dropping event for missing order")
			return nil
		}
		return err
	}
	if err := s.indexOrder(ctx, order); err != nil {
		return err
	}
	s.metrics.IncrementCounter("orders_indexed")
	return nil
}

// ReindexRecent sweeps orders updated within the configured window into the
// index. A non-positive window sweeps the full table.
func (s *IndexerService) ReindexRecent(ctx context.Context) error {
	var orders []models.Order
	var err error
	if s.sweepWindow > 0 {
		orders, err = s.orders.ListUpdatedSince(ctx, time.Now().Add(-s.sweepWindow))
	} else {
		orders, err = s.orders.List(ctx)
	}
	if err != nil {
		return errors.Wrap(err, "failed to list orders for reindex")
	}
	for i := range orders {
		if err := s.indexOrder(ctx, &orders[i]); err != nil {
			log.Error().Err(err).Str("order_id", orders[i].OrderID).Msg("Failed to index order during sweep")
			continue
		}
	}
	s.metrics.IncrementCounter("reindex_sweeps")
	return nil
}

func (s *IndexerService) indexOrder(ctx context.Context, order *models.Order) error {
	var customer *models.Customer
	if c, err := s.customers.GetByID(ctx, order.CustomerID); err == nil {
		customer = c
	}
	var vehicle *models.Vehicle
	if order.VehicleID != nil {
		if v, err := s.vehicles.GetByID(ctx, *order.VehicleID); err == nil {
			vehicle = v
		}
	}
	return s.elastic.IndexOrder(ctx, order, customer, vehicle)
}
