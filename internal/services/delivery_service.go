package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/amity-sujit/quadroute/internal/cache"
	"github.com/amity-sujit/quadroute/internal/geo"
	"github.com/amity-sujit/quadroute/internal/messaging"
	"github.com/amity-sujit/quadroute/internal/metrics"
	"github.com/amity-sujit/quadroute/internal/models"
	"github.com/amity-sujit/quadroute/internal/repositories"
)

const existsCacheTTL = 5 * time.Minute

// DeliveryService carries the customer, store, vehicle and order operations
// of the delivery domain.
type DeliveryService struct {
	customers repositories.CustomerRepository
	stores    repositories.StoreRepository
	vehicles  repositories.VehicleRepository
	orders    repositories.OrderRepository
	cache     *cache.RedisCache
	bus       messaging.ServiceBusClient
	metrics   *metrics.Metrics
}

func NewDeliveryService(
	customers repositories.CustomerRepository,
	stores repositories.StoreRepository,
	vehicles repositories.VehicleRepository,
	orders repositories.OrderRepository,
	redisCache *cache.RedisCache,
	bus messaging.ServiceBusClient,
	m *metrics.Metrics,
) *DeliveryService {
	return &DeliveryService{
		customers: customers,
		stores:    stores,
		vehicles:  vehicles,
		orders:    orders,
		cache:     redisCache,
		bus:       bus,
		metrics:   m,
	}
}

// forceSRID stamps the storage SRID on an incoming point regardless of what
// the client sent.
func forceSRID(p *geo.Point) {
	if p != nil {
		p.SRID = geo.SRID4326
	}
}

// Customers

func (s *DeliveryService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customers.List(ctx)
}

func (s *DeliveryService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *DeliveryService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	forceSRID(customer.Location)
	if err := s.customers.Create(ctx, customer); err != nil {
		return err
	}
	s.metrics.IncrementCounter("customers_created")
	return nil
}

func (s *DeliveryService) UpdateCustomer(ctx context.Context, id string, customer *models.Customer) error {
	if customer.CustomerID != id {
		return ErrIDMismatch
	}
	existing, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	existing.Name = customer.Name
	existing.AddressLine1 = customer.AddressLine1
	existing.AddressLine2 = customer.AddressLine2
	existing.City = customer.City
	existing.PostalCode = customer.PostalCode
	existing.PhoneNumber = customer.PhoneNumber
	existing.Email = customer.Email
	if customer.Location != nil {
		existing.Location = customer.Location
		existing.Location.SRID = geo.SRID4326
	}
	if err := s.customers.Save(ctx, existing); err != nil {
		return err
	}
	*customer = *existing
	s.invalidateExists(ctx, cache.GetCustomerCacheKey(id))
	return nil
}

func (s *DeliveryService) DeleteCustomer(ctx context.Context, id string) error {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.customers.Delete(ctx, customer); err != nil {
		return err
	}
	s.invalidateExists(ctx, cache.GetCustomerCacheKey(id))
	return nil
}

// Stores

func (s *DeliveryService) ListStores(ctx context.Context) ([]models.Store, error) {
	return s.stores.List(ctx)
}

func (s *DeliveryService) GetStore(ctx context.Context, id string) (*models.Store, error) {
	return s.stores.GetByID(ctx, id)
}

func (s *DeliveryService) CreateStore(ctx context.Context, store *models.Store) error {
	forceSRID(store.Location)
	return s.stores.Create(ctx, store)
}

func (s *DeliveryService) UpdateStore(ctx context.Context, id string, store *models.Store) error {
	if store.StoreID != id {
		return ErrIDMismatch
	}
	existing, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return err
	}
	existing.Name = store.Name
	existing.AddressLine1 = store.AddressLine1
	existing.AddressLine2 = store.AddressLine2
	existing.City = store.City
	existing.PostalCode = store.PostalCode
	existing.ContactNumber = store.ContactNumber
	existing.DailyCapacityLiters = store.DailyCapacityLiters
	if store.Location != nil {
		existing.Location = store.Location
		existing.Location.SRID = geo.SRID4326
	}
	if err := s.stores.Save(ctx, existing); err != nil {
		return err
	}
	*store = *existing
	return nil
}

func (s *DeliveryService) DeleteStore(ctx context.Context, id string) error {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.stores.Delete(ctx, store)
}

// Vehicles

func (s *DeliveryService) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *DeliveryService) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *DeliveryService) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	forceSRID(vehicle.Location)
	return s.vehicles.Create(ctx, vehicle)
}

func (s *DeliveryService) UpdateVehicle(ctx context.Context, id string, vehicle *models.Vehicle) error {
	if vehicle.VehicleID != id {
		return ErrIDMismatch
	}
	existing, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	existing.DriverName = vehicle.DriverName
	existing.ContactNumber = vehicle.ContactNumber
	existing.CapacityLiters = vehicle.CapacityLiters
	existing.AvailabilityStartTime = vehicle.AvailabilityStartTime
	existing.AvailabilityEndTime = vehicle.AvailabilityEndTime
	if vehicle.Location != nil {
		existing.Location = vehicle.Location
		existing.Location.SRID = geo.SRID4326
	}
	if err := s.vehicles.Save(ctx, existing); err != nil {
		return err
	}
	*vehicle = *existing
	s.invalidateExists(ctx, cache.GetVehicleCacheKey(id))
	return nil
}

func (s *DeliveryService) DeleteVehicle(ctx context.Context, id string) error {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.vehicles.Delete(ctx, vehicle); err != nil {
		return err
	}
	s.invalidateExists(ctx, cache.GetVehicleCacheKey(id))
	return nil
}

// AvailableVehicles returns the vehicles whose working window covers the whole
// requested window. The filter runs over the full vehicle list in memory.
func (s *DeliveryService) AvailableVehicles(ctx context.Context, startTime, endTime string) ([]models.Vehicle, error) {
	start, err := models.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	end, err := models.ParseTimeOfDay(endTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	all, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	available := make([]models.Vehicle, 0, len(all))
	for _, v := range all {
		if v.CoversWindow(start, end) {
			available = append(available, v)
		}
	}
	return available, nil
}

// Orders

func (s *DeliveryService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func (s *DeliveryService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListOrdersByCustomer returns the orders of one customer. The customer must
// exist, otherwise repositories.ErrNotFound is returned.
func (s *DeliveryService) ListOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	exists, err := s.customerExists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return s.orders.ListByCustomer(ctx, customerID)
}

func (s *DeliveryService) CreateOrder(ctx context.Context, order *models.Order) error {
	exists, err := s.customerExists(ctx, order.CustomerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrInvalidCustomer
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return err
	}
	s.metrics.IncrementCounter("orders_created")
	s.publishOrderEvent(ctx, messaging.EventOrderCreated, order)
	return nil
}

func (s *DeliveryService) UpdateOrder(ctx context.Context, id string, order *models.Order) error {
	if order.OrderID != id {
		return ErrIDMismatch
	}
	existing, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	exists, err := s.customerExists(ctx, order.CustomerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrInvalidCustomer
	}
	existing.CustomerID = order.CustomerID
	existing.MilkType = order.MilkType
	existing.QuantityLiters = order.QuantityLiters
	existing.DeliveryDate = order.DeliveryDate
	existing.DeliveryTimeWindow = order.DeliveryTimeWindow
	existing.Status = order.Status
	if err := s.orders.Save(ctx, existing); err != nil {
		return err
	}
	*order = *existing
	s.publishOrderEvent(ctx, messaging.EventOrderUpdated, order)
	return nil
}

func (s *DeliveryService) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.orders.Delete(ctx, order)
}

// AssignVehicle sets the vehicle on an existing order and returns the updated
// order.
func (s *DeliveryService) AssignVehicle(ctx context.Context, orderID, vehicleID string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	exists, err := s.vehicleExists(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrInvalidVehicle
	}
	order.VehicleID = &vehicleID
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.metrics.IncrementCounter("vehicles_assigned")
	s.publishOrderEvent(ctx, messaging.EventOrderVehicleAssigned, order)
	return order, nil
}

func (s *DeliveryService) customerExists(ctx context.Context, id string) (bool, error) {
	return s.cachedExists(ctx, cache.GetCustomerCacheKey(id), func() (bool, error) {
		return s.customers.Exists(ctx, id)
	})
}

func (s *DeliveryService) vehicleExists(ctx context.Context, id string) (bool, error) {
	return s.cachedExists(ctx, cache.GetVehicleCacheKey(id), func() (bool, error) {
		return s.vehicles.Exists(ctx, id)
	})
}

func (s *DeliveryService) cachedExists(ctx context.Context, key string, load func() (bool, error)) (bool, error) {
	if s.cache.Enabled() {
		var exists bool
		if err := s.cache.Get(ctx, key, &exists); err == nil {
			return exists, nil
		}
	}
	exists, err := load()
	if err != nil {
		return false, err
	}
	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, exists, existsCacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to cache existence check")
		}
	}
	return exists, nil
}

func (s *DeliveryService) invalidateExists(ctx context.Context, key string) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to invalidate cache entry")
	}
}

func (s *DeliveryService) publishOrderEvent(ctx context.Context, eventType string, order *models.Order) {
	if s.bus == nil {
		return
	}
	event := messaging.OrderEvent{
		Type:       eventType,
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		VehicleID:  order.VehicleID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.bus.SendEvent(ctx, event); err != nil {
		log.Error().Err(err).Str("order_id", order.OrderID).Str("event", eventType).
			Msg("Failed to publish order event")
	}
}
