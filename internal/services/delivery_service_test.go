package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amity-sujit/quadroute/internal/geo"
	"github.com/amity-sujit/quadroute/internal/metrics"
	"github.com/amity-sujit/quadroute/internal/models"
	"github.com/amity-sujit/quadroute/internal/repositories"
)

// Mock repositories for testing
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Save(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func availabilityWindow(t *testing.T, start, end string) (models.TimeOfDay, models.TimeOfDay) {
	t.Helper()
	s, err := models.ParseTimeOfDay(start)
	require.NoError(t, err)
	e, err := models.ParseTimeOfDay(end)
	require.NoError(t, err)
	return s, e
}

func TestCreateCustomerForcesSRID(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Customer")).Return(nil)

	service := &DeliveryService{
		customers: mockRepo,
		metrics:   metrics.NewMetrics(),
	}

	customer := &models.Customer{
		CustomerID: "CUST-1",
		Name:       "Asha",
		Location:   &geo.Point{X: 77.5946, Y: 12.9716, SRID: 9999},
	}

	require.NoError(t, service.CreateCustomer(context.Background(), customer))
	require.Equal(t, geo.SRID4326, customer.Location.SRID)
	mockRepo.AssertExpectations(t)
}

func TestUpdateCustomerIDMismatchTouchesNothing(t *testing.T) {
	mockRepo := new(MockCustomerRepository)

	service := &DeliveryService{customers: mockRepo, metrics: metrics.NewMetrics()}

	customer := &models.Customer{CustomerID: "CUST-2"}
	err := service.UpdateCustomer(context.Background(), "CUST-1", customer)
	require.ErrorIs(t, err, ErrIDMismatch)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateCustomerOverwritesAllowedFields(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	existing := &models.Customer{
		CustomerID:  "CUST-1",
		Name:        "Old Name",
		PhoneNumber: "0000000000",
		Location:    geo.NewPoint(1, 1),
	}
	mockRepo.On("GetByID", mock.Anything, "CUST-1").Return(existing, nil)
	mockRepo.On("Save", mock.Anything, existing).Return(nil)

	service := &DeliveryService{customers: mockRepo, metrics: metrics.NewMetrics()}

	update := &models.Customer{
		CustomerID:  "CUST-1",
		Name:        "New Name",
		PhoneNumber: "9876543210",
		Location:    &geo.Point{X: 77.6, Y: 12.9},
	}
	require.NoError(t, service.UpdateCustomer(context.Background(), "CUST-1", update))
	require.Equal(t, "New Name", existing.Name)
	require.Equal(t, "9876543210", existing.PhoneNumber)
	require.Equal(t, geo.SRID4326, existing.Location.SRID)
	mockRepo.AssertExpectations(t)
}

func TestUpdateCustomerKeepsLocationWhenBodyOmitsIt(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	existing := &models.Customer{CustomerID: "CUST-1", Location: geo.NewPoint(77.6, 12.9)}
	mockRepo.On("GetByID", mock.Anything, "CUST-1").Return(existing, nil)
	mockRepo.On("Save", mock.Anything, existing).Return(nil)

	service := &DeliveryService{customers: mockRepo, metrics: metrics.NewMetrics()}

	update := &models.Customer{CustomerID: "CUST-1", Name: "Asha"}
	require.NoError(t, service.UpdateCustomer(context.Background(), "CUST-1", update))
	require.NotNil(t, existing.Location)
	require.Equal(t, 77.6, existing.Location.X)
	mockRepo.AssertExpectations(t)
}

func TestAvailableVehiclesFiltersByWindow(t *testing.T) {
	mockRepo := new(MockVehicleRepository)

	coveringStart, coveringEnd := availabilityWindow(t, "08:00:00", "18:00:00")
	lateStart, lateEnd := availabilityWindow(t, "10:00:00", "18:00:00")
	vehicles := []models.Vehicle{
		{VehicleID: "VEH-1", AvailabilityStartTime: coveringStart, AvailabilityEndTime: coveringEnd},
		{VehicleID: "VEH-2", AvailabilityStartTime: lateStart, AvailabilityEndTime: lateEnd},
	}
	mockRepo.On("List", mock.Anything).Return(vehicles, nil)

	service := &DeliveryService{vehicles: mockRepo, metrics: metrics.NewMetrics()}

	available, err := service.AvailableVehicles(context.Background(), "09:00:00", "17:00:00")
	require.NoError(t, err)
	require.Len(t, available, 1)
	require.Equal(t, "VEH-1", available[0].VehicleID)
}

func TestAvailableVehiclesRejectsMalformedTimes(t *testing.T) {
	mockRepo := new(MockVehicleRepository)
	service := &DeliveryService{vehicles: mockRepo, metrics: metrics.NewMetrics()}

	_, err := service.AvailableVehicles(context.Background(), "nine", "17:00:00")
	require.ErrorIs(t, err, ErrInvalidTimeFormat)
	_, err = service.AvailableVehicles(context.Background(), "09:00:00", "")
	require.ErrorIs(t, err, ErrInvalidTimeFormat)
	mockRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestCreateOrderRejectsUnknownCustomer(t *testing.T) {
	mockCustomers := new(MockCustomerRepository)
	mockOrders := new(MockOrderRepository)
	mockCustomers.On("Exists", mock.Anything, "CUST-404").Return(false, nil)

	service := &DeliveryService{
		customers: mockCustomers,
		orders:    mockOrders,
		metrics:   metrics.NewMetrics(),
	}

	order := &models.Order{OrderID: "ORD-1", CustomerID: "CUST-404"}
	err := service.CreateOrder(context.Background(), order)
	require.ErrorIs(t, err, ErrInvalidCustomer)
	mockOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder(t *testing.T) {
	mockCustomers := new(MockCustomerRepository)
	mockOrders := new(MockOrderRepository)
	mockCustomers.On("Exists", mock.Anything, "CUST-1").Return(true, nil)
	mockOrders.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)

	service := &DeliveryService{
		customers: mockCustomers,
		orders:    mockOrders,
		metrics:   metrics.NewMetrics(),
	}

	order := &models.Order{OrderID: "ORD-1", CustomerID: "CUST-1", MilkType: "cow", Status: "Pending"}
	require.NoError(t, service.CreateOrder(context.Background(), order))
	mockCustomers.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
}

func TestAssignVehicle(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockVehicles := new(MockVehicleRepository)

	order := &models.Order{OrderID: "ORD-1", CustomerID: "CUST-1"}
	mockOrders.On("GetByID", mock.Anything, "ORD-1").Return(order, nil)
	mockVehicles.On("Exists", mock.Anything, "VEH-1").Return(true, nil)
	mockOrders.On("Save", mock.Anything, order).Return(nil)

	service := &DeliveryService{
		orders:   mockOrders,
		vehicles: mockVehicles,
		metrics:  metrics.NewMetrics(),
	}

	updated, err := service.AssignVehicle(context.Background(), "ORD-1", "VEH-1")
	require.NoError(t, err)
	require.NotNil(t, updated.VehicleID)
	require.Equal(t, "VEH-1", *updated.VehicleID)
	mockOrders.AssertExpectations(t)
}

func TestAssignVehicleMissingOrder(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockVehicles := new(MockVehicleRepository)
	mockOrders.On("GetByID", mock.Anything, "ORD-404").Return(nil, repositories.ErrNotFound)

	service := &DeliveryService{orders: mockOrders, vehicles: mockVehicles, metrics: metrics.NewMetrics()}

	_, err := service.AssignVehicle(context.Background(), "ORD-404", "VEH-1")
	require.ErrorIs(t, err, repositories.ErrNotFound)
	mockVehicles.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestAssignVehicleUnknownVehicle(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockVehicles := new(MockVehicleRepository)

	order := &models.Order{OrderID: "ORD-1", CustomerID: "CUST-1"}
	mockOrders.On("GetByID", mock.Anything, "ORD-1").Return(order, nil)
	mockVehicles.On("Exists", mock.Anything, "VEH-404").Return(false, nil)

	service := &DeliveryService{orders: mockOrders, vehicles: mockVehicles, metrics: metrics.NewMetrics()}

	_, err := service.AssignVehicle(context.Background(), "ORD-1", "VEH-404")
	require.ErrorIs(t, err, ErrInvalidVehicle)
	mockOrders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestListOrdersByCustomerRequiresCustomer(t *testing.T) {
	mockCustomers := new(MockCustomerRepository)
	mockOrders := new(MockOrderRepository)
	mockCustomers.On("Exists", mock.Anything, "CUST-404").Return(false, nil)

	service := &DeliveryService{customers: mockCustomers, orders: mockOrders, metrics: metrics.NewMetrics()}

	_, err := service.ListOrdersByCustomer(context.Background(), "CUST-404")
	require.ErrorIs(t, err, repositories.ErrNotFound)
	mockOrders.AssertNotCalled(t, "ListByCustomer", mock.Anything, mock.Anything)
}

func TestDeleteOrderMissing(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockOrders.On("GetByID", mock.Anything, "ORD-404").Return(nil, repositories.ErrNotFound)

	service := &DeliveryService{orders: mockOrders, metrics: metrics.NewMetrics()}

	err := service.DeleteOrder(context.Background(), "ORD-404")
	require.ErrorIs(t, err, repositories.ErrNotFound)
	mockOrders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
