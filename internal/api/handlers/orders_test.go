package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amity-sujit/quadroute/internal/metrics"
	"github.com/amity-sujit/quadroute/internal/models"
	"github.com/amity-sujit/quadroute/internal/repositories"
	"github.com/amity-sujit/quadroute/internal/services"
)

const orderBody = `{
	"order_id": "ORD-1",
	"customer_id": "CUST-1",
	"milk_type": "cow",
	"quantity_liters": 5,
	"delivery_date": "2026-09-01T00:00:00Z",
	"delivery_time_window": "08:00:00-10:00:00",
	"status": "Pending"
}`

func newOrderRouter(t *testing.T, mockCustomers *MockCustomerRepository,
	mockVehicles *MockVehicleRepository, mockOrders *MockOrderRepository) *gin.Engine {
	t.Helper()
	delivery := services.NewDeliveryService(
		mockCustomers, nil, mockVehicles, mockOrders, nil, nil, metrics.NewMetrics())
	router := newTestRouter()
	NewOrderHandler(delivery, disabledTracer(t)).RegisterRoutes(router)
	return router
}

func TestHandleCreateOrder(t *testing.T) {
	mockCustomers := new(MockCustomerRepository)
	mockCustomers.On("Exists", mock.Anything, "CUST-1").Return(true, nil)
	mockOrders := new(MockOrderRepository)
	mockOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	router := newOrderRouter(t, mockCustomers, nil, mockOrders)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(orderBody))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusCreated, recorder.Code)
	require.Equal(t, "/api/orders/ORD-1", recorder.Header().Get("Location"))
	mockOrders.AssertExpectations(t)
}

func TestHandleCreateOrderUnknownCustomer(t *testing.T) {
	mockCustomers := new(MockCustomerRepository)
	mockCustomers.On("Exists", mock.Anything, "CUST-1").Return(false, nil)
	mockOrders := new(MockOrderRepository)
	router := newOrderRouter(t, mockCustomers, nil, mockOrders)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(orderBody))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Contains(t, recorder.Body.String(), "Invalid CustomerId: Customer does not exist.")
	mockOrders.AssertNotCalled(t, "Create")
}

func TestHandleUpdateOrderIDMismatch(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	router := newOrderRouter(t, nil, nil, mockOrders)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/ORD-2", strings.NewReader(orderBody))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Contains(t, recorder.Body.String(), "Order ID mismatch")
	mockOrders.AssertNotCalled(t, "GetByID")
}

func TestHandleAssignVehicle(t *testing.T) {
	order := &models.Order{OrderID: "ORD-1", CustomerID: "CUST-1"}
	mockOrders := new(MockOrderRepository)
	mockOrders.On("GetByID", mock.Anything, "ORD-1").Return(order, nil)
	mockOrders.On("Save", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
		return o.VehicleID != nil && *o.VehicleID == "VEH-9"
	})).Return(nil)
	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("Exists", mock.Anything, "VEH-9").Return(true, nil)
	router := newOrderRouter(t, nil, mockVehicles, mockOrders)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/ORD-1/assign-vehicle",
		strings.NewReader(`{"vehicle_id":"VEH-9"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"vehicle_id":"VEH-9"`)
	mockOrders.AssertExpectations(t)
	mockVehicles.AssertExpectations(t)
}

func TestHandleAssignVehicleMissingOrder(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockOrders.On("GetByID", mock.Anything, "ORD-404").Return(nil, repositories.ErrNotFound)
	router := newOrderRouter(t, nil, nil, mockOrders)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/ORD-404/assign-vehicle",
		strings.NewReader(`{"vehicle_id":"VEH-9"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Contains(t, recorder.Body.String(), "Order not found")
}

func TestHandleAssignVehicleUnknownVehicle(t *testing.T) {
	order := &models.Order{OrderID: "ORD-1", CustomerID: "CUST-1"}
	mockOrders := new(MockOrderRepository)
	mockOrders.On("GetByID", mock.Anything, "ORD-1").Return(order, nil)
	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("Exists", mock.Anything, "VEH-404").Return(false, nil)
	router := newOrderRouter(t, nil, mockVehicles, mockOrders)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/ORD-1/assign-vehicle",
		strings.NewReader(`{"vehicle_id":"VEH-404"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Contains(t, recorder.Body.String(), "Invalid VehicleId: Vehicle does not exist.")
	mockOrders.AssertNotCalled(t, "Save")
}

func TestHandleDeleteOrderMissing(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockOrders.On("GetByID", mock.Anything, "ORD-404").Return(nil, repositories.ErrNotFound)
	router := newOrderRouter(t, nil, nil, mockOrders)

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/ORD-404", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Contains(t, recorder.Body.String(), "Order not found")
}
