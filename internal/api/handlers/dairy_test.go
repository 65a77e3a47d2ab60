package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amity-sujit/quadroute/internal/models"
	"github.com/amity-sujit/quadroute/internal/repositories"
	"github.com/amity-sujit/quadroute/internal/services"
)

const addressBody = `{
	"full_name": "Asha Rao",
	"mobile_number": "9845011111",
	"pincode": "560001",
	"flat_house": "Flat 4B",
	"area_street": "MG Road",
	"town_city": "Bengaluru",
	"state": "Karnataka",
	"country": "India",
	"latitude": 12.9716,
	"longitude": 77.5946,
	"delivery_instructions": "ring twice",
	"time_slot_id": 2,
	"is_default": true
}`

func newDairyRouter(t *testing.T, mockDairy *MockDairyRepository) *gin.Engine {
	t.Helper()
	router := newTestRouter()
	NewDairyHandler(services.NewDairyService(mockDairy)).RegisterRoutes(router)
	return router
}

func TestHandleAddCustomerAddress(t *testing.T) {
	mockDairy := new(MockDairyRepository)
	mockDairy.On("GetCustomer", mock.Anything, 7).Return(&models.DairyCustomer{CustomerID: 7}, nil)
	mockDairy.On("CreateAddress", mock.Anything, mock.MatchedBy(func(a *models.DairyAddress) bool {
		return a.Latitude != nil && *a.Latitude == 12.9716 &&
			a.Longitude != nil && *a.Longitude == 77.5946 &&
			a.DeliveryInstructions != nil && *a.DeliveryInstructions == "ring twice"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.DairyAddress).AddressID = 42
	}).Return(nil)
	mockDairy.On("LinkCustomerAddress", mock.Anything, mock.MatchedBy(func(l *models.DairyCustomerAddress) bool {
		return l.CustomerID == 7 && l.AddressID == 42 && l.TimeSlotID == 2 && l.IsDefault
	})).Return(nil)
	router := newDairyRouter(t, mockDairy)

	req := httptest.NewRequest(http.MethodPost, "/api/dairycustomers/7/addresses",
		strings.NewReader(addressBody))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusCreated, recorder.Code)
	require.Equal(t, "/api/dairycustomers/7/addresses/42", recorder.Header().Get("Location"))
	require.Contains(t, recorder.Body.String(), `"delivery_instructions":"ring twice"`)
	mockDairy.AssertExpectations(t)
}

func TestHandleAddCustomerAddressUnknownCustomer(t *testing.T) {
	mockDairy := new(MockDairyRepository)
	mockDairy.On("GetCustomer", mock.Anything, 99).Return(nil, repositories.ErrNotFound)
	router := newDairyRouter(t, mockDairy)

	req := httptest.NewRequest(http.MethodPost, "/api/dairycustomers/99/addresses",
		strings.NewReader(addressBody))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Contains(t, recorder.Body.String(), "Customer not found")
	mockDairy.AssertNotCalled(t, "CreateAddress")
}
