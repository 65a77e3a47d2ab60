package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amity-sujit/quadroute/internal/models"
	"github.com/amity-sujit/quadroute/internal/repositories"
)

type MockDairyRepository struct {
	mock.Mock
}

func (m *MockDairyRepository) CreateCustomer(ctx context.Context, customer *models.DairyCustomer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockDairyRepository) GetCustomer(ctx context.Context, id int) (*models.DairyCustomer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DairyCustomer), args.Error(1)
}

func (m *MockDairyRepository) CreateAddress(ctx context.Context, address *models.DairyAddress) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockDairyRepository) LinkCustomerAddress(ctx context.Context, link *models.DairyCustomerAddress) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockDairyRepository) GetCustomerAddress(ctx context.Context, customerID, addressID int) (*models.DairyCustomerAddress, error) {
	args := m.Called(ctx, customerID, addressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DairyCustomerAddress), args.Error(1)
}

func (m *MockDairyRepository) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.TimeSlot), args.Error(1)
}

func TestAddCustomerAddressInsertsThenLinks(t *testing.T) {
	mockRepo := new(MockDairyRepository)
	customer := &models.DairyCustomer{CustomerID: 7, CustomerName: "Meera"}
	mockRepo.On("GetCustomer", mock.Anything, 7).Return(customer, nil)
	mockRepo.On("CreateAddress", mock.Anything, mock.AnythingOfType("*models.DairyAddress")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.DairyAddress).AddressID = 42
		}).Return(nil)
	mockRepo.On("LinkCustomerAddress", mock.Anything, mock.MatchedBy(func(link *models.DairyCustomerAddress) bool {
		return link.CustomerID == 7 && link.AddressID == 42 && link.TimeSlotID == 3 && link.IsDefault
	})).Return(nil)

	service := NewDairyService(mockRepo)

	address := &models.DairyAddress{FullName: "Meera", Pincode: "560001"}
	created, err := service.AddCustomerAddress(context.Background(), 7, address, 3, true)
	require.NoError(t, err)
	require.Equal(t, 42, created.AddressID)
	mockRepo.AssertExpectations(t)
}

func TestAddCustomerAddressUnknownCustomer(t *testing.T) {
	mockRepo := new(MockDairyRepository)
	mockRepo.On("GetCustomer", mock.Anything, 404).Return(nil, repositories.ErrNotFound)

	service := NewDairyService(mockRepo)

	_, err := service.AddCustomerAddress(context.Background(), 404, &models.DairyAddress{}, 1, false)
	require.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertNotCalled(t, "CreateAddress", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "LinkCustomerAddress", mock.Anything, mock.Anything)
}

func TestAddCustomerAddressLinkFailureLeavesAddressRow(t *testing.T) {
	mockRepo := new(MockDairyRepository)
	customer := &models.DairyCustomer{CustomerID: 7}
	mockRepo.On("GetCustomer", mock.Anything, 7).Return(customer, nil)
	mockRepo.On("CreateAddress", mock.Anything, mock.AnythingOfType("*models.DairyAddress")).Return(nil)
	mockRepo.On("LinkCustomerAddress", mock.Anything, mock.AnythingOfType("*models.DairyCustomerAddress")).
		Return(repositories.ErrCreateFailed)

	service := NewDairyService(mockRepo)

	// The address insert is not rolled back when linking fails.
	_, err := service.AddCustomerAddress(context.Background(), 7, &models.DairyAddress{}, 1, false)
	require.ErrorIs(t, err, repositories.ErrCreateFailed)
	mockRepo.AssertCalled(t, "CreateAddress", mock.Anything, mock.AnythingOfType("*models.DairyAddress"))
}
