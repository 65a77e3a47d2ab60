package services

import (
	"context"

	"github.com/amity-sujit/quadroute/internal/models"
	"github.com/amity-sujit/quadroute/internal/repositories"
)

// DairyService carries the dairy distribution customer and address operations.
type DairyService struct {
	dairy repositories.DairyRepository
}

func NewDairyService(dairy repositories.DairyRepository) *DairyService {
	return &DairyService{dairy: dairy}
}

func (s *DairyService) CreateCustomer(ctx context.Context, customer *models.DairyCustomer) error {
	return s.dairy.CreateCustomer(ctx, customer)
}

func (s *DairyService) GetCustomer(ctx context.Context, id int) (*models.DairyCustomer, error) {
	return s.dairy.GetCustomer(ctx, id)
}

// AddCustomerAddress stores a new address and links it to the customer. The
// two writes happen in sequence, not in one transaction.
func (s *DairyService) AddCustomerAddress(ctx context.Context, customerID int, address *models.DairyAddress, timeSlotID int, isDefault bool) (*models.DairyAddress, error) {
	if _, err := s.dairy.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if err := s.dairy.CreateAddress(ctx, address); err != nil {
		return nil, err
	}
	link := &models.DairyCustomerAddress{
		CustomerID: customerID,
		AddressID:  address.AddressID,
		TimeSlotID: timeSlotID,
		IsDefault:  isDefault,
	}
	if err := s.dairy.LinkCustomerAddress(ctx, link); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *DairyService) GetCustomerAddress(ctx context.Context, customerID, addressID int) (*models.DairyCustomerAddress, error) {
	return s.dairy.GetCustomerAddress(ctx, customerID, addressID)
}

func (s *DairyService) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	return s.dairy.ListTimeSlots(ctx)
}
