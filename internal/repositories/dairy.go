package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/amity-sujit/quadroute/internal/models"
)

// DairyRepository provides access to the dairy distribution schema.
type DairyRepository interface {
	CreateCustomer(ctx context.Context, customer *models.DairyCustomer) error
	GetCustomer(ctx context.Context, id int) (*models.DairyCustomer, error)
	CreateAddress(ctx context.Context, address *models.DairyAddress) error
	LinkCustomerAddress(ctx context.Context, link *models.DairyCustomerAddress) error
	GetCustomerAddress(ctx context.Context, customerID, addressID int) (*models.DairyCustomerAddress, error)
	ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error)
}

type dairyRepository struct {
	db *gorm.DB
}

// NewDairyRepository creates a new dairy repository.
func NewDairyRepository(db *gorm.DB) DairyRepository {
	return &dairyRepository{db: db}
}

// CreateCustomer inserts a new dairy customer.
func (r *dairyRepository) CreateCustomer(ctx context.Context, customer *models.DairyCustomer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetCustomer finds a dairy customer by its integer key.
func (r *dairyRepository) GetCustomer(ctx context.Context, id int) (*models.DairyCustomer, error) {
	var customer models.DairyCustomer
	err := r.db.WithContext(ctx).Where("customer_id = ?", id).First(&customer).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get dairy customer")
	}
	return &customer, nil
}

// CreateAddress inserts a new address row.
func (r *dairyRepository) CreateAddress(ctx context.Context, address *models.DairyAddress) error {
	return r.db.WithContext(ctx).Create(address).Error
}

// LinkCustomerAddress inserts the customer-to-address link row. This is a
// separate write from CreateAddress, not a transaction.
func (r *dairyRepository) LinkCustomerAddress(ctx context.Context, link *models.DairyCustomerAddress) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// GetCustomerAddress finds a customer's address link with the address row
// preloaded.
func (r *dairyRepository) GetCustomerAddress(ctx context.Context, customerID, addressID int) (*models.DairyCustomerAddress, error) {
	var link models.DairyCustomerAddress
	err := r.db.WithContext(ctx).
		Preload("Address").
		Where("customer_id = ? AND address_id = ?", customerID, addressID).
		First(&link).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get customer address")
	}
	return &link, nil
}

// ListTimeSlots returns all delivery time slots.
func (r *dairyRepository) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).Find(&slots).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list time slots")
	}
	return slots, nil
}
