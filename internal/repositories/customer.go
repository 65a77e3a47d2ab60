package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/amity-sujit/quadroute/internal/models"
)

// CustomerRepository provides access to customer rows.
type CustomerRepository interface {
	List(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, customer *models.Customer) error
	Save(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, customer *models.Customer) error
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// List returns all customers, unfiltered and unpaginated.
func (r *customerRepository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Find(&customers).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}
	return customers, nil
}

// GetByID finds a customer by its identity key.
func (r *customerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("customer_id = ?", id).First(&customer).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get customer by ID")
	}
	return &customer, nil
}

// Exists reports whether a customer with the given identity key exists.
func (r *customerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("customer_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check customer existence")
	}
	return count > 0, nil
}

// Create inserts a new customer.
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// Save persists all fields of an existing customer.
func (r *customerRepository) Save(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes a customer row.
func (r *customerRepository) Delete(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Delete(customer).Error
}
