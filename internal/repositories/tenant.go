package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/amity-sujit/quadroute/internal/models"
)

// TenantRepository provides access to tenants and their end-customers.
type TenantRepository interface {
	SearchByName(ctx context.Context, name string) ([]models.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)

	ListEndCustomers(ctx context.Context) ([]models.EndCustomer, error)
	FindEndCustomerByPhone(ctx context.Context, tenantID string, phone string) (*models.EndCustomer, error)
	SearchEndCustomersByName(ctx context.Context, tenantID string, name string) ([]models.EndCustomer, error)
	GetEndCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (*models.EndCustomer, error)
	SaveEndCustomer(ctx context.Context, customer *models.EndCustomer) error
}

type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository.
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

// SearchByName returns tenants whose name contains the substring.
func (r *tenantRepository) SearchByName(ctx context.Context, name string) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+name+"%").
		Find(&tenants).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search tenants by name")
	}
	return tenants, nil
}

// GetByID finds a tenant by its guid key.
func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).Where("tenant_id = ?", id).First(&tenant).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get tenant by ID")
	}
	return &tenant, nil
}

// ListEndCustomers returns every end-customer across all tenants.
func (r *tenantRepository) ListEndCustomers(ctx context.Context) ([]models.EndCustomer, error) {
	var customers []models.EndCustomer
	if err := r.db.WithContext(ctx).Find(&customers).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list end customers")
	}
	return customers, nil
}

// FindEndCustomerByPhone finds one end-customer of a tenant by exact phone
// match.
func (r *tenantRepository) FindEndCustomerByPhone(ctx context.Context, tenantID string, phone string) (*models.EndCustomer, error) {
	var customer models.EndCustomer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND phone = ?", tenantID, phone).
		First(&customer).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to find end customer by phone")
	}
	return &customer, nil
}

// SearchEndCustomersByName returns a tenant's end-customers whose name
// contains the substring.
func (r *tenantRepository) SearchEndCustomersByName(ctx context.Context, tenantID string, name string) ([]models.EndCustomer, error) {
	var customers []models.EndCustomer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name ILIKE ?", tenantID, "%"+name+"%").
		Find(&customers).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search end customers by name")
	}
	return customers, nil
}

// GetEndCustomer finds one end-customer scoped to its tenant.
func (r *tenantRepository) GetEndCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (*models.EndCustomer, error) {
	var customer models.EndCustomer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		First(&customer).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get end customer")
	}
	return &customer, nil
}

// SaveEndCustomer persists all fields of an existing end-customer.
func (r *tenantRepository) SaveEndCustomer(ctx context.Context, customer *models.EndCustomer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}
