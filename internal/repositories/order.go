package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/amity-sujit/quadroute/internal/models"
)

// OrderRepository provides access to order rows.
type OrderRepository interface {
	List(ctx context.Context) ([]models.Order, error)
	ListUpdatedSince(ctx context.Context, since time.Time) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Save(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, order *models.Order) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// List returns all orders.
func (r *orderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}
	return orders, nil
}

// ListUpdatedSince returns the orders modified at or after the given instant.
func (r *orderRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Where("updated_at >= ?", since).Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recently updated orders")
	}
	return orders, nil
}

// GetByID finds an order by its identity key.
func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("order_id = ?", id).First(&order).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get order by ID")
	}
	return &order, nil
}

// ListByCustomer returns the orders owned by one customer, in storage order.
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by customer")
	}
	return orders, nil
}

// Create inserts a new order.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Save persists all fields of an existing order.
func (r *orderRepository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Delete removes an order row.
func (r *orderRepository) Delete(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Delete(order).Error
}
