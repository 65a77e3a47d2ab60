package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/amity-sujit/quadroute/internal/models"
)

// StoreRepository provides access to store rows.
type StoreRepository interface {
	List(ctx context.Context) ([]models.Store, error)
	GetByID(ctx context.Context, id string) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) error
	Save(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, store *models.Store) error
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// List returns all stores.
func (r *storeRepository) List(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).Find(&stores).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}
	return stores, nil
}

// GetByID finds a store by its identity key.
func (r *storeRepository) GetByID(ctx context.Context, id string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).Where("store_id = ?", id).First(&store).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get store by ID")
	}
	return &store, nil
}

// Create inserts a new store.
func (r *storeRepository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

// Save persists all fields of an existing store.
func (r *storeRepository) Save(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// Delete removes a store row.
func (r *storeRepository) Delete(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Delete(store).Error
}
