package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/amity-sujit/quadroute/internal/models"
)

// VehicleRepository provides access to vehicle rows.
type VehicleRepository interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
	Save(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, vehicle *models.Vehicle) error
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

// List returns all vehicles.
func (r *vehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := r.db.WithContext(ctx).Find(&vehicles).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list vehicles")
	}
	return vehicles, nil
}

// GetByID finds a vehicle by its identity key.
func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Where("vehicle_id = ?", id).First(&vehicle).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get vehicle by ID")
	}
	return &vehicle, nil
}

// Exists reports whether a vehicle with the given identity key exists.
func (r *vehicleRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("vehicle_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check vehicle existence")
	}
	return count > 0, nil
}

// Create inserts a new vehicle.
func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// Save persists all fields of an existing vehicle.
func (r *vehicleRepository) Save(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

// Delete removes a vehicle row.
func (r *vehicleRepository) Delete(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Delete(vehicle).Error
}
