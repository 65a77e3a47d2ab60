package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/amity-sujit/quadroute/internal/geo"
)

// Customer is a milk delivery customer in the single-tenant schema.
type Customer struct {
	CustomerID   string     `gorm:"column:customer_id;primaryKey" json:"customer_id" binding:"required"`
	Name         string     `gorm:"column:name;not null" json:"name" binding:"required"`
	AddressLine1 string     `gorm:"column:address_line1;not null" json:"address_line1" binding:"required"`
	AddressLine2 *string    `gorm:"column:address_line2" json:"address_line2"`
	City         string     `gorm:"column:city;not null" json:"city" binding:"required"`
	PostalCode   string     `gorm:"column:postal_code;not null" json:"postal_code" binding:"required"`
	PhoneNumber  string     `gorm:"column:phone_number;not null" json:"phone_number" binding:"required"`
	Email        *string    `gorm:"column:email" json:"email"`
	Location     *geo.Point `gorm:"column:location" json:"location" binding:"required"`
}

// TableName maps Customer to the customers table.
func (Customer) TableName() string { return "customers" }

// Store is a collection point with a daily intake capacity.
type Store struct {
	StoreID             string     `gorm:"column:store_id;primaryKey" json:"store_id" binding:"required"`
	Name                string     `gorm:"column:name;not null" json:"name" binding:"required"`
	AddressLine1        string     `gorm:"column:address_line1;not null" json:"address_line1" binding:"required"`
	AddressLine2        *string    `gorm:"column:address_line2" json:"address_line2"`
	City                string     `gorm:"column:city;not null" json:"city" binding:"required"`
	PostalCode          string     `gorm:"column:postal_code;not null" json:"postal_code" binding:"required"`
	ContactNumber       string     `gorm:"column:contact_number;not null" json:"contact_number" binding:"required"`
	DailyCapacityLiters int        `gorm:"column:daily_capacity_liters;not null" json:"daily_capacity_liters"`
	Location            *geo.Point `gorm:"column:location" json:"location" binding:"required"`
}

// TableName maps Store to the stores table.
func (Store) TableName() string { return "stores" }

// Vehicle is a delivery vehicle with a daily availability window. Start and
// end are not cross-validated against each other.
type Vehicle struct {
	VehicleID             string     `gorm:"column:vehicle_id;primaryKey" json:"vehicle_id" binding:"required"`
	DriverName            string     `gorm:"column:driver_name;not null" json:"driver_name" binding:"required"`
	ContactNumber         string     `gorm:"column:contact_number;not null" json:"contact_number" binding:"required"`
	CapacityLiters        int        `gorm:"column:capacity_liters;not null" json:"capacity_liters"`
	AvailabilityStartTime TimeOfDay  `gorm:"column:availability_start_time;not null" json:"availability_start_time"`
	AvailabilityEndTime   TimeOfDay  `gorm:"column:availability_end_time;not null" json:"availability_end_time"`
	Location              *geo.Point `gorm:"column:location" json:"location" binding:"required"`
}

// TableName maps Vehicle to the vehicles table.
func (Vehicle) TableName() string { return "vehicles" }

// CoversWindow reports whether the vehicle's availability window fully
// contains the [start, end] range.
func (v *Vehicle) CoversWindow(start, end TimeOfDay) bool {
	return !v.AvailabilityStartTime.After(start) && !v.AvailabilityEndTime.Before(end)
}

// Order is a milk delivery order owned by a customer, optionally assigned
// to a vehicle.
type Order struct {
	OrderID            string    `gorm:"column:order_id;primaryKey" json:"order_id" binding:"required"`
	CustomerID         string    `gorm:"column:customer_id;not null" json:"customer_id" binding:"required"`
	VehicleID          *string   `gorm:"column:vehicle_id" json:"vehicle_id"`
	MilkType           string    `gorm:"column:milk_type;not null" json:"milk_type" binding:"required"`
	QuantityLiters     int       `gorm:"column:quantity_liters;not null" json:"quantity_liters"`
	DeliveryDate       time.Time `gorm:"column:delivery_date;not null" json:"delivery_date"`
	DeliveryTimeWindow string    `gorm:"column:delivery_time_window;not null" json:"delivery_time_window" binding:"required"`
	Status             string    `gorm:"column:status;not null" json:"status" binding:"required"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Customer           *Customer `gorm:"foreignKey:CustomerID;references:CustomerID" json:"-"`
	Vehicle            *Vehicle  `gorm:"foreignKey:VehicleID;references:VehicleID" json:"-"`
}

// TableName maps Order to the orders table.
func (Order) TableName() string { return "orders" }

// OrderType is a minimally used lookup pair for order categorization.
type OrderType struct {
	ID       int    `gorm:"column:id;primaryKey" json:"id"`
	TypeName string `gorm:"column:type_name;not null" json:"type_name"`
}

// TableName maps OrderType to the order_types table.
func (OrderType) TableName() string { return "order_types" }

// Tenant is an organizational scope partitioning end-customers.
type Tenant struct {
	TenantID     uuid.UUID     `gorm:"column:tenant_id;type:uuid;primaryKey" json:"tenant_id"`
	Name         string        `gorm:"column:name;not null" json:"name" binding:"required"`
	Vertical     string        `gorm:"column:vertical;not null" json:"vertical" binding:"required"`
	ContactEmail string        `gorm:"column:contact_email" json:"contact_email"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	EndCustomers []EndCustomer `gorm:"foreignKey:TenantID" json:"-"`
}

// TableName maps Tenant to the tenants table.
func (Tenant) TableName() string { return "tenants" }

// EndCustomer is a tenant-scoped customer record, distinct from Customer.
// Phone numbers are not unique here, unlike the dairy schema's customers.
type EndCustomer struct {
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;primaryKey" json:"customer_id"`
	TenantID   uuid.UUID `gorm:"column:tenant_id;type:uuid;not null" json:"tenant_id"`
	Name       string    `gorm:"column:name;not null" json:"name" binding:"required"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	Address    string    `gorm:"column:address" json:"address"`
	Latitude   *float32  `gorm:"column:latitude" json:"latitude"`
	Longitude  *float32  `gorm:"column:longitude" json:"longitude"`
	IsVerified bool      `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Tenant     *Tenant   `gorm:"foreignKey:TenantID;references:TenantID" json:"-"`
}

// TableName maps EndCustomer to the end_customers table.
func (EndCustomer) TableName() string { return "end_customers" }

// SetupModels configures GORM models and runs migrations for the quadroute
// database.
func SetupModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Customer{},
		&Store{},
		&Vehicle{},
		&Order{},
		&OrderType{},
		&Tenant{},
		&EndCustomer{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to run auto migrations")
	}
	return nil
}
