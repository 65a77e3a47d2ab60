package models

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// The dairy distribution domain lives in its own schema with integer keys.
// Table mappings all carry the dairy_distribution namespace prefix.

// DairyCustomer is a dairy distribution customer. Phone numbers are unique,
// unlike the tenant extension's end-customers.
type DairyCustomer struct {
	CustomerID   int       `gorm:"column:customer_id;primaryKey;autoIncrement" json:"customer_id"`
	CustomerName string    `gorm:"column:customer_name;size:100;not null" json:"customer_name" binding:"required"`
	BillingName  string    `gorm:"column:billing_name;size:100;not null" json:"billing_name" binding:"required"`
	PhoneNumber  string    `gorm:"column:phone_number;size:15;not null;uniqueIndex" json:"phone_number" binding:"required"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	CustomerAddresses []DairyCustomerAddress `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Orders            []DairyOrder           `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName maps DairyCustomer into the dairy schema.
func (DairyCustomer) TableName() string { return "dairy_distribution.customer" }

// DairyAddress is a delivery or dairy premises address.
type DairyAddress struct {
	AddressID            int       `gorm:"column:address_id;primaryKey;autoIncrement" json:"address_id"`
	FullName             string    `gorm:"column:full_name;size:100;not null" json:"full_name" binding:"required"`
	MobileNumber         string    `gorm:"column:mobile_number;size:15;not null" json:"mobile_number" binding:"required"`
	Pincode              string    `gorm:"column:pincode;size:6;not null" json:"pincode" binding:"required,len=6,numeric"`
	FlatHouse            string    `gorm:"column:flat_house;size:100;not null" json:"flat_house" binding:"required"`
	AreaStreet           string    `gorm:"column:area_street;size:100;not null" json:"area_street" binding:"required"`
	Landmark             *string   `gorm:"column:landmark;size:100" json:"landmark"`
	TownCity             string    `gorm:"column:town_city;size:50;not null" json:"town_city" binding:"required"`
	State                string    `gorm:"column:state;size:50;not null" json:"state" binding:"required"`
	Country              string    `gorm:"column:country;size:50;not null" json:"country" binding:"required"`
	Latitude             *float64  `gorm:"column:latitude;type:decimal(9,6)" json:"latitude"`
	Longitude            *float64  `gorm:"column:longitude;type:decimal(9,6)" json:"longitude"`
	DeliveryInstructions *string   `gorm:"column:delivery_instructions" json:"delivery_instructions"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	CustomerAddresses []DairyCustomerAddress `gorm:"foreignKey:AddressID;constraint:OnDelete:RESTRICT" json:"-"`
	Dairies           []Dairy                `gorm:"foreignKey:AddressID;constraint:OnDelete:RESTRICT" json:"-"`
	Orders            []DairyOrder           `gorm:"foreignKey:DeliveryAddressID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName maps DairyAddress into the dairy schema.
func (DairyAddress) TableName() string { return "dairy_distribution.address" }

// DairyCustomerAddress links a customer to an address and a delivery slot.
type DairyCustomerAddress struct {
	CustomerAddressID int       `gorm:"column:customer_address_id;primaryKey;autoIncrement" json:"customer_address_id"`
	CustomerID        int       `gorm:"column:customer_id;not null;uniqueIndex:idx_customer_address" json:"customer_id"`
	AddressID         int       `gorm:"column:address_id;not null;uniqueIndex:idx_customer_address" json:"address_id"`
	TimeSlotID        int       `gorm:"column:time_slot_id;not null" json:"time_slot_id"`
	IsDefault         bool      `gorm:"column:is_default;not null;default:false" json:"is_default"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Address  *DairyAddress `gorm:"foreignKey:AddressID;constraint:OnDelete:RESTRICT" json:"address,omitempty"`
	TimeSlot *TimeSlot     `gorm:"foreignKey:TimeSlotID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName maps DairyCustomerAddress into the dairy schema.
func (DairyCustomerAddress) TableName() string { return "dairy_distribution.customeraddress" }

// TimeSlot is a delivery window customers pick for their addresses.
type TimeSlot struct {
	TimeSlotID  int       `gorm:"column:time_slot_id;primaryKey;autoIncrement" json:"time_slot_id"`
	SlotStart   TimeOfDay `gorm:"column:slot_start;not null" json:"slot_start"`
	SlotEnd     TimeOfDay `gorm:"column:slot_end;not null" json:"slot_end"`
	Description *string   `gorm:"column:description;size:50" json:"description"`
}

// TableName maps TimeSlot into the dairy schema.
func (TimeSlot) TableName() string { return "dairy_distribution.timeslot" }

// Dairy is a milk producer with one premises address and an operational
// window.
type Dairy struct {
	DairyID              int       `gorm:"column:dairy_id;primaryKey;autoIncrement" json:"dairy_id"`
	Name                 string    `gorm:"column:name;size:100;not null" json:"name" binding:"required"`
	AddressID            int       `gorm:"column:address_id;not null" json:"address_id"`
	OwnerName            string    `gorm:"column:owner_name;size:100;not null" json:"owner_name" binding:"required"`
	ManagerName          *string   `gorm:"column:manager_name;size:100" json:"manager_name"`
	ManagerPhone         *string   `gorm:"column:manager_phone;size:15" json:"manager_phone"`
	ManagerEmail         *string   `gorm:"column:manager_email;size:100" json:"manager_email"`
	RegistrationNumber   string    `gorm:"column:registration_number;size:50;not null;uniqueIndex" json:"registration_number" binding:"required"`
	LicenseNumber        string    `gorm:"column:license_number;size:50;not null;uniqueIndex" json:"license_number" binding:"required"`
	OperationalStartTime TimeOfDay `gorm:"column:operational_start_time;not null" json:"operational_start_time"`
	OperationalEndTime   TimeOfDay `gorm:"column:operational_end_time;not null" json:"operational_end_time"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Address   *DairyAddress       `gorm:"foreignKey:AddressID;constraint:OnDelete:RESTRICT" json:"-"`
	Offerings []DairyMilkOffering `gorm:"foreignKey:DairyID;constraint:OnDelete:CASCADE" json:"-"`
	Orders    []DairyOrder        `gorm:"foreignKey:DairyID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName maps Dairy into the dairy schema.
func (Dairy) TableName() string { return "dairy_distribution.dairy" }

// MilkType is a lookup of milk varieties.
type MilkType struct {
	MilkTypeID  int     `gorm:"column:milk_type_id;primaryKey;autoIncrement" json:"milk_type_id"`
	TypeName    string  `gorm:"column:type_name;size:50;not null;uniqueIndex" json:"type_name" binding:"required"`
	Description *string `gorm:"column:description" json:"description"`
}

// TableName maps MilkType into the dairy schema.
func (MilkType) TableName() string { return "dairy_distribution.milktype" }

// DairyMilkOffering is a dairy's current price and capacity for one milk
// type. One row per dairy/milk-type pair.
type DairyMilkOffering struct {
	OfferingID     int       `gorm:"column:offering_id;primaryKey;autoIncrement" json:"offering_id"`
	DairyID        int       `gorm:"column:dairy_id;not null;uniqueIndex:idx_dairy_milk_type" json:"dairy_id"`
	MilkTypeID     int       `gorm:"column:milk_type_id;not null;uniqueIndex:idx_dairy_milk_type" json:"milk_type_id"`
	PricePerLiter  float64   `gorm:"column:price_per_liter;type:decimal(10,2);not null" json:"price_per_liter"`
	CapacityLiters int       `gorm:"column:capacity_liters;not null" json:"capacity_liters"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	MilkType  *MilkType                  `gorm:"foreignKey:MilkTypeID;constraint:OnDelete:RESTRICT" json:"-"`
	Histories []DairyMilkOfferingHistory `gorm:"foreignKey:OfferingID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName maps DairyMilkOffering into the dairy schema.
func (DairyMilkOffering) TableName() string { return "dairy_distribution.dairymilkoffering" }

// DairyMilkOfferingHistory is an append-only record of an offering's price
// and capacity over a validity interval.
type DairyMilkOfferingHistory struct {
	HistoryID      int        `gorm:"column:history_id;primaryKey;autoIncrement" json:"history_id"`
	OfferingID     int        `gorm:"column:offering_id;not null" json:"offering_id"`
	PricePerLiter  float64    `gorm:"column:price_per_liter;type:decimal(10,2);not null" json:"price_per_liter"`
	CapacityLiters int        `gorm:"column:capacity_liters;not null" json:"capacity_liters"`
	ValidFrom      time.Time  `gorm:"column:valid_from;not null" json:"valid_from"`
	ValidTo        *time.Time `gorm:"column:valid_to" json:"valid_to"`
}

// TableName maps DairyMilkOfferingHistory into the dairy schema.
func (DairyMilkOfferingHistory) TableName() string {
	return "dairy_distribution.dairymilkofferinghistory"
}

// DeliveryBoy is a delivery agent.
type DeliveryBoy struct {
	DeliveryBoyID     int        `gorm:"column:delivery_boy_id;primaryKey;autoIncrement" json:"delivery_boy_id"`
	Name              string     `gorm:"column:name;size:100;not null" json:"name" binding:"required"`
	PhoneNumber       string     `gorm:"column:phone_number;size:15;not null;uniqueIndex" json:"phone_number" binding:"required"`
	UidaiNumber       string     `gorm:"column:uidai_number;size:12;not null;uniqueIndex" json:"uidai_number" binding:"required"`
	BankAccountNumber *string    `gorm:"column:bank_account_number;size:20" json:"bank_account_number"`
	Status            string     `gorm:"column:status;size:20;not null" json:"status"`
	OnboardingDate    *time.Time `gorm:"column:onboarding_date" json:"onboarding_date"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Assignments []DeliveryAssignment `gorm:"foreignKey:DeliveryBoyID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName maps DeliveryBoy into the dairy schema.
func (DeliveryBoy) TableName() string { return "dairy_distribution.deliveryboy" }

// DeliveryWage is a wage tier keyed by distance bracket with a temporal
// validity range.
type DeliveryWage struct {
	WageID        int        `gorm:"column:wage_id;primaryKey;autoIncrement" json:"wage_id"`
	MinDistanceKm float64    `gorm:"column:min_distance_km;type:decimal(6,2);not null" json:"min_distance_km"`
	MaxDistanceKm float64    `gorm:"column:max_distance_km;type:decimal(6,2);not null" json:"max_distance_km"`
	WageAmount    float64    `gorm:"column:wage_amount;type:decimal(10,2);not null" json:"wage_amount"`
	ValidFrom     time.Time  `gorm:"column:valid_from;not null" json:"valid_from"`
	ValidTo       *time.Time `gorm:"column:valid_to" json:"valid_to"`

	Assignments []DeliveryAssignment `gorm:"foreignKey:WageID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName maps DeliveryWage into the dairy schema.
func (DeliveryWage) TableName() string { return "dairy_distribution.deliverywage" }

// DeliveryRoute is a path between two coordinate pairs. The endpoint
// quadruple is unique.
type DeliveryRoute struct {
	RouteID        int       `gorm:"column:route_id;primaryKey;autoIncrement" json:"route_id"`
	StartLatitude  float64   `gorm:"column:start_latitude;type:decimal(9,6);not null;uniqueIndex:idx_route_endpoints" json:"start_latitude"`
	StartLongitude float64   `gorm:"column:start_longitude;type:decimal(9,6);not null;uniqueIndex:idx_route_endpoints" json:"start_longitude"`
	EndLatitude    float64   `gorm:"column:end_latitude;type:decimal(9,6);not null;uniqueIndex:idx_route_endpoints" json:"end_latitude"`
	EndLongitude   float64   `gorm:"column:end_longitude;type:decimal(9,6);not null;uniqueIndex:idx_route_endpoints" json:"end_longitude"`
	DistanceKm     float64   `gorm:"column:distance_km;type:decimal(6,2);not null" json:"distance_km"`
	RouteData      []byte    `gorm:"column:route_data;type:jsonb" json:"route_data"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Assignments []DeliveryAssignment `gorm:"foreignKey:RouteID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName maps DeliveryRoute into the dairy schema.
func (DeliveryRoute) TableName() string { return "dairy_distribution.route" }

// DairyOrder is a milk order in the dairy distribution schema.
type DairyOrder struct {
	OrderID           int       `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	CustomerID        int       `gorm:"column:customer_id;not null" json:"customer_id"`
	DairyID           int       `gorm:"column:dairy_id;not null" json:"dairy_id"`
	MilkTypeID        int       `gorm:"column:milk_type_id;not null" json:"milk_type_id"`
	VolumeLiters      float64   `gorm:"column:volume_liters;type:decimal(6,2);not null" json:"volume_liters"`
	DeliveryAddressID int       `gorm:"column:delivery_address_id;not null" json:"delivery_address_id"`
	TimeSlotID        int       `gorm:"column:time_slot_id;not null" json:"time_slot_id"`
	DeliveryDate      time.Time `gorm:"column:delivery_date;not null" json:"delivery_date"`
	StatusID          int       `gorm:"column:status_id;not null" json:"status_id"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CreatedBy         *int      `gorm:"column:created_by" json:"created_by"`

	TimeSlot          *TimeSlot            `gorm:"foreignKey:TimeSlotID;constraint:OnDelete:RESTRICT" json:"-"`
	Status            *OrderStatus         `gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedByCustomer *DairyCustomer       `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"-"`
	Schedules         []OrderSchedule      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	Assignments       []DeliveryAssignment `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	Payments          []Payment            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName maps DairyOrder into the dairy schema.
func (DairyOrder) TableName() string { return "dairy_distribution.order" }

// OrderSchedule is a recurrence attached to an order.
type OrderSchedule struct {
	ScheduleID   int        `gorm:"column:schedule_id;primaryKey;autoIncrement" json:"schedule_id"`
	OrderID      int        `gorm:"column:order_id;not null" json:"order_id"`
	Frequency    string     `gorm:"column:frequency;size:20;not null" json:"frequency"`
	BillingCycle string     `gorm:"column:billing_cycle;size:20;not null" json:"billing_cycle"`
	StartDate    time.Time  `gorm:"column:start_date;not null" json:"start_date"`
	EndDate      *time.Time `gorm:"column:end_date" json:"end_date"`
}

// TableName maps OrderSchedule into the dairy schema.
func (OrderSchedule) TableName() string { return "dairy_distribution.orderschedule" }

// DeliveryAssignment binds one order to one delivery agent, route and
// optionally a wage tier. Unique per order.
type DeliveryAssignment struct {
	AssignmentID  int        `gorm:"column:assignment_id;primaryKey;autoIncrement" json:"assignment_id"`
	OrderID       int        `gorm:"column:order_id;not null;uniqueIndex" json:"order_id"`
	DeliveryBoyID int        `gorm:"column:delivery_boy_id;not null" json:"delivery_boy_id"`
	RouteID       int        `gorm:"column:route_id;not null" json:"route_id"`
	WageID        *int       `gorm:"column:wage_id" json:"wage_id"`
	AssignedAt    time.Time  `gorm:"column:assigned_at;autoCreateTime" json:"assigned_at"`
	DeliveryTime  *time.Time `gorm:"column:delivery_time" json:"delivery_time"`
}

// TableName maps DeliveryAssignment into the dairy schema.
func (DeliveryAssignment) TableName() string { return "dairy_distribution.deliveryassignment" }

// Payment is one payment against an order, with a unique reference number.
type Payment struct {
	PaymentID              int       `gorm:"column:payment_id;primaryKey;autoIncrement" json:"payment_id"`
	OrderID                int       `gorm:"column:order_id;not null" json:"order_id"`
	Amount                 float64   `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	PaymentStatusID        int       `gorm:"column:payment_status_id;not null" json:"payment_status_id"`
	PaymentModeID          int       `gorm:"column:payment_mode_id;not null" json:"payment_mode_id"`
	PaymentReferenceNumber string    `gorm:"column:payment_reference_number;size:50;not null;uniqueIndex" json:"payment_reference_number"`
	PaymentDate            time.Time `gorm:"column:payment_date;not null" json:"payment_date"`

	PaymentStatus *PaymentStatus `gorm:"foreignKey:PaymentStatusID;constraint:OnDelete:RESTRICT" json:"-"`
	PaymentMode   *PaymentMode   `gorm:"foreignKey:PaymentModeID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName maps Payment into the dairy schema.
func (Payment) TableName() string { return "dairy_distribution.payment" }

// OrderStatus is a lookup of order lifecycle states.
type OrderStatus struct {
	StatusID    int     `gorm:"column:status_id;primaryKey;autoIncrement" json:"status_id"`
	StatusName  string  `gorm:"column:status_name;size:30;not null;uniqueIndex" json:"status_name"`
	Description *string `gorm:"column:description" json:"description"`
}

// TableName maps OrderStatus into the dairy schema.
func (OrderStatus) TableName() string { return "dairy_distribution.orderstatus" }

// PaymentStatus is a lookup of payment states.
type PaymentStatus struct {
	PaymentStatusID int     `gorm:"column:payment_status_id;primaryKey;autoIncrement" json:"payment_status_id"`
	StatusName      string  `gorm:"column:status_name;size:30;not null;uniqueIndex" json:"status_name"`
	Description     *string `gorm:"column:description" json:"description"`
}

// TableName maps PaymentStatus into the dairy schema.
func (PaymentStatus) TableName() string { return "dairy_distribution.paymentstatus" }

// PaymentMode is a lookup of payment channels.
type PaymentMode struct {
	PaymentModeID int     `gorm:"column:payment_mode_id;primaryKey;autoIncrement" json:"payment_mode_id"`
	ModeName      string  `gorm:"column:mode_name;size:30;not null;uniqueIndex" json:"mode_name"`
	Description   *string `gorm:"column:description" json:"description"`
}

// TableName maps PaymentMode into the dairy schema.
func (PaymentMode) TableName() string { return "dairy_distribution.paymentmode" }

// SetupDairyModels configures GORM models and runs migrations for the dairy
// distribution database. Lookup and referenced tables migrate before the
// tables that point at them.
func SetupDairyModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&DairyAddress{},
		&DairyCustomer{},
		&TimeSlot{},
		&DairyCustomerAddress{},
		&MilkType{},
		&Dairy{},
		&DairyMilkOffering{},
		&DairyMilkOfferingHistory{},
		&DeliveryBoy{},
		&DeliveryWage{},
		&DeliveryRoute{},
		&OrderStatus{},
		&DairyOrder{},
		&OrderSchedule{},
		&DeliveryAssignment{},
		&PaymentStatus{},
		&PaymentMode{},
		&Payment{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to run dairy auto migrations")
	}
	return nil
}
