package receiving

import (
	"fmt"
	"time"

	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VehicleSize represents the size class of an inbound vehicle
type VehicleSize string

const (
	VehicleSizeVan VehicleSize = "VAN"
	VehicleSize7T5 VehicleSize = "7.5T"
	VehicleSize18T VehicleSize = "18T"
	VehicleSize32T VehicleSize = "32T"
)

// IsValid checks if the value is a known vehicle size
func (v VehicleSize) IsValid() bool {
	switch v {
	case VehicleSizeVan, VehicleSize7T5, VehicleSize18T, VehicleSize32T:
		return true
	}
	return false
}

// String returns the string representation of VehicleSize
func (v VehicleSize) String() string {
	return string(v)
}

// LoadType represents how the vehicle is loaded
type LoadType string

const (
	LoadTypePalletized LoadType = "PALLETIZED"
	LoadTypeLoose      LoadType = "LOOSE"
	LoadTypeOther      LoadType = "OTHER"
)

// IsValid checks if the value is a known load type
func (l LoadType) IsValid() bool {
	switch l {
	case LoadTypePalletized, LoadTypeLoose, LoadTypeOther:
		return true
	}
	return false
}

// String returns the string representation of LoadType
func (l LoadType) String() string {
	return string(l)
}

// ArrivalDraft is the validated-at-the-boundary input for registering
// a truck arrival. All fields are required.
type ArrivalDraft struct {
	VehicleRegistration string
	CustomerName        string
	DriverName          string
	VehicleSize         VehicleSize
	LoadType            LoadType
	ArrivedAt           time.Time
	WarehouseID         uuid.UUID
}

// Validate checks that every required field is present.
// Returns an INCOMPLETE_ARRIVAL_FORM error naming the first missing field.
func (d ArrivalDraft) Validate() error {
	switch {
	case d.VehicleRegistration == "":
		return newIncompleteArrivalForm("vehicle_registration")
	case d.CustomerName == "":
		return newIncompleteArrivalForm("customer_name")
	case d.DriverName == "":
		return newIncompleteArrivalForm("driver_name")
	case d.VehicleSize == "":
		return newIncompleteArrivalForm("vehicle_size")
	case d.LoadType == "":
		return newIncompleteArrivalForm("load_type")
	case d.ArrivedAt.IsZero():
		return newIncompleteArrivalForm("arrival_time")
	case d.WarehouseID == uuid.Nil:
		return newIncompleteArrivalForm("warehouse_id")
	}
	if !d.VehicleSize.IsValid() {
		return shared.NewDomainError("INVALID_VEHICLE_SIZE", fmt.Sprintf("Unknown vehicle size %q", d.VehicleSize))
	}
	if !d.LoadType.IsValid() {
		return shared.NewDomainError("INVALID_LOAD_TYPE", fmt.Sprintf("Unknown load type %q", d.LoadType))
	}
	return nil
}

func newIncompleteArrivalForm(field string) error {
	return shared.NewDomainError("INCOMPLETE_ARRIVAL_FORM", fmt.Sprintf("Required arrival field %q is missing", field))
}

// TruckArrival represents one inbound vehicle event.
// Created once when the arrival stage is registered and immutable thereafter;
// it owns all downstream truck items by reference.
type TruckArrival struct {
	shared.TenantAggregateRoot
	VehicleRegistration string      `gorm:"type:varchar(20);not null"`
	CustomerName        string      `gorm:"type:varchar(200);not null"`
	DriverName          string      `gorm:"type:varchar(200);not null"`
	VehicleSize         VehicleSize `gorm:"type:varchar(10);not null"`
	LoadType            LoadType    `gorm:"type:varchar(20);not null"`
	ArrivedAt           time.Time   `gorm:"not null;index"`
	WarehouseID         uuid.UUID   `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (TruckArrival) TableName() string {
	return "truck_arrivals"
}

// NewTruckArrival creates a new truck arrival from a validated draft
func NewTruckArrival(tenantID uuid.UUID, draft ArrivalDraft) (*TruckArrival, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	arrival := &TruckArrival{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		VehicleRegistration: draft.VehicleRegistration,
		CustomerName:        draft.CustomerName,
		DriverName:          draft.DriverName,
		VehicleSize:         draft.VehicleSize,
		LoadType:            draft.LoadType,
		ArrivedAt:           draft.ArrivedAt,
		WarehouseID:         draft.WarehouseID,
	}

	arrival.AddDomainEvent(NewArrivalRegisteredEvent(arrival))

	return arrival, nil
}
