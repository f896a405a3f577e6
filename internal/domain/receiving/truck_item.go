package receiving

import (
	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Default condition recorded when an unloading line does not state one
const ConditionGood = "Good"

// ItemDraft is the validated-at-the-boundary input for one unloading line,
// whether entered manually or produced by the bulk ingestion normalizer.
type ItemDraft struct {
	Description string
	Quantity    int
	Condition   string
}

// Validate checks the draft fields
func (d ItemDraft) Validate() error {
	if d.Description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if d.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// ErrInvalidQuantity is returned when a quantity is not a positive integer
var ErrInvalidQuantity = shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")

// TruckItem represents one logged unloading line.
// A quantity of N means N physical units, each of which is later
// expanded to its own ordinal key and storage slot.
type TruckItem struct {
	shared.BaseEntity
	ArrivalID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:varchar(500);not null"`
	Quantity    int       `gorm:"not null"`
	Condition   string    `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (TruckItem) TableName() string {
	return "truck_items"
}

// NewTruckItem creates a new truck item bound to an arrival
func NewTruckItem(arrivalID uuid.UUID, draft ItemDraft) (*TruckItem, error) {
	if arrivalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ARRIVAL", "Arrival ID cannot be empty")
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	condition := draft.Condition
	if condition == "" {
		condition = ConditionGood
	}

	return &TruckItem{
		BaseEntity:  shared.NewBaseEntity(),
		ArrivalID:   arrivalID,
		Description: draft.Description,
		Quantity:    draft.Quantity,
		Condition:   condition,
	}, nil
}
