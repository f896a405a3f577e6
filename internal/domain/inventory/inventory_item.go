package inventory

import (
	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InventoryItem is the terminal, durable output of the receiving workflow.
// One row exists per truck item, created exactly once when the quality-check
// stage completes: inventory existence is gated on the verdict, not on
// physical shelving. The unique index on TruckItemID is what enforces
// exactly-once across resumed commits. Later mutation happens through
// separate inventory-management services; this package only creates.
type InventoryItem struct {
	shared.TenantAggregateRoot
	TruckItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string    `gorm:"type:varchar(500);not null"`
	Quantity    int       `gorm:"not null"`
	Condition   string    `gorm:"type:varchar(50);not null"`
	Status      string    `gorm:"type:varchar(10);not null"`
	ArrivalID   uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "warehouse_items"
}

// NewInventoryItem creates the terminal inventory row for one received line
func NewInventoryItem(tenantID, truckItemID uuid.UUID, name string, quantity int, condition, status string, arrivalID uuid.UUID) (*InventoryItem, error) {
	if truckItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Originating truck item ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Inventory item name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}
	if status == "" {
		return nil, shared.NewDomainError("INVALID_STATUS", "Inventory status cannot be empty")
	}
	if arrivalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ARRIVAL", "Originating arrival ID cannot be empty")
	}

	return &InventoryItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TruckItemID:         truckItemID,
		Name:                name,
		Quantity:            quantity,
		Condition:           condition,
		Status:              status,
		ArrivalID:           arrivalID,
	}, nil
}
