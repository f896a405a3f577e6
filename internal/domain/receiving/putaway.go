package receiving

import (
	"fmt"

	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SlotCoordinate is a uniquely addressed physical storage coordinate.
// Matching is case-sensitive and exact on the full 4-tuple.
type SlotCoordinate struct {
	Aisle    string `gorm:"type:varchar(20);not null" json:"aisle"`
	Bay      string `gorm:"type:varchar(20);not null" json:"bay"`
	Level    string `gorm:"type:varchar(20);not null" json:"level"`
	Position string `gorm:"type:varchar(20);not null" json:"position"`
}

// IsComplete returns true when all four parts of the coordinate are set
func (c SlotCoordinate) IsComplete() bool {
	return c.Aisle != "" && c.Bay != "" && c.Level != "" && c.Position != ""
}

// String returns the display form "aisle-bay-level-position"
func (c SlotCoordinate) String() string {
	return fmt.Sprintf("%s-%s-%s-%s", c.Aisle, c.Bay, c.Level, c.Position)
}

// SlotAssignment binds one unit key to one proposed coordinate
type SlotAssignment struct {
	Key        OrdinalKey
	Coordinate SlotCoordinate
}

// DuplicateSlotError reports a coordinate proposed for more than one unit
// in the same putaway batch. It carries the colliding coordinate and both
// unit keys for diagnostics.
type DuplicateSlotError struct {
	Coordinate SlotCoordinate
	First      OrdinalKey
	Second     OrdinalKey
}

// Error implements the error interface
func (e *DuplicateSlotError) Error() string {
	return fmt.Sprintf("slot %s assigned to both %s and %s", e.Coordinate, e.First, e.Second)
}

// Code returns the stable error code for the collision
func (e *DuplicateSlotError) Code() string {
	return "DUPLICATE_SLOT_ASSIGNMENT"
}

// ValidateSlotAssignments verifies the proposed coordinates are pairwise
// distinct across the entire batch. The check is order-independent and runs
// over the whole set before any persistence call is issued, so a rejected
// batch writes nothing.
func ValidateSlotAssignments(assignments []SlotAssignment) error {
	seen := make(map[SlotCoordinate]OrdinalKey, len(assignments))
	for _, a := range assignments {
		if prev, ok := seen[a.Coordinate]; ok {
			return &DuplicateSlotError{Coordinate: a.Coordinate, First: prev, Second: a.Key}
		}
		seen[a.Coordinate] = a.Key
	}
	return nil
}

// PutawaySlot is one storage-coordinate assignment for one physical unit.
// A truck item with quantity N ends up with exactly N rows, one per ordinal.
type PutawaySlot struct {
	shared.BaseEntity
	TruckItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Ordinal        int       `gorm:"not null"`
	SlotCoordinate `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (PutawaySlot) TableName() string {
	return "putaway_assignments"
}

// NewPutawaySlot creates a slot row for one unit
func NewPutawaySlot(key OrdinalKey, coordinate SlotCoordinate) (*PutawaySlot, error) {
	if key.TruckItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Truck item ID cannot be empty")
	}
	if key.Ordinal < 0 {
		return nil, shared.NewDomainError("INVALID_ORDINAL_KEY", fmt.Sprintf("Ordinal %d is negative", key.Ordinal))
	}
	if !coordinate.IsComplete() {
		return nil, NewIncompleteSlotAssignment(key)
	}

	return &PutawaySlot{
		BaseEntity:     shared.NewBaseEntity(),
		TruckItemID:    key.TruckItemID,
		Ordinal:        key.Ordinal,
		SlotCoordinate: coordinate,
	}, nil
}

// NewIncompleteSlotAssignment reports a unit key that lacks a full 4-tuple
func NewIncompleteSlotAssignment(key OrdinalKey) error {
	return shared.NewDomainError("INCOMPLETE_SLOT_ASSIGNMENT", fmt.Sprintf("Unit %s has no complete slot coordinate", key))
}
