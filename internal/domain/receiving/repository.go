package receiving

import (
	"context"

	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ArrivalRepository defines the interface for truck arrival persistence
type ArrivalRepository interface {
	// FindByID finds a truck arrival by ID
	FindByID(ctx context.Context, id uuid.UUID) (*TruckArrival, error)

	// FindByWarehouse finds arrivals for a warehouse, newest first
	FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]TruckArrival, error)

	// Save persists a new truck arrival
	Save(ctx context.Context, arrival *TruckArrival) error
}

// TruckItemRepository defines the interface for truck item persistence
type TruckItemRepository interface {
	// FindByID finds a truck item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*TruckItem, error)

	// FindByArrival finds all items logged against an arrival, oldest first
	FindByArrival(ctx context.Context, arrivalID uuid.UUID) ([]TruckItem, error)

	// Save persists a new truck item
	Save(ctx context.Context, item *TruckItem) error

	// Delete removes a truck item. Only legal while the owning workflow is
	// still in the Unloading stage; the workflow enforces that.
	Delete(ctx context.Context, id uuid.UUID) error
}

// QualityCheckRepository defines the interface for quality verdict persistence
type QualityCheckRepository interface {
	// FindByTruckItem finds the verdict for a truck item
	FindByTruckItem(ctx context.Context, truckItemID uuid.UUID) (*QualityCheckRecord, error)

	// Save persists a new quality check record
	Save(ctx context.Context, record *QualityCheckRecord) error
}

// PutawaySlotRepository defines the interface for putaway slot persistence
type PutawaySlotRepository interface {
	// FindByTruckItem finds the slot rows committed for a truck item
	FindByTruckItem(ctx context.Context, truckItemID uuid.UUID) ([]PutawaySlot, error)

	// Save persists a single slot row
	Save(ctx context.Context, slot *PutawaySlot) error

	// SaveBatch persists the whole putaway batch in one transaction.
	// Either every row lands or none do.
	SaveBatch(ctx context.Context, slots []PutawaySlot) error

	// OccupiedCoordinates returns the coordinates already committed for a
	// warehouse by earlier receiving operations. Used for the optional
	// warehouse-wide double-booking check before a putaway commit.
	OccupiedCoordinates(ctx context.Context, warehouseID uuid.UUID) ([]SlotCoordinate, error)
}
