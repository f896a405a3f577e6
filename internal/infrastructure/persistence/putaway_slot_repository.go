package persistence

import (
	"context"

	"github.com/omnideploy/backend/internal/domain/receiving"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPutawaySlotRepository implements PutawaySlotRepository using GORM
type GormPutawaySlotRepository struct {
	db *gorm.DB
}

// NewGormPutawaySlotRepository creates a new GormPutawaySlotRepository
func NewGormPutawaySlotRepository(db *gorm.DB) *GormPutawaySlotRepository {
	return &GormPutawaySlotRepository{db: db}
}

// FindByTruckItem finds the slot rows committed for a truck item
func (r *GormPutawaySlotRepository) FindByTruckItem(ctx context.Context, truckItemID uuid.UUID) ([]receiving.PutawaySlot, error) {
	var slots []receiving.PutawaySlot
	if err := r.db.WithContext(ctx).
		Where("truck_item_id = ?", truckItemID).
		Order("ordinal ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// Save persists a single slot row
func (r *GormPutawaySlotRepository) Save(ctx context.Context, slot *receiving.PutawaySlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

// SaveBatch persists the whole putaway batch in one transaction
func (r *GormPutawaySlotRepository) SaveBatch(ctx context.Context, slots []receiving.PutawaySlot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(slots, 100).Error
	})
}

// OccupiedCoordinates returns the coordinates already committed for a
// warehouse by earlier receiving operations. Slot rows reach the
// warehouse through their truck item's arrival.
func (r *GormPutawaySlotRepository) OccupiedCoordinates(ctx context.Context, warehouseID uuid.UUID) ([]receiving.SlotCoordinate, error) {
	var coordinates []receiving.SlotCoordinate
	if err := r.db.WithContext(ctx).
		Table("putaway_assignments").
		Select("putaway_assignments.aisle, putaway_assignments.bay, putaway_assignments.level, putaway_assignments.position").
		Joins("JOIN truck_items ON truck_items.id = putaway_assignments.truck_item_id").
		Joins("JOIN truck_arrivals ON truck_arrivals.id = truck_items.arrival_id").
		Where("truck_arrivals.warehouse_id = ?", warehouseID).
		Scan(&coordinates).Error; err != nil {
		return nil, err
	}
	return coordinates, nil
}

// Ensure GormPutawaySlotRepository implements PutawaySlotRepository
var _ receiving.PutawaySlotRepository = (*GormPutawaySlotRepository)(nil)
