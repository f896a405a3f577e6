package persistence

import (
	"context"
	"errors"

	"github.com/omnideploy/backend/internal/domain/receiving"
	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTruckItemRepository implements TruckItemRepository using GORM
type GormTruckItemRepository struct {
	db *gorm.DB
}

// NewGormTruckItemRepository creates a new GormTruckItemRepository
func NewGormTruckItemRepository(db *gorm.DB) *GormTruckItemRepository {
	return &GormTruckItemRepository{db: db}
}

// FindByID finds a truck item by its ID
func (r *GormTruckItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*receiving.TruckItem, error) {
	var item receiving.TruckItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByArrival finds all items logged against an arrival, oldest first
func (r *GormTruckItemRepository) FindByArrival(ctx context.Context, arrivalID uuid.UUID) ([]receiving.TruckItem, error) {
	var items []receiving.TruckItem
	if err := r.db.WithContext(ctx).
		Where("arrival_id = ?", arrivalID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save persists a new truck item
func (r *GormTruckItemRepository) Save(ctx context.Context, item *receiving.TruckItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Delete removes a truck item
func (r *GormTruckItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&receiving.TruckItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormTruckItemRepository implements TruckItemRepository
var _ receiving.TruckItemRepository = (*GormTruckItemRepository)(nil)
