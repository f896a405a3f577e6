package persistence

import (
	"context"
	"errors"

	"github.com/omnideploy/backend/internal/domain/receiving"
	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormQualityCheckRepository implements QualityCheckRepository using GORM
type GormQualityCheckRepository struct {
	db *gorm.DB
}

// NewGormQualityCheckRepository creates a new GormQualityCheckRepository
func NewGormQualityCheckRepository(db *gorm.DB) *GormQualityCheckRepository {
	return &GormQualityCheckRepository{db: db}
}

// FindByTruckItem finds the verdict for a truck item
func (r *GormQualityCheckRepository) FindByTruckItem(ctx context.Context, truckItemID uuid.UUID) (*receiving.QualityCheckRecord, error) {
	var record receiving.QualityCheckRecord
	if err := r.db.WithContext(ctx).First(&record, "truck_item_id = ?", truckItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Save persists a new quality check record. A replayed save for the same
// truck item is a no-op thanks to the unique index, so a resumed
// quality-check commit never duplicates verdicts.
func (r *GormQualityCheckRepository) Save(ctx context.Context, record *receiving.QualityCheckRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "truck_item_id"}},
			DoNothing: true,
		}).
		Create(record).Error
}

// Ensure GormQualityCheckRepository implements QualityCheckRepository
var _ receiving.QualityCheckRepository = (*GormQualityCheckRepository)(nil)
