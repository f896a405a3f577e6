package persistence

import (
	"context"
	"errors"

	"github.com/omnideploy/backend/internal/domain/receiving"
	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormArrivalRepository implements ArrivalRepository using GORM
type GormArrivalRepository struct {
	db *gorm.DB
}

// NewGormArrivalRepository creates a new GormArrivalRepository
func NewGormArrivalRepository(db *gorm.DB) *GormArrivalRepository {
	return &GormArrivalRepository{db: db}
}

// FindByID finds a truck arrival by its ID
func (r *GormArrivalRepository) FindByID(ctx context.Context, id uuid.UUID) (*receiving.TruckArrival, error) {
	var arrival receiving.TruckArrival
	if err := r.db.WithContext(ctx).First(&arrival, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &arrival, nil
}

// FindByWarehouse finds arrivals for a warehouse, newest first
func (r *GormArrivalRepository) FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]receiving.TruckArrival, error) {
	var arrivals []receiving.TruckArrival

	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ?", tenantID, warehouseID).
		Order("arrived_at DESC")

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("vehicle_registration ILIKE ? OR customer_name ILIKE ?", search, search)
	}
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&arrivals).Error; err != nil {
		return nil, err
	}
	return arrivals, nil
}

// Save persists a new truck arrival
func (r *GormArrivalRepository) Save(ctx context.Context, arrival *receiving.TruckArrival) error {
	return r.db.WithContext(ctx).Create(arrival).Error
}

// Ensure GormArrivalRepository implements ArrivalRepository
var _ receiving.ArrivalRepository = (*GormArrivalRepository)(nil)
