package inventory

import (
	"context"

	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for inventory item persistence
type Repository interface {
	// FindByID finds an inventory item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByArrival finds the inventory rows created from one arrival
	FindByArrival(ctx context.Context, arrivalID uuid.UUID) ([]InventoryItem, error)

	// FindAllForTenant finds inventory rows owned by a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]InventoryItem, error)

	// Save persists a new inventory item
	Save(ctx context.Context, item *InventoryItem) error
}
