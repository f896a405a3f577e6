package receiving

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrdinalKey addresses one physical unit within a multi-quantity truck item.
// It is deterministic: reproducible from (truck_item_id, ordinal) alone, so
// a partially filled putaway form can be resumed without losing alignment.
type OrdinalKey struct {
	TruckItemID uuid.UUID
	Ordinal     int
}

// String returns the canonical wire form "<item-uuid>-<ordinal>"
func (k OrdinalKey) String() string {
	return fmt.Sprintf("%s-%d", k.TruckItemID, k.Ordinal)
}

// OrdinalKeyAt returns the key for a single unit of an item.
// The ordinal must lie in [0, quantity) but is not range-checked here;
// range checks belong to the caller that knows the item quantity.
func OrdinalKeyAt(truckItemID uuid.UUID, ordinal int) OrdinalKey {
	return OrdinalKey{TruckItemID: truckItemID, Ordinal: ordinal}
}

// ParseOrdinalKey parses the canonical wire form back into an OrdinalKey
func ParseOrdinalKey(s string) (OrdinalKey, error) {
	idx := strings.LastIndex(s, "-")
	if idx <= 0 || idx == len(s)-1 {
		return OrdinalKey{}, shared.NewDomainError("INVALID_ORDINAL_KEY", fmt.Sprintf("Malformed ordinal key %q", s))
	}
	id, err := uuid.Parse(s[:idx])
	if err != nil {
		return OrdinalKey{}, shared.NewDomainError("INVALID_ORDINAL_KEY", fmt.Sprintf("Malformed ordinal key %q", s))
	}
	ordinal, err := strconv.Atoi(s[idx+1:])
	if err != nil || ordinal < 0 {
		return OrdinalKey{}, shared.NewDomainError("INVALID_ORDINAL_KEY", fmt.Sprintf("Malformed ordinal key %q", s))
	}
	return OrdinalKey{TruckItemID: id, Ordinal: ordinal}, nil
}

// ExpandQuantity turns a (truck_item_id, quantity) pair into quantity
// addressable unit keys with ordinals 0..quantity-1, in order.
// Re-invoking with the same inputs yields the same keys in the same order.
func ExpandQuantity(truckItemID uuid.UUID, quantity int) ([]OrdinalKey, error) {
	if truckItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Truck item ID cannot be empty")
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	keys := make([]OrdinalKey, quantity)
	for i := 0; i < quantity; i++ {
		keys[i] = OrdinalKey{TruckItemID: truckItemID, Ordinal: i}
	}
	return keys, nil
}

// ExpandItem expands a truck item into its unit keys
func ExpandItem(item *TruckItem) ([]OrdinalKey, error) {
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Truck item does not exist")
	}
	return ExpandQuantity(item.ID, item.Quantity)
}
