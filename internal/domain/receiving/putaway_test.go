package receiving

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotCoordinate_IsComplete(t *testing.T) {
	tests := []struct {
		name       string
		coordinate SlotCoordinate
		complete   bool
	}{
		{"all parts", SlotCoordinate{"A", "1", "1", "1"}, true},
		{"missing aisle", SlotCoordinate{"", "1", "1", "1"}, false},
		{"missing bay", SlotCoordinate{"A", "", "1", "1"}, false},
		{"missing level", SlotCoordinate{"A", "1", "", "1"}, false},
		{"missing position", SlotCoordinate{"A", "1", "1", ""}, false},
		{"empty", SlotCoordinate{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.complete, tt.coordinate.IsComplete())
		})
	}
}

func TestSlotCoordinate_String(t *testing.T) {
	c := SlotCoordinate{Aisle: "A", Bay: "3", Level: "2", Position: "7"}
	assert.Equal(t, "A-3-2-7", c.String())
}

func TestValidateSlotAssignments_AcceptsDistinct(t *testing.T) {
	itemID := uuid.New()
	assignments := []SlotAssignment{
		{Key: OrdinalKeyAt(itemID, 0), Coordinate: SlotCoordinate{"A", "1", "1", "1"}},
		{Key: OrdinalKeyAt(itemID, 1), Coordinate: SlotCoordinate{"A", "1", "1", "2"}},
		{Key: OrdinalKeyAt(itemID, 2), Coordinate: SlotCoordinate{"B", "1", "1", "1"}},
	}

	assert.NoError(t, ValidateSlotAssignments(assignments))
}

func TestValidateSlotAssignments_RejectsDuplicate(t *testing.T) {
	itemA := uuid.New()
	itemB := uuid.New()
	collision := SlotCoordinate{"A", "1", "1", "1"}

	// Duplicates across different truck items still collide
	assignments := []SlotAssignment{
		{Key: OrdinalKeyAt(itemA, 0), Coordinate: collision},
		{Key: OrdinalKeyAt(itemB, 0), Coordinate: SlotCoordinate{"B", "2", "2", "2"}},
		{Key: OrdinalKeyAt(itemB, 1), Coordinate: collision},
	}

	err := ValidateSlotAssignments(assignments)
	require.Error(t, err)

	var dup *DuplicateSlotError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, collision, dup.Coordinate)
	assert.Equal(t, OrdinalKeyAt(itemA, 0), dup.First)
	assert.Equal(t, OrdinalKeyAt(itemB, 1), dup.Second)
	assert.Equal(t, "DUPLICATE_SLOT_ASSIGNMENT", dup.Code())
}

func TestValidateSlotAssignments_OrderIndependent(t *testing.T) {
	itemID := uuid.New()
	collision := SlotCoordinate{"C", "4", "2", "9"}
	forward := []SlotAssignment{
		{Key: OrdinalKeyAt(itemID, 0), Coordinate: collision},
		{Key: OrdinalKeyAt(itemID, 1), Coordinate: collision},
	}
	reversed := []SlotAssignment{forward[1], forward[0]}

	assert.Error(t, ValidateSlotAssignments(forward))
	assert.Error(t, ValidateSlotAssignments(reversed))
}

func TestValidateSlotAssignments_CaseSensitive(t *testing.T) {
	itemID := uuid.New()
	assignments := []SlotAssignment{
		{Key: OrdinalKeyAt(itemID, 0), Coordinate: SlotCoordinate{"a", "1", "1", "1"}},
		{Key: OrdinalKeyAt(itemID, 1), Coordinate: SlotCoordinate{"A", "1", "1", "1"}},
	}

	// Exact match on the 4-tuple: different case is a different slot
	assert.NoError(t, ValidateSlotAssignments(assignments))
}

func TestValidateSlotAssignments_EmptyBatch(t *testing.T) {
	assert.NoError(t, ValidateSlotAssignments(nil))
}

func TestNewPutawaySlot(t *testing.T) {
	key := OrdinalKeyAt(uuid.New(), 2)

	slot, err := NewPutawaySlot(key, SlotCoordinate{"A", "1", "1", "1"})
	require.NoError(t, err)
	assert.Equal(t, key.TruckItemID, slot.TruckItemID)
	assert.Equal(t, 2, slot.Ordinal)
	assert.Equal(t, "A-1-1-1", slot.SlotCoordinate.String())
	assert.NotEqual(t, uuid.Nil, slot.ID)
}

func TestNewPutawaySlot_Invalid(t *testing.T) {
	key := OrdinalKeyAt(uuid.New(), 0)

	_, err := NewPutawaySlot(key, SlotCoordinate{Aisle: "A"})
	assertDomainErrorCode(t, err, "INCOMPLETE_SLOT_ASSIGNMENT")

	_, err = NewPutawaySlot(OrdinalKey{TruckItemID: uuid.Nil}, SlotCoordinate{"A", "1", "1", "1"})
	assertDomainErrorCode(t, err, "INVALID_ITEM")

	_, err = NewPutawaySlot(OrdinalKey{TruckItemID: uuid.New(), Ordinal: -1}, SlotCoordinate{"A", "1", "1", "1"})
	assertDomainErrorCode(t, err, "INVALID_ORDINAL_KEY")
}
