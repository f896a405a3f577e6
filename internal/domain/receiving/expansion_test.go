package receiving

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandQuantity_ProducesOrdinalKeysInOrder(t *testing.T) {
	itemID := uuid.New()

	keys, err := ExpandQuantity(itemID, 3)
	require.NoError(t, err)
	require.Len(t, keys, 3)

	for i, key := range keys {
		assert.Equal(t, itemID, key.TruckItemID)
		assert.Equal(t, i, key.Ordinal)
		assert.Equal(t, fmt.Sprintf("%s-%d", itemID, i), key.String())
	}
}

func TestExpandQuantity_Deterministic(t *testing.T) {
	itemID := uuid.New()

	first, err := ExpandQuantity(itemID, 5)
	require.NoError(t, err)
	second, err := ExpandQuantity(itemID, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpandQuantity_DistinctKeys(t *testing.T) {
	itemID := uuid.New()

	keys, err := ExpandQuantity(itemID, 50)
	require.NoError(t, err)

	seen := make(map[OrdinalKey]bool, len(keys))
	for _, key := range keys {
		assert.False(t, seen[key], "key %s duplicated", key)
		seen[key] = true
	}
	assert.Len(t, seen, 50)
}

func TestExpandQuantity_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		itemID   uuid.UUID
		quantity int
		wantCode string
	}{
		{"zero quantity", uuid.New(), 0, "INVALID_QUANTITY"},
		{"negative quantity", uuid.New(), -4, "INVALID_QUANTITY"},
		{"nil item id", uuid.Nil, 3, "INVALID_ITEM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := ExpandQuantity(tt.itemID, tt.quantity)
			assert.Nil(t, keys)
			assertDomainErrorCode(t, err, tt.wantCode)
		})
	}
}

func TestOrdinalKeyAt_MatchesExpansion(t *testing.T) {
	itemID := uuid.New()

	keys, err := ExpandQuantity(itemID, 4)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.Equal(t, keys[i], OrdinalKeyAt(itemID, i))
	}
}

func TestParseOrdinalKey_RoundTrip(t *testing.T) {
	key := OrdinalKeyAt(uuid.New(), 7)

	parsed, err := ParseOrdinalKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
}

func TestParseOrdinalKey_Malformed(t *testing.T) {
	tests := []string{
		"",
		"not-a-key",
		"4-",
		uuid.New().String(),             // no ordinal
		uuid.New().String() + "-minus1", // non-numeric ordinal
		uuid.New().String() + "--1",     // negative ordinal
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseOrdinalKey(input)
			assertDomainErrorCode(t, err, "INVALID_ORDINAL_KEY")
		})
	}
}

func TestExpandItem(t *testing.T) {
	item, err := NewTruckItem(uuid.New(), ItemDraft{Description: "PALLETS", Quantity: 3})
	require.NoError(t, err)

	keys, err := ExpandItem(item)
	require.NoError(t, err)
	assert.Len(t, keys, 3)
	assert.Equal(t, item.ID, keys[0].TruckItemID)

	_, err = ExpandItem(nil)
	assertDomainErrorCode(t, err, "ITEM_NOT_FOUND")
}
