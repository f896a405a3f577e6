package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	first, err := store.MarkProcessed(ctx, "receiving:commit_putaway:abc", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := store.MarkProcessed(ctx, "receiving:commit_putaway:abc", time.Hour)
	require.NoError(t, err)
	assert.False(t, second)
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	seen, err := store.IsProcessed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, seen)

	_, err = store.MarkProcessed(ctx, "known", time.Hour)
	require.NoError(t, err)

	seen, err = store.IsProcessed(ctx, "known")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "short-lived", time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	seen, err := store.IsProcessed(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, seen)

	// Expired keys can be marked again
	fresh, err := store.MarkProcessed(ctx, "short-lived", time.Hour)
	require.NoError(t, err)
	assert.True(t, fresh)
}

func TestInMemoryIdempotencyStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
