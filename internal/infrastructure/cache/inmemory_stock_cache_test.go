package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStockCache(t *testing.T) {
	ctx := context.Background()

	t.Run("should round-trip a value", func(t *testing.T) {
		c := NewInMemoryStockCache(time.Minute)
		productID := uuid.New()
		warehouseID := uuid.New()

		require.NoError(t, c.Set(ctx, productID, warehouseID, 42))

		stock, ok, err := c.Get(ctx, productID, warehouseID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(42), stock)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("should miss on unknown pair", func(t *testing.T) {
		c := NewInMemoryStockCache(time.Minute)

		_, ok, err := c.Get(ctx, uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should key entries per pair", func(t *testing.T) {
		c := NewInMemoryStockCache(time.Minute)
		productID := uuid.New()
		first := uuid.New()
		second := uuid.New()

		require.NoError(t, c.Set(ctx, productID, first, 10))
		require.NoError(t, c.Set(ctx, productID, second, 25))

		stock, ok, err := c.Get(ctx, productID, first)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(10), stock)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("should expire entries after the TTL", func(t *testing.T) {
		c := NewInMemoryStockCache(10 * time.Millisecond)
		productID := uuid.New()
		warehouseID := uuid.New()

		require.NoError(t, c.Set(ctx, productID, warehouseID, 42))
		time.Sleep(20 * time.Millisecond)

		_, ok, err := c.Get(ctx, productID, warehouseID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should drop entry on invalidate", func(t *testing.T) {
		c := NewInMemoryStockCache(time.Minute)
		productID := uuid.New()
		warehouseID := uuid.New()

		require.NoError(t, c.Set(ctx, productID, warehouseID, 42))
		require.NoError(t, c.Invalidate(ctx, productID, warehouseID))

		_, ok, err := c.Get(ctx, productID, warehouseID)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("invalidating an absent pair is a no-op", func(t *testing.T) {
		c := NewInMemoryStockCache(time.Minute)
		assert.NoError(t, c.Invalidate(ctx, uuid.New(), uuid.New()))
	})
}
