package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mwshop/backend/internal/domain/ledger"
)

func TestStockCacheInvalidator(t *testing.T) {
	ctx := context.Background()

	t.Run("should invalidate the pair of a succeeded mutation", func(t *testing.T) {
		cache := newStubStockCache()
		invalidator := NewStockCacheInvalidator(cache, zap.NewNop())

		productID := uuid.New()
		warehouseID := uuid.New()
		require.NoError(t, cache.Set(ctx, productID, warehouseID, 50))

		m := newSuccessMutation(t, productID, warehouseID, 30)
		err := invalidator.Handle(ctx, ledger.NewMutationSucceededEvent(m))
		require.NoError(t, err)

		_, ok, err := cache.Get(ctx, productID, warehouseID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should ignore unrelated events", func(t *testing.T) {
		cache := newStubStockCache()
		invalidator := NewStockCacheInvalidator(cache, zap.NewNop())

		productID := uuid.New()
		warehouseID := uuid.New()
		require.NoError(t, cache.Set(ctx, productID, warehouseID, 50))

		pending := newPendingTransfer(t, productID, warehouseID, uuid.New(), 10, 50, uuid.New())
		err := invalidator.Handle(ctx, ledger.NewMutationCreatedEvent(pending))
		require.NoError(t, err)

		_, ok, err := cache.Get(ctx, productID, warehouseID)
		require.NoError(t, err)
		assert.True(t, ok, "only success mutations change what the ledger reports")
	})

	t.Run("should subscribe to success events only", func(t *testing.T) {
		invalidator := NewStockCacheInvalidator(newStubStockCache(), zap.NewNop())
		assert.Equal(t, []string{ledger.EventTypeMutationSucceeded}, invalidator.EventTypes())
	})
}
