package ledger

import (
	"context"

	"github.com/mwshop/backend/internal/domain/ledger"
	"github.com/mwshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockCacheInvalidator drops cached stock values when a success mutation
// changes what the ledger reports for its (product, warehouse) pair.
type StockCacheInvalidator struct {
	cache  StockCache
	logger *zap.Logger
}

// NewStockCacheInvalidator creates a new StockCacheInvalidator
func NewStockCacheInvalidator(cache StockCache, logger *zap.Logger) *StockCacheInvalidator {
	return &StockCacheInvalidator{
		cache:  cache,
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *StockCacheInvalidator) EventTypes() []string {
	return []string{ledger.EventTypeMutationSucceeded}
}

// Handle processes a domain event
func (h *StockCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	succeeded, ok := event.(*ledger.MutationSucceededEvent)
	if !ok {
		return nil
	}

	if err := h.cache.Invalidate(ctx, succeeded.ProductID, succeeded.WarehouseID); err != nil {
		// A stale entry self-heals on the next invalidation; log and move on
		h.logger.Warn("failed to invalidate stock cache",
			zap.String("product_id", succeeded.ProductID.String()),
			zap.String("warehouse_id", succeeded.WarehouseID.String()),
			zap.Error(err))
	}
	return nil
}

var _ shared.EventHandler = (*StockCacheInvalidator)(nil)
