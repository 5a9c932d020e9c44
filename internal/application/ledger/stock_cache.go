package ledger

import (
	"context"

	"github.com/google/uuid"
)

// StockCache is a read-through cache for current stock values. The ledger
// remains the source of truth: cached entries are invalidated whenever a
// mutation for the pair reaches a terminal status, and a miss always falls
// back to the ledger query.
type StockCache interface {
	// Get returns the cached stock for the pair. The second return value is
	// false on a miss.
	Get(ctx context.Context, productID, warehouseID uuid.UUID) (int64, bool, error)

	// Set stores the stock value for the pair
	Set(ctx context.Context, productID, warehouseID uuid.UUID, stock int64) error

	// Invalidate drops the cached value for the pair
	Invalidate(ctx context.Context, productID, warehouseID uuid.UUID) error
}
