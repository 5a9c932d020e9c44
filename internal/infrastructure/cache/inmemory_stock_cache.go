package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	appledger "github.com/mwshop/backend/internal/application/ledger"
)

// InMemoryStockCache implements the stock cache in process memory. Suitable
// for single-instance deployments and tests; entries are not shared across
// processes.
type InMemoryStockCache struct {
	mu      sync.RWMutex
	entries map[string]stockEntry
	ttl     time.Duration
}

type stockEntry struct {
	stock     int64
	expiresAt time.Time
}

// NewInMemoryStockCache creates a new in-memory stock cache
func NewInMemoryStockCache(ttl time.Duration) *InMemoryStockCache {
	return &InMemoryStockCache{
		entries: make(map[string]stockEntry),
		ttl:     ttl,
	}
}

// Get returns the cached stock for the pair; the second value is false on a miss
func (c *InMemoryStockCache) Get(_ context.Context, productID, warehouseID uuid.UUID) (int64, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key(productID, warehouseID)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return 0, false, nil
	}
	return entry.stock, true, nil
}

// Set stores the stock value for the pair with the configured TTL
func (c *InMemoryStockCache) Set(_ context.Context, productID, warehouseID uuid.UUID, stock int64) error {
	c.mu.Lock()
	c.entries[key(productID, warehouseID)] = stockEntry{
		stock:     stock,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}

// Invalidate drops the cached value for the pair
func (c *InMemoryStockCache) Invalidate(_ context.Context, productID, warehouseID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, key(productID, warehouseID))
	c.mu.Unlock()
	return nil
}

// Len returns the number of cached entries, expired ones included
func (c *InMemoryStockCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func key(productID, warehouseID uuid.UUID) string {
	return productID.String() + ":" + warehouseID.String()
}

// Ensure InMemoryStockCache implements StockCache
var _ appledger.StockCache = (*InMemoryStockCache)(nil)
