package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	appledger "github.com/mwshop/backend/internal/application/ledger"
	"github.com/redis/go-redis/v9"
)

// RedisStockCache implements the stock cache on Redis. Suitable for
// distributed deployments where multiple instances share the cache.
type RedisStockCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisStockCache creates a new Redis-backed stock cache
func NewRedisStockCache(cfg RedisConfig, ttl time.Duration) (*RedisStockCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStockCacheWithClient(client, ttl), nil
}

// NewRedisStockCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisStockCacheWithClient(client *redis.Client, ttl time.Duration) *RedisStockCache {
	return &RedisStockCache{
		client:    client,
		keyPrefix: "stock:",
		ttl:       ttl,
	}
}

// Get returns the cached stock for the pair; the second value is false on a miss
func (c *RedisStockCache) Get(ctx context.Context, productID, warehouseID uuid.UUID) (int64, bool, error) {
	val, err := c.client.Get(ctx, c.key(productID, warehouseID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read stock cache: %w", err)
	}
	stock, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// Corrupt entry; treat as a miss
		return 0, false, nil
	}
	return stock, true, nil
}

// Set stores the stock value for the pair with the configured TTL
func (c *RedisStockCache) Set(ctx context.Context, productID, warehouseID uuid.UUID, stock int64) error {
	if err := c.client.Set(ctx, c.key(productID, warehouseID), strconv.FormatInt(stock, 10), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write stock cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached value for the pair
func (c *RedisStockCache) Invalidate(ctx context.Context, productID, warehouseID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(productID, warehouseID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stock cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisStockCache) Close() error {
	return c.client.Close()
}

func (c *RedisStockCache) key(productID, warehouseID uuid.UUID) string {
	return c.keyPrefix + productID.String() + ":" + warehouseID.String()
}

// Ensure RedisStockCache implements StockCache
var _ appledger.StockCache = (*RedisStockCache)(nil)
