package cache

import (
	"fmt"

	appledger "github.com/mwshop/backend/internal/application/ledger"
	"github.com/mwshop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StockCacheFactory creates stock caches based on configuration
type StockCacheFactory struct {
	redisConfig config.RedisConfig
	cacheConfig config.CacheConfig
	logger      *zap.Logger
}

// NewStockCacheFactory creates a new factory
func NewStockCacheFactory(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, logger *zap.Logger) *StockCacheFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockCacheFactory{
		redisConfig: redisCfg,
		cacheConfig: cacheCfg,
		logger:      logger,
	}
}

// Create returns the stock cache selected by cache.backend, or nil when
// caching is disabled. A Redis backend that cannot be reached falls back to
// the in-memory cache so the service still starts.
func (f *StockCacheFactory) Create() (appledger.StockCache, error) {
	switch f.cacheConfig.Backend {
	case "none":
		return nil, nil
	case "memory":
		return NewInMemoryStockCache(f.cacheConfig.TTL), nil
	case "redis":
		redisCache, err := NewRedisStockCache(RedisConfig{
			Host:     f.redisConfig.Host,
			Port:     f.redisConfig.Port,
			Password: f.redisConfig.Password,
			DB:       f.redisConfig.DB,
		}, f.cacheConfig.TTL)
		if err != nil {
			f.logger.Warn("Redis unavailable, falling back to in-memory stock cache", zap.Error(err))
			return NewInMemoryStockCache(f.cacheConfig.TTL), nil
		}
		return redisCache, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", f.cacheConfig.Backend)
	}
}
