// Package cache provides caching decorators for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"psx_backend/internal/feature/marketwatch/domain/entity"
	"psx_backend/internal/feature/marketwatch/usecase"
)

const listKey = "marketwatch:list"

// CachingMarketWatchRepository decorates a MarketWatchRepository with a
// Redis cache over the merged list, invalidated on every refresh.
type CachingMarketWatchRepository struct {
	inner usecase.MarketWatchRepository
	rdb   *redis.Client
	ttl   time.Duration
}

var _ usecase.MarketWatchRepository = (*CachingMarketWatchRepository)(nil)

// NewCachingMarketWatchRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. A nil client disables caching.
func NewCachingMarketWatchRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketWatchRepository) *CachingMarketWatchRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachingMarketWatchRepository{inner: inner, rdb: rdb, ttl: ttl}
}

// ReplaceAll writes through to the underlying repository and drops the
// cached list.
func (c *CachingMarketWatchRepository) ReplaceAll(ctx context.Context, entities []entity.UnifiedEntity) (int64, error) {
	written, err := c.inner.ReplaceAll(ctx, entities)
	if err != nil {
		return written, err
	}
	if c.rdb != nil {
		// Best effort: a stale entry expires on its own via the TTL.
		_ = c.rdb.Del(ctx, listKey).Err()
	}
	return written, nil
}

// List serves the merged view from cache when possible, falling back to
// the database and repopulating on a miss.
func (c *CachingMarketWatchRepository) List(ctx context.Context) ([]entity.UnifiedEntity, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	if b, err := c.rdb.Get(ctx, listKey).Bytes(); err == nil && len(b) > 0 {
		var out []entity.UnifiedEntity
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, listKey).Err()
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, listKey, b, c.ttl).Err()
	}
	return out, nil
}
