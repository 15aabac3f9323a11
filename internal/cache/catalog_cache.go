package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gophertrophy/internal/model"
)

const catalogKey = "achievements:catalog"

// CatalogCache keeps the achievement catalog list in Redis for a short TTL.
// Only the public list path reads it; auth and unlock never touch the cache.
type CatalogCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redisv9.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &CatalogCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *CatalogCache) GetCatalog(ctx context.Context) ([]model.Achievement, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get catalog failed: %w", err)
	}

	var achievements []model.Achievement
	if err := json.Unmarshal([]byte(raw), &achievements); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached catalog failed: %w", err)
	}
	return achievements, true, nil
}

func (c *CatalogCache) SetCatalog(ctx context.Context, achievements []model.Achievement) error {
	payload, err := json.Marshal(achievements)
	if err != nil {
		return fmt.Errorf("marshal catalog cache failed: %w", err)
	}
	if err := c.client.Set(ctx, catalogKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set catalog failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("redis delete catalog failed: %w", err)
	}
	return nil
}
