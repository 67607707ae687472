package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brandlens/shopify-insights/internal/models"
)

// Redis stores insights snapshots as JSON with a server-side TTL, so
// multiple instances share one freshness window.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, origin string) (*models.BrandInsights, error) {
	raw, err := r.client.Get(ctx, cacheKey(origin)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var insights models.BrandInsights
	if err := json.Unmarshal(raw, &insights); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &insights, nil
}

func (r *Redis) Set(ctx context.Context, origin string, insights *models.BrandInsights) error {
	raw, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	if err := r.client.Set(ctx, cacheKey(origin), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func cacheKey(origin string) string {
	return "insights:" + origin
}
