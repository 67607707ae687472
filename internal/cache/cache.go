// Package cache provides the result cache sitting in front of the
// extraction core: insights keyed by normalized store origin with a fixed
// freshness window.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/brandlens/shopify-insights/internal/models"
)

// ErrMiss is returned when no fresh entry exists for an origin.
var ErrMiss = errors.New("cache miss")

// Cache stores one BrandInsights snapshot per origin.
type Cache interface {
	Get(ctx context.Context, origin string) (*models.BrandInsights, error)
	Set(ctx context.Context, origin string, insights *models.BrandInsights) error
}

// entry pairs a value with its insertion time for the in-memory
// implementation; the Redis one delegates expiry to the server.
type entry struct {
	insights *models.BrandInsights
	storedAt time.Time
}
