package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brandlens/shopify-insights/internal/models"
)

// Run records one completed extraction for observability and history.
type Run struct {
	ID         string    `json:"id"`
	Origin     string    `json:"origin"`
	Products   int       `json:"products"`
	FAQs       int       `json:"faqs"`
	Social     int       `json:"social"`
	Links      int       `json:"links"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// SaveCatalog upserts a store's product catalog keyed by (origin, handle),
// so repeated runs against the same store stay idempotent.
func (db *DB) SaveCatalog(ctx context.Context, origin string, products []models.Product) error {
	query := `
		INSERT INTO products (origin, handle, title, price, url, vendor, product_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (origin, handle) DO UPDATE SET
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			url = EXCLUDED.url,
			vendor = EXCLUDED.vendor,
			product_type = EXCLUDED.product_type,
			updated_at = CURRENT_TIMESTAMP`

	for _, p := range products {
		handle := p.Handle
		if handle == "" {
			handle = p.URL
		}
		if _, err := db.pool.Exec(ctx, query,
			origin, handle, p.Title, p.Price, p.URL, p.Vendor, p.ProductType); err != nil {
			return fmt.Errorf("failed to save product %q: %w", p.Title, err)
		}
	}

	return nil
}

// RecordRun inserts a run summary row and returns its generated ID.
func (db *DB) RecordRun(ctx context.Context, origin string, summary models.Summary, duration time.Duration) (*Run, error) {
	run := &Run{
		ID:         uuid.New().String(),
		Origin:     origin,
		Products:   summary.Products,
		FAQs:       summary.FAQs,
		Social:     summary.Social,
		Links:      summary.Links,
		DurationMS: duration.Milliseconds(),
		CreatedAt:  time.Now(),
	}

	query := `
		INSERT INTO extraction_runs (id, origin, products, faqs, social, links, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := db.pool.Exec(ctx, query,
		run.ID, run.Origin, run.Products, run.FAQs, run.Social, run.Links, run.DurationMS, run.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	return run, nil
}
