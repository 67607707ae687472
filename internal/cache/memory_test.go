package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandlens/shopify-insights/internal/models"
)

func TestMemoryGetMiss(t *testing.T) {
	m := NewMemory(30 * time.Minute)

	_, err := m.Get(context.Background(), "https://acme.test")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemorySetGet(t *testing.T) {
	m := NewMemory(30 * time.Minute)
	insights := models.NewBrandInsights()
	insights.BrandName = "Acme"

	require.NoError(t, m.Set(context.Background(), "https://acme.test", insights))

	got, err := m.Get(context.Background(), "https://acme.test")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.BrandName)
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory(30 * time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(context.Background(), "https://acme.test", models.NewBrandInsights()))

	// Just inside the window.
	now = now.Add(29 * time.Minute)
	_, err := m.Get(context.Background(), "https://acme.test")
	require.NoError(t, err)

	// At the window boundary the entry is stale and evicted.
	now = now.Add(1 * time.Minute)
	_, err = m.Get(context.Background(), "https://acme.test")
	assert.ErrorIs(t, err, ErrMiss)

	_, err = m.Get(context.Background(), "https://acme.test")
	assert.ErrorIs(t, err, ErrMiss)
}
