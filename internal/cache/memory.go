package cache

import (
	"context"
	"sync"
	"time"

	"github.com/brandlens/shopify-insights/internal/models"
)

// Memory is a process-wide cache guarded by a single lock around the
// read-check and write-insert. Stale entries are evicted lazily on read.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, origin string) (*models.BrandInsights, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[origin]
	if !ok {
		return nil, ErrMiss
	}
	if m.now().Sub(e.storedAt) >= m.ttl {
		delete(m.entries, origin)
		return nil, ErrMiss
	}
	return e.insights, nil
}

func (m *Memory) Set(_ context.Context, origin string, insights *models.BrandInsights) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[origin] = entry{insights: insights, storedAt: m.now()}
	return nil
}
