package extract

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/brandlens/shopify-insights/internal/fetch"
)

func testService(opts Options) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(fetch.NewClient(logger), logger, opts)
}

// storefront is a fake store: a path → body map served over httptest, with a
// hit counter per path.
type storefront struct {
	mu    sync.Mutex
	pages map[string]string
	hits  map[string]int
	srv   *httptest.Server
}

func newStorefront(t *testing.T, pages map[string]string) *storefront {
	t.Helper()
	sf := &storefront{pages: pages, hits: map[string]int{}}
	sf.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sf.mu.Lock()
		sf.hits[r.URL.Path]++
		body, ok := sf.pages[r.URL.Path]
		sf.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(sf.srv.Close)
	return sf
}

func (sf *storefront) origin() string { return sf.srv.URL }

func (sf *storefront) hitCount(path string) int {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.hits[path]
}
