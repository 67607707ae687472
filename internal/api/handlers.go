package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/brandlens/shopify-insights/internal/cache"
	"github.com/brandlens/shopify-insights/internal/database"
	"github.com/brandlens/shopify-insights/internal/extract"
	"github.com/brandlens/shopify-insights/internal/fetch"
	"github.com/brandlens/shopify-insights/internal/models"
	"github.com/brandlens/shopify-insights/internal/ratelimit"
)

// Extractor is the core's public surface.
type Extractor interface {
	Extract(ctx context.Context, origin string) (*models.BrandInsights, error)
}

// CompetitorFinder discovers candidate storefront origins.
type CompetitorFinder interface {
	FindCompetitors(ctx context.Context, origin string, maxResults int) []string
}

// Prober checks host reachability before an extraction run so the API can
// distinguish unreachable hosts from merely sparse storefronts.
type Prober interface {
	Get(ctx context.Context, url string) (*fetch.Response, error)
}

// Store persists extraction results; nil disables persistence.
type Store interface {
	SaveCatalog(ctx context.Context, origin string, products []models.Product) error
	RecordRun(ctx context.Context, origin string, summary models.Summary, duration time.Duration) (*database.Run, error)
}

type Handlers struct {
	extractor     Extractor
	cache         cache.Cache
	finder        CompetitorFinder
	prober        Prober
	store         Store
	limiter       ratelimit.RateLimiter
	logger        *slog.Logger
	competitorMax int
}

func NewHandlers(extractor Extractor, c cache.Cache, finder CompetitorFinder, prober Prober, store Store, limiter ratelimit.RateLimiter, competitorMax int, logger *slog.Logger) *Handlers {
	return &Handlers{
		extractor:     extractor,
		cache:         c,
		finder:        finder,
		prober:        prober,
		store:         store,
		limiter:       limiter,
		logger:        logger.With("component", "api"),
		competitorMax: competitorMax,
	}
}

// InsightsRequest is the body of POST /api/insights.
type InsightsRequest struct {
	WebsiteURL string `json:"website_url"`
}

// GetInsights extracts (or serves cached) brand insights for one storefront.
func (h *Handlers) GetInsights(w http.ResponseWriter, r *http.Request) {
	var req InsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.WebsiteURL) == "" {
		h.respondError(w, http.StatusBadRequest, "website_url is required")
		return
	}

	origin, status, errMsg := h.normalizeAndProbe(r.Context(), req.WebsiteURL)
	if errMsg != "" {
		h.respondError(w, status, errMsg)
		return
	}

	if cached, err := h.cache.Get(r.Context(), origin); err == nil {
		h.logger.Info("returning cached insights", "origin", origin)
		h.respondJSON(w, http.StatusOK, cached)
		return
	}

	start := time.Now()
	insights, err := h.extractor.Extract(r.Context(), origin)
	if err != nil {
		if errors.Is(err, extract.ErrInvalidOrigin) {
			h.respondError(w, http.StatusBadRequest, "invalid website_url")
			return
		}
		h.logger.Error("extraction failed", "origin", origin, "error", err)
		h.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.cache.Set(r.Context(), origin, insights); err != nil {
		h.logger.Warn("failed to cache insights", "origin", origin, "error", err)
	}
	h.persistRun(origin, insights, time.Since(start))

	h.respondJSON(w, http.StatusOK, insights)
}

// CompetitorsRequest is the body of POST /api/competitors.
type CompetitorsRequest struct {
	WebsiteURL string `json:"website_url"`
	MaxResults int    `json:"max_results"`
}

// CompetitorInsights pairs a discovered origin with its extracted insights.
type CompetitorInsights struct {
	Website  string                `json:"website"`
	Insights *models.BrandInsights `json:"insights"`
}

// GetCompetitors discovers competitor storefronts and extracts insights for
// each, paced by the rate limiter.
func (h *Handlers) GetCompetitors(w http.ResponseWriter, r *http.Request) {
	var req CompetitorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.WebsiteURL) == "" {
		h.respondError(w, http.StatusBadRequest, "website_url is required")
		return
	}

	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > h.competitorMax {
		maxResults = h.competitorMax
	}

	origin, status, errMsg := h.normalizeAndProbe(r.Context(), req.WebsiteURL)
	if errMsg != "" {
		h.respondError(w, status, errMsg)
		return
	}

	competitors := h.finder.FindCompetitors(r.Context(), origin, maxResults)
	results := make([]CompetitorInsights, 0, len(competitors))
	for _, comp := range competitors {
		if err := h.limiter.Wait(r.Context()); err != nil {
			break
		}

		insights, err := h.extractor.Extract(r.Context(), comp)
		if err != nil {
			h.logger.Warn("competitor extraction failed", "origin", comp, "error", err)
			continue
		}
		results = append(results, CompetitorInsights{Website: comp, Insights: insights})
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"main_brand":  origin,
		"competitors": results,
	})
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// normalizeAndProbe defaults the scheme, validates the origin and verifies
// the host answers at all, mapping failures onto the boundary status codes:
// 400 malformed, 404 unreachable, 408 fetch timeout.
func (h *Handlers) normalizeAndProbe(ctx context.Context, raw string) (origin string, status int, errMsg string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	origin, err := extract.NormalizeOrigin(raw)
	if err != nil {
		return "", http.StatusBadRequest, "invalid website_url"
	}

	if _, err := h.prober.Get(ctx, origin); err != nil {
		switch fetch.FailureReason(err) {
		case fetch.ReasonTimeout:
			return "", http.StatusRequestTimeout, "request timed out, please try again"
		case fetch.ReasonNetworkError:
			return "", http.StatusNotFound, "website not found or unreachable"
		}
		// http-error still proves the host answers; extraction may yet
		// succeed on other paths.
	}

	return origin, 0, ""
}

// persistRun saves the catalog and a run summary, best effort: persistence
// failures never affect the response.
func (h *Handlers) persistRun(origin string, insights *models.BrandInsights, duration time.Duration) {
	if h.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if len(insights.ProductCatalog) > 0 {
		if err := h.store.SaveCatalog(ctx, origin, insights.ProductCatalog); err != nil {
			h.logger.Warn("failed to persist catalog", "origin", origin, "error", err)
		}
	}
	if _, err := h.store.RecordRun(ctx, origin, insights.Summarize(), duration); err != nil {
		h.logger.Warn("failed to record run", "origin", origin, "error", err)
	}
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
