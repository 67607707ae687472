// Package extract turns an arbitrary storefront's markup into a normalized
// BrandInsights record through heuristic, best-effort extraction units run
// concurrently against one store origin.
package extract

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/brandlens/shopify-insights/internal/fetch"
	"github.com/brandlens/shopify-insights/internal/models"
)

const (
	// DefaultBudget bounds one extraction run's total wall-clock time.
	DefaultBudget = 45 * time.Second

	// poolSize is one worker slot per extraction unit.
	poolSize = 5
)

// Options tunes a Service. Zero values select the defaults.
type Options struct {
	Budget   time.Duration
	Fixtures Fixtures
}

// Service is the extraction core. Its only public operation is Extract.
type Service struct {
	fetcher  *fetch.Client
	logger   *slog.Logger
	budget   time.Duration
	fixtures Fixtures
}

func NewService(fetcher *fetch.Client, logger *slog.Logger, opts Options) *Service {
	budget := opts.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Service{
		fetcher:  fetcher,
		logger:   logger.With("component", "extractor"),
		budget:   budget,
		fixtures: opts.Fixtures,
	}
}

// unit is one independently-executing extraction task. It returns a merge
// function writing to its disjoint subset of the insights record, so that a
// unit still running past the deadline is simply never merged.
type unit struct {
	name string
	run  func(ctx context.Context) func(*models.BrandInsights)
}

// Extract runs all extraction units concurrently against origin and merges
// whatever they produced within the run budget. Units that fail or outlive
// the budget leave their fields at empty defaults; the only error returned
// is an invalid origin.
func (s *Service) Extract(ctx context.Context, origin string) (*models.BrandInsights, error) {
	origin, err := NormalizeOrigin(origin)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, s.budget)
	defer cancel()

	units := []unit{
		{"homepage", func(ctx context.Context) func(*models.BrandInsights) {
			content := s.extractHomepage(ctx, origin)
			return func(b *models.BrandInsights) {
				if content == nil {
					return
				}
				b.BrandName = content.BrandName
				b.BrandContext = content.BrandContext
				b.ContactDetails = content.ContactDetails
				if content.SocialHandles != nil {
					b.SocialHandles = content.SocialHandles
				}
				if content.ImportantLinks != nil {
					b.ImportantLinks = content.ImportantLinks
				}
			}
		}},
		{"catalog", func(ctx context.Context) func(*models.BrandInsights) {
			products := s.extractCatalog(ctx, origin)
			return func(b *models.BrandInsights) {
				if products != nil {
					b.ProductCatalog = products
				}
			}
		}},
		{"hero", func(ctx context.Context) func(*models.BrandInsights) {
			heroes := s.extractHero(ctx, origin)
			return func(b *models.BrandInsights) {
				if heroes != nil {
					b.HeroProducts = heroes
				}
			}
		}},
		{"policies", func(ctx context.Context) func(*models.BrandInsights) {
			policies := s.extractPolicies(ctx, origin)
			return func(b *models.BrandInsights) {
				b.PrivacyPolicy = policies[PolicyPrivacy]
				b.ReturnPolicy = policies[PolicyReturn]
				b.RefundPolicy = policies[PolicyRefund]
			}
		}},
		{"faqs", func(ctx context.Context) func(*models.BrandInsights) {
			faqs := s.extractFAQs(ctx, origin)
			return func(b *models.BrandInsights) {
				if faqs != nil {
					b.FAQs = faqs
				}
			}
		}},
	}

	insights := models.NewBrandInsights()
	merges := make(chan func(*models.BrandInsights), len(units))
	tasks := make(chan unit)

	var wg sync.WaitGroup
	for i := 0; i < poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range tasks {
				merges <- u.run(runCtx)
			}
		}()
	}

	go func() {
		for _, u := range units {
			tasks <- u
		}
		close(tasks)
		wg.Wait()
		close(merges)
	}()

	// Merge until every unit reported or the budget elapsed; stragglers are
	// abandoned and contribute nothing.
	merged := 0
merge:
	for merged < len(units) {
		select {
		case apply, ok := <-merges:
			if !ok {
				break merge
			}
			apply(insights)
			merged++
		case <-runCtx.Done():
			s.logger.Warn("extraction budget elapsed, abandoning remaining units",
				"origin", origin, "merged", merged, "total", len(units))
			break merge
		}
	}

	summary := insights.Summarize()
	s.logger.Info("extraction run complete",
		"origin", origin,
		"duration", time.Since(start).Round(time.Millisecond).String(),
		"products", summary.Products,
		"faqs", summary.FAQs,
		"social", summary.Social,
		"links", summary.Links)

	return insights, nil
}
