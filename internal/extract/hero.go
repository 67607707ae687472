package extract

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/brandlens/shopify-insights/internal/locator"
	"github.com/brandlens/shopify-insights/internal/models"
)

const heroCap = 6

var heroBlockSelectors = []string{
	".featured-product", ".hero-product", ".product-card",
	"[data-product-id]", ".product-item", ".collection-item",
}

// extractHero resolves the homepage-surfaced product teasers. Selectors are
// tried in rank order; only the first six blocks of each are examined, and
// the first selector producing any hero wins. Never merges across selectors.
// An empty result is valid.
func (s *Service) extractHero(ctx context.Context, origin string) []models.HeroProduct {
	resp, err := s.fetcher.Get(ctx, origin)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		s.logger.Warn("homepage not parseable", "origin", origin, "error", err)
		return nil
	}

	for _, selector := range heroBlockSelectors {
		var heroes []models.HeroProduct
		doc.Find(selector).EachWithBreak(func(i int, block *goquery.Selection) bool {
			title := ""
			if t := locator.FirstIn(block, productTitleSelectors); t != nil {
				title = normalizeText(t.First().Text())
			}

			href, hasLink := block.Find("a").First().Attr("href")
			if title == "" || !hasLink {
				return i < heroCap-1
			}

			price := "N/A"
			if pr := locator.FirstIn(block, []string{".price", ".product-price"}); pr != nil {
				if text := normalizeText(pr.First().Text()); text != "" {
					price = text
				}
			}

			hero := models.HeroProduct{
				Title: truncate(title, 100),
				Price: price,
				Link:  absoluteURL(origin, href),
			}
			if src, ok := block.Find("img").First().Attr("src"); ok {
				hero.Image = src
			}

			heroes = append(heroes, hero)
			return i < heroCap-1
		})

		if len(heroes) > 0 {
			s.logger.Info("hero products extracted", "origin", origin, "count", len(heroes))
			return heroes
		}
	}

	return nil
}
