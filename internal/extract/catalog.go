package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brandlens/shopify-insights/internal/locator"
	"github.com/brandlens/shopify-insights/internal/models"
)

// htmlCatalogCap bounds the HTML-fallback catalog; the JSON feed is uncapped.
const htmlCatalogCap = 50

var (
	productBlockSelectors = []string{
		".product-item", ".product-card", ".grid-item",
		"[data-product-id]", ".product", ".collection-item",
	}
	productTitleSelectors = []string{"h2", "h3", "h4", ".product-title"}
	productPriceSelectors = []string{".price", ".product-price", "[data-price]"}
)

// productsFeed mirrors the platform's public products.json payload.
type productsFeed struct {
	Products []feedProduct `json:"products"`
}

type feedProduct struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Handle      string        `json:"handle"`
	BodyHTML    string        `json:"body_html"`
	Tags        string        `json:"tags"`
	ProductType string        `json:"product_type"`
	Vendor      string        `json:"vendor"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Variants    []feedVariant `json:"variants"`
	Images      []feedImage   `json:"images"`
	Options     []feedOption  `json:"options"`
}

type feedVariant struct {
	Price          string `json:"price"`
	CompareAtPrice string `json:"compare_at_price"`
	Available      *bool  `json:"available"`
}

type feedImage struct {
	Src string `json:"src"`
}

type feedOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// extractCatalog resolves the full product list. The JSON feed is
// authoritative: when it parses, even to zero products, the HTML fallback is
// skipped. When neither source yields data the catalog is empty, not an
// error.
func (s *Service) extractCatalog(ctx context.Context, origin string) []models.Product {
	if products, ok := s.catalogFromFeed(ctx, origin); ok {
		s.logger.Info("catalog resolved from products feed", "origin", origin, "products", len(products))
		return products
	}

	products := s.catalogFromCollections(ctx, origin)
	s.logger.Info("catalog resolved from collections page", "origin", origin, "products", len(products))
	return products
}

func (s *Service) catalogFromFeed(ctx context.Context, origin string) ([]models.Product, bool) {
	resp, err := s.fetcher.Get(ctx, origin+"/products.json")
	if err != nil {
		return nil, false
	}

	var feed productsFeed
	if err := json.Unmarshal(resp.Body, &feed); err != nil {
		s.logger.Warn("products feed not decodable", "origin", origin, "error", err)
		return nil, false
	}

	products := make([]models.Product, 0, len(feed.Products))
	for _, fp := range feed.Products {
		products = append(products, normalizeFeedProduct(origin, fp))
	}
	return products, true
}

// normalizeFeedProduct maps one feed entry into the catalog model. The first
// variant supplies price, compare-at price and availability.
func normalizeFeedProduct(origin string, fp feedProduct) models.Product {
	p := models.Product{
		ID:            fp.ID,
		Title:         fp.Title,
		Handle:        fp.Handle,
		Description:   fp.BodyHTML,
		Price:         "N/A",
		Available:     true,
		ProductType:   fp.ProductType,
		Vendor:        fp.Vendor,
		CreatedAt:     fp.CreatedAt,
		UpdatedAt:     fp.UpdatedAt,
		VariantsCount: len(fp.Variants),
		URL:           origin + "/products/" + fp.Handle,
	}

	if len(fp.Variants) > 0 {
		first := fp.Variants[0]
		if first.Price != "" {
			p.Price = first.Price
		}
		p.CompareAtPrice = first.CompareAtPrice
		if first.Available != nil {
			p.Available = *first.Available
		}
	}

	for _, img := range fp.Images {
		if img.Src != "" {
			p.Images = append(p.Images, img.Src)
		}
	}
	if len(p.Images) > 0 {
		p.FeaturedImage = p.Images[0]
	}

	if fp.Tags != "" {
		for _, tag := range strings.Split(fp.Tags, ",") {
			p.Tags = append(p.Tags, strings.TrimSpace(tag))
		}
	}

	for _, opt := range fp.Options {
		p.Options = append(p.Options, models.ProductOption{Name: opt.Name, Values: opt.Values})
	}

	return p
}

// catalogFromCollections scrapes the collection listing page. Selectors are
// tried in rank order and the first one whose blocks yield any products wins;
// a selector matching only decorative blocks (missing title or link) falls
// through to the next.
func (s *Service) catalogFromCollections(ctx context.Context, origin string) []models.Product {
	resp, err := s.fetcher.Get(ctx, origin+"/collections/all")
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		s.logger.Warn("collections page not parseable", "origin", origin, "error", err)
		return nil
	}

	for _, selector := range productBlockSelectors {
		blocks := doc.Find(selector)
		if blocks.Length() == 0 {
			continue
		}

		var products []models.Product
		blocks.EachWithBreak(func(_ int, block *goquery.Selection) bool {
			title := ""
			if t := locator.FirstIn(block, productTitleSelectors); t != nil {
				title = normalizeText(t.First().Text())
			}

			href, hasLink := block.Find("a").First().Attr("href")
			if title == "" || !hasLink {
				return true
			}

			price := "N/A"
			if pr := locator.FirstIn(block, productPriceSelectors); pr != nil {
				if text := normalizeText(pr.First().Text()); text != "" {
					price = text
				}
			}

			p := models.Product{
				Title:  title,
				Price:  price,
				URL:    absoluteURL(origin, href),
				Handle: lastPathSegment(href),
			}
			if src, ok := block.Find("img").First().Attr("src"); ok {
				p.FeaturedImage = src
				p.Images = []string{src}
			}

			products = append(products, p)
			return len(products) < htmlCatalogCap
		})

		if len(products) > 0 {
			return products
		}
	}

	return nil
}

func lastPathSegment(href string) string {
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}
