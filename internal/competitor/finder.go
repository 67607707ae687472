// Package competitor discovers candidate competitor storefront origins by
// querying a public web search endpoint. It is an orchestration-layer
// collaborator; the extraction core never calls it.
package competitor

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brandlens/shopify-insights/internal/fetch"
)

const defaultSearchURL = "https://html.duckduckgo.com/html/"

type Finder struct {
	fetcher   *fetch.Client
	logger    *slog.Logger
	searchURL string
}

func NewFinder(fetcher *fetch.Client, logger *slog.Logger) *Finder {
	return &Finder{
		fetcher:   fetcher,
		logger:    logger.With("component", "competitor_finder"),
		searchURL: defaultSearchURL,
	}
}

// FindCompetitors returns up to maxResults candidate storefront origins for
// the brand behind origin. Discovery is best effort: any failure yields an
// empty list, never an error that would abort the caller's run.
func (f *Finder) FindCompetitors(ctx context.Context, origin string, maxResults int) []string {
	brand := brandToken(origin)
	if brand == "" {
		return nil
	}

	query := brand + " competitors site:myshopify.com"
	searchURL := f.searchURL + "?q=" + url.QueryEscape(query)

	resp, err := f.fetcher.Get(ctx, searchURL)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		f.logger.Warn("search results not parseable", "error", err)
		return nil
	}

	seen := map[string]struct{}{}
	var origins []string
	doc.Find("a.result__a, a.result__url").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, ok := link.Attr("href")
		if !ok {
			return true
		}

		candidate := resultOrigin(href)
		if candidate == "" || strings.Contains(candidate, brand) {
			return true
		}
		if _, dup := seen[candidate]; dup {
			return true
		}

		seen[candidate] = struct{}{}
		origins = append(origins, candidate)
		return len(origins) < maxResults
	})

	f.logger.Info("competitors discovered", "brand", brand, "count", len(origins))
	return origins
}

// brandToken derives a crude brand name from the origin's host: the first
// label that is not a www prefix.
func brandToken(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if i := strings.Index(host, "."); i > 0 {
		return host[:i]
	}
	return host
}

// resultOrigin normalizes a search hit into a bare scheme+host origin.
// Search engines often wrap hrefs in redirect URLs carrying the target in a
// uddg query parameter.
func resultOrigin(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	if target := u.Query().Get("uddg"); target != "" {
		if tu, err := url.Parse(target); err == nil {
			u = tu
		}
	}

	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
