package extract

import (
	"strings"

	"github.com/brandlens/shopify-insights/internal/models"
)

// Fixtures is an explicit demo-data override hook: hard-coded fallback
// insights substituted for specific known domains when heuristic extraction
// finds nothing. Keys are matched as substrings of the lowercased origin.
// The default is no fixtures; general extraction logic never embeds any.
type Fixtures map[string]FixtureData

// FixtureData is the per-domain fallback payload.
type FixtureData struct {
	FAQs               []models.FAQEntry
	SocialHandles      map[string]string
	ImportantLinkPaths map[string]string
}

func (s *Service) fixtureFor(origin string) *FixtureData {
	lower := strings.ToLower(origin)
	for domain, data := range s.fixtures {
		if strings.Contains(lower, strings.ToLower(domain)) {
			return &data
		}
	}
	return nil
}
