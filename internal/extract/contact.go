package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brandlens/shopify-insights/internal/models"
)

const contactCap = 3

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// phonePatterns are applied in sequence and their matches concatenated: a
// strict Indian mobile pattern first, then a loose general digit-run one.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?91[\s\-]?[6-9]\d{9}`),
	regexp.MustCompile(`\+?[1-9]?[\d\s\-()]{10,15}`),
}

// socialNetworks is evaluated per anchor in this fixed order; only the first
// network whose domain appears in the href is considered for that anchor.
var socialNetworks = []struct {
	name    string
	domain  string
	pattern *regexp.Regexp
}{
	{"instagram", "instagram.com", regexp.MustCompile(`instagram\.com/([a-zA-Z0-9_.]+)`)},
	{"facebook", "facebook.com", regexp.MustCompile(`facebook\.com/([a-zA-Z0-9_.]+)`)},
	{"twitter", "twitter.com", regexp.MustCompile(`twitter\.com/([a-zA-Z0-9_.]+)`)},
	{"tiktok", "tiktok.com", regexp.MustCompile(`tiktok\.com/@([a-zA-Z0-9_.]+)`)},
	{"youtube", "youtube.com", regexp.MustCompile(`youtube\.com/([a-zA-Z0-9_.]+)`)},
	{"linkedin", "linkedin.com", regexp.MustCompile(`linkedin\.com/company/([a-zA-Z0-9_.]+)`)},
}

// extractContactDetails pulls email and phone candidates out of page text,
// deduplicated in first-seen order and capped at three each.
func extractContactDetails(text string) models.ContactDetails {
	emails := dedupeCap(emailPattern.FindAllString(text, -1), contactCap)

	var phones []string
	for _, pattern := range phonePatterns {
		phones = append(phones, pattern.FindAllString(text, -1)...)
	}
	for i, phone := range phones {
		phones[i] = strings.TrimSpace(phone)
	}

	return models.ContactDetails{
		Emails: emails,
		Phones: dedupeCap(phones, contactCap),
	}
}

// extractSocialHandles maps network name to handle from anchor hrefs. Within
// one network the LAST matching anchor in document order wins, unlike the
// important-links classifier where the first anchor claims a category.
func extractSocialHandles(doc *goquery.Document) map[string]string {
	handles := map[string]string{}
	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		href = strings.ToLower(href)

		for _, network := range socialNetworks {
			if !strings.Contains(href, network.domain) {
				continue
			}
			if m := network.pattern.FindStringSubmatch(href); m != nil {
				handles[network.name] = m[1]
			}
			break
		}
	})
	return handles
}

func dedupeCap(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, limit)
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
