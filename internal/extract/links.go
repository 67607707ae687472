package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// linkCategories is the fixed classification priority: an anchor matching
// several keyword patterns is assigned only to the earliest one.
var linkCategories = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"track_order", regexp.MustCompile(`track|order|shipping|delivery`)},
	{"contact", regexp.MustCompile(`contact|support|help`)},
	{"blog", regexp.MustCompile(`blog|news|article`)},
	{"about", regexp.MustCompile(`about|story|company`)},
	{"size_guide", regexp.MustCompile(`size|guide|measurement`)},
	{"wholesale", regexp.MustCompile(`wholesale|bulk|business`)},
}

// classifyImportantLinks buckets anchors into semantic categories by their
// visible label text. Across anchors, the first one to claim a category
// keeps it; later matches never overwrite.
func classifyImportantLinks(doc *goquery.Document, origin string) map[string]string {
	links := map[string]string{}
	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		text := strings.ToLower(normalizeText(anchor.Text()))
		if href == "" || text == "" {
			return
		}

		for _, category := range linkCategories {
			if !category.pattern.MatchString(text) {
				continue
			}
			if _, claimed := links[category.name]; !claimed {
				links[category.name] = absoluteURL(origin, href)
			}
			break
		}
	})
	return links
}
