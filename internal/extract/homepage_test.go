package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestHomepageBrandNameAndContext(t *testing.T) {
	blurb := "We are a small independent label crafting durable everyday essentials since 2012."
	page := `<html><head><title>Acme Threads — Everyday Essentials</title></head><body>
		<div class="about">too short</div>
		<div class="about-us">` + blurb + `</div>
	</body></html>`

	sf := newStorefront(t, map[string]string{"/": page})

	svc := testService(Options{})
	content := svc.extractHomepage(context.Background(), sf.origin())

	require.NotNil(t, content)
	assert.Equal(t, "Acme Threads — Everyday Essentials", content.BrandName)
	// The .about match is too short, so the next selector supplies the blurb.
	assert.Equal(t, blurb, content.BrandContext)
}

func TestHomepageBrandContextTruncated(t *testing.T) {
	long := strings.Repeat("heritage ", 200)
	page := `<div class="brand-story">` + long + `</div>`

	sf := newStorefront(t, map[string]string{"/": page})

	svc := testService(Options{})
	content := svc.extractHomepage(context.Background(), sf.origin())

	require.NotNil(t, content)
	assert.Len(t, []rune(content.BrandContext), brandContextMaxLen)
}

func TestContactDetailsExtraction(t *testing.T) {
	text := `Reach us at care@acme.test or sales@acme.test, or again care@acme.test.
		Call +91 9876543210 for support.`

	details := extractContactDetails(text)

	assert.Equal(t, []string{"care@acme.test", "sales@acme.test"}, details.Emails)
	require.NotEmpty(t, details.Phones)
	assert.Equal(t, "+91 9876543210", details.Phones[0])
}

func TestContactDetailsCapped(t *testing.T) {
	text := "a@x.test b@x.test c@x.test d@x.test e@x.test"
	details := extractContactDetails(text)
	assert.Len(t, details.Emails, contactCap)
}

func TestSocialHandlesLastAnchorWins(t *testing.T) {
	doc := parseDoc(t, `
		<a href="https://instagram.com/old_handle">ig</a>
		<a href="https://www.instagram.com/new_handle">ig again</a>
		<a href="https://www.tiktok.com/@acme.official">tiktok</a>
		<a href="https://linkedin.com/company/acme-labs">li</a>
		<a href="https://linkedin.com/in/someone">personal, no handle</a>`)

	handles := extractSocialHandles(doc)

	assert.Equal(t, "new_handle", handles["instagram"])
	assert.Equal(t, "acme.official", handles["tiktok"])
	assert.Equal(t, "acme", handles["linkedin"])
	assert.NotContains(t, handles, "twitter")
}

func TestImportantLinksFirstAnchorWins(t *testing.T) {
	doc := parseDoc(t, `
		<a href="/pages/contact">Contact Us</a>
		<a href="/pages/support">Support Center</a>
		<a href="/blogs/news">Blog</a>
		<a href="/pages/wholesale">Wholesale Enquiries</a>`)

	links := classifyImportantLinks(doc, "https://acme.test")

	assert.Equal(t, "https://acme.test/pages/contact", links["contact"])
	assert.Equal(t, "https://acme.test/blogs/news", links["blog"])
	assert.Equal(t, "https://acme.test/pages/wholesale", links["wholesale"])
}

func TestImportantLinksCategoryPriority(t *testing.T) {
	// "Track your order" also matches no other category first; an anchor
	// matching several patterns goes to the earliest-priority one only.
	doc := parseDoc(t, `<a href="/pages/track">Track your order and contact support</a>`)

	links := classifyImportantLinks(doc, "https://acme.test")

	assert.Equal(t, "https://acme.test/pages/track", links["track_order"])
	assert.NotContains(t, links, "contact")
}

func TestImportantLinksSkipAnchorsWithoutText(t *testing.T) {
	doc := parseDoc(t, `<a href="/pages/about"></a><a href="">About our story</a>`)

	links := classifyImportantLinks(doc, "https://acme.test")
	assert.Empty(t, links)
}

func TestHomepageFixtureOverride(t *testing.T) {
	sf := newStorefront(t, map[string]string{"/": `<html><head><title>Bare</title></head><body></body></html>`})

	svc := testService(Options{Fixtures: Fixtures{
		"127.0.0.1": {
			SocialHandles:      map[string]string{"instagram": "acme_official"},
			ImportantLinkPaths: map[string]string{"contact": "/pages/contact"},
		},
	}})

	content := svc.extractHomepage(context.Background(), sf.origin())
	require.NotNil(t, content)
	assert.Equal(t, "acme_official", content.SocialHandles["instagram"])
	assert.Equal(t, sf.origin()+"/pages/contact", content.ImportantLinks["contact"])
}
