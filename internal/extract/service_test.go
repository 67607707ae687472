package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractInvalidOrigin(t *testing.T) {
	svc := testService(Options{})

	for _, raw := range []string{"", "not a url", "ftp://store.test", "https://"} {
		_, err := svc.Extract(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidOrigin, "origin %q", raw)
	}
}

func TestExtractMergesAllUnits(t *testing.T) {
	policyText := strings.Repeat("Your data stays with us. ", 10)
	sf := newStorefront(t, map[string]string{
		"/": `<html><head><title>Acme Threads</title></head><body>
			<div class="about-us">We are a small independent label crafting durable everyday essentials.</div>
			<a href="https://instagram.com/acme_threads">Instagram</a>
			<a href="/pages/contact">Contact</a>
			<div class="featured-product"><h3>Hero Tee</h3><a href="/products/hero-tee"></a></div>
			<p>write to hello@acme.test</p>
		</body></html>`,
		"/products.json":        `{"products":[{"title":"Widget","handle":"widget","variants":[{"price":"9.99"}],"images":[{"src":"http://x/im.jpg"}]}]}`,
		"/pages/privacy-policy": `<div class="page-content">` + policyText + `</div>`,
		"/pages/faq":            `<div class="faq"><h3>Do you ship internationally?</h3><div class="answer">Yes.</div></div>`,
	})

	svc := testService(Options{})
	insights, err := svc.Extract(context.Background(), sf.origin()+"/")
	require.NoError(t, err)

	assert.Equal(t, "Acme Threads", insights.BrandName)
	assert.NotEmpty(t, insights.BrandContext)

	require.Len(t, insights.ProductCatalog, 1)
	p := insights.ProductCatalog[0]
	assert.Equal(t, "Widget", p.Title)
	assert.Equal(t, "9.99", p.Price)
	assert.Equal(t, "http://x/im.jpg", p.FeaturedImage)
	assert.Equal(t, sf.origin()+"/products/widget", p.URL)

	require.Len(t, insights.HeroProducts, 1)
	assert.Equal(t, "Hero Tee", insights.HeroProducts[0].Title)

	assert.Equal(t, normalizeText(policyText), insights.PrivacyPolicy)
	assert.Empty(t, insights.ReturnPolicy)

	require.Len(t, insights.FAQs, 1)
	assert.Equal(t, "acme_threads", insights.SocialHandles["instagram"])
	assert.Equal(t, []string{"hello@acme.test"}, insights.ContactDetails.Emails)
	assert.Equal(t, sf.origin()+"/pages/contact", insights.ImportantLinks["contact"])

	summary := insights.Summarize()
	assert.Equal(t, 1, summary.Products)
	assert.Equal(t, 1, summary.FAQs)
}

func TestExtractAbandonsHangingUnit(t *testing.T) {
	homepage := `<html><head><title>Slowpoke Store</title></head><body>
		<a href="/pages/contact">Contact</a></body></html>`

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write([]byte(homepage))
		case "/products.json", "/collections/all":
			// Catalog unit hangs well past the run budget.
			time.Sleep(3 * time.Second)
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := testService(Options{Budget: 500 * time.Millisecond})

	start := time.Now()
	insights, err := svc.Extract(context.Background(), server.URL)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Empty(t, insights.ProductCatalog, "abandoned unit must contribute nothing")
	assert.Equal(t, "Slowpoke Store", insights.BrandName, "other units still complete")
	assert.Contains(t, insights.ImportantLinks, "contact")
	assert.Less(t, elapsed, 2*time.Second, "run must be bounded by the budget, not the hang")
}

func TestExtractIdempotentAgainstStaticMarkup(t *testing.T) {
	sf := newStorefront(t, map[string]string{
		"/": `<html><head><title>Static Store</title></head><body>
			<a href="https://instagram.com/static_store">ig</a>
			<a href="/pages/about">About our story</a>
			<p>hello@static.test +91 9876543210</p>
		</body></html>`,
		"/products.json": `{"products":[{"title":"One","handle":"one","variants":[{"price":"1.00"}]}]}`,
	})

	svc := testService(Options{})

	first, err := svc.Extract(context.Background(), sf.origin())
	require.NoError(t, err)
	second, err := svc.Extract(context.Background(), sf.origin())
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestNormalizeOrigin(t *testing.T) {
	origin, err := NormalizeOrigin(" https://example-shop.test/ ")
	require.NoError(t, err)
	assert.Equal(t, "https://example-shop.test", origin)
}
