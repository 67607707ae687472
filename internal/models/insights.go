package models

// Product is a single catalog entry. Every field is optional: the JSON feed
// fills most of them, the HTML fallback only a handful, and a partial record
// is still worth keeping.
type Product struct {
	ID              int64           `json:"id,omitempty"`
	Title           string          `json:"title"`
	Handle          string          `json:"handle,omitempty"`
	Description     string          `json:"description,omitempty"`
	Price           string          `json:"price"`
	CompareAtPrice  string          `json:"compare_at_price,omitempty"`
	Available       bool            `json:"available"`
	Images          []string        `json:"images,omitempty"`
	FeaturedImage   string          `json:"featured_image,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
	ProductType     string          `json:"product_type,omitempty"`
	Vendor          string          `json:"vendor,omitempty"`
	CreatedAt       string          `json:"created_at,omitempty"`
	UpdatedAt       string          `json:"updated_at,omitempty"`
	Options         []ProductOption `json:"options,omitempty"`
	VariantsCount   int             `json:"variants_count,omitempty"`
	URL             string          `json:"url"`
}

// ProductOption is a variant axis such as Size or Color.
type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// HeroProduct is a homepage-surfaced product teaser.
type HeroProduct struct {
	Title string `json:"title"`
	Price string `json:"price"`
	Link  string `json:"link"`
	Image string `json:"image,omitempty"`
}

// FAQEntry is one question/answer pair.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ContactDetails holds deduplicated contact channels, capped at three each.
type ContactDetails struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

// BrandInsights is the aggregate produced by one extraction run. It is
// constructed fresh per run, populated by the aggregator, and treated as an
// immutable snapshot once returned.
type BrandInsights struct {
	BrandName      string            `json:"brand_name"`
	ProductCatalog []Product         `json:"product_catalog"`
	HeroProducts   []HeroProduct     `json:"hero_products"`
	PrivacyPolicy  string            `json:"privacy_policy"`
	ReturnPolicy   string            `json:"return_policy"`
	RefundPolicy   string            `json:"refund_policy"`
	FAQs           []FAQEntry        `json:"faqs"`
	SocialHandles  map[string]string `json:"social_handles"`
	ContactDetails ContactDetails    `json:"contact_details"`
	BrandContext   string            `json:"brand_context"`
	ImportantLinks map[string]string `json:"important_links"`
}

// NewBrandInsights returns an insights record with all containers allocated
// so that absent data serializes as empty, never null.
func NewBrandInsights() *BrandInsights {
	return &BrandInsights{
		ProductCatalog: []Product{},
		HeroProducts:   []HeroProduct{},
		FAQs:           []FAQEntry{},
		SocialHandles:  map[string]string{},
		ContactDetails: ContactDetails{Emails: []string{}, Phones: []string{}},
		ImportantLinks: map[string]string{},
	}
}

// Summary gives the per-run observability counts logged by the aggregator.
type Summary struct {
	Products int `json:"products"`
	FAQs     int `json:"faqs"`
	Social   int `json:"social"`
	Links    int `json:"links"`
}

// Summarize counts the populated insight categories.
func (b *BrandInsights) Summarize() Summary {
	return Summary{
		Products: len(b.ProductCatalog),
		FAQs:     len(b.FAQs),
		Social:   len(b.SocialHandles),
		Links:    len(b.ImportantLinks),
	}
}
