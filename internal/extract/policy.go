package extract

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/brandlens/shopify-insights/internal/locator"
)

const (
	// policyMinLength separates real policy content from boilerplate or
	// near-empty pages.
	policyMinLength = 200
	policyMaxLength = 2000

	probeTimeout = 8 * time.Second
)

// PolicyKind names one of the legal documents probed per store.
type PolicyKind string

const (
	PolicyPrivacy PolicyKind = "privacy"
	PolicyReturn  PolicyKind = "return"
	PolicyRefund  PolicyKind = "refund"
)

var policyPaths = map[PolicyKind][]string{
	PolicyPrivacy: {
		"/pages/privacy-policy", "/privacy-policy", "/privacy",
		"/pages/privacy", "/legal/privacy", "/policies/privacy-policy",
	},
	PolicyReturn: {
		"/pages/return-policy", "/return-policy", "/returns",
		"/pages/returns", "/policies/return-policy", "/return",
	},
	PolicyRefund: {
		"/pages/refund-policy", "/refund-policy", "/refunds",
		"/pages/refunds", "/policies/refund-policy", "/refund",
	},
}

var policyContentSelectors = []string{
	".page-content", ".main-content", ".policy-content",
	".content", "#content", ".page", ".shopify-policy__container",
}

// extractPolicies probes each policy kind's candidate paths and returns the
// documents keyed by kind. A kind with no path clearing the minimum length
// is simply absent.
func (s *Service) extractPolicies(ctx context.Context, origin string) map[PolicyKind]string {
	found := make(map[PolicyKind]string, len(policyPaths))
	for _, kind := range []PolicyKind{PolicyPrivacy, PolicyReturn, PolicyRefund} {
		if text := s.probePolicy(ctx, origin, kind); text != "" {
			found[kind] = text
		}
	}
	return found
}

// probePolicy walks a kind's candidate paths in order and accepts the first
// page whose stripped text reaches the minimum length.
func (s *Service) probePolicy(ctx context.Context, origin string, kind PolicyKind) string {
	for _, path := range policyPaths[kind] {
		resp, err := s.fetcher.GetWithTimeout(ctx, origin+path, probeTimeout)
		if err != nil {
			continue
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
		if err != nil {
			continue
		}
		doc.Find("script, style").Remove()

		var text string
		if sel := locator.First(doc, policyContentSelectors); sel != nil {
			text = normalizeText(sel.First().Text())
		}
		if text == "" {
			text = normalizeText(doc.Text())
		}

		if len([]rune(text)) >= policyMinLength {
			s.logger.Info("policy found", "origin", origin, "kind", string(kind), "path", path, "length", len(text))
			return truncate(text, policyMaxLength)
		}
	}
	return ""
}
