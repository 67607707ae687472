package extract

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidOrigin is returned by Extract when the store URL is not an
// absolute http(s) URL. It is the only error the core surfaces to callers.
var ErrInvalidOrigin = errors.New("invalid store origin")

// NormalizeOrigin validates a storefront base URL and strips any trailing
// slash. The normalized origin is the identity key for caching and
// extraction.
func NormalizeOrigin(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidOrigin
	}
	return strings.TrimRight(raw, "/"), nil
}

// absoluteURL resolves href against the store origin. Already-absolute hrefs
// pass through unchanged; unparseable ones resolve to the raw href.
func absoluteURL(origin, href string) string {
	base, err := url.Parse(origin + "/")
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// normalizeText collapses runs of whitespace into single spaces, mirroring
// the visible-text view of a page with markup stripped.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate bounds s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
