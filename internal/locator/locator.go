// Package locator implements the selector-priority search shared by every
// HTML-based extractor: try CSS selector candidates in ranked order and stop
// at the first one that matches anything.
package locator

import "github.com/PuerkitoBio/goquery"

// First returns the matches of the first candidate selector that yields at
// least one element, or nil when none do.
func First(doc *goquery.Document, candidates []string) *goquery.Selection {
	for _, selector := range candidates {
		sel := doc.Find(selector)
		if sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// FirstIn is First scoped to a selection instead of a whole document.
func FirstIn(root *goquery.Selection, candidates []string) *goquery.Selection {
	for _, selector := range candidates {
		sel := root.Find(selector)
		if sel.Length() > 0 {
			return sel
		}
	}
	return nil
}
