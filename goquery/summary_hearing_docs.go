package goquery

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/doccache"
)

var _ legisdoc.Strategy = (*SummaryHearingDocs)(nil)

// SummaryHearingDocs finds the committee summary among the documents
// attached to the bill's hearing. Requires a document download and
// extraction, so it runs after the cheaper on-page strategies.
type SummaryHearingDocs struct {
	docs *doccache.Service
}

// NewSummaryHearingDocs creates a new SummaryHearingDocs strategy.
func NewSummaryHearingDocs(docs *doccache.Service) *SummaryHearingDocs {
	return &SummaryHearingDocs{docs: docs}
}

// Descriptor returns the strategy's static identity.
func (s *SummaryHearingDocs) Descriptor() legisdoc.Descriptor {
	return legisdoc.Descriptor{
		ID:       "summary/hearing_docs",
		Kind:     legisdoc.KindSummary,
		Cost:     4,
		Location: "hearing documents list",
	}
}

// Discover scans the hearing page's document links for a summary belonging
// to the bill and extracts its text.
func (s *SummaryHearingDocs) Discover(ctx context.Context, bill legisdoc.BillRef) (*legisdoc.Candidate, error) {
	if bill.HearingURL == "" {
		return nil, nil
	}
	html, err := s.docs.FetchPage(ctx, bill.HearingURL)
	if err != nil {
		return nil, err
	}
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	docURL := findDocumentLink(doc, bill.HearingURL, bill.BillID, "summary")
	if docURL == "" {
		return nil, nil
	}

	text, err := s.docs.ExtractText(ctx, docURL, bill.BillID)
	if err != nil {
		return nil, err
	}
	if len(text) == 0 {
		return nil, nil
	}

	return &legisdoc.Candidate{
		Preview:    preview(text),
		FullText:   text,
		SourceURL:  docURL,
		Confidence: scoreCandidate(text, docURL, bill, "summary", "committee", "recommend"),
	}, nil
}

// Parse records the summary's location.
func (s *SummaryHearingDocs) Parse(ctx context.Context, bill legisdoc.BillRef, candidate *legisdoc.Candidate) (*legisdoc.ParseResult, error) {
	return &legisdoc.ParseResult{SourceURL: candidate.SourceURL}, nil
}

// findDocumentLink returns the first link on the page that mentions the
// bill and any of the keywords, in text or href. Returns "" when none
// matches.
func findDocumentLink(doc *goquery.Document, baseURL, billID string, keywords ...string) string {
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		text := sel.Text()
		if !matchesBillID(text, billID) && !matchesBillID(href, billID) {
			return true
		}
		if !containsAny(text, keywords...) && !containsAny(href, keywords...) {
			return true
		}
		if resolved := resolveURL(baseURL, href); resolved != "" {
			found = resolved
			return false
		}
		return true
	})
	return found
}
