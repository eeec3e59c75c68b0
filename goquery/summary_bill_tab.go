package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/doccache"
)

var _ legisdoc.Strategy = (*SummaryBillTab)(nil)

// SummaryBillTab finds the committee summary on the bill page itself,
// in the summary tab most bills carry. Cheapest strategy: one page
// fetch, no document download.
type SummaryBillTab struct {
	docs *doccache.Service
	conv legisdoc.Converter
}

// NewSummaryBillTab creates a new SummaryBillTab strategy.
func NewSummaryBillTab(docs *doccache.Service, conv legisdoc.Converter) *SummaryBillTab {
	return &SummaryBillTab{docs: docs, conv: conv}
}

// Descriptor returns the strategy's static identity.
func (s *SummaryBillTab) Descriptor() legisdoc.Descriptor {
	return legisdoc.Descriptor{
		ID:       "summary/bill_tab",
		Kind:     legisdoc.KindSummary,
		Cost:     1,
		Location: "bill page summary tab",
	}
}

// summaryTabSelectors lists the markup variants the summary tab has
// appeared under, most specific first.
var summaryTabSelectors = []string{
	"#Summary",
	"#pinslip",
	".bill-summary",
	".tab-pane[id*='ummary']",
}

// Discover fetches the bill page and looks for a populated summary tab.
func (s *SummaryBillTab) Discover(ctx context.Context, bill legisdoc.BillRef) (*legisdoc.Candidate, error) {
	html, err := s.docs.FetchPage(ctx, bill.BillURL)
	if err != nil {
		return nil, err
	}
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	var section *goquery.Selection
	for _, selector := range summaryTabSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			section = sel
			break
		}
	}
	if section == nil {
		return nil, nil
	}

	fragment, err := goquery.OuterHtml(section)
	if err != nil {
		return nil, err
	}
	text, err := s.conv.Convert(fragment)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	return &legisdoc.Candidate{
		Preview:    preview(text),
		FullText:   text,
		SourceURL:  bill.BillURL,
		Confidence: scoreCandidate(text, bill.BillURL, bill, "summary", "committee", "recommend"),
	}, nil
}

// Parse records the summary's location; the summary text itself stays in
// the extracted-text cache.
func (s *SummaryBillTab) Parse(ctx context.Context, bill legisdoc.BillRef, candidate *legisdoc.Candidate) (*legisdoc.ParseResult, error) {
	return &legisdoc.ParseResult{SourceURL: candidate.SourceURL}, nil
}
