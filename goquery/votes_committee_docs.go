package goquery

import (
	"context"
	"strings"

	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/doccache"
)

var _ legisdoc.Strategy = (*VotesCommitteeDocs)(nil)

// VotesCommitteeDocs finds the vote record among the committee's posted
// documents. Most expensive strategy: a committee page fetch plus a
// document download and extraction.
type VotesCommitteeDocs struct {
	docs    *doccache.Service
	baseURL string
}

// NewVotesCommitteeDocs creates a new VotesCommitteeDocs strategy.
// baseURL is the legislature site root used to build committee pages.
func NewVotesCommitteeDocs(docs *doccache.Service, baseURL string) *VotesCommitteeDocs {
	return &VotesCommitteeDocs{docs: docs, baseURL: baseURL}
}

// Descriptor returns the strategy's static identity.
func (s *VotesCommitteeDocs) Descriptor() legisdoc.Descriptor {
	return legisdoc.Descriptor{
		ID:       "votes/committee_docs",
		Kind:     legisdoc.KindVotes,
		Cost:     5,
		Location: "committee documents list",
	}
}

// committeeDocsURL builds the committee's document listing page URL.
func (s *VotesCommitteeDocs) committeeDocsURL(committeeID string) string {
	return strings.TrimRight(s.baseURL, "/") + "/Committees/Detail/" + committeeID + "/Documents"
}

// Discover scans the committee's document listing for a vote record
// belonging to the bill and extracts its text.
func (s *VotesCommitteeDocs) Discover(ctx context.Context, bill legisdoc.BillRef) (*legisdoc.Candidate, error) {
	if bill.CommitteeID == "" {
		return nil, nil
	}
	pageURL := s.committeeDocsURL(bill.CommitteeID)
	html, err := s.docs.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	docURL := findDocumentLink(doc, pageURL, bill.BillID, "vote", "roll call", "poll")
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
		Confidence: scoreCandidate(text, docURL, bill, "yea", "nay", "vote", "roll call"),
	}, nil
}

// Parse extracts member records from the document's text.
func (s *VotesCommitteeDocs) Parse(ctx context.Context, bill legisdoc.BillRef, candidate *legisdoc.Candidate) (*legisdoc.ParseResult, error) {
	text := candidate.FullText
	if text == "" {
		var err error
		text, err = s.docs.ExtractText(ctx, candidate.SourceURL, bill.BillID)
		if err != nil {
			return nil, err
		}
	}

	result := parseVoteText(text)
	if result == nil {
		// The document is a vote record we cannot parse into rows; keep
		// the location without the structured payload.
		result = &legisdoc.ParseResult{}
	}
	result.SourceURL = candidate.SourceURL
	return result, nil
}
