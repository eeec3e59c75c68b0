package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/doccache"
)

var _ legisdoc.Strategy = (*VotesBillEmbedded)(nil)

// VotesBillEmbedded finds the committee vote table embedded in the bill
// page. When the table is there it is both cheap and directly parseable
// into member records.
type VotesBillEmbedded struct {
	docs *doccache.Service
	conv legisdoc.Converter
}

// NewVotesBillEmbedded creates a new VotesBillEmbedded strategy.
func NewVotesBillEmbedded(docs *doccache.Service, conv legisdoc.Converter) *VotesBillEmbedded {
	return &VotesBillEmbedded{docs: docs, conv: conv}
}

// Descriptor returns the strategy's static identity.
func (s *VotesBillEmbedded) Descriptor() legisdoc.Descriptor {
	return legisdoc.Descriptor{
		ID:       "votes/bill_embedded",
		Kind:     legisdoc.KindVotes,
		Cost:     2,
		Location: "bill page embedded vote table",
	}
}

// Discover fetches the bill page and looks for a vote table.
func (s *VotesBillEmbedded) Discover(ctx context.Context, bill legisdoc.BillRef) (*legisdoc.Candidate, error) {
	html, err := s.docs.FetchPage(ctx, bill.BillURL)
	if err != nil {
		return nil, err
	}
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	table := findVoteTable(doc)
	if table == nil {
		return nil, nil
	}

	fragment, err := goquery.OuterHtml(table)
	if err != nil {
		return nil, err
	}
	text, err := s.conv.Convert(fragment)
	if err != nil {
		return nil, err
	}

	return &legisdoc.Candidate{
		Preview:    preview(text),
		FullText:   text,
		SourceURL:  bill.BillURL,
		Confidence: scoreCandidate(text, bill.BillURL, bill, "yea", "nay", "vote"),
	}, nil
}

// Parse re-locates the vote table (the page fetch is served from the page
// cache) and extracts member records, tallies, and the motion.
func (s *VotesBillEmbedded) Parse(ctx context.Context, bill legisdoc.BillRef, candidate *legisdoc.Candidate) (*legisdoc.ParseResult, error) {
	html, err := s.docs.FetchPage(ctx, bill.BillURL)
	if err != nil {
		return nil, err
	}
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	table := findVoteTable(doc)
	if table == nil {
		return nil, legisdoc.Errorf(legisdoc.ENOTFOUND, "vote table no longer on bill page %s", bill.BillURL)
	}

	result := parseVoteTable(table)
	result.SourceURL = candidate.SourceURL
	if result.Date == "" && !bill.HearingDate.IsZero() {
		result.Date = bill.HearingDate.Format("1/2/2006")
	}
	return result, nil
}

// findVoteTable returns the first table on the page whose cells look like
// a roll call: at least two rows ending in a recognized vote word.
func findVoteTable(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		votes := 0
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}
			if canonicalVote(cells.Last().Text()) != "" {
				votes++
			}
		})
		if votes >= 2 {
			found = table
			return false
		}
		return true
	})
	return found
}

// parseVoteTable reads member rows out of a vote table. The motion comes
// from the table caption when present.
func parseVoteTable(table *goquery.Selection) *legisdoc.ParseResult {
	result := &legisdoc.ParseResult{Tallies: make(map[string]int)}

	if caption := strings.TrimSpace(table.Find("caption").Text()); caption != "" {
		result.Motion = caption
		if m := dateRe.FindString(caption); m != "" {
			result.Date = m
		}
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		vote := canonicalVote(cells.Last().Text())
		if vote == "" {
			return
		}
		member := strings.TrimSpace(cells.First().Text())
		if member == "" {
			return
		}
		result.Records = append(result.Records, legisdoc.VoteRecord{Member: member, Vote: vote})
		result.Tallies[strings.ToLower(vote)]++
	})

	return result
}
