// Package goquery implements the document discovery strategies using CSS
// selectors over legislature pages. Each strategy knows one place a
// compliance document can live and how to read it.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/legisdoc"
)

// previewWords bounds the excerpt shown in confirmation prompts.
const previewWords = 80

// newDocument parses an HTML string into a goquery document.
func newDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, legisdoc.Errorf(legisdoc.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// resolveURL resolves href against base, returning "" for unusable links.
func resolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	h, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return b.ResolveReference(h).String()
}

var billIDNormalizer = regexp.MustCompile(`[.\s]+`)

// normalizeBillID collapses formatting variants: "H.100", "h 100", and
// "H100" all normalize to "H100".
func normalizeBillID(id string) string {
	return strings.ToUpper(billIDNormalizer.ReplaceAllString(id, ""))
}

// matchesBillID reports whether s mentions the bill id in any of its
// formatting variants.
func matchesBillID(s, billID string) bool {
	if billID == "" {
		return false
	}
	return strings.Contains(normalizeBillID(s), normalizeBillID(billID))
}

// containsAny reports whether s contains any of the words, case-insensitive.
func containsAny(s string, words ...string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// scoreCandidate estimates how likely text is the right document for the
// bill. The baseline is 0.5; a bill-id mention and kind-specific keywords
// raise it, very short text lowers it.
func scoreCandidate(text, sourceURL string, bill legisdoc.BillRef, keywords ...string) float64 {
	score := 0.5
	if matchesBillID(text, bill.BillID) || matchesBillID(sourceURL, bill.BillID) {
		score += 0.2
	}
	if containsAny(text, keywords...) {
		score += 0.2
	}
	if len(strings.Fields(text)) < 40 {
		score -= 0.2
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// preview returns a bounded excerpt of text for confirmation prompts.
func preview(text string) string {
	return legisdoc.TruncateWords(text, previewWords)
}

// voteWords maps recognized vote spellings to their canonical form.
var voteWords = map[string]string{
	"yea":      "Yea",
	"yes":      "Yea",
	"aye":      "Yea",
	"nay":      "Nay",
	"no":       "Nay",
	"present":  "Present",
	"absent":   "Absent",
	"reserved": "Reserved",
	"reserve":  "Reserved",
}

// canonicalVote maps a cell or token onto a canonical vote value, or ""
// when it is not a vote.
func canonicalVote(s string) string {
	return voteWords[strings.ToLower(strings.Trim(strings.TrimSpace(s), ".:-—"))]
}

var dateRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)

// parseVoteText extracts a vote record from extracted document text. Lines
// ending in a vote word become member records; a line mentioning a motion
// ("ought to pass", "ought not to pass") becomes the motion.
func parseVoteText(text string) *legisdoc.ParseResult {
	result := &legisdoc.ParseResult{Tallies: make(map[string]int)}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if result.Motion == "" && containsAny(line, "ought to pass", "ought not to pass", "study order") {
			result.Motion = line
		}
		if result.Date == "" {
			if m := dateRe.FindString(line); m != "" {
				result.Date = m
			}
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		vote := canonicalVote(fields[len(fields)-1])
		if vote == "" {
			continue
		}
		member := strings.Trim(strings.Join(fields[:len(fields)-1], " "), " -—:")
		if member == "" {
			continue
		}
		result.Records = append(result.Records, legisdoc.VoteRecord{Member: member, Vote: vote})
		result.Tallies[strings.ToLower(vote)]++
	}

	if len(result.Records) == 0 {
		return nil
	}
	return result
}
