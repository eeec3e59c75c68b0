package legisdoc

import (
	"context"
	"strings"
)

// Decision is an oracle's verdict on a discovered candidate.
type Decision string

// Oracle decisions. Anything the oracle cannot answer cleanly collapses to
// DecisionUnsure at the call site, including oracle unavailability.
const (
	DecisionYes    Decision = "yes"
	DecisionNo     Decision = "no"
	DecisionUnsure Decision = "unsure"
)

// OracleRequest asks whether a content excerpt is the named document kind
// for the given bill. Excerpt is bounded by the caller (see ExcerptWords).
type OracleRequest struct {
	Excerpt string
	Kind    DocumentKind
	BillID  string
}

// ExcerptWords bounds the number of words sent to the oracle.
const ExcerptWords = 400

// TruncateWords returns at most n whitespace-separated words of s.
func TruncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.TrimSpace(s)
	}
	return strings.Join(words[:n], " ")
}

// Oracle is an external decision service consulted during deferred-mode
// confirmation. Implementations return EUNAVAILABLE when the service cannot
// be reached; callers treat that as DecisionUnsure.
type Oracle interface {
	Decide(ctx context.Context, req OracleRequest) (Decision, error)
}
