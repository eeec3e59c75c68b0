package legisdoc

import "context"

// Descriptor is a strategy's static identity. Descriptors are defined at
// process start and never change.
type Descriptor struct {
	// ID is the stable identifier persisted in the state store, e.g.
	// "summary/bill_tab".
	ID string

	// Kind is the document kind this strategy targets. A strategy belongs
	// to exactly one kind.
	Kind DocumentKind

	// Cost is the relative expense of running Discover. Lower-cost
	// strategies are tried first when no history exists.
	Cost int

	// Location is a human-readable description of where this strategy
	// looks, e.g. "bill page summary tab".
	Location string
}

// Candidate is a document discovered by a strategy. Candidates are
// ephemeral: they feed the confirmation gate and are never persisted.
type Candidate struct {
	// Preview is a short excerpt suitable for a confirmation prompt.
	Preview string

	// FullText is the complete extracted text, when the strategy already
	// has it. May be empty.
	FullText string

	// SourceURL is the direct link to the discovered document.
	SourceURL string

	// Confidence is the strategy's own estimate in [0,1] that this is the
	// right document for the bill.
	Confidence float64
}

// Text returns the best available text for review: full text when present,
// otherwise the preview.
func (c *Candidate) Text() string {
	if c.FullText != "" {
		return c.FullText
	}
	return c.Preview
}

// ParseResult holds the data extracted from an accepted candidate.
type ParseResult struct {
	SourceURL string

	// Vote payload, populated by vote strategies that can parse it.
	Motion  string
	Date    string
	Tallies map[string]int
	Records []VoteRecord
}

// Strategy locates one kind of compliance document in one place/format.
//
// Discover returns (nil, nil) when the document is legitimately not there
// (a miss) and a non-nil error when the attempt itself failed (network,
// decode). The orchestrator continues past both, but they are observable
// as distinct outcomes. Discover must not write to the state store; it may
// read and write the document cache.
type Strategy interface {
	Descriptor() Descriptor
	Discover(ctx context.Context, bill BillRef) (*Candidate, error)
	Parse(ctx context.Context, bill BillRef, candidate *Candidate) (*ParseResult, error)
}
