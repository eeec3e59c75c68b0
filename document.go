package legisdoc

// DocumentKind is the category of compliance document being resolved.
type DocumentKind string

// The two document kinds tracked by the engine.
const (
	KindSummary DocumentKind = "summary"
	KindVotes   DocumentKind = "votes"
)

// Valid reports whether k is a known document kind.
func (k DocumentKind) Valid() bool {
	return k == KindSummary || k == KindVotes
}

// VoteRecord is a single member's recorded vote.
type VoteRecord struct {
	Member string `json:"member"`
	Vote   string `json:"vote"` // "Yea", "Nay", "Present", etc.
}

// DocumentResult is the durable outcome of resolving one (bill, kind) pair.
// It is written whole on acceptance and overwritten on re-resolution, never
// partially updated. Present=false is a normal outcome meaning no document
// was found (or every attempt failed; the two are indistinguishable here).
type DocumentResult struct {
	Present     bool   `json:"present"`
	Location    string `json:"location"`            // human-readable, e.g. "hearing documents (PDF)"
	SourceURL   string `json:"sourceUrl,omitempty"` // direct link to the document
	Strategy    string `json:"strategy,omitempty"`  // id of the strategy that landed
	NeedsReview bool   `json:"needsReview"`         // auto-accepted without human/oracle sign-off

	// Vote payload, populated only for KindVotes when the strategy could
	// parse it cheaply.
	Motion  string         `json:"motion,omitempty"`
	Date    string         `json:"date,omitempty"`
	Tallies map[string]int `json:"tallies,omitempty"` // {"yea": 10, "nay": 3}
	Records []VoteRecord   `json:"records,omitempty"`
}

// Absent returns the canonical "nothing found" result.
func Absent() DocumentResult {
	return DocumentResult{Present: false, Location: "unknown"}
}
