package legisdoc

import "context"

// Confirmation is the material shown to a human when asking whether a
// discovered candidate is the right document for a bill.
type Confirmation struct {
	BillID    string
	Kind      DocumentKind
	Preview   string
	FullText  string // optional long-form text
	SourceURL string
}

// Confirmer obtains a yes/no answer from a human. Blocking on external
// input is expected; headless implementations should return an error rather
// than fabricate an answer.
type Confirmer interface {
	Confirm(ctx context.Context, c Confirmation) (bool, error)
}
