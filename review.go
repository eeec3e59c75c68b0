package legisdoc

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DeferredConfirmation is a tentatively accepted candidate queued for later
// human review.
type DeferredConfirmation struct {
	ID         string
	BillID     string
	Kind       DocumentKind
	Strategy   string
	Preview    string
	SourceURL  string
	Confidence float64
	CreatedAt  time.Time
}

// ReviewSession collects deferred confirmations for one committee so they
// can be reviewed in a single sitting. Add is safe for concurrent
// producers; the read accessors are meant for use after resolution ends.
type ReviewSession struct {
	ID          string
	CommitteeID string
	CreatedAt   time.Time

	mu            sync.Mutex
	confirmations []DeferredConfirmation
}

// NewReviewSession creates an empty session for a committee.
func NewReviewSession(committeeID string) *ReviewSession {
	return &ReviewSession{
		ID:          shortID(),
		CommitteeID: committeeID,
		CreatedAt:   time.Now().UTC(),
	}
}

// Add queues a confirmation, assigning it an id if it has none.
func (s *ReviewSession) Add(c DeferredConfirmation) {
	if c.ID == "" {
		c.ID = shortID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	s.confirmations = append(s.confirmations, c)
	s.mu.Unlock()
}

// Confirmations returns a snapshot of the queued confirmations.
func (s *ReviewSession) Confirmations() []DeferredConfirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DeferredConfirmation, len(s.confirmations))
	copy(out, s.confirmations)
	return out
}

// Len returns the number of queued confirmations.
func (s *ReviewSession) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.confirmations)
}

// CountByKind returns how many queued confirmations target the given kind.
func (s *ReviewSession) CountByKind(kind DocumentKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.confirmations {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// BillIDs returns the unique bill ids in the session, in first-seen order.
func (s *ReviewSession) BillIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool)
	var ids []string
	for _, c := range s.confirmations {
		if !seen[c.BillID] {
			seen[c.BillID] = true
			ids = append(ids, c.BillID)
		}
	}
	return ids
}

// shortID returns an 8-character identifier for review bookkeeping.
func shortID() string {
	return uuid.New().String()[:8]
}
