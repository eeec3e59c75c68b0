package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/legisdoc"
)

// sessionFile is the on-disk form of a deferred review session.
type sessionFile struct {
	ID            string                          `json:"id"`
	CommitteeID   string                          `json:"committeeId,omitempty"`
	CreatedAt     time.Time                       `json:"createdAt"`
	Confirmations []legisdoc.DeferredConfirmation `json:"confirmations"`
}

// saveSession writes the session to path. An empty session removes any
// stale file so a later review run does not re-present old candidates.
func saveSession(path string, session *legisdoc.ReviewSession) error {
	if session.Len() == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session file %q: %w", path, err)
		}
		return nil
	}
	raw, err := json.MarshalIndent(sessionFile{
		ID:            session.ID,
		CommitteeID:   session.CommitteeID,
		CreatedAt:     session.CreatedAt,
		Confirmations: session.Confirmations(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write session file %q: %w", path, err)
	}
	return nil
}

// loadSession reads a session file. A missing file returns ENOTFOUND.
func loadSession(path string) (*legisdoc.ReviewSession, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, legisdoc.Errorf(legisdoc.ENOTFOUND, "no deferred review session at %q", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file %q: %w", path, err)
	}
	var file sessionFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse session file %q: %w", path, err)
	}
	session := legisdoc.NewReviewSession(file.CommitteeID)
	if file.ID != "" {
		session.ID = file.ID
	}
	if !file.CreatedAt.IsZero() {
		session.CreatedAt = file.CreatedAt
	}
	for _, c := range file.Confirmations {
		session.Add(c)
	}
	return session, nil
}
