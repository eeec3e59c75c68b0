package legisdoc

import (
	"context"
	"time"
)

// AuditEventType classifies audit log entries.
type AuditEventType string

// Audit event types.
const (
	AuditOracleDecision AuditEventType = "oracle_decision"
	AuditResolution     AuditEventType = "resolution"
)

// AuditEvent records one decision made during resolution so automated
// acceptance can be inspected after the fact.
type AuditEvent struct {
	ID        string         `json:"id"`
	RunID     string         `json:"runId"`
	Type      AuditEventType `json:"type"`
	BillID    string         `json:"billId"`
	Kind      DocumentKind   `json:"kind"`
	Strategy  string         `json:"strategy,omitempty"`
	Decision  string         `json:"decision,omitempty"` // yes/no/unsure, accepted/rejected, present/absent
	Detail    string         `json:"detail,omitempty"`
	Duration  time.Duration  `json:"duration,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AuditFilter restricts Events queries.
type AuditFilter struct {
	RunID  *string
	BillID *string
	Type   *AuditEventType

	Limit int
}

// AuditService persists audit events across runs.
type AuditService interface {
	// BeginRun registers a new run and returns its id.
	BeginRun(ctx context.Context) (string, error)

	// Record stores one event. Failures are the caller's to log and
	// swallow; auditing must never break resolution.
	Record(ctx context.Context, event AuditEvent) error

	// Events retrieves events matching the filter, newest first.
	Events(ctx context.Context, filter AuditFilter) ([]AuditEvent, error)

	// CleanupRuns deletes runs older than the retention window, keeping at
	// least keepRuns most recent runs.
	CleanupRuns(ctx context.Context, retention time.Duration, keepRuns int) error
}
