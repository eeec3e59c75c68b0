package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/legisdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ legisdoc.AuditService = (*AuditService)(nil)

// AuditService implements legisdoc.AuditService using SQLite.
type AuditService struct {
	db *DB
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *DB) *AuditService {
	return &AuditService{db: db}
}

// BeginRun registers a new run and returns its id.
func (s *AuditService) BeginRun(ctx context.Context) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at) VALUES (?, ?)
	`, id, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return id, nil
}

// Record stores one audit event.
func (s *AuditService) Record(ctx context.Context, event legisdoc.AuditEvent) error {
	if event.RunID == "" {
		return legisdoc.Errorf(legisdoc.EINVALID, "run id required")
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, run_id, type, bill_id, kind, strategy, decision, detail, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.RunID, string(event.Type), event.BillID, string(event.Kind),
		event.Strategy, event.Decision, event.Detail, event.Duration.Milliseconds(),
		event.CreatedAt.Format(time.RFC3339))

	return err
}

// Events retrieves events matching the filter, newest first.
func (s *AuditService) Events(ctx context.Context, filter legisdoc.AuditFilter) ([]legisdoc.AuditEvent, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, run_id, type, bill_id, kind, strategy, decision, detail, duration_ms, created_at
		FROM audit_events WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.BillID != nil {
		query.WriteString(" AND bill_id = ?")
		args = append(args, *filter.BillID)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, string(*filter.Type))
	}

	query.WriteString(" ORDER BY created_at DESC, id DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []legisdoc.AuditEvent
	for rows.Next() {
		var event legisdoc.AuditEvent
		var eventType, kind, createdAt string
		var durationMs int64

		if err := rows.Scan(&event.ID, &event.RunID, &eventType, &event.BillID, &kind,
			&event.Strategy, &event.Decision, &event.Detail, &durationMs, &createdAt); err != nil {
			return nil, err
		}

		event.Type = legisdoc.AuditEventType(eventType)
		event.Kind = legisdoc.DocumentKind(kind)
		event.Duration = time.Duration(durationMs) * time.Millisecond
		event.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	return events, rows.Err()
}

// CleanupRuns deletes runs older than the retention window, keeping at
// least keepRuns most recent runs. Events cascade with their run.
func (s *AuditService) CleanupRuns(ctx context.Context, retention time.Duration, keepRuns int) error {
	cutoff := time.Now().UTC().Add(-retention).Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM runs
		WHERE started_at < ?
		AND id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
		)
	`, cutoff, keepRuns)

	return err
}
