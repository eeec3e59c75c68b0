package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		ctx := context.Background()

		var runCount int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&runCount)
		require.NoError(t, err)

		var eventCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_events").Scan(&eventCount)
		require.NoError(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(t.TempDir() + "/audit.db")
		require.NoError(t, db.Open())
		defer db.Close()

		var journalMode string
		err := db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})
}

func TestAuditService_Record(t *testing.T) {
	t.Parallel()

	t.Run("records and retrieves events", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		svc := sqlite.NewAuditService(db)
		ctx := context.Background()

		runID, err := svc.BeginRun(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, runID)

		err = svc.Record(ctx, legisdoc.AuditEvent{
			RunID:    runID,
			Type:     legisdoc.AuditOracleDecision,
			BillID:   "H100",
			Kind:     legisdoc.KindSummary,
			Strategy: "summary_bill_tab",
			Decision: "yes",
			Duration: 1200 * time.Millisecond,
		})
		require.NoError(t, err)

		events, err := svc.Events(ctx, legisdoc.AuditFilter{RunID: &runID})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.NotEmpty(t, events[0].ID)
		assert.Equal(t, legisdoc.AuditOracleDecision, events[0].Type)
		assert.Equal(t, "H100", events[0].BillID)
		assert.Equal(t, legisdoc.KindSummary, events[0].Kind)
		assert.Equal(t, "yes", events[0].Decision)
		assert.Equal(t, 1200*time.Millisecond, events[0].Duration)
		assert.False(t, events[0].CreatedAt.IsZero())
	})

	t.Run("rejects events without a run id", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		svc := sqlite.NewAuditService(db)

		err := svc.Record(context.Background(), legisdoc.AuditEvent{BillID: "H100"})
		require.Error(t, err)
		assert.Equal(t, legisdoc.EINVALID, legisdoc.ErrorCode(err))
	})
}

func TestAuditService_Events(t *testing.T) {
	t.Parallel()

	t.Run("filters by bill and type with limit", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		svc := sqlite.NewAuditService(db)
		ctx := context.Background()

		runID, err := svc.BeginRun(ctx)
		require.NoError(t, err)

		for _, e := range []legisdoc.AuditEvent{
			{RunID: runID, Type: legisdoc.AuditResolution, BillID: "H100", Kind: legisdoc.KindSummary, Decision: "present"},
			{RunID: runID, Type: legisdoc.AuditOracleDecision, BillID: "H100", Kind: legisdoc.KindVotes, Decision: "unsure"},
			{RunID: runID, Type: legisdoc.AuditResolution, BillID: "S50", Kind: legisdoc.KindSummary, Decision: "absent"},
		} {
			require.NoError(t, svc.Record(ctx, e))
		}

		billID := "H100"
		events, err := svc.Events(ctx, legisdoc.AuditFilter{BillID: &billID})
		require.NoError(t, err)
		assert.Len(t, events, 2)

		eventType := legisdoc.AuditResolution
		events, err = svc.Events(ctx, legisdoc.AuditFilter{Type: &eventType})
		require.NoError(t, err)
		assert.Len(t, events, 2)

		events, err = svc.Events(ctx, legisdoc.AuditFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})
}

func TestAuditService_CleanupRuns(t *testing.T) {
	t.Parallel()

	t.Run("keeps recent runs inside the retention window", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		svc := sqlite.NewAuditService(db)
		ctx := context.Background()

		runID, err := svc.BeginRun(ctx)
		require.NoError(t, err)
		require.NoError(t, svc.Record(ctx, legisdoc.AuditEvent{
			RunID: runID, Type: legisdoc.AuditResolution, BillID: "H100", Kind: legisdoc.KindSummary,
		}))

		require.NoError(t, svc.CleanupRuns(ctx, 30*24*time.Hour, 5))

		events, err := svc.Events(ctx, legisdoc.AuditFilter{RunID: &runID})
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("deletes aged runs beyond keepRuns and cascades events", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		svc := sqlite.NewAuditService(db)
		ctx := context.Background()

		runID, err := svc.BeginRun(ctx)
		require.NoError(t, err)
		require.NoError(t, svc.Record(ctx, legisdoc.AuditEvent{
			RunID: runID, Type: legisdoc.AuditResolution, BillID: "H100", Kind: legisdoc.KindSummary,
		}))

		// Age the run past any retention window.
		_, err = db.ExecContext(ctx, "UPDATE runs SET started_at = ? WHERE id = ?",
			time.Now().UTC().Add(-365*24*time.Hour).Format(time.RFC3339), runID)
		require.NoError(t, err)

		require.NoError(t, svc.CleanupRuns(ctx, 30*24*time.Hour, 0))

		events, err := svc.Events(ctx, legisdoc.AuditFilter{RunID: &runID})
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}
