package resolve_test

import (
	"context"
	"testing"

	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/mock"
	"github.com/fwojciec/legisdoc/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deferredConfig() legisdoc.Config {
	cfg := legisdoc.DefaultConfig()
	cfg.ReviewMode = legisdoc.ReviewDeferred
	return cfg
}

func fixedOracle(decision legisdoc.Decision) *mock.Oracle {
	return &mock.Oracle{
		DecideFn: func(_ context.Context, _ legisdoc.OracleRequest) (legisdoc.Decision, error) {
			return decision, nil
		},
	}
}

func TestResolver_Deferred_OracleYes(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	oracle := fixedOracle(legisdoc.DecisionYes)
	session := legisdoc.NewReviewSession("J33")
	r := &resolve.Resolver{
		Store: store,
		// Single unproven strategy lands in the cost tier, which always
		// consults the oracle.
		Registries: newRegistry(t, stubStrategy("A", 1, nil, &legisdoc.Candidate{
			Preview: "doc", SourceURL: "https://example.com/a.pdf", Confidence: 0.4,
		})),
		Oracle:  oracle,
		Session: session,
		Config:  deferredConfig(),
	}

	result, err := r.Resolve(context.Background(), testBill, legisdoc.KindSummary)
	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.False(t, result.NeedsReview)
	assert.Equal(t, int64(1), oracle.DecideCalls.Load())
	assert.Equal(t, 0, session.Len())
	// Oracle-confirmed is not human-confirmed.
	assert.False(t, store.IsConfirmed(testBill.BillID, legisdoc.KindSummary))
}

func TestResolver_Deferred_OracleNoSkipsStrategy(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	r := &resolve.Resolver{
		Store: store,
		Registries: newRegistry(t, stubStrategy("A", 1, nil, &legisdoc.Candidate{
			Preview: "wrong doc", SourceURL: "https://example.com/a.pdf", Confidence: 0.9,
		})),
		Oracle: fixedOracle(legisdoc.DecisionNo),
		Config: deferredConfig(),
	}

	result, err := r.Resolve(context.Background(), testBill, legisdoc.KindSummary)
	require.NoError(t, err)
	assert.False(t, result.Present)
}

func TestResolver_Deferred_UnsureHighConfidenceAutoAccepts(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	session := legisdoc.NewReviewSession("J33")
	r := &resolve.Resolver{
		Store: store,
		Registries: newRegistry(t, stubStrategy("A", 1, nil, &legisdoc.Candidate{
			Preview: "doc", SourceURL: "https://example.com/a.pdf", Confidence: 0.95,
		})),
		Oracle:  fixedOracle(legisdoc.DecisionUnsure),
		Session: session,
		Config:  deferredConfig(),
	}

	result, err := r.Resolve(context.Background(), testBill, legisdoc.KindSummary)
	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.False(t, result.NeedsReview)
	assert.Equal(t, 0, session.Len())
}

func TestResolver_Deferred_UnsureLowConfidenceEnqueues(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	session := legisdoc.NewReviewSession("J33")
	r := &resolve.Resolver{
		Store: store,
		Registries: newRegistry(t, stubStrategy("A", 1, nil, &legisdoc.Candidate{
			Preview: "doc", SourceURL: "https://example.com/a.pdf", Confidence: 0.4,
		})),
		Oracle:  fixedOracle(legisdoc.DecisionUnsure),
		Session: session,
		Config:  deferredConfig(),
	}

	result, err := r.Resolve(context.Background(), testBill, legisdoc.KindSummary)
	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.True(t, result.NeedsReview)
	require.Equal(t, 1, session.Len())

	queued := session.Confirmations()[0]
	assert.Equal(t, "H100", queued.BillID)
	assert.Equal(t, legisdoc.KindSummary, queued.Kind)
	assert.Equal(t, "A", queued.Strategy)
	assert.NotEmpty(t, queued.ID)
	assert.False(t, store.IsConfirmed(testBill.BillID, legisdoc.KindSummary))
}

func TestResolver_Deferred_OracleUnavailableTreatedAsUnsure(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	session := legisdoc.NewReviewSession("J33")
	oracle := &mock.Oracle{
		DecideFn: func(_ context.Context, _ legisdoc.OracleRequest) (legisdoc.Decision, error) {
			return legisdoc.DecisionUnsure, legisdoc.Errorf(legisdoc.EUNAVAILABLE, "oracle down")
		},
	}
	r := &resolve.Resolver{
		Store: store,
		Registries: newRegistry(t, stubStrategy("A", 1, nil, &legisdoc.Candidate{
			Preview: "doc", SourceURL: "https://example.com/a.pdf", Confidence: 0.4,
		})),
		Oracle:  oracle,
		Session: session,
		Config:  deferredConfig(),
	}

	result, err := r.Resolve(context.Background(), testBill, legisdoc.KindSummary)
	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.True(t, result.NeedsReview)
	assert.Equal(t, 1, session.Len())
}

func TestResolver_Deferred_BoundStrategySkipsOracle(t *testing.T) {
	t.Parallel()

	// Unconfirmed binding puts the strategy in the bill-bound tier; with
	// decent confidence the oracle is not consulted and the candidate is
	// trusted outright. Mid-band confidence (below the auto-accept
	// threshold) so silent acceptance cannot be mistaken for auto-accept.
	store := newTestStore(t)
	store.SetResult(testBill.BillID, legisdoc.KindSummary, "A",
		legisdoc.DocumentResult{Present: true, Strategy: "A"}, false)

	oracle := fixedOracle(legisdoc.DecisionNo) // would reject if consulted
	session := legisdoc.NewReviewSession(testBill.CommitteeID)
	r := &resolve.Resolver{
		Store: store,
		Registries: newRegistry(t, stubStrategy("A", 1, nil, &legisdoc.Candidate{
			Preview: "doc", SourceURL: "https://example.com/a.pdf", Confidence: 0.5,
		})),
		Oracle:  oracle,
		Session: session,
		Config:  deferredConfig(),
	}

	result, err := r.Resolve(context.Background(), testBill, legisdoc.KindSummary)
	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.False(t, result.NeedsReview)
	assert.Equal(t, int64(0), oracle.DecideCalls.Load())
	assert.Equal(t, 0, session.Len())
}

func TestResolver_Deferred_BoundStrategyWeakCandidateConsultsOracle(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	store.SetResult(testBill.BillID, legisdoc.KindSummary, "A",
		legisdoc.DocumentResult{Present: true, Strategy: "A"}, false)

	oracle := fixedOracle(legisdoc.DecisionYes)
	r := &resolve.Resolver{
		Store: store,
		Registries: newRegistry(t, stubStrategy("A", 1, nil, &legisdoc.Candidate{
			Preview: "doc", SourceURL: "https://example.com/a.pdf", Confidence: 0.2,
		})),
		Oracle: oracle,
		Config: deferredConfig(),
	}

	result, err := r.Resolve(context.Background(), testBill, legisdoc.KindSummary)
	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.Equal(t, int64(1), oracle.DecideCalls.Load())
}

func TestResolver_Deferred_EstablishedCommitteeSkipsOracle(t *testing.T) {
	t.Parallel()

	// streak 6, count 6: established. A plausible candidate from the
	// proven strategy is accepted without consulting the oracle.
	store := newTestStore(t)
	for i := 0; i < 6; i++ {
		store.RecordSuccess("J33", legisdoc.KindSummary, "A")
	}

	oracle := fixedOracle(legisdoc.DecisionNo)
	session := legisdoc.NewReviewSession("J33")
	r := &resolve.Resolver{
		Store: store,
		Registries: newRegistry(t, stubStrategy("A", 1, nil, &legisdoc.Candidate{
			Preview: "doc", SourceURL: "https://example.com/a.pdf", Confidence: 0.6,
		})),
		Oracle:  oracle,
		Session: session,
		Config:  deferredConfig(),
	}

	result, err := r.Resolve(context.Background(), testBill, legisdoc.KindSummary)
	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.False(t, result.NeedsReview)
	assert.Equal(t, int64(0), oracle.DecideCalls.Load())
	assert.Equal(t, 0, session.Len())
}

func TestResolver_Deferred_UnprovenCommitteeConsultsOracle(t *testing.T) {
	t.Parallel()

	// One success is history enough for the committee tier, but not an
	// established pattern, so the oracle is still consulted.
	store := newTestStore(t)
	store.RecordSuccess("J33", legisdoc.KindSummary, "A")

	oracle := fixedOracle(legisdoc.DecisionYes)
	r := &resolve.Resolver{
		Store: store,
		Registries: newRegistry(t, stubStrategy("A", 1, nil, &legisdoc.Candidate{
			Preview: "doc", SourceURL: "https://example.com/a.pdf", Confidence: 0.6,
		})),
		Oracle: oracle,
		Config: deferredConfig(),
	}

	result, err := r.Resolve(context.Background(), testBill, legisdoc.KindSummary)
	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.Equal(t, int64(1), oracle.DecideCalls.Load())
}

func TestResolver_Deferred_NoOracleConfigured(t *testing.T) {
	t.Parallel()

	// Without an oracle the consult collapses to the confidence check.
	store := newTestStore(t)
	session := legisdoc.NewReviewSession("J33")
	r := &resolve.Resolver{
		Store: store,
		Registries: newRegistry(t, stubStrategy("A", 1, nil, &legisdoc.Candidate{
			Preview: "doc", SourceURL: "https://example.com/a.pdf", Confidence: 0.4,
		})),
		Session: session,
		Config:  deferredConfig(),
	}

	result, err := r.Resolve(context.Background(), testBill, legisdoc.KindSummary)
	require.NoError(t, err)
	assert.True(t, result.Present)
	assert.True(t, result.NeedsReview)
	assert.Equal(t, 1, session.Len())
}
