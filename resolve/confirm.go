package resolve

import (
	"context"

	"github.com/fwojciec/legisdoc"
)

// Confidence thresholds for the deferred-mode oracle gate. A bill-bound
// strategy is only second-guessed when the candidate looks weak; a
// committee-proven strategy is trusted once the pattern is established and
// the candidate is at least plausible.
const (
	boundConfidenceFloor  = 0.3
	provenConfidenceFloor = 0.5
)

// outcome is the confirmation protocol's verdict on one candidate.
type outcome struct {
	accepted    bool
	confirmed   bool
	needsReview bool
}

// confirm routes a discovered candidate through the configured review
// mode. A rejected candidate means the orchestrator moves on to the next
// strategy in the sequence.
func (r *Resolver) confirm(ctx context.Context, bill legisdoc.BillRef, kind legisdoc.DocumentKind, tier int, desc legisdoc.Descriptor, candidate *legisdoc.Candidate) (outcome, error) {
	switch r.Config.ReviewMode {
	case legisdoc.ReviewOn:
		return r.confirmInteractive(ctx, bill, kind, candidate)
	case legisdoc.ReviewDeferred:
		return r.confirmDeferred(ctx, bill, kind, tier, desc, candidate), nil
	default:
		// Headless: accept everything, trust nothing.
		return outcome{accepted: true, needsReview: true}, nil
	}
}

// confirmInteractive asks the human now. Their acceptance is the one path
// in this mode that sets the confirmed bit.
func (r *Resolver) confirmInteractive(ctx context.Context, bill legisdoc.BillRef, kind legisdoc.DocumentKind, candidate *legisdoc.Candidate) (outcome, error) {
	if r.Confirmer == nil {
		return outcome{}, legisdoc.Errorf(legisdoc.EINVALID, "interactive review requires a confirmer")
	}
	accepted, err := r.Confirmer.Confirm(ctx, legisdoc.Confirmation{
		BillID:    bill.BillID,
		Kind:      kind,
		Preview:   candidate.Preview,
		FullText:  candidate.FullText,
		SourceURL: candidate.SourceURL,
	})
	if err != nil {
		return outcome{}, err
	}
	return outcome{accepted: accepted, confirmed: accepted}, nil
}

// confirmDeferred consults the oracle when the tier gate calls for it,
// then falls back to confidence-based auto-acceptance or the deferred
// review queue. Only an unambiguous oracle "no" rejects the candidate.
func (r *Resolver) confirmDeferred(ctx context.Context, bill legisdoc.BillRef, kind legisdoc.DocumentKind, tier int, desc legisdoc.Descriptor, candidate *legisdoc.Candidate) outcome {
	consult := r.shouldConsultOracle(bill, kind, tier, desc, candidate)

	if consult && r.Oracle != nil {
		switch r.consultOracle(ctx, bill, kind, desc, candidate) {
		case legisdoc.DecisionYes:
			// Oracle-confirmed is not human-confirmed: accepted, but the
			// durable confirmed bit stays unset.
			return outcome{accepted: true}
		case legisdoc.DecisionNo:
			return outcome{}
		}
		// Unsure falls through to the confidence check.
	} else if !consult && tier != tierCostFallback {
		// The gate said the candidate is trustworthy on its own: a bound
		// strategy with a non-weak candidate, or an established committee
		// pattern with a plausible one. Silently accepted.
		return outcome{accepted: true}
	}

	if candidate.Confidence >= r.Config.AutoAcceptConfidence {
		return outcome{accepted: true}
	}

	if r.Session != nil {
		r.Session.Add(legisdoc.DeferredConfirmation{
			BillID:     bill.BillID,
			Kind:       kind,
			Strategy:   desc.ID,
			Preview:    candidate.Preview,
			SourceURL:  candidate.SourceURL,
			Confidence: candidate.Confidence,
		})
	}
	return outcome{accepted: true, needsReview: true}
}

// shouldConsultOracle implements the tier gate: bill-bound strategies are
// consulted only on weak candidates, cost-fallback strategies always, and
// committee-proven strategies unless the committee's pattern is
// established and the candidate clears the proven floor.
func (r *Resolver) shouldConsultOracle(bill legisdoc.BillRef, kind legisdoc.DocumentKind, tier int, desc legisdoc.Descriptor, candidate *legisdoc.Candidate) bool {
	switch tier {
	case tierBillBound:
		return candidate.Confidence < boundConfidenceFloor
	case tierCommitteeProven:
		stats, ok := r.Store.StrategyStats(bill.CommitteeID, kind, desc.ID)
		if ok && stats.Established() && candidate.Confidence >= provenConfidenceFloor {
			return false
		}
		return true
	default:
		return true
	}
}

// consultOracle asks the oracle about the candidate and records the
// decision. Unavailability and errors collapse to unsure.
func (r *Resolver) consultOracle(ctx context.Context, bill legisdoc.BillRef, kind legisdoc.DocumentKind, desc legisdoc.Descriptor, candidate *legisdoc.Candidate) legisdoc.Decision {
	decision, err := r.Oracle.Decide(ctx, legisdoc.OracleRequest{
		Excerpt: legisdoc.TruncateWords(candidate.Text(), legisdoc.ExcerptWords),
		Kind:    kind,
		BillID:  bill.BillID,
	})
	if err != nil {
		r.logger().Warn("oracle unavailable, treating as unsure",
			"bill", bill.BillID, "kind", kind, "err", err)
		decision = legisdoc.DecisionUnsure
	}

	if r.Audit != nil {
		auditErr := r.Audit.Record(ctx, legisdoc.AuditEvent{
			RunID:    r.RunID,
			Type:     legisdoc.AuditOracleDecision,
			BillID:   bill.BillID,
			Kind:     kind,
			Strategy: desc.ID,
			Decision: string(decision),
		})
		if auditErr != nil {
			r.logger().Warn("audit record failed", "bill", bill.BillID, "err", auditErr)
		}
	}

	return decision
}
