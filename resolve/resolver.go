// Package resolve provides resolution orchestration: it drives the tiered
// strategy sequence for each (bill, document-kind) request, routes
// discovered candidates through the confirmation protocol, and records
// outcomes in the state store and committee statistics.
package resolve

import (
	"context"
	"log/slog"

	"github.com/fwojciec/legisdoc"
)

// Resolver orchestrates document resolution for bills.
type Resolver struct {
	Store      legisdoc.StateStore
	Registries map[legisdoc.DocumentKind]*legisdoc.Registry
	Oracle     legisdoc.Oracle         // optional; deferred mode degrades to unsure without it
	Confirmer  legisdoc.Confirmer      // required for interactive mode only
	Session    *legisdoc.ReviewSession // optional; collects deferred confirmations
	Audit      legisdoc.AuditService   // optional
	RunID      string
	Config     legisdoc.Config
	Logger     *slog.Logger
}

// attempt pairs a strategy with the tier it was selected from. The tier
// drives the oracle gate in deferred mode.
type attempt struct {
	strategy legisdoc.Strategy
	tier     int
}

// Selection tiers.
const (
	tierBillBound       = 0
	tierCommitteeProven = 1
	tierCostFallback    = 2
)

// ResolveSummary resolves the committee summary document for a bill.
func (r *Resolver) ResolveSummary(ctx context.Context, bill legisdoc.BillRef) (legisdoc.DocumentResult, error) {
	return r.Resolve(ctx, bill, legisdoc.KindSummary)
}

// ResolveVotes resolves the committee vote record for a bill.
func (r *Resolver) ResolveVotes(ctx context.Context, bill legisdoc.BillRef) (legisdoc.DocumentResult, error) {
	return r.Resolve(ctx, bill, legisdoc.KindVotes)
}

// Resolve finds the document of the given kind for a bill. Exhausting
// every strategy without an accepted candidate returns an absent result
// and a nil error: not finding a document is a normal outcome.
func (r *Resolver) Resolve(ctx context.Context, bill legisdoc.BillRef, kind legisdoc.DocumentKind) (legisdoc.DocumentResult, error) {
	if err := bill.Validate(); err != nil {
		return legisdoc.Absent(), err
	}
	if !kind.Valid() {
		return legisdoc.Absent(), legisdoc.Errorf(legisdoc.EINVALID, "invalid document kind %q", kind)
	}
	reg, ok := r.Registries[kind]
	if !ok || reg.Len() == 0 {
		return legisdoc.Absent(), legisdoc.Errorf(legisdoc.EINVALID, "no strategies registered for kind %q", kind)
	}

	if result, ok := r.fastPath(ctx, bill, kind, reg); ok {
		return result, nil
	}

	for _, a := range r.sequence(bill, kind, reg) {
		desc := a.strategy.Descriptor()

		candidate, err := a.strategy.Discover(ctx, bill)
		if err != nil {
			if ctx.Err() != nil {
				return legisdoc.Absent(), ctx.Err()
			}
			// Soft-fail: one broken page or document never blocks the
			// rest of the sequence.
			r.logger().Warn("discover failed",
				"bill", bill.BillID, "kind", kind, "strategy", desc.ID, "err", err)
			continue
		}
		if candidate == nil {
			continue
		}

		outcome, err := r.confirm(ctx, bill, kind, a.tier, desc, candidate)
		if err != nil {
			r.logger().Warn("confirmation failed",
				"bill", bill.BillID, "kind", kind, "strategy", desc.ID, "err", err)
			continue
		}
		if !outcome.accepted {
			continue
		}

		result, err := r.accept(ctx, bill, kind, a.strategy, candidate, outcome)
		if err != nil {
			r.logger().Warn("parse failed",
				"bill", bill.BillID, "kind", kind, "strategy", desc.ID, "err", err)
			continue
		}
		return result, nil
	}

	result := legisdoc.Absent()
	r.recordResolution(ctx, bill, kind, "", "absent")
	return result, nil
}

// fastPath serves a confirmed binding by re-running only the bound
// strategy. A miss or failure falls through to full selection without
// clearing the confirmation; the stored entry may still be right and a
// later accepted result will overwrite it.
func (r *Resolver) fastPath(ctx context.Context, bill legisdoc.BillRef, kind legisdoc.DocumentKind, reg *legisdoc.Registry) (legisdoc.DocumentResult, bool) {
	if !r.Store.IsConfirmed(bill.BillID, kind) {
		return legisdoc.DocumentResult{}, false
	}
	strategyID, ok := r.Store.Binding(bill.BillID, kind)
	if !ok {
		return legisdoc.DocumentResult{}, false
	}
	strategy := reg.Get(strategyID)
	if strategy == nil {
		r.logger().Warn("confirmed binding references unknown strategy",
			"bill", bill.BillID, "kind", kind, "strategy", strategyID)
		return legisdoc.DocumentResult{}, false
	}

	candidate, err := strategy.Discover(ctx, bill)
	if err != nil || candidate == nil {
		return legisdoc.DocumentResult{}, false
	}
	parsed, err := strategy.Parse(ctx, bill, candidate)
	if err != nil {
		return legisdoc.DocumentResult{}, false
	}

	result := buildResult(strategy.Descriptor(), candidate, parsed, false)
	r.Store.SetResult(bill.BillID, kind, strategyID, result, true)
	r.Store.RecordSuccess(bill.CommitteeID, kind, strategyID)
	r.recordResolution(ctx, bill, kind, strategyID, "confirmed_fast_path")
	return result, true
}

// sequence builds the tiered strategy order: the bill's own binding
// first, then committee-proven strategies, then everything else by
// ascending cost. Each strategy appears at most once; the earliest tier
// wins.
func (r *Resolver) sequence(bill legisdoc.BillRef, kind legisdoc.DocumentKind, reg *legisdoc.Registry) []attempt {
	var attempts []attempt
	seen := make(map[string]bool)

	add := func(id string, tier int) {
		if seen[id] {
			return
		}
		strategy := reg.Get(id)
		if strategy == nil {
			return
		}
		seen[id] = true
		attempts = append(attempts, attempt{strategy: strategy, tier: tier})
	}

	if id, ok := r.Store.Binding(bill.BillID, kind); ok {
		add(id, tierBillBound)
	}
	for _, id := range r.Store.RankedStrategies(bill.CommitteeID, kind) {
		add(id, tierCommitteeProven)
	}
	for _, strategy := range reg.All() {
		add(strategy.Descriptor().ID, tierCostFallback)
	}

	return attempts
}

// accept parses the candidate, persists the result, and credits the
// committee statistics.
func (r *Resolver) accept(ctx context.Context, bill legisdoc.BillRef, kind legisdoc.DocumentKind, strategy legisdoc.Strategy, candidate *legisdoc.Candidate, out outcome) (legisdoc.DocumentResult, error) {
	parsed, err := strategy.Parse(ctx, bill, candidate)
	if err != nil {
		return legisdoc.DocumentResult{}, err
	}

	desc := strategy.Descriptor()
	result := buildResult(desc, candidate, parsed, out.needsReview)
	r.Store.SetResult(bill.BillID, kind, desc.ID, result, out.confirmed)
	r.Store.RecordSuccess(bill.CommitteeID, kind, desc.ID)
	r.recordResolution(ctx, bill, kind, desc.ID, "present")
	return result, nil
}

// buildResult assembles the durable result from a strategy's outputs.
func buildResult(desc legisdoc.Descriptor, candidate *legisdoc.Candidate, parsed *legisdoc.ParseResult, needsReview bool) legisdoc.DocumentResult {
	result := legisdoc.DocumentResult{
		Present:     true,
		Location:    desc.Location,
		SourceURL:   candidate.SourceURL,
		Strategy:    desc.ID,
		NeedsReview: needsReview,
	}
	if parsed != nil {
		if parsed.SourceURL != "" {
			result.SourceURL = parsed.SourceURL
		}
		result.Motion = parsed.Motion
		result.Date = parsed.Date
		result.Tallies = parsed.Tallies
		result.Records = parsed.Records
	}
	return result
}

// recordResolution writes a resolution event to the audit log, if one is
// configured. Audit failures are logged and swallowed.
func (r *Resolver) recordResolution(ctx context.Context, bill legisdoc.BillRef, kind legisdoc.DocumentKind, strategyID, decision string) {
	if r.Audit == nil {
		return
	}
	err := r.Audit.Record(ctx, legisdoc.AuditEvent{
		RunID:    r.RunID,
		Type:     legisdoc.AuditResolution,
		BillID:   bill.BillID,
		Kind:     kind,
		Strategy: strategyID,
		Decision: decision,
	})
	if err != nil {
		r.logger().Warn("audit record failed", "bill", bill.BillID, "err", err)
	}
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
