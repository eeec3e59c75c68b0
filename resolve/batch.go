package resolve

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/legisdoc"
	"golang.org/x/sync/errgroup"
)

// Runner resolves many bills, bounded-concurrently, flushing committee
// checkpoints as it goes.
type Runner struct {
	Resolver    *Resolver
	Concurrency int

	// Kinds selects which document kinds to resolve per bill. Defaults to
	// both summary and votes.
	Kinds []legisdoc.DocumentKind
}

// Result holds the outcome of a batch run.
type Result struct {
	Resolved int // (bill, kind) pairs processed
	Present  int
	Absent   int
	Failed   int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	BillID    string
	Kind      legisdoc.DocumentKind
	Completed int
	Total     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressResolved
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Run resolves the requested kinds for every bill. Bills are grouped by
// committee; within a group resolutions run concurrently, and the state
// store is flushed after each committee so an interrupted run loses at
// most one committee's worth of work. Per-bill failures are counted, not
// propagated; Run returns an error only on cancellation.
func (r *Runner) Run(ctx context.Context, bills []legisdoc.BillRef, progress ProgressFunc) (*Result, error) {
	kinds := r.Kinds
	if len(kinds) == 0 {
		kinds = []legisdoc.DocumentKind{legisdoc.KindSummary, legisdoc.KindVotes}
	}
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = legisdoc.DefaultConfig().Workers
	}

	total := len(bills) * len(kinds)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	var present, absent, failed, completed atomic.Int64

	for _, group := range groupByCommittee(bills) {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)

		for _, bill := range group {
			for _, kind := range kinds {
				bill, kind := bill, kind
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					result, err := r.Resolver.Resolve(gctx, bill, kind)
					done := completed.Add(1)
					switch {
					case err != nil:
						failed.Add(1)
						if progress != nil {
							progress(ProgressEvent{
								Type: ProgressFailed, BillID: bill.BillID, Kind: kind,
								Completed: int(done), Total: total, Error: err,
							})
						}
					default:
						if result.Present {
							present.Add(1)
						} else {
							absent.Add(1)
						}
						if progress != nil {
							progress(ProgressEvent{
								Type: ProgressResolved, BillID: bill.BillID, Kind: kind,
								Completed: int(done), Total: total,
							})
						}
					}
					return nil
				})
			}
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}

		// Committee checkpoint.
		if err := r.Resolver.Store.Flush(); err != nil {
			r.Resolver.logger().Warn("state flush failed", "err", err)
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Resolved: int(completed.Load()),
		Present:  int(present.Load()),
		Absent:   int(absent.Load()),
		Failed:   int(failed.Load()),
	}
	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: result.Resolved, Total: total})
	}
	return result, nil
}

// groupByCommittee splits bills into per-committee groups, preserving the
// input order of committees and of bills within each.
func groupByCommittee(bills []legisdoc.BillRef) [][]legisdoc.BillRef {
	byCommittee := make(map[string]int)
	var groups [][]legisdoc.BillRef
	for _, bill := range bills {
		idx, ok := byCommittee[bill.CommitteeID]
		if !ok {
			idx = len(groups)
			byCommittee[bill.CommitteeID] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], bill)
	}
	return groups
}
