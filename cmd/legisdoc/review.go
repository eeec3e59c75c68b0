package main

import (
	"fmt"

	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/console"
)

// Run executes the review command.
func (c *ReviewCmd) Run(deps *Dependencies) error {
	session, err := loadSession(deps.SessionPath)
	if err != nil {
		if legisdoc.ErrorCode(err) == legisdoc.ENOTFOUND {
			fmt.Fprintln(deps.Stdout, "Nothing to review.")
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", legisdoc.ErrorMessage(err))
		return err
	}

	review := &console.Review{
		Store: deps.Store,
		In:    deps.Stdin,
		Out:   deps.Stdout,
	}

	stats, err := review.Run(deps.Ctx, session)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", legisdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nReviewed %d: %d accepted, %d rejected, %d skipped\n",
		stats.Accepted+stats.Rejected+stats.Skipped, stats.Accepted, stats.Rejected, stats.Skipped)

	// Skipped candidates stay queued for a later sitting. The store is
	// the authority: accepting clears the needs-review flag and rejecting
	// overwrites the entry, so anything still flagged was skipped.
	remaining := legisdoc.NewReviewSession(session.CommitteeID)
	for _, conf := range session.Confirmations() {
		if result, ok := deps.Store.Result(conf.BillID, conf.Kind); ok && result.NeedsReview {
			remaining.Add(conf)
		}
	}
	if err := saveSession(deps.SessionPath, remaining); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: %v\n", err)
	}

	return nil
}
