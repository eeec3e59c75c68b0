package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/legisdoc"
)

// Review runs the batch review of a deferred session, walking queued
// confirmations one at a time and writing verdicts to the state store.
type Review struct {
	Store legisdoc.StateStore
	In    io.Reader
	Out   io.Writer
}

// ReviewStats summarizes a review run.
type ReviewStats struct {
	Accepted int
	Rejected int
	Skipped  int
}

// Run reviews every confirmation in the session. Accepting marks the
// stored entry confirmed (the one batch path that sets the durable bit);
// rejecting overwrites it with an absent result so the next resolution
// starts over; skipping and quitting leave entries untouched for a later
// session.
func (r *Review) Run(ctx context.Context, session *legisdoc.ReviewSession) (ReviewStats, error) {
	var stats ReviewStats
	confirmations := session.Confirmations()

	fmt.Fprintf(r.Out, "%d candidates queued for review (%d summary, %d votes) across %d bills\n",
		session.Len(),
		session.CountByKind(legisdoc.KindSummary),
		session.CountByKind(legisdoc.KindVotes),
		len(session.BillIDs()))

	scanner := bufio.NewScanner(r.In)
	for i, conf := range confirmations {
		if err := ctx.Err(); err != nil {
			stats.Skipped += len(confirmations) - i
			return stats, err
		}

		fmt.Fprintf(r.Out, "\n[%d/%d] %s %s via %s (confidence %.2f)\n",
			i+1, len(confirmations), conf.BillID, conf.Kind, conf.Strategy, conf.Confidence)
		if conf.SourceURL != "" {
			fmt.Fprintf(r.Out, "  source: %s\n", conf.SourceURL)
		}
		if conf.Preview != "" {
			fmt.Fprintf(r.Out, "  preview: %s\n", conf.Preview)
		}

		verdict, err := r.prompt(scanner)
		if err != nil {
			stats.Skipped += len(confirmations) - i
			return stats, err
		}

		switch verdict {
		case "y":
			r.Store.SetConfirmed(conf.BillID, conf.Kind, true)
			stats.Accepted++
		case "n":
			// Empty strategy id clears the bill binding, so the next
			// resolution does not retry the rejected strategy first.
			r.Store.SetResult(conf.BillID, conf.Kind, "", legisdoc.Absent(), false)
			stats.Rejected++
		case "s":
			stats.Skipped++
		case "q":
			stats.Skipped += len(confirmations) - i
			if err := r.Store.Flush(); err != nil {
				return stats, err
			}
			return stats, nil
		}
	}

	return stats, r.Store.Flush()
}

// prompt reads one verdict: accept, reject, skip, or quit.
func (r *Review) prompt(scanner *bufio.Scanner) (string, error) {
	for {
		fmt.Fprintf(r.Out, "Accept? [y]es / [n]o / [s]kip / [q]uit: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", legisdoc.Errorf(legisdoc.EUNAVAILABLE, "no interactive input")
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch answer {
		case "y", "yes":
			return "y", nil
		case "n", "no":
			return "n", nil
		case "s", "skip":
			return "s", nil
		case "q", "quit":
			return "q", nil
		}
		fmt.Fprintln(r.Out, "Please answer y, n, s, or q.")
	}
}
