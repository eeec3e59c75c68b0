package main

import (
	"fmt"

	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/console"
	"github.com/fwojciec/legisdoc/resolve"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	bills, err := c.bills()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", legisdoc.ErrorMessage(err))
		return err
	}

	var kinds []legisdoc.DocumentKind
	if c.Kind != "" {
		kind := legisdoc.DocumentKind(c.Kind)
		if !kind.Valid() {
			err := legisdoc.Errorf(legisdoc.EINVALID, "unknown document kind %q", c.Kind)
			fmt.Fprintf(deps.Stderr, "error: %s\n", legisdoc.ErrorMessage(err))
			return err
		}
		kinds = []legisdoc.DocumentKind{kind}
	}

	session := legisdoc.NewReviewSession(bills[0].CommitteeID)

	resolver := &resolve.Resolver{
		Store:      deps.Store,
		Registries: deps.Registries,
		Oracle:     deps.Oracle,
		Session:    session,
		Audit:      deps.Audit,
		Config:     deps.Config,
	}
	if deps.Config.ReviewMode == legisdoc.ReviewOn {
		resolver.Confirmer = console.NewConfirmer(deps.Stdin, deps.Stdout)
	}

	if deps.Audit != nil {
		runID, err := deps.Audit.BeginRun(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: audit disabled for this run: %v\n", err)
		} else {
			resolver.RunID = runID
		}
	}

	runner := &resolve.Runner{
		Resolver:    resolver,
		Concurrency: c.Concurrency,
		Kinds:       kinds,
	}

	progress := func(event resolve.ProgressEvent) {
		switch event.Type {
		case resolve.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Resolving %d documents for %d bills\n", event.Total, len(bills))
		case resolve.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s %s: %v\n", event.BillID, event.Kind, event.Error)
		case resolve.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	result, err := runner.Run(deps.Ctx, bills, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", legisdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Resolved %d: %d present, %d absent, %d failed\n",
		result.Resolved, result.Present, result.Absent, result.Failed)

	if err := saveSession(deps.SessionPath, session); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: %v\n", err)
	} else if session.Len() > 0 {
		fmt.Fprintf(deps.Stdout, "%d candidates queued. Run 'legisdoc review' to confirm them.\n", session.Len())
	}

	return nil
}

// bills assembles the work list from the file argument or the single-bill
// flags.
func (c *ResolveCmd) bills() ([]legisdoc.BillRef, error) {
	if c.Bills != "" {
		return loadBills(c.Bills)
	}
	if c.BillID == "" {
		return nil, legisdoc.Errorf(legisdoc.EINVALID, "a bills file or --bill-id is required")
	}
	bill := legisdoc.BillRef{
		BillID:      c.BillID,
		BillURL:     c.BillURL,
		CommitteeID: c.Committee,
		HearingURL:  c.HearingURL,
	}
	if err := bill.Validate(); err != nil {
		return nil, err
	}
	return []legisdoc.BillRef{bill}, nil
}
