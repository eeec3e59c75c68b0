package main

import (
	"fmt"

	"github.com/fwojciec/legisdoc"
)

// Run executes the audit command.
func (c *AuditCmd) Run(deps *Dependencies) error {
	filter := legisdoc.AuditFilter{Limit: c.Limit}
	if c.RunID != "" {
		filter.RunID = &c.RunID
	}
	if c.Bill != "" {
		filter.BillID = &c.Bill
	}

	events, err := deps.Audit.Events(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", legisdoc.ErrorMessage(err))
		return err
	}

	if len(events) == 0 {
		fmt.Fprintln(deps.Stdout, "No audit events recorded.")
		return nil
	}

	for _, e := range events {
		line := fmt.Sprintf("%s  %-15s %-6s %-7s %s",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Type, e.BillID, e.Kind, e.Decision)
		if e.Strategy != "" {
			line += " via " + e.Strategy
		}
		if e.Detail != "" {
			line += "  (" + e.Detail + ")"
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	return nil
}
