package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/legisdoc"
)

// Ensure LoggingOracle implements legisdoc.Oracle.
var _ legisdoc.Oracle = (*LoggingOracle)(nil)

// LoggingOracle wraps an Oracle with decision logging.
type LoggingOracle struct {
	next   legisdoc.Oracle
	logger *slog.Logger
}

// NewLoggingOracle creates a new LoggingOracle. A nil logger falls back to
// slog.Default().
func NewLoggingOracle(next legisdoc.Oracle, logger *slog.Logger) *LoggingOracle {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingOracle{next: next, logger: logger}
}

// Decide delegates to the wrapped oracle and logs the verdict.
func (o *LoggingOracle) Decide(ctx context.Context, req legisdoc.OracleRequest) (legisdoc.Decision, error) {
	begin := time.Now()
	decision, err := o.next.Decide(ctx, req)
	if err != nil {
		o.logger.Warn("oracle decision",
			"bill", req.BillID,
			"kind", req.Kind,
			"duration", time.Since(begin),
			"err", err,
		)
		return decision, err
	}
	o.logger.Info("oracle decision",
		"bill", req.BillID,
		"kind", req.Kind,
		"decision", decision,
		"duration", time.Since(begin),
	)
	return decision, nil
}
