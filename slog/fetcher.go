// Package slog provides logging decorators for legisdoc interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/legisdoc"
)

// Ensure LoggingFetcher implements legisdoc.Fetcher.
var _ legisdoc.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   legisdoc.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher. A nil logger falls back
// to slog.Default().
func NewLoggingFetcher(next legisdoc.Fetcher, logger *slog.Logger) *LoggingFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs bytes and duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	begin := time.Now()
	data, contentType, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, "", err
	}
	f.logger.Info("fetch",
		"url", url,
		"bytes", len(data),
		"content_type", contentType,
		"duration", time.Since(begin),
	)
	return data, contentType, nil
}
