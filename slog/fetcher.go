// Package slog provides logging decorators for jobpress interfaces
// using the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/rojgarbhaskar/jobpress"
)

// Ensure Fetcher implements jobpress.Fetcher.
var _ jobpress.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a jobpress.Fetcher with request logging.
type Fetcher struct {
	next   jobpress.Fetcher
	logger *slog.Logger
}

// NewFetcher creates a new logging Fetcher.
func NewFetcher(next jobpress.Fetcher, logger *slog.Logger) *Fetcher {
	return &Fetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs URL, size, duration,
// and error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	markup, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Warn("fetch failed",
			"url", url,
			"duration", time.Since(begin),
			"error", err,
		)
		return "", err
	}
	f.logger.Debug("fetch",
		"url", url,
		"bytes", len(markup),
		"duration", time.Since(begin),
	)
	return markup, nil
}

// Close delegates to the wrapped fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}
