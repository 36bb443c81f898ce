package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/rojgarbhaskar/jobpress"
)

// Ensure Publisher implements jobpress.Publisher.
var _ jobpress.Publisher = (*Publisher)(nil)

// Publisher wraps a jobpress.Publisher with store-call logging.
type Publisher struct {
	next   jobpress.Publisher
	logger *slog.Logger
}

// NewPublisher creates a new logging Publisher.
func NewPublisher(next jobpress.Publisher, logger *slog.Logger) *Publisher {
	return &Publisher{next: next, logger: logger}
}

// Search delegates to the wrapped publisher and logs the query and hit
// count.
func (p *Publisher) Search(ctx context.Context, query string) ([]jobpress.StoredItem, error) {
	begin := time.Now()
	items, err := p.next.Search(ctx, query)
	if err != nil {
		p.logger.Warn("store search failed",
			"query", query,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	p.logger.Debug("store search",
		"query", query,
		"hits", len(items),
		"duration", time.Since(begin),
	)
	return items, nil
}

// Create delegates to the wrapped publisher and logs the published
// item.
func (p *Publisher) Create(ctx context.Context, post *jobpress.Post) (*jobpress.StoredItem, error) {
	begin := time.Now()
	item, err := p.next.Create(ctx, post)
	if err != nil {
		p.logger.Error("publish failed",
			"title", post.Title,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	p.logger.Info("published",
		"title", post.Title,
		"url", item.URL,
		"duration", time.Since(begin),
	)
	return item, nil
}
