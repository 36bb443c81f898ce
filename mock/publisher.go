package mock

import (
	"context"

	"github.com/rojgarbhaskar/jobpress"
)

var _ jobpress.Publisher = (*Publisher)(nil)

// Publisher is a mock implementation of jobpress.Publisher.
type Publisher struct {
	SearchFn func(ctx context.Context, query string) ([]jobpress.StoredItem, error)
	CreateFn func(ctx context.Context, post *jobpress.Post) (*jobpress.StoredItem, error)
}

func (p *Publisher) Search(ctx context.Context, query string) ([]jobpress.StoredItem, error) {
	return p.SearchFn(ctx, query)
}

func (p *Publisher) Create(ctx context.Context, post *jobpress.Post) (*jobpress.StoredItem, error) {
	return p.CreateFn(ctx, post)
}
