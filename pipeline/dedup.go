package pipeline

import (
	"context"
	"strings"

	"github.com/rojgarbhaskar/jobpress"
)

// DefaultQueryLen bounds the prefix of the normalized key sent to the
// store's search endpoint. Long queries defeat the store's full-text
// matching; the containment check below does the precise comparison.
const DefaultQueryLen = 40

// Gate decides Publish-or-Skip for a title by consulting the content
// store's existing-item index. A match on either containment direction
// counts as "exists": the store may return a truncated or reformatted
// title, and either direction still identifies the same logical item.
type Gate struct {
	publisher jobpress.Publisher
	queryLen  int
}

// NewGate creates a Gate over the store client.
func NewGate(publisher jobpress.Publisher) *Gate {
	return &Gate{publisher: publisher, queryLen: DefaultQueryLen}
}

// ShouldPublish reports whether the title identifies a new logical
// item. When the store search fails, the title is treated as absent
// and the error returned for logging: a duplicate created under a
// store outage is bounded by the next run's gate, while a skipped
// fresh item would be lost until the source rolls it off its listing.
func (g *Gate) ShouldPublish(ctx context.Context, title string) (bool, error) {
	key := jobpress.NormalizeTitleKey(title)
	if key == "" {
		return false, nil
	}

	query := key
	if runes := []rune(query); len(runes) > g.queryLen {
		query = strings.TrimSpace(string(runes[:g.queryLen]))
	}

	items, err := g.publisher.Search(ctx, query)
	if err != nil {
		return true, err
	}

	for _, item := range items {
		existing := jobpress.NormalizeTitleKey(item.Title)
		if existing == "" {
			continue
		}
		if strings.Contains(existing, key) || strings.Contains(key, existing) {
			return false, nil
		}
	}
	return true, nil
}
