package jobpress

import (
	"context"
	"time"
)

// RunResult holds the per-candidate counters of one pipeline run.
// Workers produce outcomes that are merged into a single value; there
// is no shared mutable counter state.
type RunResult struct {
	Discovered int
	Skipped    int
	Published  int
	Failed     int
}

// Run is the persisted record of one completed pipeline run.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Discovered int       `json:"discovered"`
	Skipped    int       `json:"skipped"`
	Published  int       `json:"published"`
	Failed     int       `json:"failed"`
}

// PostRecord is the persisted record of one published item. The
// ledger is observability only: the dedup gate consults the content
// store's own index, never this table.
type PostRecord struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Category    Category  `json:"category"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the post record contains invalid fields.
func (p *PostRecord) Validate() error {
	if p.RunID == "" {
		return Errorf(EINVALID, "post record run ID required")
	}
	if p.Title == "" {
		return Errorf(EINVALID, "post record title required")
	}
	return nil
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PostRecordFilter represents a filter for FindPostRecords.
type PostRecordFilter struct {
	RunID *string `json:"runId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunService records run history and published items.
type RunService interface {
	// CreateRun persists a completed run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// CreatePostRecord persists one published item.
	CreatePostRecord(ctx context.Context, rec *PostRecord) error

	// FindPostRecords retrieves published items matching the filter.
	FindPostRecords(ctx context.Context, filter PostRecordFilter) ([]*PostRecord, error)
}
