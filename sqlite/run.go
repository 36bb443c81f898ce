package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rojgarbhaskar/jobpress"
)

// Compile-time interface verification.
var _ jobpress.RunService = (*RunService)(nil)

// RunService implements jobpress.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun persists a completed run.
func (s *RunService) CreateRun(ctx context.Context, run *jobpress.Run) error {
	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = run.StartedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, discovered, skipped, published, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.Format(time.RFC3339), run.FinishedAt.Format(time.RFC3339),
		run.Discovered, run.Skipped, run.Published, run.Failed)

	return err
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter jobpress.RunFilter) ([]*jobpress.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, started_at, finished_at, discovered, skipped, published, failed
		FROM runs
		ORDER BY started_at DESC
	`)
	paginate(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*jobpress.Run
	for rows.Next() {
		var run jobpress.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &startedAt, &finishedAt,
			&run.Discovered, &run.Skipped, &run.Published, &run.Failed); err != nil {
			return nil, err
		}

		if run.StartedAt, err = scanTime("started_at", startedAt); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = scanTime("finished_at", finishedAt); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// CreatePostRecord persists one published item.
func (s *RunService) CreatePostRecord(ctx context.Context, rec *jobpress.PostRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (id, run_id, title, url, category, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.RunID, rec.Title, rec.URL, string(rec.Category), rec.ContentHash,
		rec.CreatedAt.Format(time.RFC3339))

	return err
}

// FindPostRecords retrieves published items matching the filter,
// newest first.
func (s *RunService) FindPostRecords(ctx context.Context, filter jobpress.PostRecordFilter) ([]*jobpress.PostRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, run_id, title, url, category, content_hash, created_at
		FROM posts
		WHERE 1=1
	`)
	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	query.WriteString(" ORDER BY created_at DESC")
	paginate(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*jobpress.PostRecord
	for rows.Next() {
		var rec jobpress.PostRecord
		var category, createdAt string

		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Title, &rec.URL,
			&category, &rec.ContentHash, &createdAt); err != nil {
			return nil, err
		}
		rec.Category = jobpress.Category(category)

		if rec.CreatedAt, err = scanTime("created_at", createdAt); err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}
	return records, rows.Err()
}

// scanTime converts a stored RFC3339 column back into a time.Time.
func scanTime(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %s: %w", column, err)
	}
	return t, nil
}

// paginate appends LIMIT and OFFSET clauses for positive values.
func paginate(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
