package mock

import (
	"context"

	"github.com/rojgarbhaskar/jobpress"
)

var _ jobpress.RunService = (*RunService)(nil)

// RunService is a mock implementation of jobpress.RunService.
type RunService struct {
	CreateRunFn       func(ctx context.Context, run *jobpress.Run) error
	FindRunsFn        func(ctx context.Context, filter jobpress.RunFilter) ([]*jobpress.Run, error)
	CreatePostRecFn   func(ctx context.Context, rec *jobpress.PostRecord) error
	FindPostRecordsFn func(ctx context.Context, filter jobpress.PostRecordFilter) ([]*jobpress.PostRecord, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *jobpress.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRuns(ctx context.Context, filter jobpress.RunFilter) ([]*jobpress.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) CreatePostRecord(ctx context.Context, rec *jobpress.PostRecord) error {
	return s.CreatePostRecFn(ctx, rec)
}

func (s *RunService) FindPostRecords(ctx context.Context, filter jobpress.PostRecordFilter) ([]*jobpress.PostRecord, error) {
	return s.FindPostRecordsFn(ctx, filter)
}
