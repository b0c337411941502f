package mock

import (
	"context"

	"github.com/modex/modex"
)

var _ modex.RunService = (*RunService)(nil)

// RunService is a mock implementation of modex.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *modex.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*modex.Run, error)
	FindRunsFn    func(ctx context.Context, filter modex.RunFilter) ([]*modex.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *modex.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*modex.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter modex.RunFilter) ([]*modex.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}

var _ modex.PageService = (*PageService)(nil)

// PageService is a mock implementation of modex.PageService.
type PageService struct {
	CreatePageFn       func(ctx context.Context, page *modex.PageRecord) error
	FindPagesFn        func(ctx context.Context, filter modex.PageFilter) ([]*modex.PageRecord, error)
	DeletePagesByRunFn func(ctx context.Context, runID string) error
}

func (s *PageService) CreatePage(ctx context.Context, page *modex.PageRecord) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPages(ctx context.Context, filter modex.PageFilter) ([]*modex.PageRecord, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) DeletePagesByRun(ctx context.Context, runID string) error {
	return s.DeletePagesByRunFn(ctx, runID)
}
