package modex

import (
	"context"
	"time"
)

// Run represents one extraction run: a crawl of a documentation site together
// with the catalog it produced.
type Run struct {
	ID        string    `json:"id"`
	SourceURL string    `json:"sourceUrl"`
	Model     string    `json:"model"`
	MaxDepth  int       `json:"maxDepth"`
	PageCount int       `json:"pageCount"`
	Catalog   Catalog   `json:"catalog,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "run source URL required")
	}
	return nil
}

// RunService represents a service for managing extraction runs.
type RunService interface {
	// CreateRun creates a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run and all associated pages.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageRecord is a persisted processed page belonging to a run.
type PageRecord struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Structure   Outline   `json:"structure"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the page record contains invalid fields.
func (p *PageRecord) Validate() error {
	if p.RunID == "" {
		return Errorf(EINVALID, "page run ID required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageService represents a service for managing persisted pages.
type PageService interface {
	// CreatePage creates a new page record.
	CreatePage(ctx context.Context, page *PageRecord) error

	// FindPages retrieves page records matching the filter, ordered by
	// position within a run.
	FindPages(ctx context.Context, filter PageFilter) ([]*PageRecord, error)

	// DeletePagesByRun removes all page records for a run.
	DeletePagesByRun(ctx context.Context, runID string) error
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	RunID *string `json:"runId"`
	URL   *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
