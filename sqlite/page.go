package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/modex/modex"
)

// Compile-time interface verification.
var _ modex.PageService = (*PageService)(nil)

// PageService implements modex.PageService using SQLite. Outlines are stored
// as JSON text; the content hash is derived from the serialized outline.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// CreatePage creates a page record, assigning its ID, content hash and fetch
// time.
func (s *PageService) CreatePage(ctx context.Context, page *modex.PageRecord) error {
	if err := page.Validate(); err != nil {
		return err
	}

	structure, err := marshalOutline(page.Structure)
	if err != nil {
		return err
	}

	page.ID = uuid.New().String()
	page.ContentHash = hashContent(structure)
	page.FetchedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (id, run_id, url, title, structure, content_hash, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.RunID, page.URL, page.Title, structure, page.ContentHash,
		page.Position, page.FetchedAt.Format(time.RFC3339))

	return err
}

// FindPages retrieves page records matching the filter, ordered by position.
func (s *PageService) FindPages(ctx context.Context, filter modex.PageFilter) ([]*modex.PageRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, url, title, structure, content_hash, position, fetched_at FROM pages WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*modex.PageRecord
	for rows.Next() {
		var page modex.PageRecord
		var structure, fetchedAt string

		if err := rows.Scan(&page.ID, &page.RunID, &page.URL, &page.Title, &structure,
			&page.ContentHash, &page.Position, &fetchedAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(structure), &page.Structure); err != nil {
			return nil, fmt.Errorf("failed to parse structure: %w", err)
		}
		page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		pages = append(pages, &page)
	}
	return pages, rows.Err()
}

// DeletePagesByRun removes all page records for a run.
func (s *PageService) DeletePagesByRun(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE run_id = ?`, runID)
	return err
}

func marshalOutline(outline modex.Outline) (string, error) {
	if outline == nil {
		return "[]", nil
	}
	data, err := json.Marshal(outline)
	if err != nil {
		return "", fmt.Errorf("failed to serialize structure: %w", err)
	}
	return string(data), nil
}

// hashContent computes an xxhash digest of the serialized outline.
func hashContent(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
