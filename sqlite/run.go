package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modex/modex"
)

// Compile-time interface verification.
var _ modex.RunService = (*RunService)(nil)

// RunService implements modex.RunService using SQLite. The catalog is stored
// as a JSON text column.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun creates a new run, assigning its ID and creation time.
func (s *RunService) CreateRun(ctx context.Context, run *modex.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	catalog, err := marshalCatalog(run.Catalog)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source_url, model, max_depth, page_count, catalog, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SourceURL, run.Model, run.MaxDepth, run.PageCount, catalog,
		run.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*modex.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, model, max_depth, page_count, catalog, created_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, modex.Errorf(modex.ENOTFOUND, "run %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter modex.RunFilter) ([]*modex.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, model, max_depth, page_count, catalog, created_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*modex.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run; pages cascade via the foreign key.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return modex.Errorf(modex.ENOTFOUND, "run %q not found", id)
	}
	return nil
}

// scanRun reads one run row via the given scan function.
func scanRun(scan func(dest ...any) error) (*modex.Run, error) {
	var run modex.Run
	var catalog, createdAt string

	if err := scan(&run.ID, &run.SourceURL, &run.Model, &run.MaxDepth, &run.PageCount,
		&catalog, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(catalog), &run.Catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	var err error
	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func marshalCatalog(catalog modex.Catalog) (string, error) {
	if catalog == nil {
		return "{}", nil
	}
	data, err := json.Marshal(catalog)
	if err != nil {
		return "", fmt.Errorf("failed to serialize catalog: %w", err)
	}
	return string(data), nil
}
