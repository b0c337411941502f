package main_test

import (
	"context"
	"testing"

	"github.com/modex/modex"
	main "github.com/modex/modex/cmd/modex"
	"github.com/modex/modex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	run := &modex.Run{
		ID:        "run-123",
		SourceURL: "https://example.com/docs",
		Catalog: modex.Catalog{
			"Auth": {Description: "Authentication layer", Submodules: map[string]string{"Tokens": "Token issuance"}},
		},
	}

	t.Run("prints the catalog as JSON", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Runs = &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*modex.Run, error) {
				assert.Equal(t, "run-123", id)
				return run, nil
			},
		}

		require.NoError(t, (&main.ShowCmd{ID: "run-123"}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "\"Auth\"")
		assert.Contains(t, output, "\"Description\": \"Authentication layer\"")
		assert.Contains(t, output, "\"Tokens\": \"Token issuance\"")
	})

	t.Run("lists pages with --pages", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Runs = &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*modex.Run, error) {
				return run, nil
			},
		}
		deps.Pages = &mock.PageService{
			FindPagesFn: func(_ context.Context, filter modex.PageFilter) ([]*modex.PageRecord, error) {
				require.NotNil(t, filter.RunID)
				assert.Equal(t, "run-123", *filter.RunID)
				return []*modex.PageRecord{
					{Position: 0, URL: "https://example.com/docs/a", Title: "A"},
					{Position: 1, URL: "https://example.com/docs/b", Title: "B"},
				}, nil
			},
		}

		require.NoError(t, (&main.ShowCmd{ID: "run-123", Pages: true}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "https://example.com/docs/a")
		assert.Contains(t, output, "https://example.com/docs/b")
		assert.NotContains(t, output, "\"Auth\"")
	})

	t.Run("unknown run", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Runs = &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*modex.Run, error) {
				return nil, modex.Errorf(modex.ENOTFOUND, "run %q not found", id)
			},
		}

		err := (&main.ShowCmd{ID: "missing"}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, modex.ENOTFOUND, modex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
