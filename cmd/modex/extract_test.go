package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modex/modex"
	main "github.com/modex/modex/cmd/modex"
	"github.com/modex/modex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	rawPages := map[string]*modex.RawPage{
		"https://example.com/docs/b": {URL: "https://example.com/docs/b", Title: "B", HTML: "<p>b</p>"},
		"https://example.com/docs/a": {URL: "https://example.com/docs/a", Title: "A", HTML: "<p>a</p>"},
	}

	processed := modex.ProcessedContent{
		"https://example.com/docs/a": {
			Title: "A", URL: "https://example.com/docs/a",
			Structure: modex.Outline{{Level: 1, Title: "A", Content: "a"}},
		},
		"https://example.com/docs/b": {
			Title: "B", URL: "https://example.com/docs/b",
			Structure: modex.Outline{{Level: 1, Title: "B", Content: "b"}},
		},
	}

	catalog := modex.Catalog{
		"Core": {Description: "Core module", Submodules: map[string]string{}},
	}

	// wires the happy-path mocks, capturing created records.
	setup := func(deps *main.Dependencies) (createdRun **modex.Run, createdPages *[]*modex.PageRecord) {
		var run *modex.Run
		var records []*modex.PageRecord

		deps.Crawler = &mock.Crawler{
			CrawlFn: func(_ context.Context, seedURL string) (map[string]*modex.RawPage, error) {
				return rawPages, nil
			},
		}
		deps.Processor = &mock.ContentProcessor{
			ProcessFn: func(_ context.Context, pages map[string]*modex.RawPage) *modex.ProcessResult {
				return &modex.ProcessResult{Content: processed}
			},
		}
		deps.Modules = &mock.ModuleExtractor{
			ExtractModulesFn: func(_ context.Context, content modex.ProcessedContent) (modex.Catalog, error) {
				return catalog, nil
			},
		}
		deps.Runs = &mock.RunService{
			CreateRunFn: func(_ context.Context, r *modex.Run) error {
				r.ID = "run-1"
				run = r
				return nil
			},
		}
		deps.Pages = &mock.PageService{
			CreatePageFn: func(_ context.Context, p *modex.PageRecord) error {
				records = append(records, p)
				return nil
			},
		}
		return &run, &records
	}

	t.Run("crawls, extracts and persists", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		run, records := setup(deps)

		cmd := &main.ExtractCmd{URL: "https://example.com/docs", Depth: 3, Model: "gemini-2.5-flash"}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, *run)
		assert.Equal(t, "https://example.com/docs", (*run).SourceURL)
		assert.Equal(t, 2, (*run).PageCount)
		assert.Equal(t, catalog, (*run).Catalog)

		// Pages persist in sorted URL order.
		require.Len(t, *records, 2)
		assert.Equal(t, "https://example.com/docs/a", (*records)[0].URL)
		assert.Equal(t, 0, (*records)[0].Position)
		assert.Equal(t, "https://example.com/docs/b", (*records)[1].URL)
		assert.Equal(t, 1, (*records)[1].Position)

		output := stdout.String()
		assert.Contains(t, output, "Crawled 2 pages")
		assert.Contains(t, output, "Saved run run-1")
		assert.Contains(t, output, "\"Core\"")
	})

	t.Run("--skip-modules leaves the catalog empty", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps()
		run, _ := setup(deps)
		deps.Modules = &mock.ModuleExtractor{
			ExtractModulesFn: func(_ context.Context, _ modex.ProcessedContent) (modex.Catalog, error) {
				t.Fatal("module extractor must not be called")
				return nil, nil
			},
		}

		cmd := &main.ExtractCmd{URL: "https://example.com/docs", SkipModules: true}
		require.NoError(t, cmd.Run(deps))
		assert.Empty(t, (*run).Catalog)
	})

	t.Run("--out writes the catalog to a file", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps()
		setup(deps)

		out := filepath.Join(t.TempDir(), "catalog.json")
		cmd := &main.ExtractCmd{URL: "https://example.com/docs", Out: out}
		require.NoError(t, cmd.Run(deps))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\"Core\"")
	})

	t.Run("--export-dir writes page outlines", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps()
		setup(deps)

		dir := t.TempDir()
		cmd := &main.ExtractCmd{URL: "https://example.com/docs", ExportDir: dir}
		require.NoError(t, cmd.Run(deps))

		_, err := os.Stat(filepath.Join(dir, "docs", "a.json"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "docs", "b.json"))
		assert.NoError(t, err)
	})

	t.Run("fallback report aborts with the report on stderr", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		setup(deps)
		deps.Processor = &mock.ContentProcessor{
			ProcessFn: func(_ context.Context, pages map[string]*modex.RawPage) *modex.ProcessResult {
				return &modex.ProcessResult{Fallback: &modex.FallbackReport{
					Error: "content could not be processed into valid JSON",
					URLs:  []string{"https://example.com/docs/a"},
				}}
			},
		}

		err := (&main.ExtractCmd{URL: "https://example.com/docs"}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, modex.EINTERNAL, modex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "\"urls\"")
	})

	t.Run("crawl failure", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		setup(deps)
		deps.Crawler = &mock.Crawler{
			CrawlFn: func(_ context.Context, seedURL string) (map[string]*modex.RawPage, error) {
				return nil, modex.Errorf(modex.ENOTFOUND, "no pages could be crawled from %q", seedURL)
			},
		}

		err := (&main.ExtractCmd{URL: "https://example.com/docs"}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, modex.ENOTFOUND, modex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no pages could be crawled")
	})
}
