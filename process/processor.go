// Package process implements the content processing stage: turning raw
// crawled pages into structured, JSON-safe outlines.
package process

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"github.com/modex/modex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages structured in parallel when no
// explicit concurrency is configured.
const DefaultConcurrency = 8

// fallbackError is the message reported when the processed content cannot be
// made JSON-safe even after repair.
const fallbackError = "content could not be processed into valid JSON"

// Ensure Processor implements modex.ContentProcessor at compile time.
var _ modex.ContentProcessor = (*Processor)(nil)

// Processor structures crawled pages concurrently and validates that the
// result serializes to JSON. Individual page failures degrade to error-page
// placeholders; only an unserializable result after repair produces a global
// fallback report.
type Processor struct {
	structure   modex.StructureExtractor
	concurrency int
	logger      *slog.Logger

	// marshal is swappable in tests to exercise the repair path.
	marshal func(v any) ([]byte, error)
}

// NewProcessor creates a Processor. Concurrency values below 1 fall back to
// DefaultConcurrency.
func NewProcessor(structure modex.StructureExtractor, concurrency int, logger *slog.Logger) *Processor {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{
		structure:   structure,
		concurrency: concurrency,
		logger:      logger,
		marshal:     json.Marshal,
	}
}

// Process structures all pages in parallel and returns either the processed
// content or a fallback report. It never returns both, and never panics on
// malformed input: a page that cannot be structured becomes an error-page
// placeholder keyed under its URL.
func (p *Processor) Process(ctx context.Context, pages map[string]*modex.RawPage) *modex.ProcessResult {
	content := make(modex.ProcessedContent, len(pages))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for url, page := range pages {
		g.Go(func() error {
			processed := p.processPage(ctx, url, page)
			mu.Lock()
			content[url] = processed
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; failures are recorded per page.
	_ = g.Wait()

	if report := p.validateJSON(content); report != nil {
		return &modex.ProcessResult{Fallback: report}
	}

	return &modex.ProcessResult{Content: content}
}

// processPage structures a single page. Any failure yields the error-page
// placeholder so one bad page never aborts the batch.
func (p *Processor) processPage(ctx context.Context, url string, page *modex.RawPage) *modex.ProcessedPage {
	if err := ctx.Err(); err != nil {
		p.logger.Warn("skipping page, context canceled", "url", url)
		return modex.ErrorPage(url)
	}

	outline, err := p.structure.ExtractStructure(page.HTML)
	if err != nil {
		p.logger.Warn("failed to structure page", "url", url, "error", err)
		return modex.ErrorPage(url)
	}

	return &modex.ProcessedPage{
		Title:     modex.Sanitize(page.Title),
		Structure: modex.ValidateStructure(outline),
		URL:       url,
	}
}

// validateJSON verifies that the processed content serializes. When it does
// not, each page's outline is repaired by dropping entries that fail to
// serialize on their own, and the check is retried once. A second failure
// produces the global fallback report.
func (p *Processor) validateJSON(content modex.ProcessedContent) *modex.FallbackReport {
	if _, err := p.marshal(content); err == nil {
		return nil
	}

	p.logger.Warn("processed content is not JSON-serializable, repairing")
	for url, page := range content {
		content[url].Structure = p.repairOutline(page.Structure)
	}

	if _, err := p.marshal(content); err == nil {
		return nil
	}

	p.logger.Error("processed content still not JSON-serializable after repair")

	urls := make([]string, 0, len(content))
	for url := range content {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	return &modex.FallbackReport{Error: fallbackError, URLs: urls}
}

// repairOutline keeps only the entries that serialize individually.
func (p *Processor) repairOutline(outline modex.Outline) modex.Outline {
	repaired := modex.Outline{}
	for _, entry := range outline {
		if _, err := p.marshal(entry); err != nil {
			continue
		}
		repaired = append(repaired, entry)
	}
	return repaired
}
