package modex

import "context"

// RawPage represents a crawled documentation page before structuring.
// HTML holds the page's main-content markup (or the full document when no
// main-content region could be isolated).
type RawPage struct {
	URL   string
	Title string
	HTML  string
}

// Crawler collects raw pages from a documentation site, starting at a seed
// URL. The returned map is keyed by page URL, bounded by the implementation's
// depth and page limits, and deduplicated by a visited set.
type Crawler interface {
	Crawl(ctx context.Context, seedURL string) (map[string]*RawPage, error)
}

// ContentProcessor turns raw pages into validated, JSON-safe processed
// content. It never fails: per-page errors degrade to error-fallback page
// records and global serialization errors degrade to a FallbackReport.
type ContentProcessor interface {
	Process(ctx context.Context, pages map[string]*RawPage) *ProcessResult
}
