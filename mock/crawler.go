package mock

import (
	"context"

	"github.com/modex/modex"
)

var _ modex.Crawler = (*Crawler)(nil)

// Crawler is a mock implementation of modex.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, seedURL string) (map[string]*modex.RawPage, error)
}

func (c *Crawler) Crawl(ctx context.Context, seedURL string) (map[string]*modex.RawPage, error) {
	return c.CrawlFn(ctx, seedURL)
}
