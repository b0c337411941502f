// Package crawl orchestrates documentation crawling: sitemap discovery with a
// recursive link-following fallback, page fetching, and main-content
// isolation. Its output is the url → raw page mapping consumed by the
// content processor.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/modex/modex"
	"golang.org/x/sync/errgroup"
)

// Crawl limits applied when the corresponding Crawler field is zero.
const (
	DefaultMaxDepth    = 3
	DefaultMaxPages    = 1000
	DefaultConcurrency = 10
)

// Frontier sizing for recursive crawls.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Ensure Crawler implements modex.Crawler at compile time.
var _ modex.Crawler = (*Crawler)(nil)

// Crawler collects documentation pages reachable from a seed URL. Sitemap
// URLs are preferred when the site publishes any; otherwise links are
// followed recursively within the seed's host up to MaxDepth. Fetch and
// extraction failures are logged and skip the page rather than aborting the
// crawl.
type Crawler struct {
	Fetcher   modex.Fetcher
	Extractor modex.Extractor
	Links     modex.LinkSelector
	Sitemaps  modex.SitemapService

	MaxDepth    int
	MaxPages    int
	Concurrency int
	Logger      *slog.Logger
}

// Crawl returns the pages reachable from seedURL keyed by URL. The map is
// bounded by MaxPages; in recursive mode discovery is additionally bounded by
// MaxDepth and deduplicated by URL with fragments ignored.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) (map[string]*modex.RawPage, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || seed.Host == "" {
		return nil, modex.Errorf(modex.EINVALID, "invalid seed URL %q", seedURL)
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var urls []string
	if c.Sitemaps != nil {
		urls, err = c.Sitemaps.DiscoverURLs(ctx, seedURL)
		if err != nil {
			logger.Warn("sitemap discovery failed, falling back to recursive crawl", "url", seedURL, "error", err)
			urls = nil
		}
	}

	var pages map[string]*modex.RawPage
	if len(urls) > 0 {
		if len(urls) > maxPages {
			urls = urls[:maxPages]
		}
		logger.Info("crawling sitemap URLs", "url", seedURL, "count", len(urls))
		pages = c.crawlFlat(ctx, urls, logger)
	} else {
		logger.Info("no sitemap URLs, crawling recursively", "url", seedURL)
		pages = c.crawlRecursive(ctx, seed, maxPages, logger)
	}

	if len(pages) == 0 {
		return nil, modex.Errorf(modex.ENOTFOUND, "no pages could be crawled from %q", seedURL)
	}
	return pages, nil
}

// crawlFlat fetches a known URL list concurrently.
func (c *Crawler) crawlFlat(ctx context.Context, urls []string, logger *slog.Logger) map[string]*modex.RawPage {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	pages := make(map[string]*modex.RawPage, len(urls))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, pageURL := range urls {
		g.Go(func() error {
			page := c.fetchPage(gctx, pageURL, logger)
			if page == nil {
				return nil
			}
			mu.Lock()
			pages[pageURL] = page
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return pages
}

// crawlRecursive follows links from the seed within the same host, breadth
// bounded by maxPages and depth bounded by MaxDepth. Pages are processed
// sequentially so the frontier's priority ordering is honored.
func (c *Crawler) crawlRecursive(ctx context.Context, seed *url.URL, maxPages int, logger *slog.Logger) map[string]*modex.RawPage {
	maxDepth := c.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(modex.DiscoveredLink{
		URL:      seed.String(),
		Priority: modex.PriorityNavigation,
		Depth:    0,
	})

	pages := make(map[string]*modex.RawPage)

	for len(pages) < maxPages {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			break
		}

		html, err := c.Fetcher.Fetch(ctx, link.URL)
		if err != nil {
			logger.Warn("failed to fetch page", "url", link.URL, "depth", link.Depth, "error", err)
			continue
		}

		if link.Depth < maxDepth && c.Links != nil {
			discovered, err := c.Links.ExtractLinks(html, link.URL)
			if err != nil {
				logger.Warn("failed to extract links", "url", link.URL, "error", err)
			}
			for _, d := range discovered {
				d.Depth = link.Depth + 1
				frontier.Push(d)
			}
		}

		pages[link.URL] = c.extractPage(link.URL, html, logger)
	}

	logger.Info("recursive crawl finished", "pages", len(pages), "queued", frontier.Len())
	return pages
}

// fetchPage fetches and extracts a single page, returning nil on failure.
func (c *Crawler) fetchPage(ctx context.Context, pageURL string, logger *slog.Logger) *modex.RawPage {
	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		logger.Warn("failed to fetch page", "url", pageURL, "error", err)
		return nil
	}
	return c.extractPage(pageURL, html, logger)
}

// extractPage isolates the page's main content. When isolation fails or
// yields nothing, the whole document is kept and the title comes from the
// document's title element.
func (c *Crawler) extractPage(pageURL, html string, logger *slog.Logger) *modex.RawPage {
	if c.Extractor != nil {
		extracted, err := c.Extractor.Extract(html)
		if err == nil && strings.TrimSpace(extracted.ContentHTML) != "" {
			return &modex.RawPage{
				URL:   pageURL,
				Title: extracted.Title,
				HTML:  extracted.ContentHTML,
			}
		}
		if err != nil {
			logger.Warn("content isolation failed, keeping full document", "url", pageURL, "error", err)
		}
	}

	return &modex.RawPage{
		URL:   pageURL,
		Title: documentTitle(html),
		HTML:  html,
	}
}

var titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// documentTitle pulls the text of the document's title element, if any.
func documentTitle(html string) string {
	m := titleRe.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
