package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/modex/modex"
)

// Ensure LoggingFetcher implements modex.Fetcher at compile time.
var _ modex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher decorates a Fetcher with per-fetch logging.
type LoggingFetcher struct {
	next   modex.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next modex.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL, byte count and duration, delegating to the wrapped
// fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
