package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/modex/modex"
)

// Ensure LoggingModuleExtractor implements modex.ModuleExtractor at compile time.
var _ modex.ModuleExtractor = (*LoggingModuleExtractor)(nil)

// LoggingModuleExtractor wraps a ModuleExtractor with per-batch logging.
type LoggingModuleExtractor struct {
	next   modex.ModuleExtractor
	logger *slog.Logger
}

// NewLoggingModuleExtractor creates a new LoggingModuleExtractor.
func NewLoggingModuleExtractor(next modex.ModuleExtractor, logger *slog.Logger) *LoggingModuleExtractor {
	return &LoggingModuleExtractor{next: next, logger: logger}
}

// ExtractModules delegates to the wrapped extractor and logs page and module
// counts with the call duration.
func (e *LoggingModuleExtractor) ExtractModules(ctx context.Context, content modex.ProcessedContent) (catalog modex.Catalog, err error) {
	defer func(begin time.Time) {
		e.logger.Info("module extraction",
			"pages", len(content),
			"modules", len(catalog),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractModules(ctx, content)
}
