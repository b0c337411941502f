package mock

import (
	"context"

	"github.com/modex/modex"
)

var _ modex.ModuleExtractor = (*ModuleExtractor)(nil)

// ModuleExtractor is a mock implementation of modex.ModuleExtractor.
type ModuleExtractor struct {
	ExtractModulesFn func(ctx context.Context, content modex.ProcessedContent) (modex.Catalog, error)
}

func (e *ModuleExtractor) ExtractModules(ctx context.Context, content modex.ProcessedContent) (modex.Catalog, error) {
	return e.ExtractModulesFn(ctx, content)
}
