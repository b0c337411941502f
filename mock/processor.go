package mock

import (
	"context"

	"github.com/modex/modex"
)

var _ modex.ContentProcessor = (*ContentProcessor)(nil)

// ContentProcessor is a mock implementation of modex.ContentProcessor.
type ContentProcessor struct {
	ProcessFn func(ctx context.Context, pages map[string]*modex.RawPage) *modex.ProcessResult
}

func (p *ContentProcessor) Process(ctx context.Context, pages map[string]*modex.RawPage) *modex.ProcessResult {
	return p.ProcessFn(ctx, pages)
}
