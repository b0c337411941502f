package mock

import "github.com/modex/modex"

var _ modex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of modex.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*modex.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*modex.ExtractResult, error) {
	return e.ExtractFn(html)
}
