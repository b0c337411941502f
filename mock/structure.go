package mock

import "github.com/modex/modex"

var _ modex.StructureExtractor = (*StructureExtractor)(nil)

// StructureExtractor is a mock implementation of modex.StructureExtractor.
type StructureExtractor struct {
	ExtractStructureFn func(html string) (modex.Outline, error)
}

func (e *StructureExtractor) ExtractStructure(html string) (modex.Outline, error) {
	return e.ExtractStructureFn(html)
}
