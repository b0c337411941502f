package modex

import "context"

// ModuleInfo describes one extracted module. Key casing in the JSON form
// matches the catalog output format consumed downstream.
type ModuleInfo struct {
	Description string            `json:"Description"`
	Submodules  map[string]string `json:"Submodules"`
}

// Catalog is the final output: module name mapped to its description and
// submodules. Name collisions across pages resolve last-write-wins.
type Catalog map[string]ModuleInfo

// ExtractedSubmodule is a single submodule as returned by the model.
type ExtractedSubmodule struct {
	Submodule   string `json:"submodule"`
	Description string `json:"description"`
}

// ExtractedModule is a single module as returned by the model.
type ExtractedModule struct {
	Module      string               `json:"module"`
	Description string               `json:"description"`
	Submodules  []ExtractedSubmodule `json:"submodules,omitempty"`
}

// ModuleResponse is the schema the model's response must satisfy.
type ModuleResponse struct {
	Modules []ExtractedModule `json:"modules"`
}

// ModuleExtractor derives a module catalog from processed content, one model
// call per page. Pages whose call or parse fails contribute zero modules.
type ModuleExtractor interface {
	ExtractModules(ctx context.Context, content ProcessedContent) (Catalog, error)
}

// BuildCatalog folds extracted modules into the catalog output format.
// Modules appear in input order; a repeated module name overwrites the
// earlier entry (last-write-wins, no merging). Modules without a name are
// dropped.
func BuildCatalog(modules []ExtractedModule) Catalog {
	catalog := Catalog{}

	for _, module := range modules {
		if module.Module == "" {
			continue
		}

		submodules := map[string]string{}
		for _, sub := range module.Submodules {
			if sub.Submodule == "" {
				continue
			}
			submodules[sub.Submodule] = sub.Description
		}

		catalog[module.Module] = ModuleInfo{
			Description: module.Description,
			Submodules:  submodules,
		}
	}

	return catalog
}
