package modex_test

import (
	"testing"

	"github.com/modex/modex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalog(t *testing.T) {
	t.Parallel()

	t.Run("maps modules and submodules to catalog shape", func(t *testing.T) {
		t.Parallel()

		modules := []modex.ExtractedModule{
			{
				Module:      "Auth",
				Description: "Authentication features.",
				Submodules: []modex.ExtractedSubmodule{
					{Submodule: "Login", Description: "Sign-in flow."},
					{Submodule: "Tokens", Description: "API tokens."},
				},
			},
		}

		catalog := modex.BuildCatalog(modules)

		require.Contains(t, catalog, "Auth")
		assert.Equal(t, "Authentication features.", catalog["Auth"].Description)
		assert.Equal(t, map[string]string{
			"Login":  "Sign-in flow.",
			"Tokens": "API tokens.",
		}, catalog["Auth"].Submodules)
	})

	t.Run("resolves name collisions last-write-wins", func(t *testing.T) {
		t.Parallel()

		modules := []modex.ExtractedModule{
			{Module: "Search", Description: "First description."},
			{Module: "Search", Description: "Second description."},
		}

		catalog := modex.BuildCatalog(modules)

		require.Len(t, catalog, 1)
		assert.Equal(t, "Second description.", catalog["Search"].Description)
	})

	t.Run("drops modules and submodules without names", func(t *testing.T) {
		t.Parallel()

		modules := []modex.ExtractedModule{
			{Module: "", Description: "nameless"},
			{
				Module: "Named",
				Submodules: []modex.ExtractedSubmodule{
					{Submodule: "", Description: "nameless sub"},
				},
			},
		}

		catalog := modex.BuildCatalog(modules)

		require.Len(t, catalog, 1)
		assert.Empty(t, catalog["Named"].Submodules)
	})

	t.Run("returns empty catalog for no modules", func(t *testing.T) {
		t.Parallel()

		catalog := modex.BuildCatalog(nil)

		assert.NotNil(t, catalog)
		assert.Empty(t, catalog)
	})

	t.Run("modules without submodules get an empty submodule map", func(t *testing.T) {
		t.Parallel()

		catalog := modex.BuildCatalog([]modex.ExtractedModule{
			{Module: "Flat", Description: "No subs."},
		})

		require.Contains(t, catalog, "Flat")
		assert.NotNil(t, catalog["Flat"].Submodules)
		assert.Empty(t, catalog["Flat"].Submodules)
	})
}
