package crawl_test

import (
	"testing"

	"github.com/modex/modex"
	"github.com/modex/modex/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_PushPop(t *testing.T) {
	t.Parallel()

	t.Run("pops by priority", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		f.Push(modex.DiscoveredLink{URL: "https://example.com/footer", Priority: modex.PriorityFooter})
		f.Push(modex.DiscoveredLink{URL: "https://example.com/toc", Priority: modex.PriorityTOC})
		f.Push(modex.DiscoveredLink{URL: "https://example.com/nav", Priority: modex.PriorityNavigation})
		f.Push(modex.DiscoveredLink{URL: "https://example.com/content", Priority: modex.PriorityContent})

		var order []string
		for {
			link, ok := f.Pop()
			if !ok {
				break
			}
			order = append(order, link.URL)
		}

		assert.Equal(t, []string{
			"https://example.com/toc",
			"https://example.com/nav",
			"https://example.com/content",
			"https://example.com/footer",
		}, order)
	})

	t.Run("shallower links win priority ties", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		f.Push(modex.DiscoveredLink{URL: "https://example.com/deep", Priority: modex.PriorityContent, Depth: 3})
		f.Push(modex.DiscoveredLink{URL: "https://example.com/shallow", Priority: modex.PriorityContent, Depth: 1})

		link, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/shallow", link.URL)
	})

	t.Run("deduplicates URLs", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		assert.True(t, f.Push(modex.DiscoveredLink{URL: "https://example.com/page"}))
		assert.False(t, f.Push(modex.DiscoveredLink{URL: "https://example.com/page"}))
		assert.Equal(t, 1, f.Len())
	})

	t.Run("fragments do not defeat deduplication", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		assert.True(t, f.Push(modex.DiscoveredLink{URL: "https://example.com/page#intro"}))
		assert.False(t, f.Push(modex.DiscoveredLink{URL: "https://example.com/page#usage"}))

		link, ok := f.Pop()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/page", link.URL)
	})

	t.Run("empty frontier pops nothing", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(100, 0.01)

		_, ok := f.Pop()
		assert.False(t, ok)
		assert.Equal(t, 0, f.Len())
	})
}

func TestFrontier_Seen(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(100, 0.01)

	assert.False(t, f.Seen("https://example.com/page"))

	f.Push(modex.DiscoveredLink{URL: "https://example.com/page"})

	assert.True(t, f.Seen("https://example.com/page"))
	assert.True(t, f.Seen("https://example.com/page#section"))

	// Popping does not forget the URL.
	_, _ = f.Pop()
	assert.True(t, f.Seen("https://example.com/page"))
}
