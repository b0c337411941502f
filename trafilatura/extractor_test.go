package trafilatura_test

import (
	"testing"

	"github.com/modex/modex"
	"github.com/modex/modex/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("isolates main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Installation Guide</title></head>
<body>
	<nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
	<main>
		<h1>Installation</h1>
		<p>This guide explains how to install the package on your system. Follow
		the steps below carefully and everything should work on the first try.</p>
		<p>Start by downloading the latest release from the releases page, then
		unpack the archive somewhere on your PATH.</p>
	</main>
	<footer>Copyright 2024</footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html)
		require.NoError(t, err)

		assert.Equal(t, "Installation Guide", result.Title)
		assert.Contains(t, result.ContentHTML, "downloading the latest release")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("   ")
		require.Error(t, err)
		assert.Equal(t, modex.EINVALID, modex.ErrorCode(err))
	})
}
