//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"

	"github.com/modex/modex"
	"github.com/modex/modex/gemini"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// Requires GEMINI_API_KEY and network access.
func TestExtractor_ExtractModules(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	require.NoError(t, err)

	e := gemini.NewExtractor(client)

	content := modex.ProcessedContent{
		"https://example.com/docs": {
			Title: "Queue Library",
			URL:   "https://example.com/docs",
			Structure: modex.Outline{
				{Level: 1, Title: "Producer", Content: "The producer publishes messages to a topic."},
				{Level: 1, Title: "Consumer", Content: "The consumer subscribes to a topic and receives messages."},
			},
		},
	}

	catalog, err := e.ExtractModules(ctx, content)
	require.NoError(t, err)
	require.NotEmpty(t, catalog)
}
