package rod_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/modex/modex/mock"
	"github.com/modex/modex/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var closed bool
	inner := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html></html>", nil
		},
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	f := rod.NewLoggingFetcher(inner, logger)

	html, err := f.Fetch(context.Background(), "https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", html)

	out := buf.String()
	assert.Contains(t, out, "msg=fetch")
	assert.Contains(t, out, "url=https://example.com/")
	assert.Contains(t, out, "bytes=13")

	require.NoError(t, f.Close())
	assert.True(t, closed)
}
