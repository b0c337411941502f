package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	modexhttp "github.com/modex/modex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves the given path → body map, replacing {{BASE}} in
// bodies with the server's own URL so sitemaps can reference it.
func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	const urlset = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/docs/intro</loc></url>
  <url><loc>{{BASE}}/docs/guide</loc></url>
  <url><loc>{{BASE}}/blog/post</loc></url>
</urlset>`

	t.Run("sitemap from robots.txt", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/robots.txt":  "User-agent: *\nDisallow: /private/\nSitemap: {{BASE}}/sitemap.xml\n",
			"/sitemap.xml": urlset,
		})

		svc := modexhttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, []string{
			srv.URL + "/docs/intro",
			srv.URL + "/docs/guide",
			srv.URL + "/blog/post",
		}, urls)
	})

	t.Run("falls back to /sitemap.xml", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/sitemap.xml": urlset,
		})

		svc := modexhttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Len(t, urls, 3)
	})

	t.Run("base path filters URLs", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/sitemap.xml": urlset,
		})

		svc := modexhttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/docs/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			srv.URL + "/docs/intro",
			srv.URL + "/docs/guide",
		}, urls)
	})

	t.Run("sitemap index is followed recursively", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-a.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-b.xml</loc></sitemap>
</sitemapindex>`,
			"/sitemap-a.xml": `<urlset><url><loc>{{BASE}}/a</loc></url></urlset>`,
			"/sitemap-b.xml": `<urlset><url><loc>{{BASE}}/b</loc></url></urlset>`,
		})

		svc := modexhttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/a", srv.URL + "/b"}, urls)
	})

	t.Run("duplicate URLs across sitemaps collapse", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/robots.txt": "Sitemap: {{BASE}}/one.xml\nSitemap: {{BASE}}/two.xml\n",
			"/one.xml":    `<urlset><url><loc>{{BASE}}/page</loc></url></urlset>`,
			"/two.xml":    `<urlset><url><loc>{{BASE}}/page</loc></url><url><loc>{{BASE}}/other</loc></url></urlset>`,
		})

		svc := modexhttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/page", srv.URL + "/other"}, urls)
	})

	t.Run("no sitemaps yields empty slice", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{})

		svc := modexhttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.NotNil(t, urls)
		assert.Empty(t, urls)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := modexhttp.NewSitemapService(srv.Client())
		_, err := svc.DiscoverURLs(ctx, srv.URL)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the document body", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/page": "<html><body>hello</body></html>",
		})

		f := modexhttp.NewFetcher()
		html, err := f.Fetch(context.Background(), srv.URL+"/page")

		require.NoError(t, err)
		assert.Equal(t, "<html><body>hello</body></html>", html)
		assert.NoError(t, f.Close())
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{})

		f := modexhttp.NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL+"/missing")
		assert.ErrorContains(t, err, "HTTP 404")
	})
}
