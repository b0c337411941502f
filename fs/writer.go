// Package fs writes extraction results to the filesystem: the module catalog
// as a single JSON document and, optionally, one JSON outline file per page.
package fs

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/modex/modex"
)

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.json
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	if path == "" || path == "/" {
		return "index.json", nil
	}

	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.json in that directory.
	if strings.HasSuffix(path, "/") {
		return path + "index.json", nil
	}

	return path + ".json", nil
}

// Writer persists catalogs and per-page outlines under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteCatalog writes the module catalog as indented JSON to path, creating
// parent directories as needed. The path is taken relative to the base
// directory unless absolute.
func (w *Writer) WriteCatalog(catalog modex.Catalog, path string) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}
	return w.writeFile(path, append(data, '\n'))
}

// WritePages writes one outline JSON file per processed page, mirroring the
// site's URL paths under the base directory.
func (w *Writer) WritePages(content modex.ProcessedContent) error {
	for url, page := range content {
		relPath, err := URLToPath(url)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return err
		}

		if err := w.writeFile(relPath, append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeFile(path string, data []byte) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.baseDir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
