// Package trafilatura isolates a page's main content using
// github.com/markusmobius/go-trafilatura, stripping navigation chrome before
// the outline extractor sees the document.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/modex/modex"
	"golang.org/x/net/html"
)

// Ensure Extractor implements modex.Extractor at compile time.
var _ modex.Extractor = (*Extractor)(nil)

// Extractor extracts the main content region and title from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract isolates the main content of rawHTML. The caller decides what to do
// when nothing is found; an empty ContentHTML is not an error here.
func (e *Extractor) Extract(rawHTML string) (*modex.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, modex.Errorf(modex.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &modex.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
