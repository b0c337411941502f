package modex

import (
	"strconv"
	"strings"
)

// ErrorPageTitle is the title used for a page whose structuring failed.
const ErrorPageTitle = "Error processing page"

// OutlineEntry represents one heading and the rendered content between it and
// the next heading at any level. Level is the heading depth (1-6).
type OutlineEntry struct {
	Level   int    `json:"level"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Outline is the ordered sequence of heading/content segments extracted from
// one page. Document order of headings is preserved.
type Outline []OutlineEntry

// ProcessedPage is the structured form of a crawled page.
type ProcessedPage struct {
	Title     string  `json:"title"`
	Structure Outline `json:"structure"`
	URL       string  `json:"url"`
}

// ProcessedContent maps each crawled URL to its processed page. It must
// always survive a JSON round-trip; the Content Processor guarantees this.
type ProcessedContent map[string]*ProcessedPage

// FallbackReport is the minimal, always-serializable substitute emitted when
// repair cannot make the processed content JSON-safe.
type FallbackReport struct {
	Error string   `json:"error"`
	URLs  []string `json:"urls"`
}

// ProcessResult is the authoritative output of a processing run: either the
// processed content or, if it could not be made JSON-safe, a fallback report.
// Exactly one of the two fields is set.
type ProcessResult struct {
	Content  ProcessedContent `json:"content,omitempty"`
	Fallback *FallbackReport  `json:"fallback,omitempty"`
}

// ErrorPage returns the degraded record substituted for a page whose
// structuring failed.
func ErrorPage(url string) *ProcessedPage {
	return &ProcessedPage{
		Title:     ErrorPageTitle,
		Structure: Outline{},
		URL:       url,
	}
}

// StructureExtractor turns a page's HTML into an ordered outline.
type StructureExtractor interface {
	// ExtractStructure parses the HTML permissively, strips script and style
	// elements, and groups block content under the nearest preceding heading.
	// A document with no headings yields an empty outline, not an error.
	ExtractStructure(html string) (Outline, error)
}

// ValidateStructure filters and repairs an extracted structure so that every
// surviving entry has an integer level in [1,6] and sanitized title/content
// strings. The input may be a typed Outline or JSON-decoded data
// ([]any of map[string]any records); anything else yields an empty outline.
// Entries missing a required field or with a non-coercible level are dropped.
// Relative order of surviving entries is preserved. Never fails.
func ValidateStructure(v any) Outline {
	validated := Outline{}

	switch structure := v.(type) {
	case nil:
		return validated
	case Outline:
		for _, entry := range structure {
			validated = append(validated, OutlineEntry{
				Level:   clampLevel(entry.Level),
				Title:   Sanitize(entry.Title),
				Content: Sanitize(entry.Content),
			})
		}
	case []OutlineEntry:
		return ValidateStructure(Outline(structure))
	case []any:
		for _, item := range structure {
			record, ok := item.(map[string]any)
			if !ok {
				continue
			}
			entry, ok := validateRecord(record)
			if !ok {
				continue
			}
			validated = append(validated, entry)
		}
	case []map[string]any:
		for _, record := range structure {
			entry, ok := validateRecord(record)
			if !ok {
				continue
			}
			validated = append(validated, entry)
		}
	}

	return validated
}

// validateRecord validates a single mapping-like entry. The bool result is
// false if a required key is missing or the level cannot be coerced.
func validateRecord(record map[string]any) (OutlineEntry, bool) {
	level, hasLevel := record["level"]
	title, hasTitle := record["title"]
	content, hasContent := record["content"]
	if !hasLevel || !hasTitle || !hasContent {
		return OutlineEntry{}, false
	}

	n, ok := coerceLevel(level)
	if !ok {
		return OutlineEntry{}, false
	}

	return OutlineEntry{
		Level:   clampLevel(n),
		Title:   Sanitize(title),
		Content: Sanitize(content),
	}, true
}

// coerceLevel converts a level value of any common JSON-decoded type to an
// integer. The bool result is false if the value cannot be coerced.
func coerceLevel(v any) (int, bool) {
	switch level := v.(type) {
	case int:
		return level, true
	case int64:
		return int(level), true
	case float64:
		return int(level), true
	case float32:
		return int(level), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(level))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// clampLevel forces a coerced level into the valid heading range [1,6].
func clampLevel(n int) int {
	if n < 1 {
		return 1
	}
	if n > 6 {
		return 6
	}
	return n
}
