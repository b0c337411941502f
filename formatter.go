package modex

import (
	"fmt"
	"strings"
)

// FormatPage renders a processed page as the textual block handed to the
// model: a title/URL header followed by each outline entry as a
// markdown-style heading line and its content.
func FormatPage(page *ProcessedPage) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Documentation Title: %s\nURL: %s\n\n", page.Title, page.URL)

	for _, entry := range page.Structure {
		fmt.Fprintf(&sb, "%s %s\n%s\n\n", strings.Repeat("#", entry.Level), entry.Title, entry.Content)
	}

	return sb.String()
}
