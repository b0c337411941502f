package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/modex/modex"
)

// Ensure LinkSelector implements modex.LinkSelector at compile time.
var _ modex.LinkSelector = (*LinkSelector)(nil)

// LinkSelector extracts same-host links from HTML using universal CSS
// selectors that work across documentation frameworks. Navigation and
// table-of-contents areas are prioritized over in-content and footer links,
// and any remaining anchor is collected at fallback priority so that sites
// with non-semantic markup still get their links discovered.
type LinkSelector struct{}

// NewLinkSelector creates a new LinkSelector.
func NewLinkSelector() *LinkSelector {
	return &LinkSelector{}
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority version.
// External links (different host than baseURL) are filtered out.
func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]modex.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, modex.Errorf(modex.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, modex.Errorf(modex.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates.
	seen := make(map[string]int)
	var links []modex.DiscoveredLink

	extract := func(selector string, priority modex.LinkPriority, source string) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}

			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}

			if !isSameHost(base, resolved) {
				return
			}

			link := modex.DiscoveredLink{
				URL:      resolved,
				Priority: priority,
				Text:     strings.TrimSpace(sel.Text()),
				Source:   source,
			}

			if idx, ok := seen[resolved]; ok {
				if priority > links[idx].Priority {
					links[idx] = link
				}
			} else {
				seen[resolved] = len(links)
				links = append(links, link)
			}
		})
	}

	extract(".toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href]", modex.PriorityTOC, "toc")
	extract("nav a[href], [role=\"navigation\"] a[href], .nav a[href], .menu a[href], .navbar a[href]", modex.PriorityNavigation, "nav")
	extract("main a[href], article a[href], .content a[href], .doc-content a[href]", modex.PriorityContent, "content")
	extract("footer a[href], .footer a[href]", modex.PriorityFooter, "footer")
	extract("a[href]", modex.PriorityFallback, "fallback")

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// Exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
