package mock

import "github.com/modex/modex"

var _ modex.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of modex.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]modex.DiscoveredLink, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]modex.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}
