package mock

import "github.com/modex/modex"

var _ modex.Converter = (*Converter)(nil)

// Converter is a mock implementation of modex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
