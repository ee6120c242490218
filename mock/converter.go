package mock

import "github.com/fwojciec/skim"

var _ skim.Converter = (*Converter)(nil)

// Converter is a mock implementation of skim.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
