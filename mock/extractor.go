package mock

import "github.com/fwojciec/skim"

var _ skim.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of skim.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*skim.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*skim.ExtractResult, error) {
	return e.ExtractFn(html)
}
