// Package readability extracts article text using go-readability, a port of
// Mozilla's Readability.
package readability

import (
	"strings"

	"github.com/fwojciec/skim"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements skim.Extractor at compile time.
var _ skim.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*skim.ExtractResult, error) {
	if rawHTML == "" {
		return nil, skim.Errorf(skim.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &skim.ExtractResult{
		Title:       article.Title,
		Text:        strings.TrimSpace(article.TextContent),
		ContentHTML: article.Content,
	}, nil
}
