package extract

import (
	"strings"

	"github.com/fwojciec/skim"
)

// Ensure Chain implements skim.Extractor at compile time.
var _ skim.Extractor = (Chain)(nil)

// Chain tries each extractor in order and returns the first result with
// readable text. A title found by an earlier extractor is kept when a later
// one supplies the text.
type Chain []skim.Extractor

// Extract implements skim.Extractor.
func (c Chain) Extract(html string) (*skim.ExtractResult, error) {
	var (
		title   string
		lastErr error
	)
	for _, ext := range c {
		result, err := ext.Extract(html)
		if err != nil {
			lastErr = err
			continue
		}
		if title == "" {
			title = result.Title
		}
		if strings.TrimSpace(result.Text) != "" {
			if result.Title == "" {
				result.Title = title
			}
			return result, nil
		}
	}

	if title == "" && lastErr != nil {
		return nil, lastErr
	}
	return &skim.ExtractResult{Title: title}, nil
}
