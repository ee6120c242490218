package skim

import "context"

// DefaultUserAgent identifies skim to the sites it fetches.
const DefaultUserAgent = "Mozilla/5.0 (compatible; AI-Summarizer/1.0)"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the URL and returns its HTML.
	// The context controls timeout and cancellation.
	//
	// Implementations classify failures: EFETCH with Status for non-success
	// responses, ETIMEOUT when the deadline passes and EUNREACHABLE when no
	// connection could be made.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
