package skim

import "context"

// SourceDocument is a fetched page. It only lives for the duration of a
// single extraction.
type SourceDocument struct {
	URL  string
	HTML string
}

// Article is the readable content of a web page.
type Article struct {
	// Text is the trimmed plain-text body. Never empty.
	Text string `json:"text"`

	// Title is the page title, if one was found.
	Title string `json:"title,omitempty"`

	// ContentHTML is the cleaned article body as HTML, if available.
	ContentHTML string `json:"-"`
}

// ArticleExtractor turns a URL into readable article text.
type ArticleExtractor interface {
	// ExtractArticle fetches the URL and returns its readable text.
	// Returns EINVALID, EFETCH, ETIMEOUT, EUNREACHABLE, EEMPTY or ENOTREADABLE.
	ExtractArticle(ctx context.Context, url string) (*Article, error)
}
