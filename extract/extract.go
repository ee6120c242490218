// Package extract implements the extraction stage: it fetches a page once and
// reduces it to readable article text.
package extract

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/skim"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 10 * time.Second

// Ensure Service implements skim.ArticleExtractor at compile time.
var _ skim.ArticleExtractor = (*Service)(nil)

// Service turns URLs into readable article text.
// Service is safe for concurrent use.
type Service struct {
	Fetcher   skim.Fetcher
	Extractor skim.Extractor

	// Timeout bounds the fetch. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// NewService creates a new Service.
func NewService(fetcher skim.Fetcher, extractor skim.Extractor) *Service {
	return &Service{
		Fetcher:   fetcher,
		Extractor: extractor,
		Timeout:   DefaultTimeout,
	}
}

// ExtractArticle fetches rawURL and returns its readable text.
// The page is fetched exactly once; failures are never retried.
func (s *Service) ExtractArticle(ctx context.Context, rawURL string) (*skim.Article, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	doc, err := s.fetch(ctx, strings.TrimSpace(rawURL))
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(doc.HTML) == "" {
		return nil, skim.Errorf(skim.EEMPTY, "No content found at the provided URL.")
	}

	result, err := s.Extractor.Extract(doc.HTML)
	if err != nil {
		return nil, &skim.Error{
			Code:    skim.ENOTREADABLE,
			Message: "Could not extract readable content from the URL.",
			Err:     err,
		}
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return nil, skim.Errorf(skim.ENOTREADABLE, "Could not extract readable content from the URL.")
	}

	return &skim.Article{
		Text:        text,
		Title:       strings.TrimSpace(result.Title),
		ContentHTML: result.ContentHTML,
	}, nil
}

func (s *Service) fetch(ctx context.Context, pageURL string) (*skim.SourceDocument, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	html, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, classifyFetchError(ctx, err)
	}
	return &skim.SourceDocument{URL: pageURL, HTML: html}, nil
}

// classifyFetchError makes sure no unclassified error leaves the stage.
// Fetchers classify their own failures; anything else is either our
// deadline firing or an internal failure.
func classifyFetchError(ctx context.Context, err error) error {
	var e *skim.Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &skim.Error{
			Code:    skim.ETIMEOUT,
			Message: "Request timeout - the URL took too long to respond.",
			Err:     err,
		}
	}
	return &skim.Error{
		Code:    skim.EINTERNAL,
		Message: "Failed to extract content from the URL. Please try a different article.",
		Err:     err,
	}
}

// ValidateURL returns EINVALID unless rawURL is an absolute http(s) URL.
func ValidateURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return skim.Errorf(skim.EINVALID, "No URL provided.")
	}

	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return skim.Errorf(skim.EINVALID, "Invalid URL format.")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return skim.Errorf(skim.EINVALID, "Invalid URL format.")
	}
	return nil
}
