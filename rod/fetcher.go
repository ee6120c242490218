// Package rod implements skim.Fetcher with a headless Chrome browser so that
// pages which build their content with JavaScript can be extracted.
package rod

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/skim"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements skim.Fetcher at compile time.
var _ skim.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	pool *pool

	timeout   time.Duration
	userAgent string
	maxPages  int
	bin       string
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent reported by the browser.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxPages sets how many pages one Chrome process renders before it is
// replaced. Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithBrowserBin uses the given Chrome/Chromium binary instead of looking one
// up or downloading it.
func WithBrowserBin(path string) Option {
	return func(f *Fetcher) {
		f.bin = path
	}
}

// WithLogger sets the logger for browser lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new Fetcher backed by a recycling headless browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: skim.DefaultUserAgent,
		maxPages:  DefaultMaxPages,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	p, err := newPool(f.maxPages, f.bin, f.userAgent, f.logger)
	if err != nil {
		return nil, err
	}
	f.pool = p

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, release, err := f.pool.page(ctx)
	if err != nil {
		return "", classifyError(ctx, err)
	}
	defer release()

	status := make(chan int, 1)
	go page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status <- e.Response.Status
		return true
	})()

	if err := page.Navigate(url); err != nil {
		return "", classifyError(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", classifyError(ctx, err)
	}

	// The response event is delivered on its own goroutine and may still be
	// in flight after the load event.
	select {
	case code := <-status:
		if err := checkStatus(code); err != nil {
			return "", err
		}
	case <-ctx.Done():
		return "", classifyError(ctx, ctx.Err())
	}

	html, err := page.HTML()
	if err != nil {
		return "", classifyError(ctx, err)
	}

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.pool.close()
}

// checkStatus reports a non-2xx document status as EFETCH.
func checkStatus(code int) error {
	if code >= 200 && code <= 299 {
		return nil
	}
	return &skim.Error{
		Code:    skim.EFETCH,
		Message: fmt.Sprintf("Failed to fetch URL: %d", code),
		Status:  code,
	}
}

// Chrome network error names grouped by how they are reported.
var (
	unreachableReasons = []string{
		"ERR_NAME_NOT_RESOLVED",
		"ERR_CONNECTION_REFUSED",
		"ERR_CONNECTION_RESET",
		"ERR_CONNECTION_CLOSED",
		"ERR_ADDRESS_UNREACHABLE",
		"ERR_INTERNET_DISCONNECTED",
	}
	timeoutReasons = []string{
		"ERR_TIMED_OUT",
		"ERR_CONNECTION_TIMED_OUT",
	}
)

// classifyError maps browser failures onto the fetch error taxonomy.
// Cancellation by the caller is returned as is.
func classifyError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &skim.Error{
			Code:    skim.ETIMEOUT,
			Message: "Request timeout - the URL took too long to respond.",
			Err:     context.DeadlineExceeded,
		}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var nav *rod.NavigationError
	if errors.As(err, &nav) {
		switch {
		case containsAny(nav.Reason, timeoutReasons):
			return &skim.Error{
				Code:    skim.ETIMEOUT,
				Message: "Request timeout - the URL took too long to respond.",
				Err:     err,
			}
		case containsAny(nav.Reason, unreachableReasons):
			return &skim.Error{
				Code:    skim.EUNREACHABLE,
				Message: "Could not connect to the URL. Please check if the URL is accessible.",
				Err:     err,
			}
		}
	}

	return err
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
