package extract

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/fwojciec/skim"
	"golang.org/x/time/rate"
)

// HostLimiter provides per-host rate limiting using token buckets, so that a
// batch of URLs on the same site does not hammer it while requests to
// different hosts proceed concurrently.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second per
// host, with a burst of 1.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to host is allowed.
// Returns an error if the context is canceled before the wait completes.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}

// Ensure LimitedFetcher implements skim.Fetcher at compile time.
var _ skim.Fetcher = (*LimitedFetcher)(nil)

// LimitedFetcher waits on a HostLimiter before every fetch.
type LimitedFetcher struct {
	next    skim.Fetcher
	limiter *HostLimiter
}

// NewLimitedFetcher wraps next with per-host rate limiting.
func NewLimitedFetcher(next skim.Fetcher, limiter *HostLimiter) *LimitedFetcher {
	return &LimitedFetcher{next: next, limiter: limiter}
}

// Fetch waits for the host's turn and delegates to the wrapped fetcher.
// A wait that cannot finish before the context deadline is a timeout; the
// limiter reports it early, before ctx.Err is set.
func (f *LimitedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", skim.Errorf(skim.EINVALID, "Invalid URL format.")
	}
	if err := f.limiter.Wait(ctx, u.Hostname()); err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", &skim.Error{
			Code:    skim.ETIMEOUT,
			Message: "Request timeout - the URL took too long to respond.",
			Err:     err,
		}
	}
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LimitedFetcher) Close() error {
	return f.next.Close()
}
