package rod

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fwojciec/skim"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the number of pages one Chrome process renders before it
// is replaced.
const DefaultMaxPages = 75

// pool hands out tabs from a headless Chrome process and swaps the process for
// a fresh one every maxPages tabs. Chrome's resident memory grows with every
// page even after the tab is closed, which a long-running server cannot
// afford. Tabs still open on a retired process keep working; the process is
// shut down when the last of them is released.
type pool struct {
	maxPages  int
	bin       string
	userAgent string
	logger    *slog.Logger

	mu      sync.Mutex
	current *instance
	closed  bool
}

// instance is one launched Chrome process.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int
	open     int
	retired  bool
}

func newPool(maxPages int, bin, userAgent string, logger *slog.Logger) (*pool, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	p := &pool{
		maxPages:  maxPages,
		bin:       bin,
		userAgent: userAgent,
		logger:    logger,
	}
	inst, err := p.launch()
	if err != nil {
		return nil, err
	}
	p.current = inst
	return p, nil
}

// page opens a tab bound to ctx that reports the pool's User-Agent. The
// release func closes the tab and must be called exactly once.
func (p *pool) page(ctx context.Context) (*rod.Page, func(), error) {
	inst, err := p.acquire()
	if err != nil {
		return nil, nil, err
	}

	tab, err := inst.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		p.release(inst)
		return nil, nil, fmt.Errorf("opening page: %w", err)
	}
	// The tab is closed through the unbound handle so that an expired ctx
	// does not leave it open.
	release := func() {
		_ = tab.Close()
		p.release(inst)
	}

	page := tab.Context(ctx)
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: p.userAgent}); err != nil {
		release()
		return nil, nil, err
	}
	return page, release, nil
}

// acquire reserves a tab on the current process, replacing the process first
// when it has served maxPages tabs.
func (p *pool) acquire() (*instance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, skim.Errorf(skim.EINTERNAL, "fetcher is closed")
	}
	if p.current.served >= p.maxPages {
		p.recycle()
	}
	p.current.served++
	p.current.open++
	return p.current, nil
}

func (p *pool) release(inst *instance) {
	p.mu.Lock()
	defer p.mu.Unlock()

	inst.open--
	if inst.retired && inst.open == 0 {
		_ = inst.shutdown()
	}
}

// recycle launches a replacement process. When the launch fails the current
// process keeps serving and the next acquire tries again.
// Must be called with mu held.
func (p *pool) recycle() {
	next, err := p.launch()
	if err != nil {
		p.logger.Warn("browser recycle failed", "pages", p.current.served, "error", err)
		return
	}

	old := p.current
	old.retired = true
	p.current = next
	p.logger.Debug("browser recycled", "pages", old.served, "open", old.open)

	if old.open == 0 {
		_ = old.shutdown()
	}
}

// launch starts Chrome with flags that keep background tabs from being
// throttled.
func (p *pool) launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if p.bin != "" {
		l = l.Bin(p.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: browser, launcher: l}, nil
}

// close shuts the current process down, including tabs still in use.
func (p *pool) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.current.retired = true
	return p.current.shutdown()
}

// shutdown is safe to call more than once.
func (i *instance) shutdown() error {
	var err error
	if i.browser != nil {
		err = i.browser.Close()
		i.browser = nil
	}
	if i.launcher != nil {
		i.launcher.Kill()
		i.launcher = nil
	}
	return err
}
