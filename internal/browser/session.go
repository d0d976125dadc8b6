// Package browser manages a single lazily-started headless browser session
// driven over the Chrome DevTools Protocol.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/image-foundry/imgscrape/pkg/models"
	"github.com/rs/zerolog/log"
)

// Kind identifies a supported browser family.
type Kind string

const (
	KindChrome Kind = "chrome"
	KindEdge   Kind = "edge"
)

// ErrUnsupportedKind is returned when a browser kind is not one of the
// supported families.
var ErrUnsupportedKind = errors.New("unsupported browser kind")

// ParseKind validates a browser kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindChrome:
		return KindChrome, nil
	case KindEdge:
		return KindEdge, nil
	default:
		return "", fmt.Errorf("%w: %q (choose between: [chrome, edge])", ErrUnsupportedKind, s)
	}
}

// Options configures a browser session.
type Options struct {
	Kind      Kind
	ExecPath  string // explicit browser executable; auto-located when empty
	Headless  bool
	UserAgent string
	ExtraArgs []chromedp.ExecAllocatorOption
}

// Session wraps a chromedp browser context that is built on first use.
// All methods are safe for sequential use; Close is idempotent.
type Session struct {
	opts Options

	mu          sync.Mutex
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
	started     bool
}

// NewSession prepares a session without starting a browser process.
func NewSession(opts Options) (*Session, error) {
	if _, err := ParseKind(string(opts.Kind)); err != nil {
		return nil, err
	}
	return &Session{opts: opts}, nil
}

// Kind returns the browser family this session drives.
func (s *Session) Kind() Kind {
	return s.opts.Kind
}

// start builds the allocator and browser context. Caller holds s.mu.
func (s *Session) start() error {
	if s.started {
		return nil
	}

	log.Info().Str("kind", string(s.opts.Kind)).Msg("Building browser session")

	execPath := s.opts.ExecPath
	if execPath == "" {
		execPath = Locate(s.opts.Kind)
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1920,1080"),
	}

	if execPath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(execPath)}, allocOpts...)
	}
	if s.opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if s.opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(s.opts.UserAgent))
	}
	allocOpts = append(allocOpts, s.opts.ExtraArgs...)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Warm up so a broken executable path fails here rather than mid-search.
	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("failed to start %s browser: %w", s.opts.Kind, err)
	}

	s.allocCancel = allocCancel
	s.ctx = browserCtx
	s.cancel = browserCancel
	s.started = true

	log.Debug().Str("exec_path", execPath).Bool("headless", s.opts.Headless).Msg("Browser session ready")
	return nil
}

// Run executes chromedp actions against the session, starting the browser
// if needed. The parent context bounds the whole operation.
func (s *Session) Run(parent context.Context, actions ...chromedp.Action) error {
	s.mu.Lock()
	if err := s.start(); err != nil {
		s.mu.Unlock()
		return err
	}
	ctx := s.ctx
	s.mu.Unlock()

	runCtx, cancel := mergeDeadline(ctx, parent)
	defer cancel()

	return chromedp.Run(runCtx, actions...)
}

// Evaluate runs a JavaScript expression in the page and stores the result
// in res.
func (s *Session) Evaluate(parent context.Context, script string, res interface{}) error {
	return s.Run(parent, chromedp.Evaluate(script, res))
}

// Navigate loads a URL and reports the page status. The network domain is
// enabled so the document response status can be observed.
func (s *Session) Navigate(parent context.Context, pageURL string) (*models.PageInfo, error) {
	start := time.Now()

	s.mu.Lock()
	if err := s.start(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	ctx := s.ctx
	s.mu.Unlock()

	runCtx, cancel := mergeDeadline(ctx, parent)
	defer cancel()

	var statusCode int64
	chromedp.ListenTarget(runCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok {
			if resp.Response.URL == pageURL {
				statusCode = resp.Response.Status
			}
		}
	})

	err := chromedp.Run(runCtx,
		network.Enable(),
		chromedp.Navigate(pageURL),
	)
	if err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}

	info := &models.PageInfo{
		URL:          pageURL,
		StatusCode:   int(statusCode),
		FetchedAt:    time.Now(),
		ResponseTime: time.Since(start).Milliseconds(),
	}

	log.Debug().
		Str("url", pageURL).
		Int("status", info.StatusCode).
		Int64("response_time_ms", info.ResponseTime).
		Msg("Page loaded")

	return info, nil
}

// Close shuts the browser down. Safe to call multiple times and before the
// session was ever started.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	log.Debug().Str("kind", string(s.opts.Kind)).Msg("Closing browser session")
	s.cancel()
	s.allocCancel()
	s.ctx = nil
	s.cancel = nil
	s.allocCancel = nil
	s.started = false
	return nil
}

// mergeDeadline derives a child of the browser context that also honors the
// caller's deadline and cancellation.
func mergeDeadline(browserCtx, parent context.Context) (context.Context, context.CancelFunc) {
	if deadline, ok := parent.Deadline(); ok {
		return context.WithDeadline(browserCtx, deadline)
	}
	ctx, cancel := context.WithCancel(browserCtx)
	stop := context.AfterFunc(parent, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
