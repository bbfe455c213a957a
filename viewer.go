package pdfview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// LoadEvent describes a completed load in the embedded viewer.
type LoadEvent struct {
	// URI is the locator the surface finished loading.
	URI string
	// Duration is the time from navigation to the load report.
	Duration time.Duration
}

// Viewer is the embedded web-rendering surface PDF content is delivered to.
// The library only configures a Viewer and hands it resolved locators; it
// never renders PDF content itself.
type Viewer interface {
	// Display navigates the surface to the locator and returns once the
	// surface reports its first load, or when ctx is done.
	Display(ctx context.Context, loc Locator) (*LoadEvent, error)

	// Close releases the surface's resources.
	Close() error
}

// ChromeViewer displays locators in a headless Chrome tab.
//
// A ChromeViewer manages a browser instance that is reused across displays
// for performance. It is safe for concurrent use.
//
// Call [ChromeViewer.Close] when the viewer is no longer needed to release
// browser resources.
type ChromeViewer struct {
	cfg           config
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewChromeViewer starts a headless browser and returns a [Viewer] backed by
// it. The caller must call [ChromeViewer.Close] when finished.
func NewChromeViewer(opts ...Option) (*ChromeViewer, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.autoDownload && cfg.chromePath == "" {
		path, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		cfg.chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("pdfview: starting browser: %w", err)
	}

	return &ChromeViewer{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the viewer, including the browser
// process. Close is idempotent.
func (v *ChromeViewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil
	}
	v.closed = true
	v.browserCancel()
	v.allocCancel()
	return nil
}

// Display opens the locator in a fresh tab and waits for the page to become
// ready. Locator headers are attached to every request the tab issues.
func (v *ChromeViewer) Display(ctx context.Context, loc Locator) (*LoadEvent, error) {
	if err := v.checkClosed(); err != nil {
		return nil, err
	}

	if v.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(v.browserCtx)
	defer tabCancel()

	// The tab descends from the browser context; cancel it when the
	// caller's context ends.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	actions := make([]chromedp.Action, 0, 4)
	if len(loc.Headers) > 0 {
		headers := make(network.Headers, len(loc.Headers))
		for k, val := range loc.Headers {
			headers[k] = val
		}
		actions = append(actions, network.Enable(), network.SetExtraHTTPHeaders(headers))
	}
	actions = append(actions,
		chromedp.Navigate(loc.URI),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)

	start := time.Now()
	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return nil, fmt.Errorf("pdfview: displaying %s: %w", loc.URI, err)
	}
	return &LoadEvent{URI: loc.URI, Duration: time.Since(start)}, nil
}

func (v *ChromeViewer) checkClosed() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	return nil
}
