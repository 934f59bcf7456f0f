// Package browser drives a Chrome session to read Slack web client credentials.
package browser

import (
	"context"
	"os"
	"sync"

	"github.com/chromedp/chromedp"

	"slack-archiver/pkg/log"
)

// PoolConfig selects how Chrome is reached.
type PoolConfig struct {
	// RemoteURL is a DevTools websocket URL. When set no local Chrome is started.
	RemoteURL string
	// ProfileDir is a Chrome user data dir holding a logged-in Slack session.
	ProfileDir string
}

// Pool manages one Chrome process and allows one tab at a time.
type Pool struct {
	cfg    PoolConfig
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	tabSem chan struct{}
}

// NewPool starts or connects to Chrome.
func NewPool(cfg PoolConfig) (*Pool, error) {
	p := &Pool{
		cfg:    cfg,
		tabSem: make(chan struct{}, 1),
	}
	if err := p.start(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pool) allocator() (context.Context, context.CancelFunc) {
	if p.cfg.RemoteURL != "" {
		log.GlobalInfo("browser pool using remote chrome")
		return chromedp.NewRemoteAllocator(context.Background(), p.cfg.RemoteURL)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("mute-audio", true),
	)
	if p.cfg.ProfileDir != "" {
		opts = append(opts, chromedp.UserDataDir(p.cfg.ProfileDir))
	}
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		log.GlobalInfo("browser pool using custom chrome path", "path", chromePath)
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	return chromedp.NewExecAllocator(context.Background(), opts...)
}

// start initializes or restarts the Chrome connection.
func (p *Pool) start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	allocCtx, cancelAlloc := p.allocator()
	ctx, cancelCtx := chromedp.NewContext(allocCtx)
	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}

	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return err
	}

	p.ctx = ctx
	p.cancel = cancel

	log.GlobalInfo("browser pool chrome started")
	return nil
}

// WithTab runs fn in a fresh tab. It waits for the single tab slot and
// gives up when ctx is done first. Cancelling ctx also closes the tab.
func (p *Pool) WithTab(ctx context.Context, fn func(tabCtx context.Context) error) error {
	select {
	case p.tabSem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-p.tabSem }()

	tabCtx, tabCancel, err := p.acquireTab()
	if err != nil {
		return err
	}
	defer tabCancel()

	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	return fn(tabCtx)
}

// acquireTab opens a tab and restarts Chrome once if the tab is unhealthy.
func (p *Pool) acquireTab() (context.Context, context.CancelFunc, error) {
	p.mu.Lock()
	tabCtx, tabCancel := chromedp.NewContext(p.ctx)
	p.mu.Unlock()

	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()

		log.GlobalWarn("browser pool tab failed, restarting chrome", "error", err)

		if restartErr := p.start(); restartErr != nil {
			return nil, nil, restartErr
		}

		p.mu.Lock()
		tabCtx, tabCancel = chromedp.NewContext(p.ctx)
		p.mu.Unlock()
	}

	return tabCtx, tabCancel, nil
}

// Close shuts the browser down.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
		log.GlobalInfo("browser pool chrome stopped")
	}
}
