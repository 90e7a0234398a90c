// internal/browser/cdpexec/launcher.go
package cdpexec

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/shymouse/internal/config"
)

// Browser is a Chrome process with a single tab driven over CDP.
type Browser struct {
	*Executor
	logger            *zap.Logger
	navigationTimeout time.Duration
	allocCancel       context.CancelFunc
	tabCancel         context.CancelFunc
}

// chromeFlag is one command-line switch passed to Chrome.
type chromeFlag struct {
	name  string
	value interface{}
}

// chromeFlags lists the switches added on top of the chromedp defaults.
// A false value keeps a switch off the command line.
func chromeFlags(cfg config.BrowserConfig) []chromeFlag {
	flags := []chromeFlag{
		// Overrides the default that advertises automation.
		{name: "enable-automation", value: false},
		{name: "headless", value: cfg.Headless},
		{name: "disable-blink-features", value: "AutomationControlled"},
	}

	// Custom arguments from the config file, "--name" or "--name=value".
	for _, arg := range cfg.Args {
		parts := strings.SplitN(arg, "=", 2)
		name := strings.TrimPrefix(parts[0], "--")
		if len(parts) == 2 {
			flags = append(flags, chromeFlag{name: name, value: parts[1]})
		} else {
			flags = append(flags, chromeFlag{name: name, value: true})
		}
	}

	// Flags required for running inside containers.
	if runtime.GOOS == "linux" {
		flags = append(flags,
			chromeFlag{name: "no-sandbox", value: true},
			chromeFlag{name: "disable-dev-shm-usage", value: true},
		)
	}
	return flags
}

// AllocatorOptions translates the browser config into chromedp allocator options.
func AllocatorOptions(cfg config.BrowserConfig) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	for _, f := range chromeFlags(cfg) {
		opts = append(opts, chromedp.Flag(f.name, f.value))
	}
	opts = append(opts, chromedp.WindowSize(cfg.Viewport.Width, cfg.Viewport.Height))
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	return opts
}

// Launch starts Chrome and opens a blank tab.
func Launch(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Browser, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("cdp")

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, AllocatorOptions(cfg)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Sugar().Debugf),
		chromedp.WithErrorf(logger.Sugar().Errorf),
	)

	// Confirm the browser is alive before handing it out.
	startCtx, cancelStart := context.WithTimeout(tabCtx, cfg.NavigationTimeout)
	defer cancelStart()
	if err := chromedp.Run(startCtx, chromedp.Navigate("about:blank")); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("cdpexec: browser failed to start or respond: %w", err)
	}
	logger.Info("Browser launched.", zap.Bool("headless", cfg.Headless))

	return &Browser{
		Executor:          NewExecutor(tabCtx, logger, cfg.ActionTimeout),
		logger:            logger,
		navigationTimeout: cfg.NavigationTimeout,
		allocCancel:       allocCancel,
		tabCancel:         tabCancel,
	}, nil
}

// Navigate loads url and waits for the body to be ready.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, b.navigationTimeout)
	defer cancel()
	if err := b.runActionsFunc(navCtx, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("cdpexec: navigation to %s failed: %w", url, err)
	}
	b.logger.Debug("Navigated.", zap.String("url", url))
	return nil
}

// Close closes the tab and terminates the browser process.
func (b *Browser) Close() error {
	b.tabCancel()
	b.allocCancel()
	return nil
}
