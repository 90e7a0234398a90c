// internal/browser/rodexec/launcher.go
package rodexec

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/xkilldash9x/shymouse/internal/config"
)

// Browser is a rod-controlled Chrome with one page.
type Browser struct {
	*Executor
	launcher *launcher.Launcher
	browser  *rod.Browser
	cfg      config.BrowserConfig
}

// NewLauncher configures, but does not start, the Chrome process.
func NewLauncher(cfg config.BrowserConfig) *launcher.Launcher {
	l := launcher.New().
		Headless(cfg.Headless).
		Delete(flags.Flag("enable-automation")).
		Set(flags.Flag("disable-blink-features"), "AutomationControlled").
		Set(flags.Flag("window-size"), fmt.Sprintf("%d,%d", cfg.Viewport.Width, cfg.Viewport.Height))
	if cfg.ExecPath != "" {
		l = l.Bin(cfg.ExecPath)
	}
	for _, arg := range cfg.Args {
		parts := strings.SplitN(arg, "=", 2)
		name := flags.Flag(strings.TrimPrefix(parts[0], "--"))
		if len(parts) == 2 {
			l = l.Set(name, parts[1])
		} else {
			l = l.Set(name)
		}
	}
	return l
}

// Launch starts Chrome, connects and opens a blank page sized to the viewport.
func Launch(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Browser, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("rod")

	l := NewLauncher(cfg).Context(ctx)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("rodexec: failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("rodexec: failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("rodexec: failed to open page: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.Viewport.Width,
		Height:            cfg.Viewport.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("rodexec: failed to set viewport: %w", err)
	}
	logger.Info("Browser launched.", zap.Bool("headless", cfg.Headless))

	return &Browser{
		Executor: NewExecutor(page, logger, cfg.ActionTimeout),
		launcher: l,
		browser:  browser,
		cfg:      cfg,
	}, nil
}

// Navigate loads url and waits for the load event.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, b.cfg.NavigationTimeout)
	defer cancel()
	page := b.page.Context(navCtx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("rodexec: navigation to %s failed: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("rodexec: waiting for %s to load: %w", url, err)
	}
	b.logger.Debug("Navigated.", zap.String("url", url))
	return nil
}

// Close shuts the browser down and removes its profile directory.
func (b *Browser) Close() error {
	err := b.browser.Close()
	b.launcher.Kill()
	b.launcher.Cleanup()
	if err != nil {
		return fmt.Errorf("rodexec: close: %w", err)
	}
	return nil
}
