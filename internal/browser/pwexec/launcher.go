// internal/browser/pwexec/launcher.go
package pwexec

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/shymouse/internal/config"
)

// Browser owns the Playwright driver, a Chromium instance and one page.
type Browser struct {
	*Executor
	pw      *playwright.Playwright
	browser playwright.Browser
	pwPage  playwright.Page
	cfg     config.BrowserConfig
}

// LaunchOptions translates the browser config into Chromium launch options.
func LaunchOptions(cfg config.BrowserConfig) playwright.BrowserTypeLaunchOptions {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless:          playwright.Bool(cfg.Headless),
		Args:              append([]string{"--disable-blink-features=AutomationControlled"}, cfg.Args...),
		IgnoreDefaultArgs: []string{"--enable-automation"},
	}
	if cfg.ExecPath != "" {
		opts.ExecutablePath = playwright.String(cfg.ExecPath)
	}
	return opts
}

// Launch starts the Playwright driver and Chromium, then opens a page with
// the configured viewport.
func Launch(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Browser, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("playwright")
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("pwexec: could not start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(LaunchOptions(cfg))
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("pwexec: could not launch browser: %w", err)
	}
	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  cfg.Viewport.Width,
			Height: cfg.Viewport.Height,
		},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("pwexec: could not create context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("pwexec: could not create page: %w", err)
	}
	page.SetDefaultTimeout(float64(cfg.ActionTimeout.Milliseconds()))
	logger.Info("Browser launched.", zap.Bool("headless", cfg.Headless))

	return &Browser{
		Executor: NewExecutor(page, logger),
		pw:       pw,
		browser:  browser,
		pwPage:   page,
		cfg:      cfg,
	}, nil
}

// Navigate loads url and waits for the load event.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	_, err := b.pwPage.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(b.cfg.NavigationTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("pwexec: navigation to %s failed: %w", url, err)
	}
	b.logger.Debug("Navigated.", zap.String("url", url))
	return nil
}

// Close closes Chromium and stops the driver.
func (b *Browser) Close() error {
	if err := b.browser.Close(); err != nil {
		_ = b.pw.Stop()
		return fmt.Errorf("pwexec: close browser: %w", err)
	}
	if err := b.pw.Stop(); err != nil {
		return fmt.Errorf("pwexec: stop driver: %w", err)
	}
	return nil
}
