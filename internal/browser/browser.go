// internal/browser/browser.go
//
// Package browser opens a page on the configured automation backend and
// hands it out as a humanoid.Executor.
package browser

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/shymouse/internal/browser/cdpexec"
	"github.com/xkilldash9x/shymouse/internal/browser/pwexec"
	"github.com/xkilldash9x/shymouse/internal/browser/rodexec"
	"github.com/xkilldash9x/shymouse/internal/browser/simulated"
	"github.com/xkilldash9x/shymouse/internal/config"
	"github.com/xkilldash9x/shymouse/internal/humanoid"
)

// Page is a single browser tab the humanoid can drive.
type Page interface {
	humanoid.Executor
	// Navigate loads url and waits for it to be ready.
	Navigate(ctx context.Context, url string) error
	// Close releases the tab and the browser behind it.
	Close() error
}

var (
	_ Page = (*cdpexec.Browser)(nil)
	_ Page = (*rodexec.Browser)(nil)
	_ Page = (*pwexec.Browser)(nil)
	_ Page = (*simulated.Page)(nil)
)

// Open launches the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (Page, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("browser: invalid configuration: %w", err)
	}
	logger.Debug("Opening browser.", zap.String("driver", cfg.Driver), zap.Bool("headless", cfg.Headless))

	switch cfg.Driver {
	case config.DriverCDP:
		b, err := cdpexec.Launch(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.DriverRod:
		b, err := rodexec.Launch(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.DriverPlaywright:
		b, err := pwexec.Launch(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.DriverSimulated:
		return simulated.NewPage(
			simulated.WithViewport(float64(cfg.Viewport.Width), float64(cfg.Viewport.Height)),
		), nil
	default:
		return nil, fmt.Errorf("browser: unknown driver %q", cfg.Driver)
	}
}
