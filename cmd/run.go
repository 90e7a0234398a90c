// File: cmd/run.go
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/shymouse/internal/browser"
	"github.com/xkilldash9x/shymouse/internal/browser/simulated"
	"github.com/xkilldash9x/shymouse/internal/config"
	"github.com/xkilldash9x/shymouse/internal/humanoid"
	"github.com/xkilldash9x/shymouse/internal/observability"
)

// Supported run actions.
const (
	actionMove   = "move"
	actionClick  = "click"
	actionScroll = "scroll"
)

func newRunCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a real browser with human-like input",
		Example: `  shymouse run --url https://example.com --selector "a" --action click
  shymouse run --url https://example.com --selector "#footer" --action scroll --driver rod`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, _ := cmd.Flags().GetString("url")
			selector, _ := cmd.Flags().GetString("selector")
			action, _ := cmd.Flags().GetString("action")

			// Flags override the loaded config only when given.
			cfg := st.cfg
			if cmd.Flags().Changed("driver") {
				driver, _ := cmd.Flags().GetString("driver")
				cfg.SetBrowserDriver(driver)
			}
			if cmd.Flags().Changed("headless") {
				headless, _ := cmd.Flags().GetBool("headless")
				cfg.SetBrowserHeadless(headless)
			}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				cfg.SetHumanoidSeed(seed)
			}
			if cmd.Flags().Changed("strict-scroll") {
				strict, _ := cmd.Flags().GetBool("strict-scroll")
				cfg.SetHumanoidStrictScroll(strict)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			switch action {
			case actionMove:
			case actionClick, actionScroll:
				if selector == "" {
					return fmt.Errorf("--selector is required for %s", action)
				}
			default:
				return fmt.Errorf("unknown action %q (use move, click or scroll)", action)
			}

			elementRaw, _ := cmd.Flags().GetString("element")
			var element []float64
			if elementRaw != "" {
				if cfg.Browser().Driver != config.DriverSimulated {
					return fmt.Errorf("--element only applies to the simulated driver")
				}
				if selector == "" {
					return fmt.Errorf("--element needs --selector to name the element")
				}
				var err error
				if element, err = parseFloats(elementRaw, 4); err != nil {
					return fmt.Errorf("invalid --element: %w", err)
				}
			}

			logger := observability.Component("run")
			ctx := cmd.Context()

			page, err := browser.Open(ctx, cfg.Browser(), logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := page.Close(); err != nil {
					logger.Warn("Error closing browser.", zap.Error(err))
				}
			}()

			if sim, ok := page.(*simulated.Page); ok && element != nil {
				sim.AddElement(selector, element[0], element[1], element[2], element[3])
			}

			if url != "" {
				if err := page.Navigate(ctx, url); err != nil {
					return err
				}
			}

			h := humanoid.New(humanoid.ConfigFromSettings(cfg.Humanoid()), logger, page)
			start := time.Now()
			if err := perform(ctx, h, page, action, selector); err != nil {
				return err
			}

			pos := h.Position()
			logger.Info("Action completed.",
				zap.String("action", action),
				zap.String("selector", selector),
				zap.Duration("took", time.Since(start)))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s done at (%.1f, %.1f) session=%s\n", action, pos.X, pos.Y, h.SessionID())
			return err
		},
	}
	cmd.Flags().String("url", "", "page to open before acting")
	cmd.Flags().StringP("selector", "s", "", "CSS selector of the target element")
	cmd.Flags().StringP("action", "a", actionClick, "action to perform: move, click or scroll")
	cmd.Flags().String("driver", "", "browser driver: cdp, rod, playwright or simulated (overrides config)")
	cmd.Flags().Bool("headless", true, "run the browser headless (overrides config)")
	cmd.Flags().Int64("seed", 0, "random seed (overrides config)")
	cmd.Flags().Bool("strict-scroll", false, "fail a click when its pre-scroll fails (overrides config)")
	cmd.Flags().String("element", "", "simulated driver only: place --selector at document x,y,w,h")
	return cmd
}

// perform runs one action. A move with a selector glides to the element
// center; without one it picks a random destination.
func perform(ctx context.Context, h *humanoid.Humanoid, page browser.Page, action, selector string) error {
	switch action {
	case actionClick:
		return h.Click(ctx, selector, nil)
	case actionScroll:
		return h.ScrollToElement(ctx, selector, nil)
	default:
		if selector == "" {
			return h.Move(ctx, nil)
		}
		geo, err := page.GetElementGeometry(ctx, selector)
		if err != nil {
			return err
		}
		if geo == nil {
			return fmt.Errorf("%w: '%s'", humanoid.ErrNoBoundingBox, selector)
		}
		return h.MoveTo(ctx, &humanoid.Vector2D{X: geo.CenterX(), Y: geo.CenterY()}, nil)
	}
}
