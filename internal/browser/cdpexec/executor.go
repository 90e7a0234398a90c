// internal/browser/cdpexec/executor.go
package cdpexec

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/shymouse/api/schemas"
	"github.com/xkilldash9x/shymouse/internal/browser/dom"
	"github.com/xkilldash9x/shymouse/internal/humanoid"
)

// Executor implements humanoid.Executor over the Chrome DevTools Protocol.
// Input goes through Input.dispatchMouseEvent so the page sees trusted events.
type Executor struct {
	tabCtx         context.Context // chromedp context bound to the tab
	logger         *zap.Logger
	timeout        time.Duration
	runActionsFunc func(ctx context.Context, actions ...chromedp.Action) error
}

var _ humanoid.Executor = (*Executor)(nil)

// NewExecutor wraps a chromedp tab context. Each operation is bounded by timeout.
func NewExecutor(tabCtx context.Context, logger *zap.Logger, timeout time.Duration) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	e := &Executor{
		tabCtx:  tabCtx,
		logger:  logger.Named("cdpexec"),
		timeout: timeout,
	}
	e.runActionsFunc = e.runActions
	return e
}

// runActions runs actions on the tab, aborting when either ctx or the tab ends.
func (e *Executor) runActions(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(e.tabCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// run applies the per-operation timeout and labels timeouts.
func (e *Executor) run(ctx context.Context, op string, actions ...chromedp.Action) error {
	opCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	err := e.runActionsFunc(opCtx, actions...)
	if err != nil && opCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		e.logger.Debug("CDP operation timed out.", zap.String("op", op), zap.Duration("timeout", e.timeout))
		return fmt.Errorf("cdpexec: %s timed out after %v: %w", op, e.timeout, opCtx.Err())
	}
	return err
}

// Sleep pauses on the host; nothing needs to happen in the page.
func (e *Executor) Sleep(ctx context.Context, d time.Duration) error {
	return humanoid.Sleep(ctx, d)
}

// DispatchMouseEvent dispatches a single mouse event via CDP.
func (e *Executor) DispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error {
	p := input.DispatchMouseEvent(input.MouseType(data.Type), data.X, data.Y).
		WithButton(input.MouseButton(data.Button)).
		WithButtons(data.Buttons).
		WithClickCount(int64(data.ClickCount))

	// Wheel deltas only make sense on mouseWheel events.
	if data.Type == schemas.MouseWheel {
		p = p.WithDeltaX(data.DeltaX).WithDeltaY(data.DeltaY)
	}
	return e.run(ctx, "dispatch "+string(data.Type), p)
}

// evaluate runs a function expression in the page and stores its JSON result in res.
func (e *Executor) evaluate(ctx context.Context, op, fn string, res interface{}, args ...interface{}) error {
	expr, err := dom.Invoke(fn, args...)
	if err != nil {
		return err
	}
	err = e.run(ctx, op, chromedp.Evaluate(expr, res, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
		return p.WithReturnByValue(true).WithAwaitPromise(true).WithSilent(true)
	}))
	if err != nil {
		return fmt.Errorf("cdpexec: %s failed: %w", op, err)
	}
	return nil
}

// GetElementGeometry returns the viewport-relative box of selector, or nil
// when the element is missing or not rendered.
func (e *Executor) GetElementGeometry(ctx context.Context, selector string) (*schemas.ElementGeometry, error) {
	var res json.RawMessage
	if err := e.evaluate(ctx, "geometry", dom.GeometryFunc, &res, selector); err != nil {
		return nil, err
	}
	geo, err := dom.DecodeGeometry(res)
	if err != nil {
		return nil, err
	}
	if geo == nil {
		e.logger.Debug("Element not found or not rendered.", zap.String("selector", selector))
	}
	return geo, nil
}

// GetScrollOffset reads window.scrollY.
func (e *Executor) GetScrollOffset(ctx context.Context) (float64, error) {
	var y float64
	if err := e.evaluate(ctx, "scroll offset", dom.ScrollOffsetFunc, &y); err != nil {
		return 0, err
	}
	return y, nil
}

// GetViewport reads the inner window size.
func (e *Executor) GetViewport(ctx context.Context) (schemas.Viewport, error) {
	var res map[string]interface{}
	if err := e.evaluate(ctx, "viewport", dom.ViewportFunc, &res); err != nil {
		return schemas.Viewport{}, err
	}
	return dom.DecodeViewport(res)
}
