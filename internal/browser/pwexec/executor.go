// internal/browser/pwexec/executor.go
//
// Package pwexec drives a page through Playwright. Playwright calls do not
// take a context, so cancellation is checked before each one.
package pwexec

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/shymouse/api/schemas"
	"github.com/xkilldash9x/shymouse/internal/browser/dom"
	"github.com/xkilldash9x/shymouse/internal/humanoid"
)

// pointer is the part of playwright.Mouse the executor uses.
type pointer interface {
	Move(x float64, y float64, options ...playwright.MouseMoveOptions) error
	Down(options ...playwright.MouseDownOptions) error
	Up(options ...playwright.MouseUpOptions) error
	Wheel(deltaX float64, deltaY float64) error
}

// evaluator is the part of playwright.Page the executor uses.
type evaluator interface {
	Evaluate(expression string, arg ...interface{}) (interface{}, error)
}

// Executor implements humanoid.Executor with the Playwright mouse and
// page evaluation.
type Executor struct {
	mouse  pointer
	page   evaluator
	logger *zap.Logger
}

var _ humanoid.Executor = (*Executor)(nil)

// NewExecutor wraps a Playwright page.
func NewExecutor(page playwright.Page, logger *zap.Logger) *Executor {
	return newExecutor(page.Mouse(), page, logger)
}

func newExecutor(mouse pointer, page evaluator, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{mouse: mouse, page: page, logger: logger}
}

func (e *Executor) Sleep(ctx context.Context, d time.Duration) error {
	return humanoid.Sleep(ctx, d)
}

// DispatchMouseEvent converts the event into the matching Playwright mouse call.
func (e *Executor) DispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var err error
	switch data.Type {
	case schemas.MouseMove:
		err = e.mouse.Move(data.X, data.Y)
	case schemas.MousePress:
		button := toButton(data.Button)
		err = e.mouse.Down(playwright.MouseDownOptions{
			Button:     &button,
			ClickCount: playwright.Int(data.ClickCount),
		})
	case schemas.MouseRelease:
		button := toButton(data.Button)
		err = e.mouse.Up(playwright.MouseUpOptions{
			Button:     &button,
			ClickCount: playwright.Int(data.ClickCount),
		})
	case schemas.MouseWheel:
		err = e.mouse.Wheel(data.DeltaX, data.DeltaY)
	default:
		return fmt.Errorf("pwexec: unsupported mouse event type: %s", data.Type)
	}
	if err != nil {
		return fmt.Errorf("pwexec: dispatch %s: %w", data.Type, err)
	}
	return nil
}

func toButton(b schemas.MouseButton) playwright.MouseButton {
	switch b {
	case schemas.ButtonRight:
		return *playwright.MouseButtonRight
	case schemas.ButtonMiddle:
		return *playwright.MouseButtonMiddle
	default:
		return *playwright.MouseButtonLeft
	}
}

func (e *Executor) GetElementGeometry(ctx context.Context, selector string) (*schemas.ElementGeometry, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	res, err := e.page.Evaluate(dom.GeometryFunc, selector)
	if err != nil {
		return nil, fmt.Errorf("pwexec: geometry for '%s': %w", selector, err)
	}
	return dom.DecodeGeometryValue(res)
}

func (e *Executor) GetScrollOffset(ctx context.Context) (float64, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	res, err := e.page.Evaluate(dom.ScrollOffsetFunc)
	if err != nil {
		return 0, fmt.Errorf("pwexec: scroll offset: %w", err)
	}
	return dom.ToFloat(res)
}

func (e *Executor) GetViewport(ctx context.Context) (schemas.Viewport, error) {
	if ctx.Err() != nil {
		return schemas.Viewport{}, ctx.Err()
	}
	res, err := e.page.Evaluate(dom.ViewportFunc)
	if err != nil {
		return schemas.Viewport{}, fmt.Errorf("pwexec: viewport: %w", err)
	}
	return dom.DecodeViewport(res)
}
