// internal/browser/rodexec/executor.go
//
// Package rodexec drives a page through go-rod. Input goes out as raw
// Input.dispatchMouseEvent calls so every event honors the caller's context.
package rodexec

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/xkilldash9x/shymouse/api/schemas"
	"github.com/xkilldash9x/shymouse/internal/browser/dom"
	"github.com/xkilldash9x/shymouse/internal/humanoid"
)

// Executor implements humanoid.Executor on top of a rod page.
type Executor struct {
	page    *rod.Page
	logger  *zap.Logger
	timeout time.Duration
}

var _ humanoid.Executor = (*Executor)(nil)

// NewExecutor binds an executor to page. Each call is bounded by timeout.
func NewExecutor(page *rod.Page, logger *zap.Logger, timeout time.Duration) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{page: page, logger: logger, timeout: timeout}
}

// scoped returns the page bound to ctx and the action timeout.
func (e *Executor) scoped(ctx context.Context) (*rod.Page, context.CancelFunc) {
	if e.timeout <= 0 {
		return e.page.Context(ctx), func() {}
	}
	opCtx, cancel := context.WithTimeout(ctx, e.timeout)
	return e.page.Context(opCtx), cancel
}

func (e *Executor) Sleep(ctx context.Context, d time.Duration) error {
	return humanoid.Sleep(ctx, d)
}

func (e *Executor) DispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error {
	req, err := toDispatchRequest(data)
	if err != nil {
		return err
	}
	page, cancel := e.scoped(ctx)
	defer cancel()
	if err := req.Call(page); err != nil {
		return fmt.Errorf("rodexec: dispatch %s: %w", data.Type, err)
	}
	return nil
}

// toDispatchRequest maps the driver-neutral event onto the CDP call rod sends.
func toDispatchRequest(data schemas.MouseEventData) (*proto.InputDispatchMouseEvent, error) {
	req := &proto.InputDispatchMouseEvent{
		X:          data.X,
		Y:          data.Y,
		ClickCount: data.ClickCount,
	}

	switch data.Type {
	case schemas.MouseMove:
		req.Type = proto.InputDispatchMouseEventTypeMouseMoved
	case schemas.MousePress:
		req.Type = proto.InputDispatchMouseEventTypeMousePressed
	case schemas.MouseRelease:
		req.Type = proto.InputDispatchMouseEventTypeMouseReleased
	case schemas.MouseWheel:
		req.Type = proto.InputDispatchMouseEventTypeMouseWheel
		req.DeltaX = data.DeltaX
		req.DeltaY = data.DeltaY
	default:
		return nil, fmt.Errorf("rodexec: unsupported mouse event type: %s", data.Type)
	}

	switch data.Button {
	case schemas.ButtonLeft:
		req.Button = proto.InputMouseButtonLeft
	case schemas.ButtonRight:
		req.Button = proto.InputMouseButtonRight
	case schemas.ButtonMiddle:
		req.Button = proto.InputMouseButtonMiddle
	default:
		req.Button = proto.InputMouseButtonNone
	}

	if data.Type != schemas.MouseWheel {
		buttons := int(data.Buttons)
		req.Buttons = &buttons
	}
	return req, nil
}

func (e *Executor) GetElementGeometry(ctx context.Context, selector string) (*schemas.ElementGeometry, error) {
	page, cancel := e.scoped(ctx)
	defer cancel()
	res, err := page.Eval(dom.GeometryFunc, selector)
	if err != nil {
		return nil, fmt.Errorf("rodexec: geometry for '%s': %w", selector, err)
	}
	if res.Value.Nil() {
		return nil, nil
	}
	return dom.DecodeGeometry([]byte(res.Value.JSON("", "")))
}

func (e *Executor) GetScrollOffset(ctx context.Context) (float64, error) {
	page, cancel := e.scoped(ctx)
	defer cancel()
	res, err := page.Eval(dom.ScrollOffsetFunc)
	if err != nil {
		return 0, fmt.Errorf("rodexec: scroll offset: %w", err)
	}
	return res.Value.Num(), nil
}

func (e *Executor) GetViewport(ctx context.Context) (schemas.Viewport, error) {
	page, cancel := e.scoped(ctx)
	defer cancel()
	res, err := page.Eval(dom.ViewportFunc)
	if err != nil {
		return schemas.Viewport{}, fmt.Errorf("rodexec: viewport: %w", err)
	}
	return dom.DecodeViewport(res.Value.Val())
}
