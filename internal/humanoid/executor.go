// Filename: internal/humanoid/executor.go
package humanoid

import (
	"context"
	"time"

	"github.com/xkilldash9x/shymouse/api/schemas"
	"golang.org/x/time/rate"
)

// ThrottledExecutor wraps an Executor and caps the rate at which mouse events
// reach it. Geometry queries and sleeps pass straight through.
type ThrottledExecutor struct {
	next    Executor
	limiter *rate.Limiter
}

var _ Executor = (*ThrottledExecutor)(nil)

// NewThrottledExecutor allows at most eventsPerSecond dispatched events with
// the given burst. A burst below one is treated as one.
func NewThrottledExecutor(next Executor, eventsPerSecond float64, burst int) *ThrottledExecutor {
	if burst < 1 {
		burst = 1
	}
	return &ThrottledExecutor{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(eventsPerSecond), burst),
	}
}

func (e *ThrottledExecutor) Sleep(ctx context.Context, d time.Duration) error {
	return e.next.Sleep(ctx, d)
}

// DispatchMouseEvent waits for a token before forwarding the event.
func (e *ThrottledExecutor) DispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}
	return e.next.DispatchMouseEvent(ctx, data)
}

func (e *ThrottledExecutor) GetElementGeometry(ctx context.Context, selector string) (*schemas.ElementGeometry, error) {
	return e.next.GetElementGeometry(ctx, selector)
}

func (e *ThrottledExecutor) GetScrollOffset(ctx context.Context) (float64, error) {
	return e.next.GetScrollOffset(ctx)
}

func (e *ThrottledExecutor) GetViewport(ctx context.Context) (schemas.Viewport, error) {
	return e.next.GetViewport(ctx)
}
