// internal/humanoid/clickmodel.go
package humanoid

import (
	"context"
	"errors"
	"fmt"

	"github.com/xkilldash9x/shymouse/api/schemas"
	"go.uber.org/zap"
)

// Click scrolls the element into view if needed, glides the cursor to a point
// near its center and performs a left click with a human hold time.
func (h *Humanoid) Click(ctx context.Context, selector string, opts *Options) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	o, err := h.resolveOptions(opts)
	if err != nil {
		return err
	}

	// 1. Bring the element into view.
	result := h.preClickScroll(ctx, selector, o)
	if result.Status == ScrollFailed {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if o.StrictScroll {
			return fmt.Errorf("humanoid: pre-click scroll failed for '%s': %w", selector, result.Err)
		}
		h.logger.Warn("Humanoid: pre-click scroll failed, clicking anyway",
			zap.String("selector", selector), zap.Error(result.Err))
	}

	// 2. Scrolling moved the element, so the box is read again.
	vp, err := h.executor.GetViewport(ctx)
	if err != nil {
		return fmt.Errorf("humanoid: failed to read viewport: %w", err)
	}
	geo, err := h.executor.GetElementGeometry(ctx, selector)
	if err != nil {
		return fmt.Errorf("humanoid: geometry retrieval failed for '%s': %w", selector, err)
	}
	if geo == nil {
		return fmt.Errorf("%w: '%s'", ErrNoBoundingBox, selector)
	}

	// 3. Movement.
	landing := h.landingPoint(geo, o)
	traj, err := h.moveInternal(ctx, &landing, geo, vp, o)
	if err != nil {
		return err
	}
	finalPos := traj.FinalPos

	// 4. Press, hold, release.
	if err := h.dispatchButton(ctx, schemas.MousePress, finalPos); err != nil {
		return err
	}
	if err := h.executor.Sleep(ctx, uniformDuration(h.rng, o.ClickHoldMin, o.ClickHoldMax)); err != nil {
		// Never leave the button stuck down.
		_ = h.dispatchButton(context.WithoutCancel(ctx), schemas.MouseRelease, finalPos)
		return err
	}
	if err := h.dispatchButton(ctx, schemas.MouseRelease, finalPos); err != nil {
		return err
	}

	// 5. Sometimes the hand drifts a little after clicking and comes back.
	if chance(h.rng, o.PostClickJitterProb) {
		drift := Vector2D{
			X: clamp(finalPos.X+sampleGaussian(h.rng, 0, o.PostClickJitterStdDev), 0, vp.Width),
			Y: clamp(finalPos.Y+sampleGaussian(h.rng, 0, o.PostClickJitterStdDev), 0, vp.Height),
		}
		if err := h.dispatchMove(ctx, drift); err != nil {
			return err
		}
		if err := h.executor.Sleep(ctx, uniformDuration(h.rng, o.PostClickPauseMin, o.PostClickPauseMax)); err != nil {
			return err
		}
		if err := h.dispatchMove(ctx, finalPos); err != nil {
			return err
		}
	}

	h.lastPos = finalPos
	h.logger.Debug("Humanoid: click completed",
		zap.String("selector", selector),
		zap.Float64("x", finalPos.X),
		zap.Float64("y", finalPos.Y))
	return nil
}

// preClickScroll runs the scroll step of a click and classifies its outcome.
func (h *Humanoid) preClickScroll(ctx context.Context, selector string, o Options) ScrollResult {
	scrolled, err := h.scrollToElement(ctx, selector, o)
	switch {
	case err != nil:
		return ScrollResult{Status: ScrollFailed, Err: err}
	case !scrolled:
		return ScrollResult{Status: ScrollSkipped}
	default:
		return ScrollResult{Status: ScrollOK}
	}
}

// landingPoint picks a point around the element center, within ClickPadding
// of its half extents, and never outside the box.
func (h *Humanoid) landingPoint(geo *schemas.ElementGeometry, o Options) Vector2D {
	halfW, halfH := geo.Width/2, geo.Height/2
	p := Vector2D{
		X: geo.CenterX() + uniform(h.rng, -1, 1)*halfW*o.ClickPadding,
		Y: geo.CenterY() + uniform(h.rng, -1, 1)*halfH*o.ClickPadding,
	}
	p.X = clamp(p.X, geo.X, geo.X+geo.Width)
	p.Y = clamp(p.Y, geo.Y, geo.Y+geo.Height)
	return p
}

// dispatchButton presses or releases the left button at p.
func (h *Humanoid) dispatchButton(ctx context.Context, kind schemas.MouseEventType, p Vector2D) error {
	data := schemas.MouseEventData{
		Type:       kind,
		X:          p.X,
		Y:          p.Y,
		Button:     schemas.ButtonLeft,
		ClickCount: 1,
	}
	// Buttons is the held-button bitmask after the event.
	if kind == schemas.MousePress {
		data.Buttons = 1
	}
	err := h.executor.DispatchMouseEvent(ctx, data)
	if err != nil && !errors.Is(err, context.Canceled) && ctx.Err() == nil {
		h.logger.Warn("Humanoid: failed to dispatch mouse button event",
			zap.String("type", string(kind)), zap.Error(err))
	}
	return err
}
