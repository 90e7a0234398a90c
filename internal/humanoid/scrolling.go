// internal/humanoid/scrolling.go
package humanoid

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/xkilldash9x/shymouse/api/schemas"
	"go.uber.org/zap"
)

// scrollPhase is one closed-loop stepped scroll toward goal.
type scrollPhase struct {
	goal               float64
	steps              int
	jitter             float64
	maxDelta           float64
	delayMin, delayMax time.Duration
}

// IsElementInViewport reports whether any part of the element lies inside the
// visible band extended by buffer pixels on both sides. An element without a
// bounding box is never in the viewport.
func (h *Humanoid) IsElementInViewport(ctx context.Context, selector string, buffer float64) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	vp, err := h.executor.GetViewport(ctx)
	if err != nil {
		return false, fmt.Errorf("humanoid: failed to read viewport: %w", err)
	}
	return h.isElementInViewport(ctx, selector, vp, buffer)
}

// isElementInViewport assumes the caller holds the lock.
func (h *Humanoid) isElementInViewport(ctx context.Context, selector string, vp schemas.Viewport, buffer float64) (bool, error) {
	geo, err := h.executor.GetElementGeometry(ctx, selector)
	if err != nil {
		return false, fmt.Errorf("humanoid: geometry retrieval failed for '%s': %w", selector, err)
	}
	if geo == nil {
		return false, nil
	}
	scrollY, err := h.executor.GetScrollOffset(ctx)
	if err != nil {
		return false, fmt.Errorf("humanoid: failed to read scroll offset: %w", err)
	}
	return inScrollBand(geo.Y+scrollY, geo.Height, scrollY, vp.Height, buffer), nil
}

// inScrollBand is the visibility predicate in document coordinates.
func inScrollBand(docTop, height, scrollY, viewHeight, buffer float64) bool {
	return docTop < scrollY+viewHeight+buffer && docTop+height > scrollY-buffer
}

// scrollTargetOffset returns the scroll offset that places an element spanning
// [docTop, docTop+height] at the requested position. Never negative.
func scrollTargetOffset(docTop, height, viewHeight float64, o Options) float64 {
	var target float64
	switch o.TargetPosition {
	case TargetTop:
		target = docTop - o.Offset
	case TargetBottom:
		target = docTop + height - viewHeight + o.Offset
	default:
		target = docTop + height/2 - viewHeight/2
	}
	return math.Max(0, target)
}

// ScrollToElement brings the element into view with stepped wheel events.
// It does nothing when the element is already within VisibilityBuffer of the
// viewport.
func (h *Humanoid) ScrollToElement(ctx context.Context, selector string, opts *Options) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	o, err := h.resolveOptions(opts)
	if err != nil {
		return err
	}
	_, err = h.scrollToElement(ctx, selector, o)
	return err
}

// scrollToElement reports whether any scrolling happened. It assumes the caller holds the lock.
func (h *Humanoid) scrollToElement(ctx context.Context, selector string, o Options) (bool, error) {
	vp, err := h.executor.GetViewport(ctx)
	if err != nil {
		return false, fmt.Errorf("humanoid: failed to read viewport: %w", err)
	}

	visible, err := h.isElementInViewport(ctx, selector, vp, o.VisibilityBuffer)
	if err != nil {
		return false, err
	}
	if visible {
		return false, nil
	}

	geo, err := h.executor.GetElementGeometry(ctx, selector)
	if err != nil {
		return false, fmt.Errorf("humanoid: geometry retrieval failed for '%s': %w", selector, err)
	}
	if geo == nil {
		return false, fmt.Errorf("%w: '%s'", ErrNoBoundingBox, selector)
	}
	scrollY, err := h.executor.GetScrollOffset(ctx)
	if err != nil {
		return false, fmt.Errorf("humanoid: failed to read scroll offset: %w", err)
	}

	docTop := geo.Y + scrollY
	target := scrollTargetOffset(docTop, geo.Height, vp.Height, o)

	// Hands rest somewhere over the page while the wheel turns.
	hover := o
	hover.DefaultTargetWidth = vp.Width / 2
	if _, err := h.moveInternal(ctx, nil, nil, vp, hover); err != nil {
		return true, err
	}

	remaining := target - scrollY
	direction := 1.0
	if remaining < 0 {
		direction = -1.0
	}
	distance := math.Abs(remaining)
	numSteps := ScrollStepCount(distance)

	overshoot := 0.0
	if distance > o.ScrollOvershootMinDistance && chance(h.rng, o.OvershootProb) {
		overshoot = vp.Height * uniform(h.rng, o.ScrollOvershootMin, o.ScrollOvershootMax)
	}

	if err := h.runScrollPhase(ctx, scrollPhase{
		goal:     target + direction*overshoot,
		steps:    numSteps,
		jitter:   o.ScrollJitterStdDev,
		maxDelta: o.WheelDeltaMax,
		delayMin: o.ScrollDelayMin,
		delayMax: o.ScrollDelayMax,
	}, o); err != nil {
		return true, err
	}

	if overshoot > 0 {
		correctionSteps := int(math.Round(float64(numSteps) / 3))
		if correctionSteps < 1 {
			correctionSteps = 1
		}
		if err := h.runScrollPhase(ctx, scrollPhase{
			goal:     target,
			steps:    correctionSteps,
			jitter:   o.ScrollJitterStdDev / 2,
			maxDelta: o.CorrectionWheelDeltaMax,
			delayMin: o.CorrectionScrollDelayMin,
			delayMax: o.CorrectionScrollDelayMax,
		}, o); err != nil {
			return true, err
		}
	}

	// Deterministic safety net: center the element if it is still out of view.
	visible, err = h.isElementInViewport(ctx, selector, vp, 0)
	if err != nil {
		return true, err
	}
	if !visible {
		current, err := h.executor.GetScrollOffset(ctx)
		if err != nil {
			return true, fmt.Errorf("humanoid: failed to read scroll offset: %w", err)
		}
		residual := (docTop + geo.Height/2 - vp.Height/2) - current
		if math.Abs(residual) > o.ScrollTolerance {
			h.logger.Debug("Humanoid: applying final scroll correction", zap.Float64("delta", residual))
			if err := h.dispatchWheel(ctx, residual); err != nil {
				return true, err
			}
		}
	}

	h.logger.Debug("Humanoid: scroll completed",
		zap.String("selector", selector),
		zap.Float64("target", target),
		zap.Float64("overshoot", overshoot),
		zap.Int("steps", numSteps))
	return true, nil
}

// runScrollPhase wheels toward p.goal, re-reading the live offset before every
// step. Each step covers the eased share of what is left, so the phase lands on
// the goal when nothing interferes. It stops early within ScrollTolerance.
// It assumes the caller holds the lock.
func (h *Humanoid) runScrollPhase(ctx context.Context, p scrollPhase, o Options) error {
	prevEased := 0.0
	for i := 1; i <= p.steps; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		current, err := h.executor.GetScrollOffset(ctx)
		if err != nil {
			return fmt.Errorf("humanoid: failed to read scroll offset: %w", err)
		}
		remaining := p.goal - current
		if math.Abs(remaining) < o.ScrollTolerance {
			break
		}

		eased := computeEaseInOutCubic(float64(i) / float64(p.steps))
		fraction := 1.0
		if prevEased < 1 {
			fraction = (eased - prevEased) / (1 - prevEased)
		}
		prevEased = eased

		delta := fraction*math.Abs(remaining) + sampleGaussian(h.rng, 0, p.jitter)
		delta = clamp(delta, o.WheelDeltaMin, p.maxDelta)
		if remaining < 0 {
			delta = -delta
		}

		if err := h.dispatchWheel(ctx, delta); err != nil {
			return err
		}
		if err := h.executor.Sleep(ctx, uniformDuration(h.rng, p.delayMin, p.delayMax)); err != nil {
			return err
		}
	}
	return nil
}

// dispatchWheel sends one vertical wheel event at the current pointer position.
// It assumes the caller holds the lock.
func (h *Humanoid) dispatchWheel(ctx context.Context, deltaY float64) error {
	err := h.executor.DispatchMouseEvent(ctx, schemas.MouseEventData{
		Type:   schemas.MouseWheel,
		X:      h.lastPos.X,
		Y:      h.lastPos.Y,
		Button: schemas.ButtonNone,
		DeltaY: deltaY,
	})
	if err != nil && ctx.Err() == nil {
		h.logger.Warn("Humanoid: failed to dispatch wheel event", zap.Error(err), zap.Float64("delta", deltaY))
	}
	return err
}
