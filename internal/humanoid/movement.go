// internal/humanoid/movement.go
package humanoid

import (
	"context"
	"fmt"

	"github.com/xkilldash9x/shymouse/api/schemas"
	"go.uber.org/zap"
)

// Move glides the cursor to a random point inside the padded viewport.
func (h *Humanoid) Move(ctx context.Context, opts *Options) error {
	return h.MoveTo(ctx, nil, opts)
}

// MoveTo glides the cursor from its last position to target along a
// human-like path. A nil target picks a random destination.
func (h *Humanoid) MoveTo(ctx context.Context, target *Vector2D, opts *Options) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	o, err := h.resolveOptions(opts)
	if err != nil {
		return err
	}
	vp, err := h.executor.GetViewport(ctx)
	if err != nil {
		return fmt.Errorf("humanoid: failed to read viewport: %w", err)
	}
	_, err = h.moveInternal(ctx, target, nil, vp, o)
	return err
}

// moveInternal generates and replays a path. It assumes the caller holds the lock.
func (h *Humanoid) moveInternal(ctx context.Context, target *Vector2D, box *schemas.ElementGeometry, vp schemas.Viewport, o Options) (Trajectory, error) {
	start := h.resolveStart(vp)
	traj := GeneratePath(h.rng, PathRequest{
		Start:    start,
		Target:   target,
		Box:      box,
		Viewport: vp,
	}, o)

	if err := h.replay(ctx, traj.Points, o); err != nil {
		return traj, err
	}

	// The last sample carries tremor and clamping; settle on the true destination.
	if h.lastPos.Dist(traj.FinalPos) > degenerateLength {
		if err := h.dispatchMove(ctx, traj.FinalPos); err != nil {
			return traj, err
		}
	}

	h.logger.Debug("Humanoid: move completed",
		zap.Int("points", len(traj.Points)),
		zap.Bool("overshoot", traj.Overshoot != nil),
		zap.Bool("random_target", traj.RandomTarget),
		zap.Float64("x", traj.FinalPos.X),
		zap.Float64("y", traj.FinalPos.Y))
	return traj, nil
}

// replay feeds points to the executor one at a time with a randomized pause
// after each. It assumes the caller holds the lock.
func (h *Humanoid) replay(ctx context.Context, points []Vector2D, o Options) error {
	for _, p := range points {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := h.dispatchMove(ctx, p); err != nil {
			return err
		}
		if err := h.executor.Sleep(ctx, uniformDuration(h.rng, o.MoveDelayMin, o.MoveDelayMax)); err != nil {
			return err
		}
	}
	return nil
}

// dispatchMove commands a pointer move and records it as the last position
// once the executor accepts it. It assumes the caller holds the lock.
func (h *Humanoid) dispatchMove(ctx context.Context, p Vector2D) error {
	err := h.executor.DispatchMouseEvent(ctx, schemas.MouseEventData{
		Type:   schemas.MouseMove,
		X:      p.X,
		Y:      p.Y,
		Button: schemas.ButtonNone,
	})
	if err != nil {
		if ctx.Err() == nil {
			h.logger.Warn("Humanoid: failed to dispatch mouse move event", zap.Error(err))
		}
		return err
	}
	h.lastPos = p
	return nil
}
