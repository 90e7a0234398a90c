// internal/humanoid/humanoid.go
package humanoid

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xkilldash9x/shymouse/api/schemas"
	"go.uber.org/zap"
)

// Humanoid is one simulated hand driving one page. It owns the only mutable
// state of the simulation: the last position commanded to the pointer.
type Humanoid struct {
	// mu serializes whole interactions. Public methods hold it for their entire
	// duration, so two moves never interleave their events on the same pointer.
	mu        sync.Mutex
	defaults  Options
	logger    *zap.Logger
	executor  Executor
	rng       Rand
	sessionID string

	// lastPos is the last coordinate commanded to the pointer. The zero
	// vector is the "never moved" sentinel and is never used as a start point.
	lastPos Vector2D
}

// New creates a Humanoid that dispatches through executor.
func New(config Config, logger *zap.Logger, executor Executor) *Humanoid {
	if logger == nil {
		logger = zap.NewNop()
	}

	rng := config.Rng
	if rng == nil {
		seed := config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	if config.MaxEventsPerSecond > 0 {
		executor = NewThrottledExecutor(executor, config.MaxEventsPerSecond, config.EventBurst)
	}

	sessionID := uuid.NewString()
	return &Humanoid{
		defaults:  config.Defaults,
		logger:    logger.Named("humanoid").With(zap.String("session_id", sessionID)),
		executor:  executor,
		rng:       rng,
		sessionID: sessionID,
	}
}

// NewTestHumanoid creates a Humanoid with a seeded random source and the
// default options, for deterministic tests.
func NewTestHumanoid(executor Executor, seed int64) *Humanoid {
	config := DefaultConfig()
	config.Rng = rand.New(rand.NewSource(seed))
	return New(config, zap.NewNop(), executor)
}

// SessionID identifies this hand in logs.
func (h *Humanoid) SessionID() string {
	return h.sessionID
}

// Position returns the last coordinate commanded to the pointer. The zero
// vector means the pointer has not been moved yet.
func (h *Humanoid) Position() Vector2D {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastPos
}

// SetPosition records p as the current pointer position without dispatching
// anything, for hosts that know where the real cursor is.
func (h *Humanoid) SetPosition(p Vector2D) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastPos = p
}

// DefaultOptions returns the session defaults, including values loaded from
// config. Per-call overrides should start from this rather than the package
// DefaultOptions so configured values are kept.
func (h *Humanoid) DefaultOptions() Options {
	return h.defaults
}

// resolveOptions returns the per-call options, falling back to the session
// defaults, and validates them.
func (h *Humanoid) resolveOptions(opts *Options) (Options, error) {
	resolved := h.defaults
	if opts != nil {
		resolved = *opts
	}
	if err := resolved.Validate(); err != nil {
		return Options{}, err
	}
	return resolved, nil
}

// resolveStart returns the position a movement starts from. On first use the
// sentinel is replaced by a random point near the viewport center.
// It assumes the caller holds the lock.
func (h *Humanoid) resolveStart(vp schemas.Viewport) Vector2D {
	if h.lastPos.IsZero() {
		h.lastPos = Vector2D{
			X: vp.Width/2 + uniform(h.rng, -1, 1)*vp.Width/4,
			Y: vp.Height/2 + uniform(h.rng, -1, 1)*vp.Height/4,
		}
		h.logger.Debug("Humanoid: initialized pointer position", zap.Float64("x", h.lastPos.X), zap.Float64("y", h.lastPos.Y))
	}
	return h.lastPos
}
