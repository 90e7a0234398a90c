// internal/humanoid/interface.go
package humanoid

import (
	"context"
	"errors"
	"time"

	"github.com/xkilldash9x/shymouse/api/schemas"
)

// ErrNoBoundingBox is returned when the target element is not rendered.
var ErrNoBoundingBox = errors.New("humanoid: element has no bounding box")

// Controller defines the high-level interface for human-like pointer interactions.
// This is the interface implemented by the Humanoid struct itself.
type Controller interface {
	// Move glides the cursor to a random point in the padded viewport.
	Move(ctx context.Context, opts *Options) error
	// MoveTo glides the cursor to target; a nil target behaves like Move.
	MoveTo(ctx context.Context, target *Vector2D, opts *Options) error
	Click(ctx context.Context, selector string, opts *Options) error
	ScrollToElement(ctx context.Context, selector string, opts *Options) error
}

// Executor is the browser-side collaborator: geometry queries plus the
// primitives that put events on the page. Implementations live under
// internal/browser.
type Executor interface {
	// Sleep pauses execution, respecting context cancellation.
	Sleep(ctx context.Context, d time.Duration) error
	// DispatchMouseEvent moves, presses, releases or wheels the pointer.
	DispatchMouseEvent(ctx context.Context, data schemas.MouseEventData) error
	// GetElementGeometry returns the viewport-relative box of the first element
	// matching selector, or (nil, nil) when it is not rendered.
	GetElementGeometry(ctx context.Context, selector string) (*schemas.ElementGeometry, error)
	// GetScrollOffset returns the vertical document scroll offset.
	GetScrollOffset(ctx context.Context) (float64, error)
	// GetViewport returns the current visible window size.
	GetViewport(ctx context.Context) (schemas.Viewport, error)
}

// ScrollStatus is the outcome of the scroll that precedes a click.
type ScrollStatus string

const (
	ScrollOK      ScrollStatus = "ok"
	ScrollSkipped ScrollStatus = "skipped"
	ScrollFailed  ScrollStatus = "failed"
)

// ScrollResult reports how the pre-click scroll went. Err is set only when
// Status is ScrollFailed.
type ScrollResult struct {
	Status ScrollStatus
	Err    error
}
