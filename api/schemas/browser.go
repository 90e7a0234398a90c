package schemas

// -- Geometry Schemas --

// ElementGeometry is the bounding box of a rendered DOM element. Coordinates are
// CSS pixels relative to the top-left corner of the viewport, the same space the
// pointer moves in (getBoundingClientRect semantics).
type ElementGeometry struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	// TagName (e.g., "BUTTON") is informational only.
	TagName string `json:"tagName,omitempty" yaml:"tagName,omitempty"`
}

// CenterX returns the horizontal midpoint of the box.
func (g ElementGeometry) CenterX() float64 { return g.X + g.Width/2 }

// CenterY returns the vertical midpoint of the box.
func (g ElementGeometry) CenterY() float64 { return g.Y + g.Height/2 }

// MinDimension returns the smaller of width and height.
func (g ElementGeometry) MinDimension() float64 {
	if g.Width < g.Height {
		return g.Width
	}
	return g.Height
}

// Viewport is the visible window size in CSS pixels.
type Viewport struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// -- Input Schemas --

// MouseEventType defines the type of a mouse event.
// The values match the Chrome DevTools Protocol Input.dispatchMouseEvent types.
type MouseEventType string

const (
	MouseMove    MouseEventType = "mouseMoved"
	MousePress   MouseEventType = "mousePressed"
	MouseRelease MouseEventType = "mouseReleased"
	MouseWheel   MouseEventType = "mouseWheel"
)

// MouseButton defines the mouse button being pressed.
type MouseButton string

const (
	ButtonNone   MouseButton = "none"
	ButtonLeft   MouseButton = "left"
	ButtonRight  MouseButton = "right"
	ButtonMiddle MouseButton = "middle"
)

// MouseEventData encapsulates all data for a mouse event.
type MouseEventData struct {
	Type       MouseEventType `json:"type" yaml:"type"`
	X          float64        `json:"x" yaml:"x"`
	Y          float64        `json:"y" yaml:"y"`
	Button     MouseButton    `json:"button,omitempty" yaml:"button,omitempty"`
	Buttons    int64          `json:"buttons,omitempty" yaml:"buttons,omitempty"`
	ClickCount int            `json:"clickCount,omitempty" yaml:"clickCount,omitempty"`
	DeltaX     float64        `json:"deltaX,omitempty" yaml:"deltaX,omitempty"`
	DeltaY     float64        `json:"deltaY,omitempty" yaml:"deltaY,omitempty"`
}
