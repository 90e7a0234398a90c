package humanoid

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidOptions is returned when an Options value fails validation.
var ErrInvalidOptions = errors.New("humanoid: invalid options")

// TargetPosition selects where in the viewport a scrolled-to element should land.
type TargetPosition string

const (
	TargetTop    TargetPosition = "top"
	TargetCenter TargetPosition = "center"
	TargetBottom TargetPosition = "bottom"
)

// Options configures a single Move, Click or ScrollToElement call.
// It is read-only for the duration of the call. Start from
// (*Humanoid).DefaultOptions and override fields; a nil *Options means the
// session defaults.
type Options struct {
	// Scrolling
	VisibilityBuffer   float64        `json:"visibilityBuffer" yaml:"visibilityBuffer"`
	TargetPosition     TargetPosition `json:"targetPosition" yaml:"targetPosition"`
	Offset             float64        `json:"offset" yaml:"offset"`
	ScrollJitterStdDev float64        `json:"scrollJitterStdDev" yaml:"scrollJitterStdDev"`

	// Cursor path
	OvershootProb      float64 `json:"overshootProb" yaml:"overshootProb"`
	JitterStdDev       float64 `json:"jitterStdDev" yaml:"jitterStdDev"`
	ViewPadMin         float64 `json:"viewPadMin" yaml:"viewPadMin"`
	ViewPadMax         float64 `json:"viewPadMax" yaml:"viewPadMax"`
	ClickPadding       float64 `json:"clickPadding" yaml:"clickPadding"`
	DefaultTargetWidth float64 `json:"defaultTargetWidth" yaml:"defaultTargetWidth"`

	// Replay timing
	MoveDelayMin             time.Duration `json:"moveDelayMin" yaml:"moveDelayMin"`
	MoveDelayMax             time.Duration `json:"moveDelayMax" yaml:"moveDelayMax"`
	ScrollDelayMin           time.Duration `json:"scrollDelayMin" yaml:"scrollDelayMin"`
	ScrollDelayMax           time.Duration `json:"scrollDelayMax" yaml:"scrollDelayMax"`
	CorrectionScrollDelayMin time.Duration `json:"correctionScrollDelayMin" yaml:"correctionScrollDelayMin"`
	CorrectionScrollDelayMax time.Duration `json:"correctionScrollDelayMax" yaml:"correctionScrollDelayMax"`
	ClickHoldMin             time.Duration `json:"clickHoldMin" yaml:"clickHoldMin"`
	ClickHoldMax             time.Duration `json:"clickHoldMax" yaml:"clickHoldMax"`
	PostClickPauseMin        time.Duration `json:"postClickPauseMin" yaml:"postClickPauseMin"`
	PostClickPauseMax        time.Duration `json:"postClickPauseMax" yaml:"postClickPauseMax"`

	// Thresholds
	WheelDeltaMin              float64 `json:"wheelDeltaMin" yaml:"wheelDeltaMin"`
	WheelDeltaMax              float64 `json:"wheelDeltaMax" yaml:"wheelDeltaMax"`
	CorrectionWheelDeltaMax    float64 `json:"correctionWheelDeltaMax" yaml:"correctionWheelDeltaMax"`
	ScrollTolerance            float64 `json:"scrollTolerance" yaml:"scrollTolerance"`
	ScrollOvershootMinDistance float64 `json:"scrollOvershootMinDistance" yaml:"scrollOvershootMinDistance"`
	ScrollOvershootMin         float64 `json:"scrollOvershootMin" yaml:"scrollOvershootMin"`
	ScrollOvershootMax         float64 `json:"scrollOvershootMax" yaml:"scrollOvershootMax"`
	CursorOvershootMinDistance float64 `json:"cursorOvershootMinDistance" yaml:"cursorOvershootMinDistance"`
	CursorOvershootMin         float64 `json:"cursorOvershootMin" yaml:"cursorOvershootMin"`
	CursorOvershootMax         float64 `json:"cursorOvershootMax" yaml:"cursorOvershootMax"`
	PostClickJitterProb        float64 `json:"postClickJitterProb" yaml:"postClickJitterProb"`
	PostClickJitterStdDev      float64 `json:"postClickJitterStdDev" yaml:"postClickJitterStdDev"`

	// StrictScroll turns a failed pre-click scroll into a click error instead of a warning.
	StrictScroll bool `json:"strictScroll" yaml:"strictScroll"`
}

// DefaultOptions returns the options of an average user.
func DefaultOptions() Options {
	return Options{
		VisibilityBuffer:   50,
		TargetPosition:     TargetCenter,
		Offset:             100,
		ScrollJitterStdDev: 20,

		OvershootProb:      0.2,
		JitterStdDev:       1.5,
		ViewPadMin:         20,
		ViewPadMax:         100,
		ClickPadding:       0.8,
		DefaultTargetWidth: 100,

		MoveDelayMin:             5 * time.Millisecond,
		MoveDelayMax:             20 * time.Millisecond,
		ScrollDelayMin:           20 * time.Millisecond,
		ScrollDelayMax:           100 * time.Millisecond,
		CorrectionScrollDelayMin: 10 * time.Millisecond,
		CorrectionScrollDelayMax: 70 * time.Millisecond,
		ClickHoldMin:             50 * time.Millisecond,
		ClickHoldMax:             120 * time.Millisecond,
		PostClickPauseMin:        20 * time.Millisecond,
		PostClickPauseMax:        70 * time.Millisecond,

		WheelDeltaMin:              10,
		WheelDeltaMax:              200,
		CorrectionWheelDeltaMax:    150,
		ScrollTolerance:            10,
		ScrollOvershootMinDistance: 200,
		ScrollOvershootMin:         0.1,
		ScrollOvershootMax:         0.4,
		CursorOvershootMinDistance: 100,
		CursorOvershootMin:         0.1,
		CursorOvershootMax:         0.3,
		PostClickJitterProb:        0.5,
		PostClickJitterStdDev:      5,
	}
}

// Validate checks the options for values the generators cannot work with.
func (o Options) Validate() error {
	switch o.TargetPosition {
	case TargetTop, TargetCenter, TargetBottom:
	default:
		return fmt.Errorf("%w: unknown target position %q", ErrInvalidOptions, o.TargetPosition)
	}
	if o.ViewPadMin < 0 || o.ViewPadMax < o.ViewPadMin {
		return fmt.Errorf("%w: view padding range [%v, %v]", ErrInvalidOptions, o.ViewPadMin, o.ViewPadMax)
	}
	if o.DefaultTargetWidth <= 0 {
		return fmt.Errorf("%w: defaultTargetWidth must be positive", ErrInvalidOptions)
	}
	if o.JitterStdDev < 0 || o.ScrollJitterStdDev < 0 || o.PostClickJitterStdDev < 0 {
		return fmt.Errorf("%w: jitter standard deviations must not be negative", ErrInvalidOptions)
	}
	if o.ClickPadding < 0 || o.ClickPadding > 1 {
		return fmt.Errorf("%w: clickPadding must be within [0, 1]", ErrInvalidOptions)
	}
	for name, p := range map[string]float64{
		"overshootProb":       o.OvershootProb,
		"postClickJitterProb": o.PostClickJitterProb,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1]", ErrInvalidOptions, name)
		}
	}
	if o.WheelDeltaMin <= 0 || o.WheelDeltaMax < o.WheelDeltaMin || o.CorrectionWheelDeltaMax < o.WheelDeltaMin {
		return fmt.Errorf("%w: wheel delta range [%v, %v]", ErrInvalidOptions, o.WheelDeltaMin, o.WheelDeltaMax)
	}
	if o.ScrollOvershootMax < o.ScrollOvershootMin || o.CursorOvershootMax < o.CursorOvershootMin {
		return fmt.Errorf("%w: overshoot ranges are inverted", ErrInvalidOptions)
	}
	if o.MoveDelayMax < o.MoveDelayMin || o.ScrollDelayMax < o.ScrollDelayMin ||
		o.CorrectionScrollDelayMax < o.CorrectionScrollDelayMin || o.ClickHoldMax < o.ClickHoldMin ||
		o.PostClickPauseMax < o.PostClickPauseMin {
		return fmt.Errorf("%w: delay ranges are inverted", ErrInvalidOptions)
	}
	return nil
}
