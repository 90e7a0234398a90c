package humanoid

import (
	"github.com/xkilldash9x/shymouse/internal/config"
)

// Config holds the session-level parameters of a Humanoid.
type Config struct {
	// Rng is the random source. Nil creates one seeded from Seed, or from the
	// clock when Seed is zero.
	Rng  Rand
	Seed int64

	// Defaults are the options used when a call passes nil.
	Defaults Options

	// MaxEventsPerSecond caps dispatched mouse events; zero disables the cap.
	MaxEventsPerSecond float64
	EventBurst         int
}

// DefaultConfig returns a configuration representing an average user.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultOptions(),
	}
}

// ConfigFromSettings converts the file/env settings into a Humanoid Config.
func ConfigFromSettings(s config.HumanoidConfig) Config {
	return Config{
		Seed:               s.Seed,
		MaxEventsPerSecond: s.MaxEventsPerSecond,
		EventBurst:         s.EventBurst,
		Defaults: Options{
			VisibilityBuffer:   s.VisibilityBuffer,
			TargetPosition:     TargetPosition(s.TargetPosition),
			Offset:             s.Offset,
			ScrollJitterStdDev: s.ScrollJitterStdDev,

			OvershootProb:      s.OvershootProb,
			JitterStdDev:       s.JitterStdDev,
			ViewPadMin:         s.ViewPadMin,
			ViewPadMax:         s.ViewPadMax,
			ClickPadding:       s.ClickPadding,
			DefaultTargetWidth: s.DefaultTargetWidth,

			MoveDelayMin:             s.MoveDelayMin,
			MoveDelayMax:             s.MoveDelayMax,
			ScrollDelayMin:           s.ScrollDelayMin,
			ScrollDelayMax:           s.ScrollDelayMax,
			CorrectionScrollDelayMin: s.CorrectionScrollDelayMin,
			CorrectionScrollDelayMax: s.CorrectionScrollDelayMax,
			ClickHoldMin:             s.ClickHoldMin,
			ClickHoldMax:             s.ClickHoldMax,
			PostClickPauseMin:        s.PostClickPauseMin,
			PostClickPauseMax:        s.PostClickPauseMax,

			WheelDeltaMin:              s.WheelDeltaMin,
			WheelDeltaMax:              s.WheelDeltaMax,
			CorrectionWheelDeltaMax:    s.CorrectionWheelDeltaMax,
			ScrollTolerance:            s.ScrollTolerance,
			ScrollOvershootMinDistance: s.ScrollOvershootMinDistance,
			ScrollOvershootMin:         s.ScrollOvershootMin,
			ScrollOvershootMax:         s.ScrollOvershootMax,
			CursorOvershootMinDistance: s.CursorOvershootMinDistance,
			CursorOvershootMin:         s.CursorOvershootMin,
			CursorOvershootMax:         s.CursorOvershootMax,
			PostClickJitterProb:        s.PostClickJitterProb,
			PostClickJitterStdDev:      s.PostClickJitterStdDev,

			StrictScroll: s.StrictScroll,
		},
	}
}
