// File: internal/config/humanoid_config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// HumanoidConfig holds the tunable parameters of the cursor and scroll
// synthesis: the humanoid options plus session-level settings. They are
// loaded from the config file or SHYMOUSE_HUMANOID_* env vars and converted
// into humanoid.Options by the humanoid package.
type HumanoidConfig struct {
	// Seed fixes the random source; zero seeds from the clock.
	Seed               int64   `mapstructure:"seed" yaml:"seed"`
	MaxEventsPerSecond float64 `mapstructure:"max_events_per_second" yaml:"max_events_per_second"`
	EventBurst         int     `mapstructure:"event_burst" yaml:"event_burst"`

	// -- Scrolling --
	VisibilityBuffer   float64 `mapstructure:"visibility_buffer" yaml:"visibility_buffer"`
	TargetPosition     string  `mapstructure:"target_position" yaml:"target_position"`
	Offset             float64 `mapstructure:"offset" yaml:"offset"`
	ScrollJitterStdDev float64 `mapstructure:"scroll_jitter_std_dev" yaml:"scroll_jitter_std_dev"`

	// -- Cursor path --
	OvershootProb      float64 `mapstructure:"overshoot_prob" yaml:"overshoot_prob"`
	JitterStdDev       float64 `mapstructure:"jitter_std_dev" yaml:"jitter_std_dev"`
	ViewPadMin         float64 `mapstructure:"view_pad_min" yaml:"view_pad_min"`
	ViewPadMax         float64 `mapstructure:"view_pad_max" yaml:"view_pad_max"`
	ClickPadding       float64 `mapstructure:"click_padding" yaml:"click_padding"`
	DefaultTargetWidth float64 `mapstructure:"default_target_width" yaml:"default_target_width"`

	// -- Timing --
	MoveDelayMin             time.Duration `mapstructure:"move_delay_min" yaml:"move_delay_min"`
	MoveDelayMax             time.Duration `mapstructure:"move_delay_max" yaml:"move_delay_max"`
	ScrollDelayMin           time.Duration `mapstructure:"scroll_delay_min" yaml:"scroll_delay_min"`
	ScrollDelayMax           time.Duration `mapstructure:"scroll_delay_max" yaml:"scroll_delay_max"`
	CorrectionScrollDelayMin time.Duration `mapstructure:"correction_scroll_delay_min" yaml:"correction_scroll_delay_min"`
	CorrectionScrollDelayMax time.Duration `mapstructure:"correction_scroll_delay_max" yaml:"correction_scroll_delay_max"`
	ClickHoldMin             time.Duration `mapstructure:"click_hold_min" yaml:"click_hold_min"`
	ClickHoldMax             time.Duration `mapstructure:"click_hold_max" yaml:"click_hold_max"`
	PostClickPauseMin        time.Duration `mapstructure:"post_click_pause_min" yaml:"post_click_pause_min"`
	PostClickPauseMax        time.Duration `mapstructure:"post_click_pause_max" yaml:"post_click_pause_max"`

	// -- Thresholds --
	WheelDeltaMin              float64 `mapstructure:"wheel_delta_min" yaml:"wheel_delta_min"`
	WheelDeltaMax              float64 `mapstructure:"wheel_delta_max" yaml:"wheel_delta_max"`
	CorrectionWheelDeltaMax    float64 `mapstructure:"correction_wheel_delta_max" yaml:"correction_wheel_delta_max"`
	ScrollTolerance            float64 `mapstructure:"scroll_tolerance" yaml:"scroll_tolerance"`
	ScrollOvershootMinDistance float64 `mapstructure:"scroll_overshoot_min_distance" yaml:"scroll_overshoot_min_distance"`
	ScrollOvershootMin         float64 `mapstructure:"scroll_overshoot_min" yaml:"scroll_overshoot_min"`
	ScrollOvershootMax         float64 `mapstructure:"scroll_overshoot_max" yaml:"scroll_overshoot_max"`
	CursorOvershootMinDistance float64 `mapstructure:"cursor_overshoot_min_distance" yaml:"cursor_overshoot_min_distance"`
	CursorOvershootMin         float64 `mapstructure:"cursor_overshoot_min" yaml:"cursor_overshoot_min"`
	CursorOvershootMax         float64 `mapstructure:"cursor_overshoot_max" yaml:"cursor_overshoot_max"`
	PostClickJitterProb        float64 `mapstructure:"post_click_jitter_prob" yaml:"post_click_jitter_prob"`
	PostClickJitterStdDev      float64 `mapstructure:"post_click_jitter_std_dev" yaml:"post_click_jitter_std_dev"`

	StrictScroll bool `mapstructure:"strict_scroll" yaml:"strict_scroll"`
}

// setHumanoidDefaults registers the defaults of an average user.
func setHumanoidDefaults(v *viper.Viper) {
	v.SetDefault("humanoid.seed", 0)
	v.SetDefault("humanoid.max_events_per_second", 0)
	v.SetDefault("humanoid.event_burst", 10)

	v.SetDefault("humanoid.visibility_buffer", 50)
	v.SetDefault("humanoid.target_position", "center")
	v.SetDefault("humanoid.offset", 100)
	v.SetDefault("humanoid.scroll_jitter_std_dev", 20)

	v.SetDefault("humanoid.overshoot_prob", 0.2)
	v.SetDefault("humanoid.jitter_std_dev", 1.5)
	v.SetDefault("humanoid.view_pad_min", 20)
	v.SetDefault("humanoid.view_pad_max", 100)
	v.SetDefault("humanoid.click_padding", 0.8)
	v.SetDefault("humanoid.default_target_width", 100)

	v.SetDefault("humanoid.move_delay_min", "5ms")
	v.SetDefault("humanoid.move_delay_max", "20ms")
	v.SetDefault("humanoid.scroll_delay_min", "20ms")
	v.SetDefault("humanoid.scroll_delay_max", "100ms")
	v.SetDefault("humanoid.correction_scroll_delay_min", "10ms")
	v.SetDefault("humanoid.correction_scroll_delay_max", "70ms")
	v.SetDefault("humanoid.click_hold_min", "50ms")
	v.SetDefault("humanoid.click_hold_max", "120ms")
	v.SetDefault("humanoid.post_click_pause_min", "20ms")
	v.SetDefault("humanoid.post_click_pause_max", "70ms")

	v.SetDefault("humanoid.wheel_delta_min", 10)
	v.SetDefault("humanoid.wheel_delta_max", 200)
	v.SetDefault("humanoid.correction_wheel_delta_max", 150)
	v.SetDefault("humanoid.scroll_tolerance", 10)
	v.SetDefault("humanoid.scroll_overshoot_min_distance", 200)
	v.SetDefault("humanoid.scroll_overshoot_min", 0.1)
	v.SetDefault("humanoid.scroll_overshoot_max", 0.4)
	v.SetDefault("humanoid.cursor_overshoot_min_distance", 100)
	v.SetDefault("humanoid.cursor_overshoot_min", 0.1)
	v.SetDefault("humanoid.cursor_overshoot_max", 0.3)
	v.SetDefault("humanoid.post_click_jitter_prob", 0.5)
	v.SetDefault("humanoid.post_click_jitter_std_dev", 5)

	v.SetDefault("humanoid.strict_scroll", false)
}

// Validate catches the settings errors that are cheap to report at load time.
// The humanoid package validates the full option set before every call.
func (h *HumanoidConfig) Validate() error {
	switch h.TargetPosition {
	case "top", "center", "bottom":
	default:
		return fmt.Errorf("target_position must be one of top, center, bottom (got %q)", h.TargetPosition)
	}
	if h.MaxEventsPerSecond < 0 {
		return fmt.Errorf("max_events_per_second must not be negative")
	}
	if h.OvershootProb < 0 || h.OvershootProb > 1 {
		return fmt.Errorf("overshoot_prob must be between 0.0 and 1.0")
	}
	if h.PostClickJitterProb < 0 || h.PostClickJitterProb > 1 {
		return fmt.Errorf("post_click_jitter_prob must be between 0.0 and 1.0")
	}
	if h.DefaultTargetWidth <= 0 {
		return fmt.Errorf("default_target_width must be positive")
	}
	return nil
}
