// FILE: ./internal/humanoid/config_test.go
package humanoid

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/xkilldash9x/shymouse/internal/config"
)

func TestConfigFromSettings_DefaultsMatch(t *testing.T) {
	settings := config.NewDefaultConfig().Humanoid()

	got := ConfigFromSettings(settings)

	if diff := cmp.Diff(DefaultOptions(), got.Defaults); diff != "" {
		t.Errorf("config file defaults drifted from DefaultOptions (-want +got):\n%s", diff)
	}
	assert.Zero(t, got.Seed)
	assert.Zero(t, got.MaxEventsPerSecond)
}

func TestConfigFromSettings_Overrides(t *testing.T) {
	settings := config.NewDefaultConfig().Humanoid()
	settings.Seed = 99
	settings.TargetPosition = "bottom"
	settings.ClickHoldMin = 10 * time.Millisecond
	settings.StrictScroll = true
	settings.MaxEventsPerSecond = 250

	got := ConfigFromSettings(settings)

	assert.Equal(t, int64(99), got.Seed)
	assert.Equal(t, TargetBottom, got.Defaults.TargetPosition)
	assert.Equal(t, 10*time.Millisecond, got.Defaults.ClickHoldMin)
	assert.True(t, got.Defaults.StrictScroll)
	assert.Equal(t, 250.0, got.MaxEventsPerSecond)
	assert.NoError(t, got.Defaults.Validate())
}
