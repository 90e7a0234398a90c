// internal/browser/rodexec/executor_test.go
package rodexec

import (
	"testing"

	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/shymouse/api/schemas"
	"github.com/xkilldash9x/shymouse/internal/config"
)

func TestToDispatchRequest(t *testing.T) {
	tests := []struct {
		name       string
		in         schemas.MouseEventData
		wantType   proto.InputDispatchMouseEventType
		wantButton proto.InputMouseButton
		wantDeltaY float64
		buttons    *int
	}{
		{
			name:       "move",
			in:         schemas.MouseEventData{Type: schemas.MouseMove, X: 1, Y: 2, Button: schemas.ButtonNone},
			wantType:   proto.InputDispatchMouseEventTypeMouseMoved,
			wantButton: proto.InputMouseButtonNone,
			buttons:    intPtr(0),
		},
		{
			name:       "press",
			in:         schemas.MouseEventData{Type: schemas.MousePress, Button: schemas.ButtonLeft, Buttons: 1, ClickCount: 1},
			wantType:   proto.InputDispatchMouseEventTypeMousePressed,
			wantButton: proto.InputMouseButtonLeft,
			buttons:    intPtr(1),
		},
		{
			name:       "release",
			in:         schemas.MouseEventData{Type: schemas.MouseRelease, Button: schemas.ButtonLeft, ClickCount: 1},
			wantType:   proto.InputDispatchMouseEventTypeMouseReleased,
			wantButton: proto.InputMouseButtonLeft,
			buttons:    intPtr(0),
		},
		{
			name:       "wheel",
			in:         schemas.MouseEventData{Type: schemas.MouseWheel, Button: schemas.ButtonNone, DeltaY: -80},
			wantType:   proto.InputDispatchMouseEventTypeMouseWheel,
			wantButton: proto.InputMouseButtonNone,
			wantDeltaY: -80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := toDispatchRequest(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, req.Type)
			assert.Equal(t, tt.wantButton, req.Button)
			assert.Equal(t, tt.wantDeltaY, req.DeltaY)
			assert.Equal(t, tt.in.X, req.X)
			assert.Equal(t, tt.in.ClickCount, req.ClickCount)
			assert.Equal(t, tt.buttons, req.Buttons)
		})
	}
}

func TestToDispatchRequest_UnknownType(t *testing.T) {
	_, err := toDispatchRequest(schemas.MouseEventData{Type: "mouseDragged"})
	assert.ErrorContains(t, err, "unsupported mouse event type")
}

func TestNewLauncher_Flags(t *testing.T) {
	cfg := config.NewDefaultConfig().Browser()
	cfg.Args = []string{"--lang=de-DE", "mute-audio"}

	l := NewLauncher(cfg)

	assert.False(t, l.Has(flags.Flag("enable-automation")))
	assert.Equal(t, "AutomationControlled", l.Get(flags.Flag("disable-blink-features")))
	assert.Equal(t, "1280,800", l.Get(flags.Flag("window-size")))
	assert.Equal(t, "de-DE", l.Get(flags.Flag("lang")))
	assert.True(t, l.Has(flags.Flag("mute-audio")))
}

func intPtr(v int) *int { return &v }
