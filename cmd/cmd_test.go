// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/shymouse/internal/humanoid"
	"github.com/xkilldash9x/shymouse/internal/observability"
)

// resetForTest isolates a test from the developer's home directory, any
// SHYMOUSE_* variables and the global logger.
func resetForTest(t *testing.T) {
	t.Helper()
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "SHYMOUSE_") {
			// Setenv registers the restore; the unset is what the test sees.
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)
}

// execute runs a fresh root command and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

type trajectoryOutput struct {
	Points   []humanoid.Vector2D `json:"points" yaml:"points"`
	FinalPos humanoid.Vector2D   `json:"finalPos" yaml:"finalPos"`
	Region   humanoid.Region     `json:"region" yaml:"region"`
}

func TestVersion(t *testing.T) {
	resetForTest(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "shymouse version "+Version+"\n", out)

	out, err = execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "shymouse version "+Version)
}

func TestPlanMove_JSON(t *testing.T) {
	resetForTest(t)

	out, err := execute(t, "plan", "move", "--from", "100,100", "--to", "900,500", "--seed", "7")
	require.NoError(t, err)

	var traj trajectoryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &traj))
	assert.GreaterOrEqual(t, len(traj.Points), 15)
	assert.Equal(t, humanoid.Vector2D{X: 900, Y: 500}, traj.FinalPos)
	for _, p := range traj.Points {
		assert.True(t, traj.Region.Contains(p), "point %v outside region %+v", p, traj.Region)
	}
}

func TestPlanMove_YAMLAndDeterminism(t *testing.T) {
	resetForTest(t)

	first, err := execute(t, "plan", "move", "--from", "640,400", "--seed", "42", "--format", "yaml")
	require.NoError(t, err)
	second, err := execute(t, "plan", "move", "--from", "640,400", "--seed", "42", "--format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, first, second, "the same seed must produce the same plan")

	var traj trajectoryOutput
	require.NoError(t, yaml.Unmarshal([]byte(first), &traj))
	assert.NotEmpty(t, traj.Points)
}

func TestPlanMove_InvalidInput(t *testing.T) {
	resetForTest(t)

	_, err := execute(t, "plan", "move", "--from", "nope")
	assert.ErrorContains(t, err, "invalid --from")

	_, err = execute(t, "plan", "move", "--from", "1,1", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = execute(t, "plan", "move")
	assert.Error(t, err, "--from is required")
}

func TestPlanScroll(t *testing.T) {
	resetForTest(t)

	out, err := execute(t, "plan", "scroll", "--element-y", "3000", "--seed", "3")
	require.NoError(t, err)

	var plan scrollPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.True(t, plan.Visible)
	assert.NotEmpty(t, plan.WheelDeltas)
	assert.Zero(t, plan.StartOffset)
	// Centering the 40px element in an 800px viewport.
	assert.InDelta(t, 2620, plan.FinalOffset, 50)
	assert.Greater(t, plan.Moves, 0, "the hand hovers before scrolling")
}

func TestPlanScroll_AlreadyVisible(t *testing.T) {
	resetForTest(t)

	out, err := execute(t, "plan", "scroll", "--element-y", "300", "--seed", "3")
	require.NoError(t, err)

	var plan scrollPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Empty(t, plan.WheelDeltas)
	assert.Zero(t, plan.FinalOffset)
	assert.True(t, plan.Visible)
}

func TestRun_Simulated(t *testing.T) {
	resetForTest(t)

	out, err := execute(t, "run", "--driver", "simulated", "--action", "move", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "move done at")
}

func TestRun_SimulatedElement(t *testing.T) {
	resetForTest(t)

	out, err := execute(t, "run", "--driver", "simulated", "--action", "click",
		"--selector", "#buy", "--element", "500,3000,120,40", "--seed", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "click done at")

	out, err = execute(t, "run", "--driver", "simulated", "--action", "scroll",
		"--selector", "#footer", "--element", "0,4000,1280,60", "--seed", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "scroll done at")

	_, err = execute(t, "run", "--driver", "simulated", "--selector", "#x", "--element", "1,2,3")
	assert.ErrorContains(t, err, "invalid --element")

	_, err = execute(t, "run", "--driver", "rod", "--selector", "#x", "--element", "1,2,3,4")
	assert.ErrorContains(t, err, "only applies to the simulated driver")
}

func TestRun_Errors(t *testing.T) {
	resetForTest(t)

	_, err := execute(t, "run", "--driver", "simulated", "--action", "click", "--selector", "#missing")
	assert.ErrorIs(t, err, humanoid.ErrNoBoundingBox)

	_, err = execute(t, "run", "--driver", "simulated", "--action", "dance")
	assert.ErrorContains(t, err, "unknown action")

	_, err = execute(t, "run", "--driver", "simulated", "--action", "scroll")
	assert.ErrorContains(t, err, "--selector is required")

	_, err = execute(t, "run", "--driver", "netscape", "--action", "move")
	assert.ErrorContains(t, err, "driver must be one of")
}

func TestConfigFile(t *testing.T) {
	resetForTest(t)

	path := filepath.Join(t.TempDir(), "shymouse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
browser:
  viewport:
    width: 400
    height: 300
humanoid:
  view_pad_min: 10
  view_pad_max: 10
`), 0o600))

	out, err := execute(t, "--config", path, "plan", "move", "--from", "200,150", "--seed", "9")
	require.NoError(t, err)

	var traj trajectoryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &traj))
	assert.Equal(t, humanoid.Region{MinX: 10, MaxX: 390, MinY: 10, MaxY: 290}, traj.Region)
}

func TestConfigFromEnvironment(t *testing.T) {
	resetForTest(t)
	t.Setenv("SHYMOUSE_BROWSER_DRIVER", "lynx")

	_, err := execute(t, "plan", "move", "--from", "1,1")
	assert.ErrorContains(t, err, "driver must be one of")
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    humanoid.Vector2D
		wantErr bool
	}{
		{in: "1,2", want: humanoid.Vector2D{X: 1, Y: 2}},
		{in: " 10.5 , 20 ", want: humanoid.Vector2D{X: 10.5, Y: 20}},
		{in: "1", wantErr: true},
		{in: "a,2", wantErr: true},
		{in: "1,b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
