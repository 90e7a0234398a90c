// File: cmd/plan.go
package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/shymouse/api/schemas"
	"github.com/xkilldash9x/shymouse/internal/browser/simulated"
	"github.com/xkilldash9x/shymouse/internal/humanoid"
	"github.com/xkilldash9x/shymouse/internal/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// scrollPlan is what `plan scroll` prints.
type scrollPlan struct {
	StartOffset float64   `json:"startOffset" yaml:"startOffset"`
	FinalOffset float64   `json:"finalOffset" yaml:"finalOffset"`
	WheelDeltas []float64 `json:"wheelDeltas" yaml:"wheelDeltas"`
	Moves       int       `json:"moves" yaml:"moves"`
	ElapsedMS   int64     `json:"elapsedMs" yaml:"elapsedMs"`
	Visible     bool      `json:"visible" yaml:"visible"`
}

func newPlanCmd(st *cliState) *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Print generated movements without a browser",
	}
	planCmd.PersistentFlags().StringP("format", "f", "json", "output format (json or yaml)")
	planCmd.PersistentFlags().Int64("seed", 0, "random seed (0 uses humanoid.seed from config, then the clock)")
	planCmd.AddCommand(newPlanMoveCmd(st), newPlanScrollCmd(st))
	return planCmd
}

func newPlanMoveCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Generate one cursor trajectory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			fromRaw, _ := cmd.Flags().GetString("from")
			toRaw, _ := cmd.Flags().GetString("to")
			width, _ := cmd.Flags().GetFloat64("width")

			from, err := parsePoint(fromRaw)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			req := humanoid.PathRequest{Start: from, Viewport: st.viewport()}
			if toRaw != "" {
				to, err := parsePoint(toRaw)
				if err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
				req.Target = &to
			}
			if width > 0 {
				req.Box = &schemas.ElementGeometry{Width: width, Height: width}
			}

			opts := humanoid.ConfigFromSettings(st.cfg.Humanoid()).Defaults
			if err := opts.Validate(); err != nil {
				return err
			}
			traj := humanoid.GeneratePath(st.rng(cmd), req, opts)
			observability.Component("plan").Debug("Trajectory generated.")
			return writeOutput(cmd.OutOrStdout(), format, traj)
		},
	}
	cmd.Flags().String("from", "", "start point as x,y (required)")
	cmd.Flags().String("to", "", "destination as x,y (default: random point in the viewport)")
	cmd.Flags().Float64("width", 0, "target width for Fitts's Law (default: humanoid.default_target_width)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newPlanScrollCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scroll",
		Short: "Scroll to an element on a simulated page and print the wheel plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			elementY, _ := cmd.Flags().GetFloat64("element-y")
			elementHeight, _ := cmd.Flags().GetFloat64("element-height")
			pageHeight, _ := cmd.Flags().GetFloat64("page-height")
			start, _ := cmd.Flags().GetFloat64("scroll")

			vp := st.viewport()
			page := simulated.NewPage(
				simulated.WithViewport(vp.Width, vp.Height),
				simulated.WithPageHeight(pageHeight),
			)
			page.AddElement("#target", vp.Width/4, elementY, vp.Width/2, elementHeight)
			page.SetScroll(start)

			hcfg := humanoid.ConfigFromSettings(st.cfg.Humanoid())
			hcfg.Rng = st.rng(cmd)
			// Throttling a simulated page only slows the command down.
			hcfg.MaxEventsPerSecond = 0
			h := humanoid.New(hcfg, observability.Component("plan"), page)

			startOffset := page.ScrollOffset()
			if err := h.ScrollToElement(cmd.Context(), "#target", nil); err != nil {
				return err
			}
			visible, err := h.IsElementInViewport(cmd.Context(), "#target", 0)
			if err != nil {
				return err
			}

			plan := scrollPlan{
				StartOffset: startOffset,
				FinalOffset: page.ScrollOffset(),
				WheelDeltas: []float64{},
				Moves:       len(page.EventsOfType(schemas.MouseMove)),
				ElapsedMS:   page.Elapsed().Milliseconds(),
				Visible:     visible,
			}
			for _, e := range page.EventsOfType(schemas.MouseWheel) {
				plan.WheelDeltas = append(plan.WheelDeltas, e.DeltaY)
			}
			return writeOutput(cmd.OutOrStdout(), format, plan)
		},
	}
	cmd.Flags().Float64("element-y", 0, "element top in document coordinates (required)")
	cmd.Flags().Float64("element-height", 40, "element height")
	cmd.Flags().Float64("page-height", 5000, "document height")
	cmd.Flags().Float64("scroll", 0, "initial scroll offset")
	_ = cmd.MarkFlagRequired("element-y")
	return cmd
}

// viewport is the configured browser window as the humanoid sees it.
func (st *cliState) viewport() schemas.Viewport {
	b := st.cfg.Browser()
	return schemas.Viewport{Width: float64(b.Viewport.Width), Height: float64(b.Viewport.Height)}
}

// rng seeds from --seed, then humanoid.seed, then the clock.
func (st *cliState) rng(cmd *cobra.Command) humanoid.Rand {
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = st.cfg.Humanoid().Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// parsePoint parses "x,y".
func parsePoint(s string) (humanoid.Vector2D, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return humanoid.Vector2D{}, err
	}
	return humanoid.Vector2D{X: v[0], Y: v[1]}, nil
}

// parseFloats parses exactly n comma-separated numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q in %q: %w", part, s, err)
		}
		out[i] = v
	}
	return out, nil
}

// writeOutput encodes v as indented JSON or YAML.
func writeOutput(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case "json":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
}
