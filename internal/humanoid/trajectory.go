package humanoid

import (
	"math"

	"github.com/xkilldash9x/shymouse/api/schemas"
)

// PathRequest describes a single cursor movement to synthesize.
type PathRequest struct {
	Start Vector2D
	// Target is the destination. Nil picks a random point inside the padded
	// viewport and suppresses overshoot.
	Target *Vector2D
	// Box is the geometry of the element being approached, if any. Its smaller
	// dimension is the Fitts's Law target width.
	Box      *schemas.ElementGeometry
	Viewport schemas.Viewport
}

// Region is the padded viewport rectangle every emitted point is clamped into.
type Region struct {
	MinX float64 `json:"minX" yaml:"minX"`
	MaxX float64 `json:"maxX" yaml:"maxX"`
	MinY float64 `json:"minY" yaml:"minY"`
	MaxY float64 `json:"maxY" yaml:"maxY"`
}

// Clamp returns p moved to the nearest point inside the region.
func (r Region) Clamp(p Vector2D) Vector2D {
	return Vector2D{X: clamp(p.X, r.MinX, r.MaxX), Y: clamp(p.Y, r.MinY, r.MaxY)}
}

// Contains reports whether p lies inside the region, borders included.
func (r Region) Contains(p Vector2D) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Trajectory is an ordered, open-loop cursor path. It is consumed by replaying
// Points in order; FinalPos is the true destination, never the overshoot point.
type Trajectory struct {
	Points       []Vector2D `json:"points" yaml:"points"`
	FinalPos     Vector2D   `json:"finalPos" yaml:"finalPos"`
	Region       Region     `json:"region" yaml:"region"`
	RandomTarget bool       `json:"randomTarget" yaml:"randomTarget"`
	// Overshoot is the point the main phase aimed for when the path overshoots.
	Overshoot *Vector2D `json:"overshoot,omitempty" yaml:"overshoot,omitempty"`
	// CorrectionStart is the index in Points where the corrective phase begins.
	CorrectionStart int `json:"correctionStart,omitempty" yaml:"correctionStart,omitempty"`
}

// arcShape controls how far the Bézier control points leave the straight segment.
type arcShape struct {
	// Deviation is drawn from [devMin, devMax) times the segment length.
	devMin, devMax float64
	// Each control point's deviation is scaled by a factor drawn from [factorMin, factorMax).
	factorMin, factorMax float64
	jitterScale          float64
}

var (
	mainArc       = arcShape{devMin: 0.1, devMax: 0.5, factorMin: 0.5, factorMax: 1.0, jitterScale: 1.0}
	correctionArc = arcShape{devMin: 0.1, devMax: 0.3, factorMin: 0.0, factorMax: 1.0, jitterScale: 0.5}
)

// pathBuilder emits jittered Bézier phases into one shared region.
type pathBuilder struct {
	rng    Rand
	region Region
	jitter float64
}

// GeneratePath synthesizes a cursor trajectory for req.
//
// The path is a single cubic Bézier arc sampled through an ease-in-out
// reparameterization, with Gaussian tremor on every sample. With probability
// opts.OvershootProb, for targeted moves longer than CursorOvershootMinDistance,
// the arc aims past the target and a shorter corrective arc returns to it.
func GeneratePath(rng Rand, req PathRequest, opts Options) Trajectory {
	b := pathBuilder{
		rng:    rng,
		region: sampleRegion(rng, req.Viewport, opts),
		jitter: opts.JitterStdDev,
	}

	traj := Trajectory{Region: b.region}
	var target Vector2D
	if req.Target == nil {
		target = Vector2D{
			X: uniform(rng, b.region.MinX, b.region.MaxX),
			Y: uniform(rng, b.region.MinY, b.region.MaxY),
		}
		traj.RandomTarget = true
	} else {
		target = *req.Target
	}
	traj.FinalPos = target

	width := opts.DefaultTargetWidth
	if req.Box != nil && req.Box.MinDimension() > 0 {
		width = req.Box.MinDimension()
	}

	dist := req.Start.Dist(target)
	numPoints := CursorPointCount(dist, width)

	if traj.RandomTarget || dist <= opts.CursorOvershootMinDistance || !chance(rng, opts.OvershootProb) {
		traj.Points = b.arc(req.Start, target, numPoints, mainArc)
		return traj
	}

	// Main phase toward a point past the target, then a corrective phase back.
	overshootDist := width * uniform(rng, opts.CursorOvershootMin, opts.CursorOvershootMax)
	dir := target.Sub(req.Start).Normalize()
	overshoot := target.Add(dir.Mul(overshootDist))

	mainPoints := b.arc(req.Start, overshoot, CursorPointCount(req.Start.Dist(overshoot), width), mainArc)
	correctionPoints := int(math.Round(float64(numPoints) / 4))
	if correctionPoints < 1 {
		correctionPoints = 1
	}

	traj.Overshoot = &overshoot
	traj.CorrectionStart = len(mainPoints)
	traj.Points = append(mainPoints, b.arc(overshoot, target, correctionPoints, correctionArc)...)
	return traj
}

// sampleRegion shrinks the viewport by an independent random padding per axis.
func sampleRegion(rng Rand, vp schemas.Viewport, opts Options) Region {
	padX := math.Min(uniform(rng, opts.ViewPadMin, opts.ViewPadMax), vp.Width/2)
	padY := math.Min(uniform(rng, opts.ViewPadMin, opts.ViewPadMax), vp.Height/2)
	return Region{
		MinX: padX,
		MaxX: vp.Width - padX,
		MinY: padY,
		MaxY: vp.Height - padY,
	}
}

// arc samples numPoints points (excluding start, including end) along a jittered
// Bézier arc from start to end. Both control points bend toward the same side,
// so the result is a single bow rather than an S-curve.
func (b pathBuilder) arc(start, end Vector2D, numPoints int, shape arcShape) []Vector2D {
	p1, p2 := start, start
	segment := end.Sub(start)
	length := segment.Mag()

	if length >= degenerateLength {
		perp := segment.Perp()
		deviation := length * uniform(b.rng, shape.devMin, shape.devMax)
		sign := randomSign(b.rng)
		bend := func() Vector2D {
			return perp.Mul(sign * deviation * uniform(b.rng, shape.factorMin, shape.factorMax))
		}
		p1 = start.Add(segment.Mul(1.0 / 3.0)).Add(bend())
		p2 = start.Add(segment.Mul(2.0 / 3.0)).Add(bend())
	}

	jitter := b.jitter * shape.jitterScale
	points := make([]Vector2D, 0, numPoints)
	for i := 1; i <= numPoints; i++ {
		t := computeEaseInOutCubic(float64(i) / float64(numPoints))
		p := bezierPoint(t, start, p1, p2, end)
		p.X += sampleGaussian(b.rng, 0, jitter)
		p.Y += sampleGaussian(b.rng, 0, jitter)
		points = append(points, b.region.Clamp(p))
	}
	return points
}
