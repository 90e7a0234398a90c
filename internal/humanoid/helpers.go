package humanoid

import (
	"context"
	"math"
	"time"
)

// degenerateLength is the segment length below which a direction is undefined.
const degenerateLength = 1e-9

// Rand is the random source consumed by the generators.
// *math/rand.Rand satisfies it; tests may supply fixed sequences.
type Rand interface {
	Float64() float64
	NormFloat64() float64
}

// clamp limits value to the closed interval [min, max].
func clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(value, max))
}

// computeEaseInOutCubic provides a smooth acceleration and deceleration profile.
// It maps [0,1] onto [0,1] monotonically with f(0)=0 and f(1)=1.
func computeEaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// bezierPoint evaluates the cubic Bézier curve defined by p0..p3 at parameter t.
func bezierPoint(t float64, p0, p1, p2, p3 Vector2D) Vector2D {
	omt := 1.0 - t
	omt2 := omt * omt
	omt3 := omt2 * omt
	t2 := t * t
	t3 := t2 * t

	return p0.Mul(omt3).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t3))
}

// sampleGaussian samples a value from a Gaussian distribution.
func sampleGaussian(rng Rand, mean, stdDev float64) float64 {
	if rng == nil || stdDev == 0 {
		return mean
	}
	return mean + rng.NormFloat64()*stdDev
}

// uniform samples a value in [min, max).
func uniform(rng Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// uniformDuration samples a duration in [min, max).
func uniformDuration(rng Rand, min, max time.Duration) time.Duration {
	return time.Duration(uniform(rng, float64(min), float64(max)))
}

// randomSign returns -1 or +1 with equal probability.
func randomSign(rng Rand) float64 {
	if rng.Float64() < 0.5 {
		return -1
	}
	return 1
}

// chance reports whether a coin flip with probability p succeeds.
func chance(rng Rand, p float64) bool {
	return rng.Float64() < p
}

// Sleep pauses for d or until ctx is done. Executors that have no native
// sleep primitive use it.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
