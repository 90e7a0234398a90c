// FILE: ./internal/humanoid/helpers_test.go
package humanoid

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEaseInOutCubic(t *testing.T) {
	t.Run("Endpoints", func(t *testing.T) {
		assert.Equal(t, 0.0, computeEaseInOutCubic(0))
		assert.InDelta(t, 0.5, computeEaseInOutCubic(0.5), 1e-12)
		assert.Equal(t, 1.0, computeEaseInOutCubic(1))
	})

	t.Run("Monotonic", func(t *testing.T) {
		prev := computeEaseInOutCubic(0)
		for i := 1; i <= 1000; i++ {
			cur := computeEaseInOutCubic(float64(i) / 1000)
			require.GreaterOrEqual(t, cur, prev, "easing decreased at step %d", i)
			prev = cur
		}
	})

	t.Run("SlowStartAndFinish", func(t *testing.T) {
		assert.Less(t, computeEaseInOutCubic(0.1), 0.1)
		assert.Greater(t, computeEaseInOutCubic(0.9), 0.9)
	})
}

func TestBezierPoint(t *testing.T) {
	p0 := Vector2D{X: 0, Y: 0}
	p1 := Vector2D{X: 10, Y: 50}
	p2 := Vector2D{X: 90, Y: 50}
	p3 := Vector2D{X: 100, Y: 0}

	assert.Equal(t, p0, bezierPoint(0, p0, p1, p2, p3))
	assert.Equal(t, p3, bezierPoint(1, p0, p1, p2, p3))

	mid := bezierPoint(0.5, p0, p1, p2, p3)
	assert.InDelta(t, 50.0, mid.X, 1e-9)
	assert.InDelta(t, 37.5, mid.Y, 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, clamp(5, 0, 10))
	assert.Equal(t, 0.0, clamp(-3, 0, 10))
	assert.Equal(t, 10.0, clamp(42, 0, 10))
}

func TestRandomHelpers(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	t.Run("UniformRange", func(t *testing.T) {
		for i := 0; i < 500; i++ {
			v := uniform(rng, 10, 20)
			require.GreaterOrEqual(t, v, 10.0)
			require.Less(t, v, 20.0)
		}
	})

	t.Run("UniformEmptyRange", func(t *testing.T) {
		assert.Equal(t, 3.0, uniform(rng, 3, 3))
		assert.Equal(t, 3.0, uniform(rng, 3, 1))
	})

	t.Run("UniformDuration", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			d := uniformDuration(rng, 5*time.Millisecond, 20*time.Millisecond)
			require.GreaterOrEqual(t, d, 5*time.Millisecond)
			require.Less(t, d, 20*time.Millisecond)
		}
	})

	t.Run("GaussianZeroStdDev", func(t *testing.T) {
		assert.Equal(t, 4.0, sampleGaussian(rng, 4, 0))
		assert.Equal(t, 4.0, sampleGaussian(nil, 4, 1))
	})

	t.Run("Chance", func(t *testing.T) {
		assert.False(t, chance(rng, 0))
		assert.True(t, chance(rng, 1))
	})

	t.Run("RandomSign", func(t *testing.T) {
		assert.Equal(t, -1.0, randomSign(fixedRand{uniform: 0.2}))
		assert.Equal(t, 1.0, randomSign(fixedRand{uniform: 0.7}))
	})
}

func TestSleep(t *testing.T) {
	t.Run("Completes", func(t *testing.T) {
		require.NoError(t, Sleep(context.Background(), time.Millisecond))
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Sleep(ctx, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("NonPositive", func(t *testing.T) {
		assert.NoError(t, Sleep(context.Background(), 0))
	})
}
