// FILE: ./internal/humanoid/pacing_test.go
package humanoid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexOfDifficulty(t *testing.T) {
	assert.InDelta(t, math.Log2(11), IndexOfDifficulty(1000, 100), 1e-12)
	assert.InDelta(t, 1.0, IndexOfDifficulty(100, 100), 1e-12)
	assert.Equal(t, 0.0, IndexOfDifficulty(0, 100))
	assert.Equal(t, 0.0, IndexOfDifficulty(500, 0))
	assert.Equal(t, 0.0, IndexOfDifficulty(500, -5))
	assert.Equal(t, 0.0, IndexOfDifficulty(math.NaN(), 100))
}

func TestCursorPointCount(t *testing.T) {
	t.Run("KnownValue", func(t *testing.T) {
		// round(12 * log2(11)) = round(41.51) = 42
		assert.Equal(t, 42, CursorPointCount(1000, 100))
	})

	t.Run("Floor", func(t *testing.T) {
		assert.Equal(t, 15, CursorPointCount(0, 100))
		assert.Equal(t, 15, CursorPointCount(50, 100))
		assert.Equal(t, 15, CursorPointCount(10, 0))
	})

	t.Run("MonotonicInDistance", func(t *testing.T) {
		prev := CursorPointCount(0, 40)
		for d := 10.0; d <= 5000; d += 10 {
			cur := CursorPointCount(d, 40)
			require.GreaterOrEqual(t, cur, prev)
			prev = cur
		}
	})

	t.Run("SmallerTargetsNeedMorePoints", func(t *testing.T) {
		assert.Greater(t, CursorPointCount(2000, 10), CursorPointCount(2000, 200))
	})
}

func TestScrollStepCount(t *testing.T) {
	// round(8 * log2(6)) = round(20.68) = 21
	assert.Equal(t, 21, ScrollStepCount(500))
	assert.Equal(t, 21, ScrollStepCount(-500))
	assert.Equal(t, 5, ScrollStepCount(0))
	assert.Equal(t, 5, ScrollStepCount(20))

	prev := ScrollStepCount(0)
	for d := 25.0; d <= 20000; d += 25 {
		cur := ScrollStepCount(d)
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}
