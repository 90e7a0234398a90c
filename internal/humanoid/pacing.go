package humanoid

import "math"

const (
	// minCursorPoints is the smallest number of samples in a cursor path.
	minCursorPoints = 15
	// cursorPointsPerBit scales cursor samples with the index of difficulty.
	cursorPointsPerBit = 12.0
	// minScrollSteps is the smallest number of wheel steps in a scroll phase.
	minScrollSteps = 5
	// scrollStepsPerBit scales wheel steps with the index of difficulty.
	scrollStepsPerBit = 8.0
	// scrollTargetWidth is the notional target width used for scroll pacing.
	scrollTargetWidth = 100.0
)

// IndexOfDifficulty is the Fitts's Law index log2(D/W + 1).
// Non-positive widths and negative distances are treated as zero difficulty.
func IndexOfDifficulty(distance, width float64) float64 {
	if width <= 0 || distance <= 0 || math.IsNaN(distance) {
		return 0
	}
	return math.Log2(distance/width + 1)
}

// CursorPointCount returns how many samples a cursor path of the given
// distance toward a target of the given width should have.
func CursorPointCount(distance, width float64) int {
	n := int(math.Round(cursorPointsPerBit * IndexOfDifficulty(distance, width)))
	if n < minCursorPoints {
		return minCursorPoints
	}
	return n
}

// ScrollStepCount returns how many wheel steps a scroll of the given
// distance should take.
func ScrollStepCount(distance float64) int {
	n := int(math.Round(scrollStepsPerBit * IndexOfDifficulty(math.Abs(distance), scrollTargetWidth)))
	if n < minScrollSteps {
		return minScrollSteps
	}
	return n
}
