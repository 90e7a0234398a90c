// internal/humanoid/vector.go
package humanoid

import "math"

// Vector2D represents a point or vector in viewport space. Cursor positions,
// Bézier control points and movement directions all use it.
type Vector2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns the vector sum of v and other.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the vector difference of v and other.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul scales the vector by a scalar.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{X: v.X * scalar, Y: v.Y * scalar}
}

// Mag returns the Euclidean length of the vector.
func (v Vector2D) Mag() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and other.
func (v Vector2D) Dist(other Vector2D) float64 {
	return math.Hypot(v.X-other.X, v.Y-other.Y)
}

// Normalize returns the unit vector pointing in the direction of v.
// The zero vector normalizes to the zero vector.
func (v Vector2D) Normalize() Vector2D {
	mag := v.Mag()
	if mag < degenerateLength {
		return Vector2D{}
	}
	return v.Mul(1.0 / mag)
}

// Perp returns the left-hand perpendicular (-y, x) of the unit vector of v.
// The zero vector yields the zero vector.
func (v Vector2D) Perp() Vector2D {
	n := v.Normalize()
	return Vector2D{X: -n.Y, Y: n.X}
}

// IsZero reports whether both components are exactly zero.
func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
