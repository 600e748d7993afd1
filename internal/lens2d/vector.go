package lens2d

import "math"

// Vector2 represents a direction (not a position) in the plane.
type Vector2 struct {
	X, Y Real
}

// Mul scales the vector by s.
func (v Vector2) Mul(s Real) Vector2 { return Vector2{v.X * s, v.Y * s} }

// Dot returns the dot product between two vectors.
func (a Vector2) Dot(b Vector2) Real {
	return a.X*b.X + a.Y*b.Y
}

// Len returns the Euclidean length of the vector.
func (v Vector2) Len() Real { return math.Hypot(v.X, v.Y) }

// Norm returns a unit-length version of the vector.
func (v Vector2) Norm() Vector2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vector2{v.X / l, v.Y / l}
}

// Rotate turns the vector counter-clockwise by theta radians.
func (v Vector2) Rotate(theta Real) Vector2 {
	return rot2(theta).MulVec(v)
}
