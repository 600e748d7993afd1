package lens2d

// Point2 is a position in the 2-D cross-section through the optical axis.
// X runs along the axis, Y is the height above it (millimeters).
type Point2 struct {
	X, Y Real
}

// Add lets you translate a Point2 by a Vector2.
func (p Point2) Add(v Vector2) Point2 {
	return Point2{p.X + v.X, p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point2) Sub(q Point2) Vector2 {
	return Vector2{p.X - q.X, p.Y - q.Y}
}
