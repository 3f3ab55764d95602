package math

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float64
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}
