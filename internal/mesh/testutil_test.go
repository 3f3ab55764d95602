package mesh

import (
	gomath "math"

	"github.com/Faultbox/imgmesh/pkg/math"
)

// quad returns a unit square in the XY plane split into two triangles that
// share vertices 1 and 2:
//
//	0 --- 1
//	|   / |
//	2 --- 3
func quad() *Mesh {
	m := New(4, 2)
	m.AddVertex(math.Vec3{X: 0, Y: 1}, math.Vec2{X: 0, Y: 0})
	m.AddVertex(math.Vec3{X: 1, Y: 1}, math.Vec2{X: 1, Y: 0})
	m.AddVertex(math.Vec3{X: 0, Y: 0}, math.Vec2{X: 0, Y: 1})
	m.AddVertex(math.Vec3{X: 1, Y: 0}, math.Vec2{X: 1, Y: 1})
	m.AddTriangle(0, 2, 1)
	m.AddTriangle(1, 2, 3)
	return m
}

func approxEqual(a, b math.Vec3, tol float64) bool {
	return gomath.Abs(a.X-b.X) <= tol && gomath.Abs(a.Y-b.Y) <= tol && gomath.Abs(a.Z-b.Z) <= tol
}
