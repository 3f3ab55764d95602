package export

import (
	"github.com/hschendel/stl"

	"github.com/Faultbox/imgmesh/internal/mesh"
)

// writeSTL writes a binary STL. STL has no texture or material support, and
// stores one normal per facet, recomputed from the triangle's positions.
func writeSTL(path string, m *mesh.Mesh, _ Material, _ string) error {
	return toSolid(m).WriteFile(path)
}

func toSolid(m *mesh.Mesh) *stl.Solid {
	solid := &stl.Solid{
		Name:      "ImageMesh",
		Triangles: make([]stl.Triangle, m.TriangleCount()),
	}
	for t := range m.TriangleCount() {
		a, b, c := m.Triangle(t)
		p0, p1, p2 := m.Positions[a], m.Positions[b], m.Positions[c]
		normal := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()

		solid.Triangles[t] = stl.Triangle{
			Normal: stl.Vec3(normal.Float32()),
			Vertices: [3]stl.Vec3{
				stl.Vec3(p0.Float32()),
				stl.Vec3(p1.Float32()),
				stl.Vec3(p2.Float32()),
			},
		}
	}
	return solid
}
