package mesh

import "github.com/Faultbox/imgmesh/pkg/math"

// ComputeSmoothNormals replaces m.Normals with area-weighted vertex normals.
//
// Each triangle's unnormalized cross product is added to its three vertices,
// so larger triangles weigh more. Sums are normalized in a second pass.
// Vertices not referenced by any triangle get the zero vector.
func ComputeSmoothNormals(m *Mesh) {
	sums := make([]math.Vec3, len(m.Positions))

	for t := range m.TriangleCount() {
		i0, i1, i2 := m.Triangle(t)
		face := faceNormal(m, i0, i1, i2)
		sums[i0] = sums[i0].Add(face)
		sums[i1] = sums[i1].Add(face)
		sums[i2] = sums[i2].Add(face)
	}

	for i := range sums {
		sums[i] = sums[i].Normalize()
	}
	m.Normals = sums
}

// ComputeFlatNormals replaces m.Normals with per-face normals.
//
// A vertex takes the unit normal of the first triangle, in index order, that
// references it. Later triangles sharing the vertex do not overwrite it, which
// leaves visible shading seams on shared vertices. Unreferenced vertices get
// the zero vector.
func ComputeFlatNormals(m *Mesh) {
	normals := make([]math.Vec3, len(m.Positions))
	claimed := make([]bool, len(m.Positions))

	for t := range m.TriangleCount() {
		i0, i1, i2 := m.Triangle(t)
		face := faceNormal(m, i0, i1, i2).Normalize()
		for _, idx := range [3]uint32{i0, i1, i2} {
			if claimed[idx] {
				continue
			}
			normals[idx] = face
			claimed[idx] = true
		}
	}
	m.Normals = normals
}

// faceNormal returns (p1-p0) x (p2-p0), not normalized.
func faceNormal(m *Mesh, i0, i1, i2 uint32) math.Vec3 {
	p0 := m.Positions[i0]
	v1 := m.Positions[i1].Sub(p0)
	v2 := m.Positions[i2].Sub(p0)
	return v1.Cross(v2)
}
