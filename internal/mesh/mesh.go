// Package mesh provides the indexed triangle mesh produced by extrusion,
// per-vertex normal computation, and the mirror/combine transforms.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/imgmesh/pkg/math"
)

// Mesh is an indexed triangle mesh.
//
// Normals is either empty or exactly as long as Positions. TexCoords runs
// parallel to Positions. Indices holds three entries per triangle.
type Mesh struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Indices   []uint32
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// ErrNonFinite is returned by CheckFinite when a coordinate is NaN or infinite.
var ErrNonFinite = errors.New("non-finite value")

// New returns an empty mesh with room for the given vertex and triangle counts.
func New(vertices, triangles int) *Mesh {
	return &Mesh{
		Positions: make([]math.Vec3, 0, vertices),
		TexCoords: make([]math.Vec2, 0, vertices),
		Indices:   make([]uint32, 0, triangles*3),
	}
}

// AddVertex appends a position with its texture coordinate and returns its index.
func (m *Mesh) AddVertex(pos math.Vec3, uv math.Vec2) uint32 {
	m.Positions = append(m.Positions, pos)
	m.TexCoords = append(m.TexCoords, uv)
	return uint32(len(m.Positions) - 1)
}

// AddTriangle appends one triangle in the given winding.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of index triples.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertex indices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c uint32) {
	return m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]
}

// HasNormals reports whether per-vertex normals are present.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0
}

// Empty reports whether the mesh has no vertices.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Positions) == 0
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Positions: append([]math.Vec3(nil), m.Positions...),
		Normals:   append([]math.Vec3(nil), m.Normals...),
		TexCoords: append([]math.Vec2(nil), m.TexCoords...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
}

// Validate checks the structural invariants of the mesh.
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	if len(m.Normals) != 0 && len(m.Normals) != n {
		return fmt.Errorf("normals: have %d, want 0 or %d", len(m.Normals), n)
	}
	if len(m.TexCoords) != 0 && len(m.TexCoords) != n {
		return fmt.Errorf("texture coordinates: have %d, want 0 or %d", len(m.TexCoords), n)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range [0,%d)", idx, i, n)
		}
	}
	return nil
}

// CheckFinite returns ErrNonFinite (wrapped with the offending vertex) if
// any position, normal or texture coordinate is NaN or infinite.
func (m *Mesh) CheckFinite() error {
	for i, p := range m.Positions {
		if !p.IsFinite() {
			return fmt.Errorf("position %d %v: %w", i, p, ErrNonFinite)
		}
	}
	for i, n := range m.Normals {
		if !n.IsFinite() {
			return fmt.Errorf("normal %d %v: %w", i, n, ErrNonFinite)
		}
	}
	for i, uv := range m.TexCoords {
		if !uv.IsFinite() {
			return fmt.Errorf("texture coordinate %d %v: %w", i, uv, ErrNonFinite)
		}
	}
	return nil
}

// Bounds returns the bounding box of all positions. An empty mesh has zero bounds.
func (m *Mesh) Bounds() Bounds {
	if len(m.Positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}
