package mesh

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/imgmesh/pkg/math"
)

// Axis selects which coordinate a mirror negates.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

// ErrNoAxis is returned when Mirror is called with AxisNone.
var ErrNoAxis = errors.New("mirror axis is none")

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "none"
	}
}

// ParseAxis parses "none", "x", "y" or "z" (case-insensitive, "" means none).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AxisNone, nil
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	default:
		return AxisNone, fmt.Errorf("unknown mirror axis %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	v, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func mirrorVec(v math.Vec3, axis Axis) math.Vec3 {
	switch axis {
	case AxisX:
		v.X = -v.X
	case AxisY:
		v.Y = -v.Y
	case AxisZ:
		v.Z = -v.Z
	}
	return v
}

// Mirror returns a new mesh reflected across the plane orthogonal to axis.
// The matching coordinate of every position and normal is negated, texture
// coordinates are copied, and each triangle (a,b,c) becomes (a,c,b) so the
// reflected surface keeps facing outward. The input is not modified.
func Mirror(m *Mesh, axis Axis) (*Mesh, error) {
	if axis != AxisX && axis != AxisY && axis != AxisZ {
		return nil, ErrNoAxis
	}

	out := &Mesh{
		Positions: make([]math.Vec3, len(m.Positions)),
		TexCoords: append([]math.Vec2(nil), m.TexCoords...),
		Indices:   make([]uint32, len(m.Indices)),
	}
	for i, p := range m.Positions {
		out.Positions[i] = mirrorVec(p, axis)
	}
	if len(m.Normals) > 0 {
		out.Normals = make([]math.Vec3, len(m.Normals))
		for i, n := range m.Normals {
			out.Normals[i] = mirrorVec(n, axis)
		}
	}
	for t := range m.TriangleCount() {
		a, b, c := m.Triangle(t)
		out.Indices[3*t] = a
		out.Indices[3*t+1] = c
		out.Indices[3*t+2] = b
	}
	return out, nil
}

// Combine returns a new mesh holding a followed by b. Indices from b are
// shifted by the vertex count of a. Neither input is modified.
//
// If only one side carries normals, the other side is padded with zero
// vectors so the combined mesh still has one normal per vertex.
func Combine(a, b *Mesh) *Mesh {
	offset := uint32(len(a.Positions))

	out := &Mesh{
		Positions: make([]math.Vec3, 0, len(a.Positions)+len(b.Positions)),
		TexCoords: make([]math.Vec2, 0, len(a.TexCoords)+len(b.TexCoords)),
		Indices:   make([]uint32, 0, len(a.Indices)+len(b.Indices)),
	}
	out.Positions = append(append(out.Positions, a.Positions...), b.Positions...)
	out.TexCoords = append(append(out.TexCoords, a.TexCoords...), b.TexCoords...)

	if a.HasNormals() || b.HasNormals() {
		out.Normals = make([]math.Vec3, 0, len(out.Positions))
		out.Normals = appendNormals(out.Normals, a)
		out.Normals = appendNormals(out.Normals, b)
	}

	out.Indices = append(out.Indices, a.Indices...)
	for _, idx := range b.Indices {
		out.Indices = append(out.Indices, idx+offset)
	}
	return out
}

func appendNormals(dst []math.Vec3, m *Mesh) []math.Vec3 {
	if m.HasNormals() {
		return append(dst, m.Normals...)
	}
	return append(dst, make([]math.Vec3, len(m.Positions))...)
}
