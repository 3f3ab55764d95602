package extrude

import (
	"github.com/Faultbox/imgmesh/internal/mesh"
	"github.com/Faultbox/imgmesh/pkg/math"
)

// halfExtent is half the side of the world-space footprint: every mesh spans
// [-5, 5] on X and Y regardless of image size.
const halfExtent = 5.0

// Grid is the uniform sampling lattice laid over a raster.
//
// Cols and Rows use floor division, so pixels past the last whole step on the
// right and bottom edges are never sampled.
type Grid struct {
	Width  int // raster width in pixels
	Height int // raster height in pixels
	Step   int
	Cols   int
	Rows   int
}

// NewGrid lays a grid with the given stride over a width x height raster.
func NewGrid(width, height, step int) Grid {
	g := Grid{Width: width, Height: height, Step: step}
	if step > 0 && width > 0 && height > 0 {
		g.Cols = width / step
		g.Rows = height / step
	}
	return g
}

// Empty reports whether the grid has no sample points.
func (g Grid) Empty() bool {
	return g.Cols == 0 || g.Rows == 0
}

// Points returns the number of sample points.
func (g Grid) Points() int {
	return g.Cols * g.Rows
}

// Triangles returns the number of triangles Triangulate emits.
func (g Grid) Triangles() int {
	if g.Cols < 2 || g.Rows < 2 {
		return 0
	}
	return 2 * (g.Cols - 1) * (g.Rows - 1)
}

// Pixel maps grid coordinates to pixel coordinates.
func (g Grid) Pixel(gx, gy int) (px, py int) {
	return gx * g.Step, gy * g.Step
}

// Position maps a pixel to world space at height z. Y is inverted so image
// rows run downward while world Y points up.
func (g Grid) Position(px, py int, z float64) math.Vec3 {
	halfW := float64(g.Width) / 2.0
	halfH := float64(g.Height) / 2.0
	return math.Vec3{
		X: (float64(px) - halfW) / halfW * halfExtent,
		Y: -(float64(py) - halfH) / halfH * halfExtent,
		Z: z,
	}
}

// TexCoord maps a pixel to its texture coordinate in [0, 1).
func (g Grid) TexCoord(px, py int) math.Vec2 {
	return math.Vec2{
		X: float64(px) / float64(g.Width),
		Y: float64(py) / float64(g.Height),
	}
}

// Each calls fn for every sample point in row-major order.
func (g Grid) Each(fn func(px, py int)) {
	for gy := range g.Rows {
		for gx := range g.Cols {
			fn(g.Pixel(gx, gy))
		}
	}
}

// Triangulate connects a full row-major grid of vertices already present in m
// with two triangles per cell:
//
//	topLeft --- topRight
//	   |      /     |
//	bottomLeft --- bottomRight
//
// A = (topLeft, bottomLeft, topRight), B = (topRight, bottomLeft, bottomRight).
func (g Grid) Triangulate(m *mesh.Mesh) {
	for y := 0; y < g.Rows-1; y++ {
		for x := 0; x < g.Cols-1; x++ {
			topLeft := uint32(y*g.Cols + x)
			topRight := topLeft + 1
			bottomLeft := uint32((y+1)*g.Cols + x)
			bottomRight := bottomLeft + 1

			m.AddTriangle(topLeft, bottomLeft, topRight)
			m.AddTriangle(topRight, bottomLeft, bottomRight)
		}
	}
}
