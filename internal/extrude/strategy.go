package extrude

import (
	"github.com/Faultbox/imgmesh/internal/mesh"
	"github.com/Faultbox/imgmesh/internal/raster"
)

// Strategy samples a raster on a grid and builds the raw mesh: positions,
// texture coordinates and, where the strategy has any, triangles.
// Normals are computed afterwards by Generate.
type Strategy interface {
	Method() Method
	Build(r *raster.Raster, g Grid, depth float64) *mesh.Mesh
}

// StrategyFor returns the strategy implementing m. Unknown methods fall back
// to the depth map.
func StrategyFor(m Method) Strategy {
	switch m {
	case MethodEdgeBased:
		return EdgeBased{}
	case MethodContourBased:
		return ContourBased{}
	default:
		return DepthMap{}
	}
}

// DepthMap uses luminance as height: z = luminance * depth.
type DepthMap struct{}

func (DepthMap) Method() Method { return MethodDepthMap }

func (DepthMap) Build(r *raster.Raster, g Grid, depth float64) *mesh.Mesh {
	m := mesh.New(g.Points(), g.Triangles())
	g.Each(func(px, py int) {
		z := r.Luminance(px, py) * depth
		m.AddVertex(g.Position(px, py, z), g.TexCoord(px, py))
	})
	g.Triangulate(m)
	return m
}

// EdgeBased uses the full-resolution Sobel magnitude as height:
// z = edge * depth. Magnitudes are not clamped, so z may exceed depth.
type EdgeBased struct{}

func (EdgeBased) Method() Method { return MethodEdgeBased }

func (EdgeBased) Build(r *raster.Raster, g Grid, depth float64) *mesh.Mesh {
	edges := raster.EdgeField(r)

	m := mesh.New(g.Points(), g.Triangles())
	g.Each(func(px, py int) {
		z := edges.At(px, py) * depth
		m.AddVertex(g.Position(px, py, z), g.TexCoord(px, py))
	})
	g.Triangulate(m)
	return m
}

// ContourLevels is the number of luminance bands above zero; thresholds are
// level/ContourLevels for level in [0, ContourLevels].
const ContourLevels = 5

// ContourBased emits, for every band threshold, a flat layer of vertices at
// z = threshold * depth wherever luminance >= threshold. It produces no
// triangles: the result is a stratified point cloud.
type ContourBased struct{}

func (ContourBased) Method() Method { return MethodContourBased }

func (ContourBased) Build(r *raster.Raster, g Grid, depth float64) *mesh.Mesh {
	m := mesh.New(g.Points(), 0)
	for level := 0; level <= ContourLevels; level++ {
		threshold := float64(level) / float64(ContourLevels)
		z := threshold * depth
		g.Each(func(px, py int) {
			if r.Luminance(px, py) >= threshold {
				m.AddVertex(g.Position(px, py, z), g.TexCoord(px, py))
			}
		})
	}
	return m
}
