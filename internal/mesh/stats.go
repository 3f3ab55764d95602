package mesh

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises a mesh for status output.
type Stats struct {
	Vertices  int
	Triangles int
	Bounds    Bounds

	// Height distribution of the Z coordinate.
	ZMin    float64
	ZMax    float64
	ZMean   float64
	ZStdDev float64
}

// ComputeStats gathers counts, bounds and the Z height distribution.
func ComputeStats(m *Mesh) Stats {
	s := Stats{
		Vertices:  m.VertexCount(),
		Triangles: m.TriangleCount(),
		Bounds:    m.Bounds(),
	}
	if len(m.Positions) == 0 {
		return s
	}

	heights := make([]float64, len(m.Positions))
	for i, p := range m.Positions {
		heights[i] = p.Z
	}
	s.ZMin = floats.Min(heights)
	s.ZMax = floats.Max(heights)
	if len(heights) > 1 {
		s.ZMean, s.ZStdDev = stat.MeanStdDev(heights, nil)
	} else {
		s.ZMean = heights[0]
	}
	return s
}
