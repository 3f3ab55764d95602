package extrude

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/imgmesh/internal/logger"
	"github.com/Faultbox/imgmesh/internal/mesh"
	"github.com/Faultbox/imgmesh/internal/raster"
)

// Validate reports an *InputError when r and cfg produce an empty grid.
func Validate(r *raster.Raster, cfg Config) error {
	step := cfg.Detail.Step()
	if r.Empty() {
		w, h := 0, 0
		if r != nil {
			w, h = r.Width, r.Height
		}
		return &InputError{Width: w, Height: h, Step: step}
	}
	if NewGrid(r.Width, r.Height, step).Empty() {
		return &InputError{Width: r.Width, Height: r.Height, Step: step}
	}
	return nil
}

// Generate builds a finished mesh (positions, texture coordinates, triangles
// and one normal per vertex) from r.
//
// An empty grid is not an error: Generate logs it and returns an empty mesh.
// A non-finite coordinate or normal aborts with a *GenerationError.
func Generate(r *raster.Raster, cfg Config) (*mesh.Mesh, error) {
	log := logger.Named("extrude")
	start := time.Now()
	step := cfg.Detail.Step()

	if err := Validate(r, cfg); err != nil {
		log.Warn("empty sampling grid, returning empty mesh", zap.Error(err))
		return mesh.New(0, 0), nil
	}

	strategy := StrategyFor(cfg.Method)
	grid := NewGrid(r.Width, r.Height, step)

	m := strategy.Build(r, grid, cfg.Depth)
	if cfg.SmoothNormals {
		mesh.ComputeSmoothNormals(m)
	} else {
		mesh.ComputeFlatNormals(m)
	}

	if err := m.CheckFinite(); err != nil {
		return nil, &GenerationError{Method: strategy.Method(), Err: err}
	}

	log.Info("mesh generated",
		zap.Stringer("method", strategy.Method()),
		zap.Int("step", step),
		zap.Int("cols", grid.Cols),
		zap.Int("rows", grid.Rows),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
		zap.Bool("smooth", cfg.SmoothNormals),
		zap.Duration("elapsed", time.Since(start)),
	)
	return m, nil
}
