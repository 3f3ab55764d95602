// Package session ties image loading, mesh generation and export together.
// A Session holds the current image and the last generated mesh, and allows at
// most one generation at a time.
package session

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/imgmesh/internal/export"
	"github.com/Faultbox/imgmesh/internal/extrude"
	"github.com/Faultbox/imgmesh/internal/logger"
	"github.com/Faultbox/imgmesh/internal/mesh"
	"github.com/Faultbox/imgmesh/internal/raster"
	"github.com/Faultbox/imgmesh/internal/source"
)

var (
	// ErrBusy is returned when a generation is requested while one is running.
	ErrBusy = errors.New("generation already in progress")
	// ErrNoImage is returned by Generate before an image is loaded.
	ErrNoImage = errors.New("no image loaded")
	// ErrNoMesh is returned by Export before a mesh is generated.
	ErrNoMesh = errors.New("no mesh generated")
)

// Options configures generation and export.
type Options struct {
	Extrusion extrude.Config
	MaxSize   int // downscale the input so neither side exceeds this; 0 disables
	Mirror    mesh.Axis
	Preset    export.Preset
	Specular  float64
	Texture   bool // write the image as texture when the preset is textured
}

// DefaultOptions returns the default generation and export options.
func DefaultOptions() Options {
	return Options{
		Extrusion: extrude.DefaultConfig(),
		Mirror:    mesh.AxisNone,
		Preset:    export.PresetImage,
		Specular:  0.5,
		Texture:   true,
	}
}

// Counts holds the status-line numbers for the current mesh.
type Counts struct {
	Vertices  int
	Triangles int
}

// Session is the stateful front of the pipeline.
type Session struct {
	loader *source.Loader
	log    *zap.Logger

	// gen is held for the duration of a generation.
	gen sync.Mutex

	mu     sync.RWMutex
	opts   Options
	ref    string
	image  *raster.Raster
	result *mesh.Mesh
}

// New creates a session with the given options.
func New(opts Options) *Session {
	return &Session{
		loader: source.NewLoader(),
		log:    logger.Named("session"),
		opts:   opts,
	}
}

// Close releases open archives.
func (s *Session) Close() error {
	return s.loader.Close()
}

// Options returns the current options.
func (s *Session) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// SetOptions replaces the options. The current mesh is kept; call Generate to
// apply extrusion changes.
func (s *Session) SetOptions(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
}

// LoadImage loads an image from a file or archive reference and makes it the
// current input. The previous mesh is discarded.
func (s *Session) LoadImage(ref string) error {
	r, err := s.loader.Load(ref)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}
	s.SetImage(ref, r)
	s.log.Info("image loaded",
		zap.String("source", ref),
		zap.Int("width", r.Width),
		zap.Int("height", r.Height),
	)
	return nil
}

// SetImage makes r the current input. The previous mesh is discarded.
func (s *Session) SetImage(ref string, r *raster.Raster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ref = ref
	s.image = r
	s.result = nil
}

// Source returns the reference the current image was loaded from.
func (s *Session) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ref
}

// Image returns the current input, or nil.
func (s *Session) Image() *raster.Raster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image
}

// Generate builds a mesh from the current image and stores it. A second call
// while one is running fails with ErrBusy instead of waiting.
func (s *Session) Generate() (*mesh.Mesh, error) {
	if !s.gen.TryLock() {
		return nil, ErrBusy
	}
	defer s.gen.Unlock()

	s.mu.RLock()
	img, opts := s.image, s.opts
	s.mu.RUnlock()

	if img == nil {
		return nil, ErrNoImage
	}

	img = img.Fit(opts.MaxSize)
	m, err := extrude.Generate(img, opts.Extrusion)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.result = m
	s.mu.Unlock()
	return m, nil
}

// Mesh returns the last generated mesh, or nil.
func (s *Session) Mesh() *mesh.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Output returns the mesh as it would be exported: the generated mesh,
// combined with its mirror image when a mirror axis is set.
func (s *Session) Output() (*mesh.Mesh, error) {
	s.mu.RLock()
	m, axis := s.result, s.opts.Mirror
	s.mu.RUnlock()

	if m == nil {
		return nil, ErrNoMesh
	}
	if axis == mesh.AxisNone {
		return m, nil
	}

	mirrored, err := mesh.Mirror(m, axis)
	if err != nil {
		return nil, err
	}
	return mesh.Combine(m, mirrored), nil
}

// Counts returns vertex and triangle counts of the output mesh. Both double
// when a mirror axis is set. Zero counts are returned before generation.
func (s *Session) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.result == nil {
		return Counts{}
	}
	c := Counts{
		Vertices:  s.result.VertexCount(),
		Triangles: s.result.TriangleCount(),
	}
	if s.opts.Mirror != mesh.AxisNone {
		c.Vertices *= 2
		c.Triangles *= 2
	}
	return c
}

// Export writes the output mesh to path. The format follows the extension.
func (s *Session) Export(path string) error {
	out, err := s.Output()
	if err != nil {
		return err
	}

	s.mu.RLock()
	img, opts := s.image, s.opts
	s.mu.RUnlock()

	mat, err := export.NewMaterial(opts.Preset, opts.Specular)
	if err != nil {
		return err
	}

	var texture *raster.Raster
	if opts.Texture && opts.Preset.Textured() {
		texture = img
	}

	return export.NewExporter(mat).Export(out, path, texture)
}
