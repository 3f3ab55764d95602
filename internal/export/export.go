// Package export writes finished meshes to 3D interchange files, together
// with an optional diffuse texture.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/imgmesh/internal/logger"
	"github.com/Faultbox/imgmesh/internal/mesh"
	"github.com/Faultbox/imgmesh/internal/raster"
)

// Format identifiers.
const (
	FormatOBJ     = "obj"
	FormatSTL     = "stl"
	FormatPLY     = "ply"
	FormatFBX     = "fbx"
	FormatCollada = "collada"
	FormatGLTF2   = "gltf2"
	FormatGLB2    = "glb2"
)

// ErrUnsupportedFormat is returned for format ids that have no writer.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Error wraps any failure while exporting, keeping the target path and format.
type Error struct {
	Path   string
	Format string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("exporting %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FormatID maps a file path's extension to a format identifier.
// Unknown or missing extensions map to "obj".
func FormatID(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "obj":
		return FormatOBJ
	case "stl":
		return FormatSTL
	case "ply":
		return FormatPLY
	case "fbx":
		return FormatFBX
	case "dae":
		return FormatCollada
	case "gltf":
		return FormatGLTF2
	case "glb":
		return FormatGLB2
	default:
		return FormatOBJ
	}
}

// Extension returns the file extension, with dot, written for a format id.
func Extension(format string) string {
	switch format {
	case FormatCollada:
		return ".dae"
	case FormatGLTF2:
		return ".gltf"
	case FormatGLB2:
		return ".glb"
	default:
		return "." + format
	}
}

// WithFormat replaces path's extension with the one for format.
func WithFormat(path, format string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + Extension(format)
}

// TextureName returns the file name of the texture written next to path.
func TextureName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return base + "_texture.png"
}

// writer encodes one format. textureFile is the texture's file name relative
// to the model, or "" when there is none.
type writer func(path string, m *mesh.Mesh, mat Material, textureFile string) error

var writers = map[string]writer{
	FormatOBJ: writeOBJ,
	FormatSTL: writeSTL,
	FormatPLY: writePLY,
}

// SupportedFormats lists format ids that have a writer.
func SupportedFormats() []string {
	return []string{FormatOBJ, FormatPLY, FormatSTL}
}

// Exporter writes meshes to disk.
type Exporter struct {
	Material Material
}

// NewExporter returns an exporter using the given material.
func NewExporter(mat Material) *Exporter {
	return &Exporter{Material: mat}
}

// Export writes m to path in the format implied by its extension. When
// texture is non-nil it is saved as <basename>_texture.png in the same
// directory and referenced from the material. Failures are returned as *Error;
// nothing already written is cleaned up.
func (e *Exporter) Export(m *mesh.Mesh, path string, texture *raster.Raster) error {
	format := FormatID(path)
	wrap := func(err error) error {
		return &Error{Path: path, Format: format, Err: err}
	}

	write, ok := writers[format]
	if !ok {
		return wrap(ErrUnsupportedFormat)
	}
	if err := m.Validate(); err != nil {
		return wrap(err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return wrap(fmt.Errorf("creating output dir: %w", err))
		}
	}

	textureFile := ""
	if texture != nil && !texture.Empty() {
		textureFile = TextureName(path)
		if err := SaveTexture(filepath.Join(filepath.Dir(path), textureFile), texture); err != nil {
			return wrap(err)
		}
	}

	if err := write(path, m, e.Material, textureFile); err != nil {
		return wrap(err)
	}

	logger.Named("export").Info("model exported",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
		zap.String("texture", textureFile),
	)
	return nil
}
