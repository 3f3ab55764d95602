package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hschendel/stl"

	"github.com/Faultbox/imgmesh/internal/mesh"
	"github.com/Faultbox/imgmesh/internal/raster"
	"github.com/Faultbox/imgmesh/pkg/math"
)

// testQuad returns a unit quad of two triangles with smooth normals.
func testQuad() *mesh.Mesh {
	m := mesh.New(4, 2)
	m.AddVertex(math.Vec3{X: 0, Y: 0}, math.Vec2{X: 0, Y: 0})
	m.AddVertex(math.Vec3{X: 1, Y: 0}, math.Vec2{X: 1, Y: 0})
	m.AddVertex(math.Vec3{X: 0, Y: 1}, math.Vec2{X: 0, Y: 1})
	m.AddVertex(math.Vec3{X: 1, Y: 1}, math.Vec2{X: 1, Y: 1})
	m.AddTriangle(0, 2, 1)
	m.AddTriangle(1, 2, 3)
	mesh.ComputeSmoothNormals(m)
	return m
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestFormatID(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"model.obj", FormatOBJ},
		{"model.OBJ", FormatOBJ},
		{"out/model.stl", FormatSTL},
		{"model.ply", FormatPLY},
		{"model.fbx", FormatFBX},
		{"model.dae", FormatCollada},
		{"model.gltf", FormatGLTF2},
		{"model.glb", FormatGLB2},
		{"model.xyz", FormatOBJ},
		{"model", FormatOBJ},
	}

	for _, tt := range tests {
		if got := FormatID(tt.path); got != tt.want {
			t.Errorf("FormatID(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWithFormat(t *testing.T) {
	tests := []struct {
		path, format, want string
	}{
		{"out/model.obj", FormatSTL, "out/model.stl"},
		{"model", FormatPLY, "model.ply"},
		{"model.obj", FormatCollada, "model.dae"},
		{"model.obj", FormatGLB2, "model.glb"},
	}

	for _, tt := range tests {
		if got := WithFormat(tt.path, tt.format); got != tt.want {
			t.Errorf("WithFormat(%q, %q) = %q, want %q", tt.path, tt.format, got, tt.want)
		}
		if got := FormatID(WithFormat(tt.path, tt.format)); got != tt.format {
			t.Errorf("FormatID after WithFormat = %q, want %q", got, tt.format)
		}
	}
}

func TestTextureName(t *testing.T) {
	if got := TextureName("/tmp/out/logo.obj"); got != "logo_texture.png" {
		t.Errorf("TextureName = %q, want logo_texture.png", got)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.fbx")

	err := NewExporter(DefaultMaterial()).Export(testQuad(), path, nil)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Export error = %v, want ErrUnsupportedFormat", err)
	}

	var exportErr *Error
	if !errors.As(err, &exportErr) {
		t.Fatalf("Export error is %T, want *Error", err)
	}
	if exportErr.Format != FormatFBX || exportErr.Path != path {
		t.Errorf("Error = %+v", exportErr)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("unsupported export should not create a file")
	}
}

func TestExportInvalidMesh(t *testing.T) {
	m := testQuad()
	m.Indices = append(m.Indices, 9, 9, 9)

	err := NewExporter(DefaultMaterial()).Export(m, filepath.Join(t.TempDir(), "bad.obj"), nil)
	if err == nil {
		t.Fatal("expected error for out-of-range indices")
	}
}

func TestExportOBJ(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")

	mat, err := NewMaterial(PresetGray, 0.5)
	if err != nil {
		t.Fatalf("NewMaterial: %v", err)
	}
	if err := NewExporter(mat).Export(testQuad(), path, nil); err != nil {
		t.Fatalf("Export: %v", err)
	}

	obj := readFile(t, path)
	for _, want := range []string{
		"mtllib quad.mtl\n",
		"v 1 0 0\n",
		"vt 0 1\n", // v is flipped
		"vt 1 0\n",
		"usemtl ImageMaterial\n",
		"f 1/1/1 3/3/3 2/2/2\n",
		"f 2/2/2 3/3/3 4/4/4\n",
	} {
		if !strings.Contains(obj, want) {
			t.Errorf("OBJ missing %q", want)
		}
	}
	if got := strings.Count(obj, "\nvn "); got != 4 {
		t.Errorf("vn lines = %d, want 4", got)
	}

	mtl := readFile(t, filepath.Join(dir, "quad.mtl"))
	for _, want := range []string{
		"newmtl ImageMaterial\n",
		"Ka 0.2000 0.2000 0.2000\n",
		"Kd 0.5020 0.5020 0.5020\n",
		"Ks 0.5000 0.5000 0.5000\n",
		"Ns 96\n",
		"d 1\n",
	} {
		if !strings.Contains(mtl, want) {
			t.Errorf("MTL missing %q", want)
		}
	}
	if strings.Contains(mtl, "map_Kd") {
		t.Error("MTL should not reference a texture")
	}
}

func TestExportOBJWithoutNormals(t *testing.T) {
	m := testQuad()
	m.Normals = nil
	path := filepath.Join(t.TempDir(), "flat.obj")

	if err := NewExporter(DefaultMaterial()).Export(m, path, nil); err != nil {
		t.Fatalf("Export: %v", err)
	}
	obj := readFile(t, path)
	if !strings.Contains(obj, "f 1/1 3/3 2/2\n") {
		t.Errorf("unexpected faces:\n%s", obj)
	}
	if strings.Contains(obj, "vn ") {
		t.Error("OBJ should have no normals")
	}
}

func TestExportWithTexture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "logo.obj")

	tex := raster.New(2, 2)
	tex.Set(1, 1, 255, 0, 0, 255)

	if err := NewExporter(DefaultMaterial()).Export(testQuad(), path, tex); err != nil {
		t.Fatalf("Export: %v", err)
	}

	texPath := filepath.Join(dir, "nested", "logo_texture.png")
	decoded, err := raster.DecodeFile(texPath)
	if err != nil {
		t.Fatalf("decoding texture: %v", err)
	}
	if decoded.Width != 2 || decoded.Height != 2 {
		t.Errorf("texture size = %dx%d, want 2x2", decoded.Width, decoded.Height)
	}
	if r, g, b, _ := decoded.RGBA(1, 1); r != 255 || g != 0 || b != 0 {
		t.Errorf("texture pixel = (%d,%d,%d), want (255,0,0)", r, g, b)
	}

	mtl := readFile(t, filepath.Join(dir, "nested", "logo.mtl"))
	if !strings.Contains(mtl, "map_Kd logo_texture.png\n") {
		t.Errorf("MTL missing texture reference:\n%s", mtl)
	}
}

func TestExportSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.stl")

	if err := NewExporter(DefaultMaterial()).Export(testQuad(), path, nil); err != nil {
		t.Fatalf("Export: %v", err)
	}

	solid, err := stl.ReadFile(path)
	if err != nil {
		t.Fatalf("stl.ReadFile: %v", err)
	}
	if len(solid.Triangles) != 2 {
		t.Fatalf("triangles = %d, want 2", len(solid.Triangles))
	}
	// (0,2,1) winds clockwise seen from +Z.
	if n := solid.Triangles[0].Normal; n != (stl.Vec3{0, 0, -1}) {
		t.Errorf("normal = %v, want (0,0,-1)", n)
	}
	if v := solid.Triangles[0].Vertices[1]; v != (stl.Vec3{0, 1, 0}) {
		t.Errorf("vertex = %v, want (0,1,0)", v)
	}
}

func TestExportPLY(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.ply")

	if err := NewExporter(DefaultMaterial()).Export(testQuad(), path, raster.New(1, 1)); err != nil {
		t.Fatalf("Export: %v", err)
	}

	ply := readFile(t, path)
	for _, want := range []string{
		"ply\nformat ascii 1.0\n",
		"comment TextureFile quad_texture.png\n",
		"element vertex 4\n",
		"property float nx\n",
		"property float s\n",
		"element face 2\n",
		"end_header\n",
		"3 0 2 1\n",
	} {
		if !strings.Contains(ply, want) {
			t.Errorf("PLY missing %q", want)
		}
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    Preset
		wantErr bool
	}{
		{"", PresetImage, false},
		{"from_image", PresetImage, false},
		{"Gray", PresetGray, false},
		{"blue", PresetBlue, false},
		{"purple", PresetImage, true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewMaterial(t *testing.T) {
	mat, err := NewMaterial(PresetRed, 3)
	if err != nil {
		t.Fatalf("NewMaterial: %v", err)
	}
	if mat.Name != MaterialName {
		t.Errorf("Name = %q", mat.Name)
	}
	if hex := mat.Diffuse.Hex(); hex != "#cd5c5c" {
		t.Errorf("Diffuse = %s, want #cd5c5c", hex)
	}
	if mat.Specular.R != 1 {
		t.Errorf("specular not clamped: %v", mat.Specular.R)
	}
	if mat.Shininess != 96 || mat.Opacity != 1 {
		t.Errorf("Shininess/Opacity = %v/%v", mat.Shininess, mat.Opacity)
	}

	if !PresetImage.Textured() || PresetBlue.Textured() {
		t.Error("only from_image should be textured")
	}
	if white := DefaultMaterial().Diffuse.Hex(); white != "#ffffff" {
		t.Errorf("default diffuse = %s, want #ffffff", white)
	}
}
