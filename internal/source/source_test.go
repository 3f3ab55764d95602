package source

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/imgmesh/internal/raster"
	"github.com/Faultbox/imgmesh/pkg/grf"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding PNG: %v", err)
	}
	return buf.Bytes()
}

// testArchive is generated by testdata/generate.go.
const testArchive = "testdata/images.grf"

func archivePath(t *testing.T) string {
	t.Helper()
	if _, err := os.Stat(testArchive); err != nil {
		t.Fatalf("missing test archive: %v", err)
	}
	return testArchive
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Ref
	}{
		{"logo.png", Ref{Path: "logo.png"}},
		{"data.grf:data/logo.png", Ref{Path: "data.grf", Entry: "data/logo.png"}},
		{"/srv/Data.GRF:data\\logo.bmp", Ref{Path: "/srv/Data.GRF", Entry: "data\\logo.bmp"}},
		{"C:/images/logo.png", Ref{Path: "C:/images/logo.png"}},
	}

	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestRefString(t *testing.T) {
	ref := Ref{Path: "data.grf", Entry: "a/b.png"}
	if ref.String() != "data.grf:a/b.png" || !ref.InArchive() {
		t.Errorf("String = %q", ref.String())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(path, pngBytes(t, 3, 5), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Width != 3 || r.Height != 5 {
		t.Errorf("size = %dx%d, want 3x5", r.Width, r.Height)
	}
}

func TestLoadFromArchive(t *testing.T) {
	archive := archivePath(t)

	r, err := Load(archive + ":DATA/Texture/logo.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Width != 6 || r.Height != 4 {
		t.Errorf("size = %dx%d, want 6x4", r.Width, r.Height)
	}
	if red, green, blue, _ := r.RGBA(0, 0); red != 10 || green != 20 || blue != 30 {
		t.Errorf("pixel = (%d,%d,%d)", red, green, blue)
	}
}

func TestLoadFromArchiveErrors(t *testing.T) {
	archive := archivePath(t)

	if _, err := Load(archive + ":data/missing.png"); !errors.Is(err, grf.ErrNotFound) {
		t.Errorf("missing entry error = %v, want ErrNotFound", err)
	}
	if _, err := Load(archive + ":data/texture/note.txt"); !errors.Is(err, raster.ErrNotImage) {
		t.Errorf("text entry error = %v, want ErrNotImage", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "none.grf") + ":x.png"); err == nil {
		t.Error("expected error for missing archive")
	}
}

func TestListImages(t *testing.T) {
	archive := archivePath(t)

	all, err := ListImages(archive, "")
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(all) != 2 || all[0] != "data/sprite/icon.png" || all[1] != "data/texture/logo.png" {
		t.Errorf("ListImages = %v", all)
	}

	filtered, err := ListImages(archive, "texture")
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(filtered) != 1 {
		t.Errorf("filtered = %v", filtered)
	}
}
