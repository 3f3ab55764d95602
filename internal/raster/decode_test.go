package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	src.SetNRGBA(1, 2, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encoding PNG: %v", err)
	}

	r, err := Decode("input.png", buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if r.Width != 4 || r.Height != 3 {
		t.Errorf("size = %dx%d, want 4x3", r.Width, r.Height)
	}
	if red, _, _, _ := r.RGBA(1, 2); red != 255 {
		t.Errorf("red at (1,2) = %d, want 255", red)
	}
}

func TestDecode16BitTranslucentPNG(t *testing.T) {
	src := image.NewNRGBA64(image.Rect(0, 0, 2, 2))
	src.SetNRGBA64(0, 0, color.NRGBA64{R: 0xffff, G: 0xffff, B: 0xffff, A: 0x8080})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encoding PNG: %v", err)
	}

	r, err := Decode("deep.png", buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if lum := r.Luminance(0, 0); lum != 1 {
		t.Errorf("Luminance(0,0) = %v, want 1", lum)
	}

	// The texture written from the raster keeps the straight colour.
	if c := r.Image().NRGBAAt(0, 0); c.R != 255 || c.A != 128 {
		t.Errorf("Image().NRGBAAt(0,0) = %v, want white at alpha 128", c)
	}
}

func TestDecodeNotImage(t *testing.T) {
	_, err := Decode("notes.txt", []byte("hello, this is plain text"))
	if !errors.Is(err, ErrNotImage) {
		t.Errorf("Decode() error = %v, want ErrNotImage", err)
	}
}

func TestDecodeFileMissing(t *testing.T) {
	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecodeFileTGA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.TGA")
	if err := os.WriteFile(path, tgaUncompressed(2, 1, 24, true), 0644); err != nil {
		t.Fatalf("writing TGA: %v", err)
	}

	r, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	if r.Width != 2 || r.Height != 1 {
		t.Errorf("size = %dx%d, want 2x1", r.Width, r.Height)
	}
}

func TestIsImageName(t *testing.T) {
	for name, want := range map[string]bool{
		"logo.png":      true,
		"data/LOGO.BMP": true,
		"texture.tga":   true,
		"photo.jpeg":    true,
		"readme.txt":    false,
		"model.rsm":     false,
		"no_extension":  false,
	} {
		if got := IsImageName(name); got != want {
			t.Errorf("IsImageName(%q) = %v, want %v", name, got, want)
		}
	}
}
