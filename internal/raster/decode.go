package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WEBP decoder registration
)

// ErrNotImage is returned when the input bytes are not a recognised image.
var ErrNotImage = errors.New("not an image")

// Extensions lists the file extensions Decode understands.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".tga"}

// IsImageName reports whether name has a decodable image extension.
func IsImageName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(Extensions, ext)
}

// Decode decodes image bytes into a Raster. The name is only used for its
// extension: TGA carries no magic number and is selected by ".tga".
func Decode(name string, data []byte) (*Raster, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return FromImage(img), nil
	}

	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("decoding %s: %w", name, ErrNotImage)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("decoding %s (%s): %w", name, kind.Extension, err)
	}

	return FromImage(img), nil
}

// DecodeFile reads and decodes an image file.
func DecodeFile(path string) (*Raster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, data)
}
