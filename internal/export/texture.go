package export

import (
	"fmt"
	"image/png"
	"os"

	"github.com/Faultbox/imgmesh/internal/raster"
)

// SaveTexture encodes the raster as a PNG file at path.
func SaveTexture(path string, r *raster.Raster) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating texture: %w", err)
	}

	if err := png.Encode(file, r.Image()); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}
