// Package raster holds decoded images in a fixed 4-byte-per-pixel layout and
// derives the scalar fields (luminance, edge strength) that drive extrusion.
package raster

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
)

// BytesPerPixel is the channel count of every Raster (R, G, B, A).
const BytesPerPixel = 4

// Raster is an immutable width x height grid of 8-bit RGBA pixels.
// Rows are tightly packed: the stride is always Width*4.
type Raster struct {
	Width  int
	Height int
	Pix    []byte
}

// New allocates a transparent black raster.
func New(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// FromImage converts any decoded image into the raster layout. Channels are
// stored with straight (non-premultiplied) alpha whatever the source model.
func FromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	r := New(bounds.Dx(), bounds.Dy())
	if r.Width == 0 || r.Height == 0 {
		return r
	}

	rowSize := r.Width * BytesPerPixel
	switch src := img.(type) {
	case *image.NRGBA:
		for y := range r.Height {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(r.Pix[y*rowSize:(y+1)*rowSize], src.Pix[off:off+rowSize])
		}
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		copy(r.Pix, dst.Pix)
	}
	return r
}

// Empty reports whether the raster has no pixels at all.
func (r *Raster) Empty() bool {
	return r == nil || r.Width <= 0 || r.Height <= 0
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (r *Raster) PixOffset(x, y int) int {
	return (y*r.Width + x) * BytesPerPixel
}

// RGBA returns the four channels at (x, y).
func (r *Raster) RGBA(x, y int) (red, green, blue, alpha uint8) {
	i := r.PixOffset(x, y)
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3]
}

// Set writes the four channels at (x, y).
func (r *Raster) Set(x, y int, red, green, blue, alpha uint8) {
	i := r.PixOffset(x, y)
	r.Pix[i] = red
	r.Pix[i+1] = green
	r.Pix[i+2] = blue
	r.Pix[i+3] = alpha
}

// Image returns a copy of the raster as an *image.NRGBA, suitable for PNG encoding.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Pix)
	return img
}

// Fit downscales the raster so neither side exceeds maxSize, keeping the
// aspect ratio. A maxSize <= 0, or a raster already small enough, is returned as is.
func (r *Raster) Fit(maxSize int) *Raster {
	if maxSize <= 0 || r.Empty() || (r.Width <= maxSize && r.Height <= maxSize) {
		return r
	}

	w, h := r.Width, r.Height
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}

	// Resize filters premultiplied RGBA; FromImage converts back to straight alpha.
	return FromImage(transform.Resize(r.Image(), w, h, transform.Linear))
}
