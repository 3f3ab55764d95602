package raster

import "math"

var (
	sobelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// EdgeField computes the Sobel gradient magnitude of the luminance at every
// interior pixel. The outermost one-pixel ring is left at 0, and magnitudes
// are not normalized (a hard black/white step yields values above 1).
func EdgeField(r *Raster) *Field {
	edges := NewField(r.Width, r.Height)
	if r.Width < 3 || r.Height < 3 {
		return edges
	}

	lum := LuminanceField(r)
	for y := 1; y < r.Height-1; y++ {
		for x := 1; x < r.Width-1; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					intensity := lum.At(x+kx, y+ky)
					gx += intensity * sobelX[ky+1][kx+1]
					gy += intensity * sobelY[ky+1][kx+1]
				}
			}
			edges.Set(x, y, math.Sqrt(gx*gx+gy*gy))
		}
	}
	return edges
}
