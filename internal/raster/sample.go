package raster

// Rec. 601 luma weights.
const (
	weightR = 0.299
	weightG = 0.587
	weightB = 0.114
)

// Luminance returns the normalized brightness of pixel (x, y) in [0, 1].
// Coordinates are not bounds checked; callers only sample inside the raster.
func (r *Raster) Luminance(x, y int) float64 {
	i := r.PixOffset(x, y)
	return (float64(r.Pix[i])*weightR +
		float64(r.Pix[i+1])*weightG +
		float64(r.Pix[i+2])*weightB) / 255.0
}

// Field is a row-major width x height grid of scalar values.
type Field struct {
	Width  int
	Height int
	Values []float64
}

// NewField allocates a zeroed field.
func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the value at (x, y).
func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.Width+x]
}

// Set stores v at (x, y).
func (f *Field) Set(x, y int, v float64) {
	f.Values[y*f.Width+x] = v
}

// LuminanceField samples every pixel once.
func LuminanceField(r *Raster) *Field {
	f := NewField(r.Width, r.Height)
	for y := range r.Height {
		for x := range r.Width {
			f.Values[y*r.Width+x] = r.Luminance(x, y)
		}
	}
	return f
}
