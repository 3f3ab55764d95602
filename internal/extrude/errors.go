package extrude

import (
	"errors"
	"fmt"
)

// ErrEmptyGrid means the raster and step leave no sample points: the raster
// has a zero dimension or the step is larger than it.
var ErrEmptyGrid = errors.New("empty sampling grid")

// InputError describes input that yields an empty grid. Generate tolerates it
// and returns an empty mesh; Validate reports it so callers can warn.
type InputError struct {
	Width  int
	Height int
	Step   int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %dx%d raster with step %d: %v", e.Width, e.Height, e.Step, ErrEmptyGrid)
}

func (e *InputError) Unwrap() error {
	return ErrEmptyGrid
}

// GenerationError is a numeric failure during sampling. No partial mesh is
// returned alongside it.
type GenerationError struct {
	Method Method
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating %s mesh: %v", e.Method, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
