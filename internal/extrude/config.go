// Package extrude turns a raster into a height-extruded triangle mesh using
// one of several pixel-driven strategies.
package extrude

import (
	"fmt"
	"strings"
)

// Method selects the extrusion strategy.
type Method int

const (
	// MethodDepthMap raises each sample by its luminance.
	MethodDepthMap Method = iota
	// MethodEdgeBased raises each sample by its Sobel edge magnitude.
	MethodEdgeBased
	// MethodContourBased stacks luminance bands as flat point layers.
	MethodContourBased
)

var methodNames = map[Method]string{
	MethodDepthMap:     "depth_map",
	MethodEdgeBased:    "edge_based",
	MethodContourBased: "contour_based",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod accepts the snake_case names plus a few short aliases.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "depth_map", "depthmap", "depth":
		return MethodDepthMap, nil
	case "edge_based", "edge", "edges", "edge_detection":
		return MethodEdgeBased, nil
	case "contour_based", "contour", "contours":
		return MethodContourBased, nil
	default:
		return MethodDepthMap, fmt.Errorf("unknown extrusion method %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	v, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// DetailLevel is a coarse knob mapped to a pixel sampling stride.
type DetailLevel int

const (
	DetailLow DetailLevel = iota
	DetailMedium
	DetailHigh
)

// DefaultStep is used for detail levels outside the known set.
const DefaultStep = 4

// Step returns the sampling stride in pixels: Low=8, Medium=4, High=2.
func (d DetailLevel) Step() int {
	switch d {
	case DetailLow:
		return 8
	case DetailMedium:
		return 4
	case DetailHigh:
		return 2
	default:
		return DefaultStep
	}
}

func (d DetailLevel) String() string {
	switch d {
	case DetailLow:
		return "low"
	case DetailMedium:
		return "medium"
	case DetailHigh:
		return "high"
	default:
		return fmt.Sprintf("detail(%d)", int(d))
	}
}

// ParseDetail parses "low", "medium" or "high".
func ParseDetail(s string) (DetailLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return DetailLow, nil
	case "medium", "med":
		return DetailMedium, nil
	case "high":
		return DetailHigh, nil
	default:
		return DetailMedium, fmt.Errorf("unknown detail level %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d DetailLevel) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DetailLevel) UnmarshalText(text []byte) error {
	v, err := ParseDetail(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Config holds the parameters of one generation request.
type Config struct {
	Method        Method
	Detail        DetailLevel
	Depth         float64 // Height scale; not range checked.
	SmoothNormals bool
}

// DefaultConfig returns the settings the tool starts with.
func DefaultConfig() Config {
	return Config{
		Method:        MethodDepthMap,
		Detail:        DetailMedium,
		Depth:         2.0,
		SmoothNormals: true,
	}
}
