package export

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MaterialName is the name every exported material carries.
const MaterialName = "ImageMaterial"

// Material describes the single surface material written with a mesh.
type Material struct {
	Name      string
	Diffuse   colorful.Color
	Ambient   colorful.Color
	Specular  colorful.Color
	Shininess float64
	Opacity   float64
}

// Preset names a diffuse colour choice.
type Preset string

// Known presets. PresetImage uses white so the texture shows unmodified.
const (
	PresetImage Preset = "from_image"
	PresetGray  Preset = "gray"
	PresetBlue  Preset = "blue"
	PresetRed   Preset = "red"
	PresetGreen Preset = "green"
)

var presetHex = map[Preset]string{
	PresetImage: "#ffffff",
	PresetGray:  "#808080", // Gray
	PresetBlue:  "#6495ed", // CornflowerBlue
	PresetRed:   "#cd5c5c", // IndianRed
	PresetGreen: "#2e8b57", // SeaGreen
}

// ParsePreset parses a preset name; "" selects PresetImage.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PresetImage, nil
	}
	if _, ok := presetHex[p]; !ok {
		return PresetImage, fmt.Errorf("unknown material preset %q", s)
	}
	return p, nil
}

// Textured reports whether the preset draws its colour from the image.
func (p Preset) Textured() bool {
	return p == PresetImage
}

// NewMaterial builds the export material for a preset. specular scales the
// white specular colour and is clamped to [0, 1].
func NewMaterial(p Preset, specular float64) (Material, error) {
	hex, ok := presetHex[p]
	if !ok {
		return Material{}, fmt.Errorf("unknown material preset %q", p)
	}
	diffuse, err := colorful.Hex(hex)
	if err != nil {
		return Material{}, err
	}
	specular = min(max(specular, 0), 1)

	return Material{
		Name:      MaterialName,
		Diffuse:   diffuse,
		Ambient:   colorful.Color{R: 0.2, G: 0.2, B: 0.2},
		Specular:  colorful.Color{R: specular, G: specular, B: specular},
		Shininess: 96,
		Opacity:   1,
	}, nil
}

// DefaultMaterial is the textured white material with specular 0.5.
func DefaultMaterial() Material {
	m, _ := NewMaterial(PresetImage, 0.5)
	return m
}
