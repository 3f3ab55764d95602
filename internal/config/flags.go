package config

import (
	"flag"
	"fmt"

	"github.com/Faultbox/imgmesh/internal/export"
	"github.com/Faultbox/imgmesh/internal/extrude"
	"github.com/Faultbox/imgmesh/internal/mesh"
)

var (
	flagConfig    string
	flagDebug     bool
	flagMethod    string
	flagDetail    string
	flagDepth     float64
	flagFlat      bool
	flagMirror    string
	flagMaterial  string
	flagNoTexture bool
	flagMaxSize   int
	flagSave      bool

	// bound is the set the flags were registered on, used to tell an
	// explicit --depth 0 from an unset one.
	bound *flag.FlagSet
)

// BindFlags registers the config override flags on fs. Call it before
// fs.Parse and Load.
func BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to config file")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.StringVar(&flagMethod, "method", "", "Extrusion method: depth_map, edge_based, contour_based")
	fs.StringVar(&flagDetail, "detail", "", "Detail level: low, medium, high")
	fs.Float64Var(&flagDepth, "depth", 0, "Extrusion depth")
	fs.BoolVar(&flagFlat, "flat", false, "Use flat instead of smooth normals")
	fs.StringVar(&flagMirror, "mirror", "", "Mirror on export: none, x, y, z")
	fs.StringVar(&flagMaterial, "material", "", "Material preset: from_image, gray, blue, red, green")
	fs.BoolVar(&flagNoTexture, "no-texture", false, "Do not write a texture file")
	fs.IntVar(&flagMaxSize, "max-size", 0, "Downscale the input so neither side exceeds N pixels")
	fs.BoolVar(&flagSave, "save-config", false, "Save the effective settings to the user config file")
	bound = fs
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return flagSave
}

func flagSet(name string) bool {
	if bound == nil {
		return false
	}
	set := false
	bound.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagMethod != "" {
		m, err := extrude.ParseMethod(flagMethod)
		if err != nil {
			return fmt.Errorf("--method: %w", err)
		}
		cfg.Extrusion.Method = m
	}
	if flagDetail != "" {
		d, err := extrude.ParseDetail(flagDetail)
		if err != nil {
			return fmt.Errorf("--detail: %w", err)
		}
		cfg.Extrusion.Detail = d
	}
	if flagSet("depth") {
		cfg.Extrusion.Depth = flagDepth
	}
	if flagFlat {
		cfg.Extrusion.SmoothNormals = false
	}
	if flagMirror != "" {
		axis, err := mesh.ParseAxis(flagMirror)
		if err != nil {
			return fmt.Errorf("--mirror: %w", err)
		}
		cfg.Mirror.Axis = axis
	}
	if flagMaterial != "" {
		p, err := export.ParsePreset(flagMaterial)
		if err != nil {
			return fmt.Errorf("--material: %w", err)
		}
		cfg.Export.Material = p
	}
	if flagNoTexture {
		cfg.Export.Texture = false
	}
	if flagMaxSize > 0 {
		cfg.Extrusion.MaxSize = flagMaxSize
	}
	return nil
}
