// Package config handles imgmesh configuration loading and management.
package config

import (
	"fmt"
	"math"
	"slices"

	"github.com/Faultbox/imgmesh/internal/export"
	"github.com/Faultbox/imgmesh/internal/extrude"
	"github.com/Faultbox/imgmesh/internal/mesh"
	"github.com/Faultbox/imgmesh/internal/session"
)

// Config holds all settings.
type Config struct {
	Extrusion ExtrusionConfig `yaml:"extrusion"`
	Mirror    MirrorConfig    `yaml:"mirror"`
	Export    ExportConfig    `yaml:"export"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ExtrusionConfig holds mesh generation settings.
type ExtrusionConfig struct {
	Method        extrude.Method      `yaml:"method"`
	Detail        extrude.DetailLevel `yaml:"detail"`
	Depth         float64             `yaml:"depth"`
	SmoothNormals bool                `yaml:"smooth_normals"`
	MaxSize       int                 `yaml:"max_size"` // 0 = no downscale
}

// MirrorConfig holds the mirror-on-export setting.
type MirrorConfig struct {
	Axis mesh.Axis `yaml:"axis"`
}

// ExportConfig holds output settings.
type ExportConfig struct {
	Format   string        `yaml:"format"` // "" = from the output extension
	Material export.Preset `yaml:"material"`
	Specular float64       `yaml:"specular"`
	Texture  bool          `yaml:"texture"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	ext := extrude.DefaultConfig()
	return &Config{
		Extrusion: ExtrusionConfig{
			Method:        ext.Method,
			Detail:        ext.Detail,
			Depth:         ext.Depth,
			SmoothNormals: ext.SmoothNormals,
		},
		Mirror: MirrorConfig{
			Axis: mesh.AxisNone,
		},
		Export: ExportConfig{
			Material: export.PresetImage,
			Specular: 0.5,
			Texture:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values the YAML decoder cannot.
func (c *Config) Validate() error {
	if math.IsNaN(c.Extrusion.Depth) || math.IsInf(c.Extrusion.Depth, 0) {
		return fmt.Errorf("extrusion.depth must be finite, got %v", c.Extrusion.Depth)
	}
	if c.Extrusion.MaxSize < 0 {
		return fmt.Errorf("extrusion.max_size must be >= 0, got %d", c.Extrusion.MaxSize)
	}
	if c.Export.Specular < 0 || c.Export.Specular > 1 {
		return fmt.Errorf("export.specular must be in [0, 1], got %v", c.Export.Specular)
	}
	if _, err := export.ParsePreset(string(c.Export.Material)); err != nil {
		return fmt.Errorf("export.material: %w", err)
	}
	if c.Export.Format != "" && !slices.Contains(export.SupportedFormats(), c.Export.Format) {
		return fmt.Errorf("export.format %q: %w", c.Export.Format, export.ErrUnsupportedFormat)
	}
	return nil
}

// Options converts the config into session options.
func (c *Config) Options() session.Options {
	preset, _ := export.ParsePreset(string(c.Export.Material))
	return session.Options{
		Extrusion: extrude.Config{
			Method:        c.Extrusion.Method,
			Detail:        c.Extrusion.Detail,
			Depth:         c.Extrusion.Depth,
			SmoothNormals: c.Extrusion.SmoothNormals,
		},
		MaxSize:  c.Extrusion.MaxSize,
		Mirror:   c.Mirror.Axis,
		Preset:   preset,
		Specular: c.Export.Specular,
		Texture:  c.Export.Texture,
	}
}
