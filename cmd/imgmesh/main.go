// imgmesh converts raster images into textured 3D meshes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/imgmesh/internal/config"
	"github.com/Faultbox/imgmesh/internal/export"
	"github.com/Faultbox/imgmesh/internal/extrude"
	"github.com/Faultbox/imgmesh/internal/logger"
	"github.com/Faultbox/imgmesh/internal/mesh"
	"github.com/Faultbox/imgmesh/internal/raster"
	"github.com/Faultbox/imgmesh/internal/session"
	"github.com/Faultbox/imgmesh/internal/source"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "generate", "gen":
		err = cmdGenerate(args)
	case "info":
		err = cmdInfo(args)
	case "formats":
		cmdFormats()
	case "list", "ls":
		err = cmdList(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Sync()
}

func printUsage() {
	fmt.Println(`imgmesh - turn images into textured 3D meshes

Usage:
  imgmesh <command> [options]

Commands:
  generate [options] <image> <output>   Generate a mesh and export it
  info [options] <image>                Show grid, mesh and height statistics
  formats                               List input and output formats
  list <file.grf> [pattern]             List images inside a GRF archive

Images may be plain files or archive entries: data.grf:data/texture/logo.bmp

Options:
  --config <file>     Config file (default ./imgmesh.yaml)
  --method <name>     depth_map, edge_based, contour_based
  --detail <level>    low, medium, high
  --depth <n>         Extrusion depth
  --flat              Flat instead of smooth normals
  --mirror <axis>     Mirror and combine on export: none, x, y, z
  --material <name>   from_image, gray, blue, red, green
  --no-texture        Do not write the texture PNG
  --max-size <px>     Downscale large inputs
  --save-config       Remember these settings in the user config file
  --debug             Debug logging

Examples:
  imgmesh generate logo.png logo.obj
  imgmesh generate --method edge_based --detail high --mirror z logo.png out/logo.stl
  imgmesh info data.grf:data/texture/logo.bmp
  imgmesh list data.grf "*.bmp"`)
}

// setup parses the shared flags, loads the config and starts logging.
func setup(name string, args []string) (*config.Config, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	config.BindFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			return nil, nil, fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved settings to %s\n", config.UserConfigPath())
	}
	return cfg, fs, nil
}

func cmdGenerate(args []string) error {
	cfg, fs, err := setup("generate", args)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: imgmesh generate [options] <image> <output>")
	}
	input, output := fs.Arg(0), fs.Arg(1)
	if cfg.Export.Format != "" {
		output = export.WithFormat(output, cfg.Export.Format)
	}

	s := session.New(cfg.Options())
	defer s.Close()

	if err := s.LoadImage(input); err != nil {
		return err
	}
	if _, err := s.Generate(); err != nil {
		return err
	}
	if err := s.Export(output); err != nil {
		return err
	}

	c := s.Counts()
	fmt.Printf("Exported: %s (%d vertices, %d triangles)\n", output, c.Vertices, c.Triangles)
	return nil
}

func cmdInfo(args []string) error {
	cfg, fs, err := setup("info", args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: imgmesh info [options] <image>")
	}

	s := session.New(cfg.Options())
	defer s.Close()

	if err := s.LoadImage(fs.Arg(0)); err != nil {
		return err
	}
	m, err := s.Generate()
	if err != nil {
		return err
	}

	img := s.Image()
	sampled := img.Fit(cfg.Extrusion.MaxSize)
	grid := extrude.NewGrid(sampled.Width, sampled.Height, cfg.Extrusion.Detail.Step())
	stats := mesh.ComputeStats(m)
	counts := s.Counts()

	fmt.Printf("Image:     %s\n", fs.Arg(0))
	fmt.Printf("Size:      %dx%d", img.Width, img.Height)
	if sampled != img {
		fmt.Printf(" (sampled at %dx%d)", sampled.Width, sampled.Height)
	}
	fmt.Println()
	fmt.Printf("Method:    %s, detail %s (step %d)\n", cfg.Extrusion.Method, cfg.Extrusion.Detail, grid.Step)
	fmt.Printf("Grid:      %dx%d\n", grid.Cols, grid.Rows)
	fmt.Printf("Mesh:      %d vertices, %d triangles\n", stats.Vertices, stats.Triangles)
	if cfg.Mirror.Axis != mesh.AxisNone {
		fmt.Printf("Exported:  %d vertices, %d triangles (mirrored on %s)\n", counts.Vertices, counts.Triangles, cfg.Mirror.Axis)
	}
	if stats.Vertices == 0 {
		fmt.Println("Grid is empty: the image is smaller than two sampling steps")
		return nil
	}
	size := stats.Bounds.Size()
	fmt.Printf("Bounds:    %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Height:    min %.3f, max %.3f, mean %.3f, stddev %.3f\n",
		stats.ZMin, stats.ZMax, stats.ZMean, stats.ZStdDev)
	return nil
}

func cmdFormats() {
	fmt.Println("Input images:")
	fmt.Printf("  %s\n", strings.Join(raster.Extensions, " "))
	fmt.Println()
	fmt.Println("Output formats:")
	for _, f := range export.SupportedFormats() {
		fmt.Printf("  %-8s %s\n", f, export.Extension(f))
	}
}

func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N files (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: imgmesh list <file.grf> [pattern]")
	}

	pattern := ""
	if fs.NArg() > 1 {
		pattern = fs.Arg(1)
	}

	images, err := source.ListImages(fs.Arg(0), pattern)
	if err != nil {
		return err
	}

	for i, name := range images {
		if *limit > 0 && i >= *limit {
			fmt.Fprintf(os.Stderr, "\n(showing first %d of %d, use -n 0 for all)\n", *limit, len(images))
			return nil
		}
		fmt.Println(name)
	}
	fmt.Fprintf(os.Stderr, "\n(%d images)\n", len(images))
	return nil
}
