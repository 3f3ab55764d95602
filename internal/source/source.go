// Package source resolves image references to rasters. A reference is either
// a plain file path or "archive.grf:path/inside/archive".
package source

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/imgmesh/internal/logger"
	"github.com/Faultbox/imgmesh/internal/raster"
	"github.com/Faultbox/imgmesh/pkg/grf"
)

// archiveSep separates the archive path from the entry path.
const archiveSep = ".grf:"

// Ref is a parsed image reference.
type Ref struct {
	Path  string // file on disk
	Entry string // path inside the archive, empty for plain files
}

// InArchive reports whether the reference points into a GRF archive.
func (r Ref) InArchive() bool {
	return r.Entry != ""
}

func (r Ref) String() string {
	if r.InArchive() {
		return r.Path + ":" + r.Entry
	}
	return r.Path
}

// Parse splits a reference. Paths that exist on disk are always treated as
// plain files, so names containing ".grf:" still open directly.
func Parse(ref string) Ref {
	idx := strings.Index(strings.ToLower(ref), archiveSep)
	if idx < 0 {
		return Ref{Path: ref}
	}
	if _, err := os.Stat(ref); err == nil {
		return Ref{Path: ref}
	}
	split := idx + len(archiveSep) - 1
	return Ref{Path: ref[:split], Entry: ref[split+1:]}
}

// Load reads and decodes the referenced image.
func Load(ref string) (*raster.Raster, error) {
	r := Parse(ref)
	if !r.InArchive() {
		return raster.DecodeFile(r.Path)
	}

	archive, err := grf.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", r.Path, err)
	}
	defer archive.Close()

	data, err := archive.Read(r.Entry)
	if err != nil {
		return nil, err
	}

	img, err := raster.Decode(r.Entry, data)
	if err != nil {
		return nil, err
	}

	logger.Named("source").Debug("image loaded from archive",
		zap.String("archive", r.Path),
		zap.String("entry", r.Entry),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
	)
	return img, nil
}

// ListImages returns the archive entries that look like decodable images,
// optionally filtered by a glob or substring pattern.
func ListImages(archivePath, pattern string) ([]string, error) {
	archive, err := grf.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	names := archive.List()
	if pattern != "" {
		names = archive.Match(pattern)
	}

	var images []string
	for _, name := range names {
		if raster.IsImageName(name) {
			images = append(images, name)
		}
	}
	return images, nil
}
