// Package grf reads and writes GRF archives (version 0x200), the zlib packed
// container format used to ship game textures.
package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Faultbox/imgmesh/pkg/encoding"
)

const (
	grfMagic   = "Master of Magic"
	headerSize = 46
	version200 = 0x200

	// entryInfoSize is the fixed tail after each NUL terminated name:
	// compressed, aligned and uncompressed sizes, flags, offset.
	entryInfoSize = 17
)

// Entry flags.
const (
	FlagFile      = 0x01
	FlagEncrypted = 0x02
)

var (
	// ErrInvalidMagic is returned when the file is not a GRF archive.
	ErrInvalidMagic = errors.New("invalid GRF magic")
	// ErrNotFound is returned by Read for paths missing from the archive.
	ErrNotFound = errors.New("file not found in archive")
	// ErrEncrypted is returned by Read for encrypted entries.
	ErrEncrypted = errors.New("encrypted entries are not supported")
)

// Archive represents an opened GRF archive.
type Archive struct {
	file     *os.File
	header   Header
	fileList map[string]*Entry
}

// Header contains GRF file header information.
type Header struct {
	Magic         [15]byte
	EncryptionKey [15]byte
	TableOffset   uint32
	Seed          uint32
	FileCount     uint32
	Version       uint32
}

// Entry represents a file entry in the archive. Name is UTF-8 and normalized.
type Entry struct {
	Name             string
	CompressedSize   uint32
	AlignedSize      uint32
	UncompressedSize uint32
	Flags            uint8
	Offset           uint32
}

// Open opens a GRF archive for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	archive := &Archive{
		file:     file,
		fileList: make(map[string]*Entry),
	}

	if err := archive.readHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if err := archive.readFileTable(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading file table: %w", err)
	}

	return archive, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

// Version returns the archive format version.
func (a *Archive) Version() uint32 {
	return a.header.Version
}

func (a *Archive) readHeader() error {
	if _, err := a.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	if err := binary.Read(a.file, binary.LittleEndian, &a.header); err != nil {
		return err
	}

	if string(a.header.Magic[:]) != grfMagic {
		return ErrInvalidMagic
	}

	if a.header.Version != version200 {
		return fmt.Errorf("unsupported GRF version: 0x%x", a.header.Version)
	}

	return nil
}

func (a *Archive) readFileTable() error {
	tableOffset := int64(a.header.TableOffset) + headerSize
	if _, err := a.file.Seek(tableOffset, io.SeekStart); err != nil {
		return err
	}

	var sizes struct {
		Compressed   uint32
		Uncompressed uint32
	}
	if err := binary.Read(a.file, binary.LittleEndian, &sizes); err != nil {
		return fmt.Errorf("table sizes: %w", err)
	}

	compressedData := make([]byte, sizes.Compressed)
	if _, err := io.ReadFull(a.file, compressedData); err != nil {
		return fmt.Errorf("table data: %w", err)
	}

	tableData, err := inflate(compressedData, sizes.Uncompressed)
	if err != nil {
		return fmt.Errorf("inflating table: %w", err)
	}

	if a.header.FileCount < a.header.Seed+7 {
		return fmt.Errorf("invalid file count %d", a.header.FileCount)
	}
	fileCount := a.header.FileCount - a.header.Seed - 7
	offset := 0

	for range fileCount {
		nameEnd := bytes.IndexByte(tableData[offset:], 0)
		if nameEnd < 0 {
			return fmt.Errorf("unterminated name at table offset %d", offset)
		}
		name := encoding.EUCKRToUTF8(tableData[offset : offset+nameEnd])
		offset += nameEnd + 1

		if offset+entryInfoSize > len(tableData) {
			return fmt.Errorf("truncated entry %q", name)
		}

		entry := &Entry{
			Name:             encoding.NormalizePath(name),
			CompressedSize:   binary.LittleEndian.Uint32(tableData[offset:]),
			AlignedSize:      binary.LittleEndian.Uint32(tableData[offset+4:]),
			UncompressedSize: binary.LittleEndian.Uint32(tableData[offset+8:]),
			Flags:            tableData[offset+12],
			Offset:           binary.LittleEndian.Uint32(tableData[offset+13:]),
		}
		offset += entryInfoSize

		if entry.Flags&FlagFile != 0 {
			a.fileList[entry.Name] = entry
		}
	}

	return nil
}

// List returns all file paths in the archive, sorted.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.fileList))
	for path := range a.fileList {
		result = append(result, path)
	}
	sort.Strings(result)
	return result
}

// Match returns the sorted paths whose base name matches the glob pattern or
// whose full path contains it. Matching is case-insensitive.
func (a *Archive) Match(pattern string) []string {
	pattern = strings.ToLower(pattern)
	var result []string
	for _, f := range a.List() {
		matched, _ := filepath.Match(pattern, filepath.Base(f))
		if matched || strings.Contains(f, pattern) {
			result = append(result, f)
		}
	}
	return result
}

// Contains checks if a file exists.
func (a *Archive) Contains(path string) bool {
	_, ok := a.fileList[encoding.NormalizePath(path)]
	return ok
}

// Stat returns the entry for path.
func (a *Archive) Stat(path string) (*Entry, bool) {
	entry, ok := a.fileList[encoding.NormalizePath(path)]
	return entry, ok
}

// Read reads a file from the archive.
func (a *Archive) Read(path string) ([]byte, error) {
	entry, ok := a.Stat(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	if entry.Flags&FlagEncrypted != 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEncrypted)
	}

	if _, err := a.file.Seek(int64(entry.Offset)+headerSize, io.SeekStart); err != nil {
		return nil, err
	}

	compressedData := make([]byte, entry.AlignedSize)
	if _, err := io.ReadFull(a.file, compressedData); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if entry.CompressedSize == entry.UncompressedSize {
		return compressedData[:entry.UncompressedSize], nil
	}

	data, err := inflate(compressedData[:entry.CompressedSize], entry.UncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("inflating %s: %w", path, err)
	}
	return data, nil
}

func inflate(data []byte, size uint32) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	result := make([]byte, size)
	if _, err := io.ReadFull(reader, result); err != nil {
		return nil, err
	}
	return result, nil
}
