//go:build ignore

// This program generates images.grf for the source package tests.
// Run with: go run generate.go
package main

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
)

const grfMagic = "Master of Magic"

// testPNG returns a transparent w×h PNG whose top-left pixel is (10,20,30).
func testPNG(w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func compress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

func main() {
	// Sorted by name; offsets are relative to the end of the header.
	files := []struct {
		name    string
		content []byte
	}{
		{"data/sprite/icon.png", testPNG(2, 2)},
		{"data/texture/logo.png", testPNG(6, 4)},
		{"data/texture/note.txt", []byte("hello")},
	}

	var body, table bytes.Buffer
	for _, file := range files {
		compressed := compress(file.content)
		aligned := len(compressed)
		if aligned%8 != 0 {
			aligned += 8 - aligned%8
		}

		offset := uint32(body.Len())
		body.Write(compressed)
		body.Write(make([]byte, aligned-len(compressed)))

		table.WriteString(strings.ReplaceAll(file.name, "/", "\\"))
		table.WriteByte(0)
		binary.Write(&table, binary.LittleEndian, uint32(len(compressed)))
		binary.Write(&table, binary.LittleEndian, uint32(aligned))
		binary.Write(&table, binary.LittleEndian, uint32(len(file.content)))
		table.WriteByte(0x01) // FILE flag
		binary.Write(&table, binary.LittleEndian, offset)
	}
	compressedTable := compress(table.Bytes())

	header := make([]byte, 46)
	copy(header[0:15], grfMagic)
	binary.LittleEndian.PutUint32(header[30:], uint32(body.Len()))   // TableOffset
	binary.LittleEndian.PutUint32(header[34:], 0)                    // Seed
	binary.LittleEndian.PutUint32(header[38:], uint32(len(files))+7) // FileCount
	binary.LittleEndian.PutUint32(header[42:], 0x200)                // Version

	var out bytes.Buffer
	out.Write(header)
	out.Write(body.Bytes())
	binary.Write(&out, binary.LittleEndian, uint32(len(compressedTable)))
	binary.Write(&out, binary.LittleEndian, uint32(table.Len()))
	out.Write(compressedTable)

	if err := os.WriteFile("images.grf", out.Bytes(), 0644); err != nil {
		panic(err)
	}
	println("Generated images.grf with", len(files), "files")
}
