package raster

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color TGA
// with 24 or 32 bits per pixel. Other variants are rejected.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := &tgaDecoder{
		img:         image.NewNRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		pixelSize:   bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.decodeRaw()
	} else {
		err = d.decodeRLE()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.NRGBA
	src         []byte
	pos         int
	width       int
	height      int
	pixelSize   int
	topToBottom bool
}

// readPixel consumes one BGR(A) pixel from the source.
func (d *tgaDecoder) readPixel() (color.NRGBA, bool) {
	if d.pos+d.pixelSize > len(d.src) {
		return color.NRGBA{}, false
	}
	p := d.src[d.pos : d.pos+d.pixelSize]
	d.pos += d.pixelSize

	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.pixelSize == 4 {
		c.A = p[3]
	}
	return c, true
}

// put stores the n-th pixel in file order, flipping bottom-up images.
func (d *tgaDecoder) put(n int, c color.NRGBA) {
	x := n % d.width
	y := n / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetNRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() error {
	if len(d.src) < d.width*d.height*d.pixelSize {
		return fmt.Errorf("TGA pixel data truncated")
	}
	for n := range d.width * d.height {
		c, _ := d.readPixel()
		d.put(n, c)
	}
	return nil
}

// decodeRLE decodes run-length packets. A truncated stream leaves the
// remaining pixels transparent rather than failing.
func (d *tgaDecoder) decodeRLE() error {
	total := d.width * d.height
	n := 0
	for n < total && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := d.readPixel()
			if !ok {
				break
			}
			for i := 0; i < count && n < total; i++ {
				d.put(n, c)
				n++
			}
			continue
		}

		for i := 0; i < count && n < total; i++ {
			c, ok := d.readPixel()
			if !ok {
				return nil
			}
			d.put(n, c)
			n++
		}
	}
	return nil
}
