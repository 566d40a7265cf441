// Package imaging decodes texture image bytes into RGBA pixel data.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for file extensions Decode does not know.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Decode decodes image bytes into RGBA pixels. The format is selected by
// the file extension (with or without a leading dot, case-insensitive):
// png, jpg/jpeg, bmp, tif/tiff and tga are supported.
func Decode(data []byte, ext string) (*image.RGBA, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	var (
		img image.Image
		err error
	)
	switch ext {
	case "png":
		img, err = png.Decode(bytes.NewReader(data))
	case "jpg", "jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case "bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
	case "tif", "tiff":
		img, err = tiff.Decode(bytes.NewReader(data))
	case "tga":
		img, err = DecodeTGA(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s image: %w", ext, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image.Image to *image.RGBA.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.At(x, y)
			r16, g16, b16, a16 := c.RGBA()
			// Convert from 16-bit to 8-bit
			rgba.SetRGBA(x, y, color.RGBA{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
				A: uint8(a16 >> 8),
			})
		}
	}
	return rgba
}
