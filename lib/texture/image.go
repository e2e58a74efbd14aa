// Package texture reads and writes the image files used as atlas inputs and
// outputs.
package texture

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Extensions lists the file extensions of the supported image formats.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// IsImageFile returns true if the file has the extension of a supported image
// format.
func IsImageFile(filename string) bool {
	ext := filepath.Ext(filename)
	for _, e := range Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// ReadImage reads an image file.
func ReadImage(filename string) (image.Image, error) {
	if !IsImageFile(filename) {
		return nil, fmt.Errorf("file does not have an image extension: %q", filename)
	}
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	im, _, err := image.Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", filename, err)
	}
	return im, nil
}

// WritePNG writes an image to a PNG file.
func WritePNG(filename string, im image.Image) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err := png.Encode(fp, im); err != nil {
		return fmt.Errorf("could not encode %q: %w", filename, err)
	}
	return fp.Close()
}

// ToRGBA converts an image to RGBA with origin at zero. The result shares
// pixels with the input if no conversion is needed.
func ToRGBA(im image.Image) *image.RGBA {
	if ri, ok := im.(*image.RGBA); ok && ri.Rect.Min == (image.Point{}) {
		return ri
	}
	b := im.Bounds()
	ri := image.NewRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(ri, ri.Rect, im, b.Min, draw.Src)
	return ri
}

// IsEmpty returns true if the image contains no pixels with non-zero alpha.
func IsEmpty(im *image.RGBA) bool {
	var alpha byte
	ysz := im.Rect.Dy()
	xsz := im.Rect.Dx()
	for y := 0; y < ysz; y++ {
		off := y * im.Stride
		row := im.Pix[off : off+xsz*4 : off+xsz*4]
		for x := 0; x < xsz; x++ {
			alpha |= row[x*4+3]
		}
	}
	return alpha == 0
}
