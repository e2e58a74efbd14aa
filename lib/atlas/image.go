package atlas

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// An Image is an input image. Pixels are 8-bit RGBA in row-major order, with
// no padding between rows. Images passed to Build are never modified.
type Image struct {
	Name   string
	Width  int
	Height int
	Pix    []uint8
}

// NewImage returns a transparent image with the given size.
func NewImage(name string, width, height int) *Image {
	var pix []uint8
	if width > 0 && height > 0 {
		pix = make([]uint8, width*height*4)
	}
	return &Image{
		Name:   name,
		Width:  width,
		Height: height,
		Pix:    pix,
	}
}

// FromImage converts an image to an atlas input image. The pixels are copied.
func FromImage(name string, im image.Image) *Image {
	b := im.Bounds()
	out := NewImage(name, b.Dx(), b.Dy())
	if out.Pix == nil {
		return out
	}
	draw.Draw(out.RGBA(), out.RGBA().Rect, im, b.Min, draw.Src)
	return out
}

// RGBA returns an image which shares pixels with this image.
func (im *Image) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    im.Pix,
		Stride: im.Width * 4,
		Rect:   image.Rect(0, 0, im.Width, im.Height),
	}
}

// Bounds returns the rectangle covering the image, with origin at zero.
func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.Width, im.Height)
}

func (im *Image) validate() error {
	if im.Width <= 0 || im.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidImage, im.Width, im.Height)
	}
	if n := im.Width * im.Height * 4; len(im.Pix) != n {
		return fmt.Errorf("%w: %d bytes of pixel data, expected %d", ErrInvalidImage, len(im.Pix), n)
	}
	return nil
}
