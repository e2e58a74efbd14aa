package atlas

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Blit copies src into dst with its top-left corner at the given point. The
// copy overwrites dst, including alpha.
//
// If bleed is positive, the last column of src is repeated into the bleed
// columns to its right, and the last row, including the repeated columns, is
// repeated into the bleed rows below. The repeated pixels are clipped to dst.
func Blit(dst *image.RGBA, at image.Point, src *Image, bleed int) error {
	if err := src.validate(); err != nil {
		return err
	}
	r := src.Bounds().Add(at)
	if !r.In(dst.Rect) {
		return fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, r, dst.Rect)
	}
	draw.Copy(dst, at, src.RGBA(), src.Bounds(), draw.Src, nil)
	if bleed <= 0 {
		return nil
	}
	xend := min(r.Max.X+bleed, dst.Rect.Max.X)
	yend := min(r.Max.Y+bleed, dst.Rect.Max.Y)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := dst.PixOffset(r.Max.X-1, y)
		last := dst.Pix[off : off+4 : off+4]
		for x := r.Max.X; x < xend; x++ {
			o := dst.PixOffset(x, y)
			copy(dst.Pix[o:o+4], last)
		}
	}
	n := (xend - r.Min.X) * 4
	off := dst.PixOffset(r.Min.X, r.Max.Y-1)
	last := dst.Pix[off : off+n : off+n]
	for y := r.Max.Y; y < yend; y++ {
		o := dst.PixOffset(r.Min.X, y)
		copy(dst.Pix[o:o+n], last)
	}
	return nil
}
