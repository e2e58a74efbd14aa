// Package atlas packs images into texture atlas pages.
//
// Images are sorted by area and packed, smallest first, into pages of a fixed
// maximum size. When an image does not fit in the current page, the page is
// finished and a new page is started. Each finished page is cropped to the
// images it contains. Every image gets a sprite, which records the page it
// was placed in, its pixel rectangle in the page, and the same rectangle in
// normalized texture coordinates.
package atlas

import (
	"fmt"
	"image"
	"math"
	"sync"

	"golang.org/x/image/draw"
)

// A UVRect is a rectangle in normalized texture coordinates, where 0 is the
// left or top edge of the page and 1 is the right or bottom edge.
type UVRect struct {
	X, Y, W, H float64
}

func uvRect(r image.Rectangle, width, height int) UVRect {
	w := float64(width)
	h := float64(height)
	return UVRect{
		X: float64(r.Min.X) / w,
		Y: float64(r.Min.Y) / h,
		W: float64(r.Dx()) / w,
		H: float64(r.Dy()) / h,
	}
}

// Pixels converts the rectangle to pixel coordinates in a page with the given
// size.
func (r UVRect) Pixels(width, height int) image.Rectangle {
	w := float64(width)
	h := float64(height)
	x0 := int(math.Round(r.X * w))
	y0 := int(math.Round(r.Y * h))
	return image.Rect(x0, y0, x0+int(math.Round(r.W*w)), y0+int(math.Round(r.H*h)))
}

// A Sprite is the placement of one input image.
type Sprite struct {
	// Name is the image name, with a suffix added if another sprite already
	// had the same name. Sprite names in an atlas are unique.
	Name string
	// Index is the position of the image in the input.
	Index int
	// Page is the index of the page containing the sprite.
	Page int
	// Source is the sprite's pixel rectangle in the page.
	Source image.Rectangle
	// UV is Source in normalized texture coordinates.
	UV UVRect
}

// A Page is one composited atlas image.
type Page struct {
	index    int
	bounds   image.Rectangle
	sprites  []int
	readable bool

	mu  sync.Mutex
	img *image.RGBA
}

// Index returns the position of the page in the atlas.
func (p *Page) Index() int { return p.index }

// Bounds returns the area of the page's maximum bounds which is covered by
// sprites. The page image has the same size as the bounds, but starts at the
// origin.
func (p *Page) Bounds() image.Rectangle { return p.bounds }

// Width returns the width of the page image.
func (p *Page) Width() int { return p.bounds.Dx() }

// Height returns the height of the page image.
func (p *Page) Height() int { return p.bounds.Dy() }

// Sprites returns the indexes of the sprites in this page, in packing order.
func (p *Page) Sprites() []int {
	return append([]int(nil), p.sprites...)
}

// Image returns the page image. The image must not be modified. Returns
// ErrReleased if the page was uploaded and was not kept readable.
func (p *Page) Image() (*image.RGBA, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.img == nil {
		return nil, fmt.Errorf("page %d: %w", p.index, ErrReleased)
	}
	return p.img, nil
}

// Upload passes the page image to fn. If the atlas was built without
// KeepReadable, the page buffer is released once fn returns successfully,
// and later calls return ErrReleased.
func (p *Page) Upload(fn func(*image.RGBA) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.img == nil {
		return fmt.Errorf("page %d: %w", p.index, ErrReleased)
	}
	if err := fn(p.img); err != nil {
		return err
	}
	if !p.readable {
		p.img = nil
	}
	return nil
}

// Readable returns true if the page buffer is kept after upload.
func (p *Page) Readable() bool { return p.readable }

// An Atlas is a set of pages and the sprites placed in them. An atlas is not
// modified after it is built.
type Atlas struct {
	pages     []*Page
	sprites   []Sprite
	byName    map[string]int
	maxWidth  int
	maxHeight int
	padding   int
}

// MaxSize returns the maximum page size the atlas was built with.
func (a *Atlas) MaxSize() image.Point {
	return image.Point{X: a.maxWidth, Y: a.maxHeight}
}

// Padding returns the padding between sprites.
func (a *Atlas) Padding() int { return a.padding }

// NumPages returns the number of pages.
func (a *Atlas) NumPages() int { return len(a.pages) }

// Page returns a page, or nil if the index is out of range.
func (a *Atlas) Page(i int) *Page {
	if i < 0 || len(a.pages) <= i {
		return nil
	}
	return a.pages[i]
}

// Len returns the number of sprites.
func (a *Atlas) Len() int { return len(a.sprites) }

// Sprite returns a sprite. Sprites are in input order: sprite i is the
// placement of input image i. Returns false if the index is out of range.
func (a *Atlas) Sprite(i int) (Sprite, bool) {
	if i < 0 || len(a.sprites) <= i {
		return Sprite{}, false
	}
	return a.sprites[i], true
}

// Sprites returns all sprites, in input order.
func (a *Atlas) Sprites() []Sprite {
	return append([]Sprite(nil), a.sprites...)
}

// Lookup returns the sprite with the given name.
func (a *Atlas) Lookup(name string) (Sprite, bool) {
	i, ok := a.byName[name]
	if !ok {
		return Sprite{}, false
	}
	return a.sprites[i], true
}

// SubImage returns a copy of the pixels of sprite i.
func (a *Atlas) SubImage(i int) (*image.RGBA, error) {
	s, ok := a.Sprite(i)
	if !ok {
		return nil, fmt.Errorf("no sprite with index %d", i)
	}
	pg, err := a.pages[s.Page].Image()
	if err != nil {
		return nil, err
	}
	out := image.NewRGBA(image.Rectangle{Max: s.Source.Size()})
	draw.Copy(out, image.Point{}, pg, s.Source, draw.Src, nil)
	return out, nil
}
