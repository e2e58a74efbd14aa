// Package rectpack packs rectangles into larger rectangles.
package rectpack

import (
	"fmt"
	"sort"
	"strings"
)

// A Point is a 2D point.
type Point struct {
	X int32
	Y int32
}

// Add returns p+o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p-o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// A Rect is a rectangle. Min is inclusive and Max is exclusive.
type Rect struct {
	Min Point
	Max Point
}

// XYWH returns a rectangle with the given position and size.
func XYWH(x, y, w, h int32) Rect {
	return Rect{
		Min: Point{X: x, Y: y},
		Max: Point{X: x + w, Y: y + h},
	}
}

// Size returns the width and height of the rectangle.
func (r Rect) Size() Point {
	return r.Max.Sub(r.Min)
}

// Dx returns the width of the rectangle.
func (r Rect) Dx() int32 { return r.Max.X - r.Min.X }

// Dy returns the height of the rectangle.
func (r Rect) Dy() int32 { return r.Max.Y - r.Min.Y }

// Empty returns true if the rectangle contains no points.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Intersect returns true if the rects intersect.
func (r Rect) Intersect(o Rect) bool {
	return r.Max.X > o.Min.X && r.Min.X < o.Max.X && r.Max.Y > o.Min.Y && r.Min.Y < o.Max.Y
}

// Contains returns true if this rect contains the given rect.
func (r Rect) Contains(o Rect) bool {
	return r.Min.X <= o.Min.X && r.Max.X >= o.Max.X && r.Min.Y <= o.Min.Y && r.Max.Y >= o.Max.Y
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(o Rect) Rect {
	if r.Min.X > o.Min.X {
		r.Min.X = o.Min.X
	}
	if r.Min.Y > o.Min.Y {
		r.Min.Y = o.Min.Y
	}
	if r.Max.X < o.Max.X {
		r.Max.X = o.Max.X
	}
	if r.Max.Y < o.Max.Y {
		r.Max.Y = o.Max.Y
	}
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// A Packer is an algorithm which packs rectangles into larger bounds.
type Packer interface {
	// Name returns the name of the algorithm.
	Name() string

	// Reset resets the packer to contain free space with the given bounds.
	Reset(bounds Point)

	// AddRect adds a rectangle to the packing and returns the minimum
	// coordinate of the rectangle. Returns false if no space can be found.
	AddRect(size Point) (pos Point, ok bool)
}

// An Item is a rectangle waiting to be packed. Index identifies the
// rectangle to the caller.
type Item struct {
	Index int
	Size  Point
}

// An Occupant is a rectangle which has been placed in a bin.
type Occupant struct {
	// Index is the caller's identifier for the rectangle.
	Index int
	// Order is the position of the rectangle in insertion order.
	Order int
	// Rect is the placed rectangle, with the rectangle's original size.
	Rect Rect
}

// A Bin is the result of filling one set of bounds.
type Bin struct {
	// Size is the size the packer was reset to.
	Size Point
	// Placed contains the placed rectangles in insertion order.
	Placed []Occupant
}

// Bounds returns the tight bounds of the placed rectangles. Returns false if
// the bin is empty.
func (b *Bin) Bounds() (Rect, bool) {
	return occupantBounds(b.Placed)
}

func occupantBounds(occ []Occupant) (r Rect, ok bool) {
	for i, o := range occ {
		if i == 0 {
			r = o.Rect
		} else {
			r = r.Union(o.Rect)
		}
	}
	return r, len(occ) != 0
}

// FillBin resets the packer to the given bounds and adds rectangles from the
// front of the queue until the queue is empty or a rectangle does not fit. A
// rectangle which does not fit ends the bin; later rectangles are not tried,
// so the queue order is preserved across bins. Returns the filled bin and the
// rectangles which were not packed.
func FillBin(p Packer, bounds Point, queue []Item) (bin Bin, rest []Item) {
	bin.Size = bounds
	p.Reset(bounds)
	if t, ok := p.(*Tree); ok {
		return fillTree(t, bin, queue)
	}
	var n int
	for n < len(queue) {
		it := queue[n]
		pos, ok := p.AddRect(it.Size)
		if !ok {
			break
		}
		bin.Placed = append(bin.Placed, Occupant{
			Index: it.Index,
			Order: n,
			Rect:  Rect{Min: pos, Max: pos.Add(it.Size)},
		})
		n++
	}
	return bin, queue[n:]
}

// fillTree fills a partition tree, then collects the placements from the
// tree itself. Tree order is not insertion order, so the placements are
// sorted afterwards.
func fillTree(t *Tree, bin Bin, queue []Item) (Bin, []Item) {
	var n int
	for n < len(queue) {
		it := queue[n]
		if _, ok := t.Place(it.Size, it.Index); !ok {
			break
		}
		n++
	}
	for o := range t.Occupants(RootNode) {
		bin.Placed = append(bin.Placed, o)
	}
	sort.Slice(bin.Placed, func(i, j int) bool {
		return bin.Placed[i].Order < bin.Placed[j].Order
	})
	return bin, queue[n:]
}

// AllAlgorithms returns implementations of all supported algorithms, using
// the given padding between rectangles.
func AllAlgorithms(padding int32) []Packer {
	return []Packer{
		&Tree{Padding: padding},
		&MaxRectsBL{Padding: padding},
	}
}

// Lookup returns the algorithm with the given name. Names are matched without
// regard to case, and the short names "guillotine" and "maxrects" are
// accepted.
func Lookup(name string, padding int32) (Packer, error) {
	switch strings.ToLower(name) {
	case "", "guillotine", "tree":
		return &Tree{Padding: padding}, nil
	case "maxrects", "maxrects.bl":
		return &MaxRectsBL{Padding: padding}, nil
	}
	return nil, fmt.Errorf("unknown packing algorithm: %q", name)
}

// New returns the default packer algorithm.
func New(padding int32) Packer {
	return &Tree{Padding: padding}
}
