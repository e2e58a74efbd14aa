package rectpack

import "math"

// A MaxRects is a structure that tracks free space in a rectangle.
type MaxRects struct {
	free []Rect
}

// Reset resets the structure to contain free space with the given bounds.
func (p *MaxRects) Reset(bounds Point) {
	p.free = append(p.free[:0], Rect{Max: bounds})
}

// Free returns the maximal free rectangles. The slice is owned by the
// structure and is only valid until the next call to PlaceRect or Reset.
func (p *MaxRects) Free() []Rect {
	return p.free
}

// PlaceRect places a rectangle in the packing, removing the rectangle from free
// space.
func (p *MaxRects) PlaceRect(r Rect) {
	free := p.free
	// Rects from 0..pos have not been affected by the split.
	// Rects from pos..unsplit have not been split.
	// Rects from unsplit..len(free) are the result of splitting.
	var pos int
	unsplit := len(free)
	for pos < unsplit {
		f := free[pos]
		if !r.Intersect(f) {
			// Rect is unaffected.
			pos++
			continue
		}
		// Remove this rectangle and add the splits.
		unsplit--
		free[pos] = free[unsplit]
		free[unsplit] = free[len(free)-1]
		free = free[:len(free)-1]
		var splits [4]Rect
		for i := range splits {
			splits[i] = f
		}
		var nsplit int
		if r.Max.X < f.Max.X {
			splits[nsplit].Min.X = r.Max.X
			nsplit++
		}
		if r.Max.Y < f.Max.Y {
			splits[nsplit].Min.Y = r.Max.Y
			nsplit++
		}
		if r.Min.X > f.Min.X {
			splits[nsplit].Max.X = r.Min.X
			nsplit++
		}
		if r.Min.Y > f.Min.Y {
			splits[nsplit].Max.Y = r.Min.Y
			nsplit++
		}
		start := len(free)
	next_split:
		for _, split := range splits[:nsplit] {
			j := start
			for j > unsplit {
				j--
				check := free[j]
				if check.Contains(split) {
					continue next_split
				}
				if split.Contains(check) {
					free[j] = split
					continue next_split
				}
			}
			for j > 0 {
				j--
				check := free[j]
				if check.Contains(split) {
					continue next_split
				}
			}
			free = append(free, split)
		}
	}
	p.free = free
}

// MaxRectsBL (MaxRects, bottom-left) packer packs rectangles into a rectangle,
// minimizing the Y coordinate of each rect.
//
// Padding is applied by reserving extra space to the right of and below each
// rectangle. The free space is grown by the same amount so rectangles may
// still touch the right and bottom edges of the bounds.
type MaxRectsBL struct {
	Padding int32

	free MaxRects
}

// Name implements the Packer interface.
func (*MaxRectsBL) Name() string {
	return "MaxRects.BL"
}

// Reset implements the Packer interface.
func (p *MaxRectsBL) Reset(bounds Point) {
	p.free.Reset(bounds.Add(Point{X: p.Padding, Y: p.Padding}))
}

// AddRect implements the Packer interface.
func (p *MaxRectsBL) AddRect(size Point) (pos Point, ok bool) {
	if size.X <= 0 || size.Y <= 0 {
		return Point{}, false
	}
	size = size.Add(Point{X: p.Padding, Y: p.Padding})
	pos = Point{X: 0, Y: math.MaxInt32}
	for _, f := range p.free.free {
		// If it fits AND it is either a better Y coordinate, or it is tied for
		// lowest Y coordinate and has a lower X coordinate.
		if size.X <= f.Max.X-f.Min.X &&
			size.Y <= f.Max.Y-f.Min.Y &&
			(f.Min.Y < pos.Y || f.Min.Y == pos.Y && f.Min.X < pos.X) {
			pos = f.Min
			ok = true
		}
	}
	if !ok {
		return Point{}, false
	}
	p.free.PlaceRect(Rect{Min: pos, Max: pos.Add(size)})
	return pos, true
}
