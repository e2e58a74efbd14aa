package rectpack

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// An Order is a rectangle sort order.
type Order uint32

const (
	// Unsorted does not sort rectangles.
	Unsorted Order = iota
	// WidthDesc sorts widest rectangle first.
	WidthDesc
	// WidthAsc sorts widest rectangle last.
	WidthAsc
	// HeightDesc sorts tallest rectangle first.
	HeightDesc
	// HeightAsc sorts tallest rectangle last.
	HeightAsc
	// AreaDesc sorts largest area rectangle first.
	AreaDesc
	// AreaAsc sorts largest area rectangle last.
	AreaAsc
	// PerimeterDesc sorts largest perimeter first.
	PerimeterDesc
	// PerimeterAsc sorts largest perimeter last.
	PerimeterAsc
	// DifferenceDesc sorts largest difference between width and height first.
	DifferenceDesc
	// DifferenceAsc sorts largest difference between width and height last.
	DifferenceAsc
	// RatioDesc sorts largest aspect ratio first.
	RatioDesc
	// RatioAsc sorts largest aspect ratio last.
	RatioAsc
	// Lowest and highest sort order.
	minOrder = WidthDesc
	maxOrder = RatioAsc
)

var names = [...]string{
	Unsorted:       "Unsorted",
	WidthDesc:      "WidthDesc",
	WidthAsc:       "WidthAsc",
	HeightDesc:     "HeightDesc",
	HeightAsc:      "HeightAsc",
	AreaDesc:       "AreaDesc",
	AreaAsc:        "AreaAsc",
	PerimeterDesc:  "PerimeterDesc",
	PerimeterAsc:   "PerimeterAsc",
	DifferenceDesc: "DifferenceDesc",
	DifferenceAsc:  "DifferenceAsc",
	RatioDesc:      "RatioDesc",
	RatioAsc:       "RatioAsc",
}

// String implements the Stringer interface.
func (o Order) String() (s string) {
	i := uint32(o)
	if i < uint32(len(names)) {
		s = names[i]
	}
	if s == "" {
		s = strconv.FormatUint(uint64(i), 10)
	}
	return
}

// Set sets the order to a string value.
func (o *Order) Set(s string) error {
	for i, n := range names {
		if strings.EqualFold(s, n) {
			*o = Order(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sort order: %q", s)
}

// Type returns the flag type name.
func (*Order) Type() string {
	return "order"
}

// Orders returns every sort order, including Unsorted.
func Orders() []Order {
	r := []Order{Unsorted}
	for ord := minOrder; ord <= maxOrder; ord++ {
		r = append(r, ord)
	}
	return r
}

func cmp(va, vb int64, asc, ord bool) bool {
	switch {
	case va < vb:
		return asc
	case va > vb:
		return !asc
	default:
		return ord
	}
}

func ordWidth(a, b Point, asc, ord bool) bool {
	switch {
	case a.X < b.X:
		return asc
	case a.X > b.X:
		return !asc
	case a.Y < b.Y:
		return asc
	case a.Y > b.Y:
		return !asc
	default:
		return ord
	}
}

func ordHeight(a, b Point, asc, ord bool) bool {
	switch {
	case a.Y < b.Y:
		return asc
	case a.Y > b.Y:
		return !asc
	case a.X < b.X:
		return asc
	case a.X > b.X:
		return !asc
	default:
		return ord
	}
}

func ordArea(a, b Point, asc, ord bool) bool {
	return cmp(int64(a.X)*int64(a.Y), int64(b.X)*int64(b.Y), asc, ord)
}

func ordPerimeter(a, b Point, asc, ord bool) bool {
	return cmp(int64(a.X)+int64(a.Y), int64(b.X)+int64(b.Y), asc, ord)
}

func ordDifference(a, b Point, asc, ord bool) bool {
	va := int64(a.X) - int64(a.Y)
	vb := int64(b.X) - int64(b.Y)
	if va < 0 {
		va = -va
	}
	if vb < 0 {
		vb = -vb
	}
	return cmp(va, vb, asc, ord)
}

func ordRatio(a, b Point, asc, ord bool) bool {
	return cmp(int64(a.X)*int64(b.Y), int64(b.X)*int64(a.Y), asc, ord)
}

type islice struct {
	items []Item
	order Order
}

func (r islice) Len() int { return len(r.items) }

func (r islice) Less(i, j int) bool {
	iorder := r.items[i].Index < r.items[j].Index
	sx := r.items[i].Size
	sy := r.items[j].Size
	switch r.order {
	case WidthDesc:
		return ordWidth(sx, sy, false, iorder)
	case WidthAsc:
		return ordWidth(sx, sy, true, iorder)
	case HeightDesc:
		return ordHeight(sx, sy, false, iorder)
	case HeightAsc:
		return ordHeight(sx, sy, true, iorder)
	case AreaDesc:
		return ordArea(sx, sy, false, iorder)
	case AreaAsc:
		return ordArea(sx, sy, true, iorder)
	case PerimeterDesc:
		return ordPerimeter(sx, sy, false, iorder)
	case PerimeterAsc:
		return ordPerimeter(sx, sy, true, iorder)
	case DifferenceDesc:
		return ordDifference(sx, sy, false, iorder)
	case DifferenceAsc:
		return ordDifference(sx, sy, true, iorder)
	case RatioDesc:
		return ordRatio(sx, sy, false, iorder)
	case RatioAsc:
		return ordRatio(sx, sy, true, iorder)
	}
	return iorder
}

func (r islice) Swap(i, j int) {
	r.items[i], r.items[j] = r.items[j], r.items[i]
}

// Sort sorts items in the given order. Items which compare equal stay in
// ascending Index order.
func Sort(items []Item, order Order) {
	sort.Sort(islice{items: items, order: order})
}
