package rectpack

import (
	"math/rand"
	"testing"
)

func makeSizes(r *rand.Rand, size, count int) []Point {
	sizes := make([]Point, count)
	for i := range sizes {
		sizes[i] = Point{
			X: 1 + r.Int31n(int32(size)),
			Y: 1 + r.Int31n(int32(size)),
		}
	}
	return sizes
}

func padded(r Rect, n int32) Rect {
	r.Max.X += n
	r.Max.Y += n
	return r
}

func TestPack(t *testing.T) {
	r := rand.New(rand.NewSource(0x1234))
	sizelists := [][]Point{
		makeSizes(r, 50, 50),
		makeSizes(r, 8, 50),
		makeSizes(r, 32, 10),
	}
	for _, padding := range []int32{0, 2} {
		for _, p := range AllAlgorithms(padding) {
			t.Run(p.Name(), func(t *testing.T) {
				var rects []Rect
				for _, sizes := range sizelists {
					rects = rects[:0]
					region := Rect{
						Max: Point{X: 256, Y: 256},
					}
					p.Reset(region.Max)
					for _, sz := range sizes {
						if pos, ok := p.AddRect(sz); ok {
							r := Rect{Min: pos, Max: pos.Add(sz)}
							if !region.Contains(r) {
								t.Errorf("rect %v not in region", r)
							}
							for _, e := range rects {
								if padded(e, padding).Intersect(r) || e.Intersect(padded(r, padding)) {
									t.Errorf("rect %v within %d of %v", e, padding, r)
									continue
								}
							}
							rects = append(rects, r)
						}
					}
					if len(rects) == 0 {
						t.Error("no rects packed")
					}
				}
			})
		}
	}
}

func TestFillBin(t *testing.T) {
	for _, p := range AllAlgorithms(0) {
		t.Run(p.Name(), func(t *testing.T) {
			queue := []Item{
				{Index: 0, Size: Point{X: 64, Y: 64}},
				{Index: 1, Size: Point{X: 64, Y: 64}},
				// Does not fit next to the first two, ends the bin.
				{Index: 2, Size: Point{X: 100, Y: 100}},
				// Would fit, but must not be tried.
				{Index: 3, Size: Point{X: 4, Y: 4}},
			}
			bounds := Point{X: 128, Y: 128}
			bin, rest := FillBin(p, bounds, queue)
			if len(bin.Placed) != 2 {
				t.Fatalf("placed %d rects, want 2", len(bin.Placed))
			}
			for i, o := range bin.Placed {
				if o.Index != i || o.Order != i {
					t.Errorf("placed[%d] = index %d order %d", i, o.Index, o.Order)
				}
				if o.Rect.Size() != queue[i].Size {
					t.Errorf("placed[%d] size %v, want %v", i, o.Rect.Size(), queue[i].Size)
				}
			}
			if len(rest) != 2 || rest[0].Index != 2 || rest[1].Index != 3 {
				t.Errorf("rest = %v, want items 2 and 3", rest)
			}
			b, ok := bin.Bounds()
			if !ok {
				t.Fatal("empty bounds")
			}
			if b.Min != (Point{}) {
				t.Errorf("bounds min = %v, want origin", b.Min)
			}
			if !(Rect{Max: bounds}).Contains(b) {
				t.Errorf("bounds %v outside bin", b)
			}

			bin, rest = FillBin(p, bounds, rest)
			if len(bin.Placed) != 2 || len(rest) != 0 {
				t.Errorf("second bin placed %d, rest %d; want 2, 0", len(bin.Placed), len(rest))
			}
		})
	}
}

func TestFillBinEmpty(t *testing.T) {
	bin, rest := FillBin(New(2), Point{X: 16, Y: 16}, []Item{{Size: Point{X: 17, Y: 1}}})
	if len(bin.Placed) != 0 {
		t.Errorf("placed %d rects, want 0", len(bin.Placed))
	}
	if len(rest) != 1 {
		t.Errorf("rest has %d items, want 1", len(rest))
	}
	if _, ok := bin.Bounds(); ok {
		t.Error("empty bin has bounds")
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"guillotine", "Guillotine", "maxrects", "MaxRects.BL"} {
		p, err := Lookup(name, 1)
		if err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
			continue
		}
		if q, err := Lookup(p.Name(), 1); err != nil || q.Name() != p.Name() {
			t.Errorf("Lookup(%q) does not round trip", p.Name())
		}
	}
	if _, err := Lookup("skyline", 0); err == nil {
		t.Error("Lookup(skyline) succeeded")
	}
}
