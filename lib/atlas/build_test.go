package atlas

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand"
	"testing"
)

// testImage returns an image where every pixel encodes the image's seed and
// the pixel's position.
func testImage(name string, seed, w, h int) *Image {
	im := NewImage(name, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := im.Pix[(y*w+x)*4:]
			p[0] = uint8(seed)
			p[1] = uint8(x)
			p[2] = uint8(y)
			p[3] = 255
		}
	}
	return im
}

func mustBuild(t *testing.T, opts Options, images []*Image) *Atlas {
	t.Helper()
	b, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	a, err := b.Build(images)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func grow(r image.Rectangle, n int) image.Rectangle {
	r.Max.X += n
	r.Max.Y += n
	return r
}

// checkAtlas checks the properties every atlas must have.
func checkAtlas(t *testing.T, a *Atlas, images []*Image) {
	t.Helper()
	if a.Len() != len(images) {
		t.Fatalf("atlas has %d sprites, want %d", a.Len(), len(images))
	}
	names := make(map[string]bool)
	for i, s := range a.Sprites() {
		if s.Index != i {
			t.Errorf("sprite %d has index %d", i, s.Index)
		}
		if names[s.Name] {
			t.Errorf("duplicate sprite name %q", s.Name)
		}
		names[s.Name] = true
		if l, ok := a.Lookup(s.Name); !ok || l.Index != i {
			t.Errorf("Lookup(%q) = %d, %t", s.Name, l.Index, ok)
		}
		pg := a.Page(s.Page)
		if pg == nil {
			t.Fatalf("sprite %q: no page %d", s.Name, s.Page)
		}
		if s.Source.Size() != images[i].Bounds().Size() {
			t.Errorf("sprite %q: size %v, want %v", s.Name, s.Source.Size(), images[i].Bounds().Size())
		}
		pr := image.Rect(0, 0, pg.Width(), pg.Height())
		if !s.Source.In(pr) {
			t.Errorf("sprite %q: %v not in page %v", s.Name, s.Source, pr)
		}
		w, h := float64(pg.Width()), float64(pg.Height())
		const eps = 1e-9
		if math.Abs(s.UV.X*w-float64(s.Source.Min.X)) > eps ||
			math.Abs(s.UV.Y*h-float64(s.Source.Min.Y)) > eps ||
			math.Abs(s.UV.W*w-float64(s.Source.Dx())) > eps ||
			math.Abs(s.UV.H*h-float64(s.Source.Dy())) > eps {
			t.Errorf("sprite %q: uv %+v does not match %v in %dx%d", s.Name, s.UV, s.Source, pg.Width(), pg.Height())
		}
		if r := s.UV.Pixels(pg.Width(), pg.Height()); r != s.Source {
			t.Errorf("sprite %q: uv pixels %v, want %v", s.Name, r, s.Source)
		}
		img, err := pg.Image()
		if err != nil {
			t.Fatal(err)
		}
		src := images[i]
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				want := src.RGBA().RGBAAt(x, y)
				if got := img.RGBAAt(s.Source.Min.X+x, s.Source.Min.Y+y); got != want {
					t.Fatalf("sprite %q: pixel (%d,%d) = %v, want %v", s.Name, x, y, got, want)
				}
			}
		}
	}
	seen := make([]int, len(images))
	for p := 0; p < a.NumPages(); p++ {
		pg := a.Page(p)
		if pg.Index() != p {
			t.Errorf("page %d has index %d", p, pg.Index())
		}
		idx := pg.Sprites()
		if len(idx) == 0 {
			t.Errorf("page %d is empty", p)
		}
		for j, i := range idx {
			seen[i]++
			si, _ := a.Sprite(i)
			if si.Page != p {
				t.Errorf("sprite %d listed in page %d, has page %d", i, p, si.Page)
			}
			for _, k := range idx[j+1:] {
				sk, _ := a.Sprite(k)
				pad := a.Padding()
				if grow(si.Source, pad).Overlaps(sk.Source) || si.Source.Overlaps(grow(sk.Source, pad)) {
					t.Errorf("sprites %q %v and %q %v closer than %d", si.Name, si.Source, sk.Name, sk.Source, pad)
				}
			}
		}
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("sprite %d appears in %d pages", i, n)
		}
	}
}

func testOptions(w, h, padding int) Options {
	opts := DefaultOptions()
	opts.MaxWidth = w
	opts.MaxHeight = h
	opts.Padding = padding
	opts.KeepReadable = true
	return opts
}

func TestBuildThreeImages(t *testing.T) {
	images := []*Image{
		testImage("a", 1, 64, 64),
		testImage("b", 2, 64, 64),
		testImage("c", 3, 32, 32),
	}
	a := mustBuild(t, testOptions(128, 128, 0), images)
	checkAtlas(t, a, images)
	if a.NumPages() != 1 {
		t.Errorf("got %d pages, want 1", a.NumPages())
	}
	if pg := a.Page(0); pg.Width() > 128 || pg.Height() > 128 {
		t.Errorf("page size %dx%d", pg.Width(), pg.Height())
	}

	// Two 64 pixel images and a 2 pixel gap do not fit in 128 pixels.
	a = mustBuild(t, testOptions(128, 128, 2), images)
	checkAtlas(t, a, images)
	if a.NumPages() != 2 {
		t.Errorf("got %d pages with padding, want 2", a.NumPages())
	}
}

func TestBuildTooLarge(t *testing.T) {
	images := []*Image{
		testImage("ok", 0, 8, 8),
		testImage("wide", 1, 130, 64),
	}
	_, err := Build(images, 128, 128, false)
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("err = %v, want ErrImageTooLarge", err)
	}
	var ie *ImageError
	if !errors.As(err, &ie) || ie.Index != 1 || ie.Name != "wide" {
		t.Errorf("err = %#v", err)
	}

	images = []*Image{testImage("tall", 0, 1, 129)}
	if _, err := Build(images, 128, 128, false); !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("err = %v, want ErrImageTooLarge", err)
	}

	images = []*Image{testImage("exact", 0, 128, 128)}
	if _, err := Build(images, 128, 128, false); err != nil {
		t.Errorf("page-sized image: %v", err)
	}
}

func TestBuildDuplicateNames(t *testing.T) {
	images := []*Image{
		testImage("icon", 0, 8, 8),
		testImage("icon", 1, 8, 8),
	}
	a := mustBuild(t, testOptions(64, 64, 2), images)
	checkAtlas(t, a, images)
	for i, want := range []string{"icon", "icon_1"} {
		if s, _ := a.Sprite(i); s.Name != want {
			t.Errorf("sprite %d name = %q, want %q", i, s.Name, want)
		}
	}
	if images[1].Name != "icon" {
		t.Error("Build renamed an input image")
	}
}

func TestBuildDuplicateNamesAcrossPages(t *testing.T) {
	images := []*Image{
		testImage("icon", 0, 32, 32),
		testImage("icon", 1, 32, 32),
		testImage("icon_1", 2, 32, 32),
		testImage("small", 3, 4, 4),
	}
	a := mustBuild(t, testOptions(32, 32, 0), images)
	checkAtlas(t, a, images)
	if a.NumPages() != 4 {
		t.Fatalf("got %d pages, want 4", a.NumPages())
	}
	for i, want := range []string{"icon", "icon_1", "icon_1_1", "small"} {
		if s, _ := a.Sprite(i); s.Name != want {
			t.Errorf("sprite %d name = %q, want %q", i, s.Name, want)
		}
	}
}

func TestBuildMultiplePages(t *testing.T) {
	var images []*Image
	for i := 0; i < 10; i++ {
		images = append(images, testImage(fmt.Sprintf("tile%d", i), i, 60, 60))
	}
	a := mustBuild(t, testOptions(128, 128, 2), images)
	checkAtlas(t, a, images)
	if a.NumPages() != 3 {
		t.Errorf("got %d pages, want 3", a.NumPages())
	}
}

func TestBuildCrop(t *testing.T) {
	images := []*Image{testImage("one", 0, 10, 20)}
	a := mustBuild(t, testOptions(128, 128, 2), images)
	checkAtlas(t, a, images)
	pg := a.Page(0)
	if pg.Width() != 10 || pg.Height() != 20 {
		t.Errorf("page size %dx%d, want 10x20", pg.Width(), pg.Height())
	}
	s, _ := a.Sprite(0)
	if s.UV != (UVRect{X: 0, Y: 0, W: 1, H: 1}) {
		t.Errorf("uv = %+v", s.UV)
	}
}

func TestBuildRandom(t *testing.T) {
	r := rand.New(rand.NewSource(0x1234))
	var images []*Image
	for i := 0; i < 60; i++ {
		images = append(images, testImage(fmt.Sprintf("r%d", i%20), i, 1+r.Intn(100), 1+r.Intn(100)))
	}
	for _, alg := range []string{"guillotine", "maxrects"} {
		for _, padding := range []int{0, 2} {
			t.Run(fmt.Sprintf("%s/%d", alg, padding), func(t *testing.T) {
				opts := testOptions(256, 256, padding)
				opts.Algorithm = alg
				opts.Bleed = true
				a := mustBuild(t, opts, images)
				checkAtlas(t, a, images)
				if a.NumPages() < 2 {
					t.Errorf("got %d pages, expected more", a.NumPages())
				}
			})
		}
	}
}

func TestBuildWorkers(t *testing.T) {
	var images []*Image
	for i := 0; i < 30; i++ {
		images = append(images, testImage("w", i, 10+i, 40-i))
	}
	opts := testOptions(64, 64, 1)
	opts.Bleed = true
	a1 := mustBuild(t, opts, images)
	opts.Workers = 4
	a4 := mustBuild(t, opts, images)
	checkAtlas(t, a4, images)
	if a1.NumPages() != a4.NumPages() {
		t.Fatalf("page count %d != %d", a1.NumPages(), a4.NumPages())
	}
	for i := 0; i < a1.NumPages(); i++ {
		p1, _ := a1.Page(i).Image()
		p4, _ := a4.Page(i).Image()
		if string(p1.Pix) != string(p4.Pix) {
			t.Errorf("page %d differs", i)
		}
	}
}

func TestBuildInvalid(t *testing.T) {
	good := testImage("good", 0, 4, 4)
	cases := []struct {
		name   string
		images []*Image
		err    error
	}{
		{"empty", nil, ErrEmptyInput},
		{"nil", []*Image{good, nil}, ErrInvalidImage},
		{"zero width", []*Image{{Name: "z", Width: 0, Height: 4}}, ErrInvalidImage},
		{"short buffer", []*Image{{Name: "s", Width: 2, Height: 2, Pix: make([]uint8, 15)}}, ErrInvalidImage},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Build(c.images, 64, 64, true)
			if !errors.Is(err, c.err) {
				t.Errorf("err = %v, want %v", err, c.err)
			}
			if a != nil {
				t.Error("got partial atlas")
			}
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	cases := []struct {
		field string
		edit  func(*Options)
	}{
		{"MaxWidth", func(o *Options) { o.MaxWidth = 0 }},
		{"MaxHeight", func(o *Options) { o.MaxHeight = MaxPageSize + 1 }},
		{"Padding", func(o *Options) { o.Padding = -1 }},
		{"Algorithm", func(o *Options) { o.Algorithm = "skyline" }},
	}
	for _, c := range cases {
		opts := DefaultOptions()
		c.edit(&opts)
		_, err := New(opts)
		var ce *ConfigError
		if !errors.As(err, &ce) || ce.Field != c.field {
			t.Errorf("%s: err = %v", c.field, err)
		}
	}
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Errorf("default options: %v", err)
	}
}

func TestUpload(t *testing.T) {
	images := []*Image{testImage("a", 0, 4, 4)}
	for _, readable := range []bool{false, true} {
		a, err := Build(images, 16, 16, readable)
		if err != nil {
			t.Fatal(err)
		}
		pg := a.Page(0)
		var n int
		err = pg.Upload(func(im *image.RGBA) error {
			n = len(im.Pix)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if n != 4*4*4 {
			t.Errorf("uploaded %d bytes", n)
		}
		_, err = pg.Image()
		if readable && err != nil {
			t.Errorf("readable page: %v", err)
		}
		if !readable && !errors.Is(err, ErrReleased) {
			t.Errorf("released page: err = %v", err)
		}
	}
}

func TestUploadError(t *testing.T) {
	a, err := Build([]*Image{testImage("a", 0, 4, 4)}, 16, 16, false)
	if err != nil {
		t.Fatal(err)
	}
	pg := a.Page(0)
	fail := errors.New("upload failed")
	if err := pg.Upload(func(*image.RGBA) error { return fail }); err != fail {
		t.Errorf("err = %v", err)
	}
	if _, err := pg.Image(); err != nil {
		t.Errorf("failed upload released the page: %v", err)
	}
}

func TestSubImage(t *testing.T) {
	images := []*Image{
		testImage("a", 1, 5, 7),
		testImage("b", 2, 9, 3),
	}
	a := mustBuild(t, testOptions(32, 32, 2), images)
	for i, src := range images {
		sub, err := a.SubImage(i)
		if err != nil {
			t.Fatal(err)
		}
		if string(sub.Pix) != string(src.Pix) {
			t.Errorf("sub image %d differs from source", i)
		}
	}
	if _, err := a.SubImage(2); err == nil {
		t.Error("SubImage(2) succeeded")
	}
	if _, ok := a.Sprite(-1); ok {
		t.Error("Sprite(-1) succeeded")
	}
	if a.Page(5) != nil {
		t.Error("Page(5) is not nil")
	}
	if _, ok := a.Lookup("missing"); ok {
		t.Error("Lookup(missing) succeeded")
	}
}
