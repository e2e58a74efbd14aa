package atlas

import (
	"fmt"
	"image"

	"github.com/depp/texpack/lib/rectpack"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// A Builder builds atlases with fixed options. A Builder may be used for any
// number of builds, including concurrent builds.
type Builder struct {
	opts Options
	log  logrus.FieldLogger
}

// New returns a builder with the given options.
func New(opts Options) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Builder{
		opts: opts,
		log:  opts.logger(),
	}, nil
}

// Build packs images into pages no larger than maxWidth x maxHeight, using
// the default options otherwise.
func Build(images []*Image, maxWidth, maxHeight int, keepReadable bool) (*Atlas, error) {
	opts := DefaultOptions()
	opts.MaxWidth = maxWidth
	opts.MaxHeight = maxHeight
	opts.KeepReadable = keepReadable
	b, err := New(opts)
	if err != nil {
		return nil, err
	}
	return b.Build(images)
}

// Build packs the images into a new atlas. Images are packed smallest area
// first. The result has one sprite per image, in input order.
//
// Build fails without a partial result if the input is empty, if any image is
// missing or invalid, or if any image is larger than a page.
func (b *Builder) Build(images []*Image) (*Atlas, error) {
	items, err := b.check(images)
	if err != nil {
		return nil, err
	}
	rectpack.Sort(items, rectpack.AreaAsc)
	p, err := rectpack.Lookup(b.opts.Algorithm, int32(b.opts.Padding))
	if err != nil {
		return nil, err
	}
	a := &Atlas{
		sprites:   make([]Sprite, len(images)),
		byName:    make(map[string]int, len(images)),
		maxWidth:  b.opts.MaxWidth,
		maxHeight: b.opts.MaxHeight,
		padding:   b.opts.Padding,
	}
	bounds := rectpack.Point{X: int32(b.opts.MaxWidth), Y: int32(b.opts.MaxHeight)}
	for queue := items; len(queue) > 0; {
		var bin rectpack.Bin
		bin, queue = rectpack.FillBin(p, bounds, queue)
		if len(bin.Placed) == 0 {
			i := queue[0].Index
			return nil, &ImageError{Index: i, Name: images[i].Name, Err: ErrPackingExhausted}
		}
		pg := b.addPage(a, images, &bin)
		b.log.WithFields(logrus.Fields{
			"page":    pg.index,
			"width":   pg.Width(),
			"height":  pg.Height(),
			"sprites": len(pg.sprites),
		}).Debug("Packed page")
	}
	if err := b.composite(a, images); err != nil {
		return nil, err
	}
	b.log.WithFields(logrus.Fields{
		"pages":   len(a.pages),
		"sprites": len(a.sprites),
	}).Info("Built atlas")
	return a, nil
}

// check validates the input and returns one packing item per image.
func (b *Builder) check(images []*Image) ([]rectpack.Item, error) {
	if len(images) == 0 {
		return nil, ErrEmptyInput
	}
	items := make([]rectpack.Item, len(images))
	for i, im := range images {
		if im == nil {
			return nil, &ImageError{Index: i, Err: ErrInvalidImage}
		}
		if err := im.validate(); err != nil {
			return nil, &ImageError{Index: i, Name: im.Name, Err: err}
		}
		if im.Width > b.opts.MaxWidth || im.Height > b.opts.MaxHeight {
			return nil, &ImageError{
				Index: i,
				Name:  im.Name,
				Err: fmt.Errorf("%w: %dx%d, page is %dx%d", ErrImageTooLarge,
					im.Width, im.Height, b.opts.MaxWidth, b.opts.MaxHeight),
			}
		}
		items[i] = rectpack.Item{
			Index: i,
			Size:  rectpack.Point{X: int32(im.Width), Y: int32(im.Height)},
		}
	}
	return items, nil
}

// addPage adds a page for a filled bin and creates its sprites. Names are
// made unique against every sprite created so far, in packing order.
func (b *Builder) addPage(a *Atlas, images []*Image, bin *rectpack.Bin) *Page {
	crop, _ := bin.Bounds()
	pg := &Page{
		index:    len(a.pages),
		bounds:   toRectangle(crop),
		sprites:  make([]int, 0, len(bin.Placed)),
		readable: b.opts.KeepReadable,
	}
	w, h := pg.Width(), pg.Height()
	for _, o := range bin.Placed {
		name := uniqueName(images[o.Index].Name, a.byName)
		src := toRectangle(o.Rect).Sub(pg.bounds.Min)
		a.sprites[o.Index] = Sprite{
			Name:   name,
			Index:  o.Index,
			Page:   pg.index,
			Source: src,
			UV:     uvRect(src, w, h),
		}
		a.byName[name] = o.Index
		pg.sprites = append(pg.sprites, o.Index)
	}
	a.pages = append(a.pages, pg)
	return pg
}

// composite draws every page. Pages share no buffers, so they are drawn
// concurrently, up to the configured number of workers.
func (b *Builder) composite(a *Atlas, images []*Image) error {
	var bleed int
	if b.opts.Bleed {
		bleed = b.opts.Padding
	}
	var g errgroup.Group
	g.SetLimit(b.opts.Workers)
	for _, pg := range a.pages {
		g.Go(func() error {
			img := image.NewRGBA(image.Rectangle{Max: pg.bounds.Size()})
			for _, i := range pg.sprites {
				s := &a.sprites[i]
				if err := Blit(img, s.Source.Min, images[i], bleed); err != nil {
					return fmt.Errorf("page %d: sprite %q: %w", pg.index, s.Name, err)
				}
			}
			pg.img = img
			return nil
		})
	}
	return g.Wait()
}

func toRectangle(r rectpack.Rect) image.Rectangle {
	return image.Rect(int(r.Min.X), int(r.Min.Y), int(r.Max.X), int(r.Max.Y))
}
