// Package manifest describes a packed atlas on disk: the page image files and
// the location of every sprite in them.
package manifest

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"image"

	"github.com/depp/texpack/lib/atlas"
	"github.com/zeebo/blake3"
)

// Version is the manifest format version written by this package.
const Version = 1

// A Manifest describes a packed atlas.
type Manifest struct {
	Version   int      `json:"version" yaml:"version" cbor:"version"`
	MaxWidth  int      `json:"max_width" yaml:"max_width" cbor:"max_width"`
	MaxHeight int      `json:"max_height" yaml:"max_height" cbor:"max_height"`
	Padding   int      `json:"padding" yaml:"padding" cbor:"padding"`
	Pages     []Page   `json:"pages" yaml:"pages" cbor:"pages"`
	Sprites   []Sprite `json:"sprites" yaml:"sprites" cbor:"sprites"`
}

// A Page is one page image.
type Page struct {
	// File is the path to the page image, relative to the manifest.
	File   string `json:"file" yaml:"file" cbor:"file"`
	Width  int    `json:"width" yaml:"width" cbor:"width"`
	Height int    `json:"height" yaml:"height" cbor:"height"`
	// Hash is the hex BLAKE3 hash of the page pixels. See HashPage.
	Hash string `json:"hash" yaml:"hash" cbor:"hash"`
}

// A Sprite is the location of one image in a page.
type Sprite struct {
	Name string `json:"name" yaml:"name" cbor:"name"`
	Page int    `json:"page" yaml:"page" cbor:"page"`
	// Pixel rectangle in the page.
	X int `json:"x" yaml:"x" cbor:"x"`
	Y int `json:"y" yaml:"y" cbor:"y"`
	W int `json:"w" yaml:"w" cbor:"w"`
	H int `json:"h" yaml:"h" cbor:"h"`
	// Normalized texture coordinates.
	U  float64 `json:"u" yaml:"u" cbor:"u"`
	V  float64 `json:"v" yaml:"v" cbor:"v"`
	UW float64 `json:"uw" yaml:"uw" cbor:"uw"`
	VH float64 `json:"vh" yaml:"vh" cbor:"vh"`
}

// Rect returns the sprite's pixel rectangle.
func (s *Sprite) Rect() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.W, s.Y+s.H)
}

// FromAtlas creates a manifest for an atlas. The pageFile function returns
// the file name for each page. Page buffers must still be readable.
func FromAtlas(a *atlas.Atlas, pageFile func(page int) string) (*Manifest, error) {
	size := a.MaxSize()
	m := Manifest{
		Version:   Version,
		MaxWidth:  size.X,
		MaxHeight: size.Y,
		Padding:   a.Padding(),
		Pages:     make([]Page, a.NumPages()),
		Sprites:   make([]Sprite, a.Len()),
	}
	for i := range m.Pages {
		pg := a.Page(i)
		img, err := pg.Image()
		if err != nil {
			return nil, err
		}
		m.Pages[i] = Page{
			File:   pageFile(i),
			Width:  pg.Width(),
			Height: pg.Height(),
			Hash:   HashPage(img),
		}
	}
	for i, s := range a.Sprites() {
		m.Sprites[i] = Sprite{
			Name: s.Name,
			Page: s.Page,
			X:    s.Source.Min.X,
			Y:    s.Source.Min.Y,
			W:    s.Source.Dx(),
			H:    s.Source.Dy(),
			U:    s.UV.X,
			V:    s.UV.Y,
			UW:   s.UV.W,
			VH:   s.UV.H,
		}
	}
	return &m, nil
}

// HashPage returns the hex BLAKE3 hash of an image's size and RGBA pixels.
// Two images with the same size and pixels have the same hash, regardless of
// stride or origin.
func HashPage(img *image.RGBA) string {
	h := blake3.New()
	var hdr [8]byte
	w, ht := img.Rect.Dx(), img.Rect.Dy()
	binary.LittleEndian.PutUint32(hdr[:4], uint32(w))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(ht))
	h.Write(hdr[:])
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		off := img.PixOffset(img.Rect.Min.X, y)
		h.Write(img.Pix[off : off+w*4])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the sprite with the given name.
func (m *Manifest) Lookup(name string) (*Sprite, bool) {
	for i := range m.Sprites {
		if m.Sprites[i].Name == name {
			return &m.Sprites[i], true
		}
	}
	return nil, false
}

// Validate checks that sprite names are unique and that every sprite lies in
// an existing page.
func (m *Manifest) Validate() error {
	if m.Version != Version {
		return fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	names := make(map[string]bool, len(m.Sprites))
	for i := range m.Sprites {
		s := &m.Sprites[i]
		if names[s.Name] {
			return fmt.Errorf("duplicate sprite name: %q", s.Name)
		}
		names[s.Name] = true
		if s.Page < 0 || len(m.Pages) <= s.Page {
			return fmt.Errorf("sprite %q: page %d does not exist", s.Name, s.Page)
		}
		pg := &m.Pages[s.Page]
		if s.W <= 0 || s.H <= 0 || !s.Rect().In(image.Rect(0, 0, pg.Width, pg.Height)) {
			return fmt.Errorf("sprite %q: rectangle %v outside page %d", s.Name, s.Rect(), s.Page)
		}
	}
	return nil
}
