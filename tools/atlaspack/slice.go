package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/depp/texpack/lib/getpath"
	"github.com/depp/texpack/lib/manifest"
	"github.com/depp/texpack/lib/texture"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
)

var flagSprites []string

var cmdSlice = cobra.Command{
	Use:   "slice <manifest> <outdir>",
	Short: "Cut sprites out of atlas pages into separate PNG files.",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		file := getpath.GetPath(args[0])
		outdir := getpath.GetPath(args[1])
		m, err := manifest.ReadFile(file)
		if err != nil {
			return err
		}
		sprites, err := selectSprites(m, flagSprites)
		if err != nil {
			return err
		}
		pages, err := readPages(m, filepath.Dir(file))
		if err != nil {
			return err
		}
		if err := os.MkdirAll(outdir, 0777); err != nil {
			return err
		}
		for _, s := range sprites {
			out := filepath.Join(outdir, s.Name+".png")
			if err := texture.WritePNG(out, cutSprite(pages[s.Page], s)); err != nil {
				return err
			}
			logrus.Debugf("Wrote %s", out)
		}
		logrus.Infof("Wrote %d sprites to %s", len(sprites), outdir)
		return nil
	},
}

func init() {
	cmdSlice.Flags().StringSliceVarP(&flagSprites, "sprite", "s", nil, "only write sprites with these `names`")
}

// selectSprites returns the named sprites, or all sprites if names is empty.
func selectSprites(m *manifest.Manifest, names []string) ([]*manifest.Sprite, error) {
	var r []*manifest.Sprite
	if len(names) == 0 {
		for i := range m.Sprites {
			r = append(r, &m.Sprites[i])
		}
	} else {
		for _, name := range names {
			s, ok := m.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("no sprite named %q", name)
			}
			r = append(r, s)
		}
	}
	for _, s := range r {
		if s.Name == "" || s.Name == "." || s.Name == ".." || strings.ContainsAny(s.Name, `/\`) {
			return nil, fmt.Errorf("sprite name cannot be used as a file name: %q", s.Name)
		}
	}
	return r, nil
}

func cutSprite(page *image.RGBA, s *manifest.Sprite) *image.RGBA {
	r := s.Rect()
	out := image.NewRGBA(image.Rectangle{Max: r.Size()})
	draw.Copy(out, image.Point{}, page, r, draw.Src, nil)
	return out
}
