package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/depp/texpack/lib/getpath"
	"github.com/depp/texpack/lib/manifest"
	"github.com/depp/texpack/lib/texture"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagVerify bool

var cmdInspect = cobra.Command{
	Use:   "inspect <manifest>",
	Short: "Print the pages and sprites in an atlas manifest.",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		file := getpath.GetPath(args[0])
		m, err := manifest.ReadFile(file)
		if err != nil {
			return err
		}
		if flagVerify {
			if _, err := readPages(m, filepath.Dir(file)); err != nil {
				return err
			}
			logrus.Info("All page hashes match")
		}
		return writeManifestTable(os.Stdout, m)
	},
}

func init() {
	cmdInspect.Flags().BoolVar(&flagVerify, "verify", false, "check page images against the manifest hashes")
}

func writeManifestTable(out io.Writer, m *manifest.Manifest) error {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "Max size:\t%dx%d\n", m.MaxWidth, m.MaxHeight)
	fmt.Fprintf(w, "Padding:\t%d\n", m.Padding)
	fmt.Fprintf(w, "Pages:\t%d\n", len(m.Pages))
	fmt.Fprintf(w, "Sprites:\t%d\n", len(m.Sprites))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page\tFile\tSize\tSprites\tFill")
	count := make([]int, len(m.Pages))
	area := make([]int, len(m.Pages))
	for _, s := range m.Sprites {
		count[s.Page]++
		area[s.Page] += s.W * s.H
	}
	for i, p := range m.Pages {
		fill := float64(area[i]) / float64(p.Width*p.Height)
		fmt.Fprintf(w, "%d\t%s\t%dx%d\t%d\t%.1f%%\n", i, p.File, p.Width, p.Height, count[i], fill*100)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sprite\tPage\tX\tY\tW\tH\tUV")
	for _, s := range m.Sprites {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%.4f,%.4f,%.4f,%.4f\n",
			s.Name, s.Page, s.X, s.Y, s.W, s.H, s.U, s.V, s.UW, s.VH)
	}
	return w.Flush()
}

// readPages reads the page images of a manifest and checks their hashes.
// Page files are relative to dir.
func readPages(m *manifest.Manifest, dir string) ([]*image.RGBA, error) {
	pages := make([]*image.RGBA, len(m.Pages))
	for i, p := range m.Pages {
		file := p.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		im, err := texture.ReadImage(file)
		if err != nil {
			return nil, err
		}
		ri := texture.ToRGBA(im)
		if sz := ri.Rect.Size(); sz.X != p.Width || sz.Y != p.Height {
			return nil, &fileError{file, fmt.Errorf("size is %dx%d, manifest says %dx%d", sz.X, sz.Y, p.Width, p.Height)}
		}
		if h := manifest.HashPage(ri); h != p.Hash {
			return nil, &fileError{file, fmt.Errorf("hash is %s, manifest says %s", h, p.Hash)}
		}
		pages[i] = ri
	}
	return pages, nil
}
