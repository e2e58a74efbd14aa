package main

import (
	"errors"
	"image"
	"os"
	"path/filepath"

	"github.com/depp/texpack/lib/atlas"
	"github.com/depp/texpack/lib/config"
	"github.com/depp/texpack/lib/getpath"
	"github.com/depp/texpack/lib/manifest"
	"github.com/depp/texpack/lib/texture"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var packFlags struct {
	config    string
	output    string
	manifest  manifest.Format
	maxWidth  int
	maxHeight int
	padding   int
	bleed     bool
	algorithm string
	workers   int
}

var cmdPack = cobra.Command{
	Use:   "pack [flags] [<image>...]",
	Short: "Pack images into atlas pages and write a manifest.",
	Long: `Pack images into atlas pages and write a manifest.

Options are read from the --config file, if given, and then overridden by
flags. Images given on the command line replace the config file inputs.
Pages are written to <output>_<n>.png.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := packConfig(cmd, args)
		if err != nil {
			return err
		}
		files, err := cfg.ExpandInputs()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return errors.New("no input images")
		}
		images, err := readImages(files)
		if err != nil {
			return err
		}
		opts := cfg.Options()
		opts.Logger = logrus.StandardLogger()
		b, err := atlas.New(opts)
		if err != nil {
			return err
		}
		a, err := b.Build(images)
		if err != nil {
			return err
		}
		return writeAtlas(cfg, a)
	},
}

func init() {
	f := cmdPack.Flags()
	d := config.Default()
	f.StringVarP(&packFlags.config, "config", "c", "", "read options from `file` (.toml, .yaml, .json)")
	f.StringVarP(&packFlags.output, "output", "o", d.Output, "output base `path`")
	f.Var(&packFlags.manifest, "manifest", "manifest format: json, yaml, or cbor")
	f.IntVar(&packFlags.maxWidth, "max-width", d.MaxWidth, "maximum page width")
	f.IntVar(&packFlags.maxHeight, "max-height", d.MaxHeight, "maximum page height")
	f.IntVar(&packFlags.padding, "padding", d.Padding, "pixels between images")
	f.BoolVar(&packFlags.bleed, "bleed", d.Bleed, "repeat image edges into padding")
	f.StringVar(&packFlags.algorithm, "algorithm", d.Algorithm, "packing algorithm: guillotine or maxrects")
	f.IntVar(&packFlags.workers, "workers", d.Workers, "number of pages to composite at once")
}

// packConfig loads the config file, if any, and applies the flags which were
// set on the command line.
func packConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	if packFlags.config != "" {
		var err error
		cfg, err = config.Load(getpath.GetPath(packFlags.config))
		if err != nil {
			return nil, err
		}
	} else {
		d := config.Default()
		cfg = &d
		cfg.Output = getpath.GetPath(cfg.Output)
	}
	f := cmd.Flags()
	if len(args) != 0 {
		cfg.Inputs = getpath.GetPaths(args)
	}
	if f.Changed("output") {
		cfg.Output = getpath.GetPath(packFlags.output)
	}
	if f.Changed("manifest") {
		cfg.Manifest = packFlags.manifest.String()
	}
	if f.Changed("max-width") {
		cfg.MaxWidth = packFlags.maxWidth
	}
	if f.Changed("max-height") {
		cfg.MaxHeight = packFlags.maxHeight
	}
	if f.Changed("padding") {
		cfg.Padding = packFlags.padding
	}
	if f.Changed("bleed") {
		cfg.Bleed = packFlags.bleed
	}
	if f.Changed("algorithm") {
		cfg.Algorithm = packFlags.algorithm
	}
	if f.Changed("workers") {
		cfg.Workers = packFlags.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readImages(files []string) ([]*atlas.Image, error) {
	images := make([]*atlas.Image, len(files))
	for i, file := range files {
		im, err := texture.ReadImage(file)
		if err != nil {
			return nil, err
		}
		ri := texture.ToRGBA(im)
		if ri.Rect.Empty() {
			return nil, &fileError{file, atlas.ErrInvalidImage}
		}
		if texture.IsEmpty(ri) {
			logrus.Warnf("image is fully transparent: %q", file)
		}
		images[i] = atlas.FromImage(texture.SpriteName(file), ri)
		logrus.WithFields(logrus.Fields{
			"file":   file,
			"width":  ri.Rect.Dx(),
			"height": ri.Rect.Dy(),
		}).Debug("Read image")
	}
	return images, nil
}

func writeAtlas(cfg *config.Config, a *atlas.Atlas) error {
	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}
	for i := 0; i < a.NumPages(); i++ {
		file := cfg.PageFile(i)
		if err := a.Page(i).Upload(func(img *image.RGBA) error {
			return texture.WritePNG(file, img)
		}); err != nil {
			return err
		}
		logrus.Infof("Wrote %s", file)
	}
	m, err := manifest.FromAtlas(a, func(page int) string {
		return filepath.Base(cfg.PageFile(page))
	})
	if err != nil {
		return err
	}
	file := cfg.ManifestFile()
	if err := manifest.WriteFile(file, m); err != nil {
		return err
	}
	logrus.Infof("Wrote %s", file)
	return nil
}
