// Package config loads atlas packing configuration files.
//
// A configuration file describes one packing job: the input images, the page
// size and packing options, and where to write the output. The file format is
// chosen by extension: TOML (.toml), YAML (.yaml, .yml), or JSON with
// comments (.json, .jsonc).
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/depp/texpack/lib/atlas"
	"github.com/depp/texpack/lib/manifest"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config is a packing job.
type Config struct {
	// Inputs are image files or glob patterns, relative to the config file.
	Inputs []string `toml:"inputs" yaml:"inputs" json:"inputs"`

	// Output is the base name for output files, relative to the config
	// file. Pages are written to <output>_<n>.png and the manifest to
	// <output>.<format>.
	Output string `toml:"output" yaml:"output" json:"output"`

	// Manifest is the manifest format: json, yaml, or cbor.
	Manifest string `toml:"manifest" yaml:"manifest" json:"manifest"`

	// MaxWidth and MaxHeight are the maximum page size.
	MaxWidth  int `toml:"max_width" yaml:"max_width" json:"max_width"`
	MaxHeight int `toml:"max_height" yaml:"max_height" json:"max_height"`

	// Padding is the gap between images, in pixels.
	Padding int `toml:"padding" yaml:"padding" json:"padding"`

	// Bleed repeats image edges into the padding.
	Bleed bool `toml:"bleed" yaml:"bleed" json:"bleed"`

	// Algorithm is the packing algorithm: guillotine or maxrects.
	Algorithm string `toml:"algorithm" yaml:"algorithm" json:"algorithm"`

	// Workers is the number of pages composited concurrently.
	Workers int `toml:"workers" yaml:"workers" json:"workers"`
}

// Default returns the default configuration.
func Default() Config {
	opts := atlas.DefaultOptions()
	return Config{
		Output:    "atlas",
		Manifest:  manifest.JSON.String(),
		MaxWidth:  opts.MaxWidth,
		MaxHeight: opts.MaxHeight,
		Padding:   opts.Padding,
		Algorithm: opts.Algorithm,
		Workers:   opts.Workers,
	}
}

// An Error is an invalid configuration value.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return "config: " + e.Field + ": " + e.Reason
}

// Load reads a configuration file. Values missing from the file keep their
// defaults. Relative paths in the file are made relative to the directory
// containing the file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	c := Default()
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if keys := md.Undecoded(); len(keys) != 0 {
			return nil, fmt.Errorf("%s: unknown key %q", filename, keys[0].String())
		}
	case ".yaml", ".yml":
		d := yaml.NewDecoder(bytes.NewReader(data))
		d.KnownFields(true)
		if err := d.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	case ".json", ".jsonc":
		d := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		d.DisallowUnknownFields()
		if err := d.Decode(&c); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %q", filename)
	}
	c.resolve(filepath.Dir(filename))
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &c, nil
}

func (c *Config) resolve(dir string) {
	for i, in := range c.Inputs {
		if !filepath.IsAbs(in) {
			c.Inputs[i] = filepath.Join(dir, in)
		}
	}
	if c.Output != "" && !filepath.IsAbs(c.Output) {
		c.Output = filepath.Join(dir, c.Output)
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Output == "" {
		return &Error{Field: "output", Reason: "must not be empty"}
	}
	var f manifest.Format
	if err := f.Set(c.Manifest); err != nil {
		return &Error{Field: "manifest", Reason: err.Error()}
	}
	opts := c.Options()
	if err := opts.Validate(); err != nil {
		var ce *atlas.ConfigError
		if errors.As(err, &ce) {
			return &Error{Field: fieldName(ce.Field), Reason: ce.Reason}
		}
		return err
	}
	return nil
}

func fieldName(option string) string {
	switch option {
	case "MaxWidth":
		return "max_width"
	case "MaxHeight":
		return "max_height"
	}
	return strings.ToLower(option)
}

// Options returns the atlas builder options for the configuration.
func (c *Config) Options() atlas.Options {
	return atlas.Options{
		MaxWidth:  c.MaxWidth,
		MaxHeight: c.MaxHeight,
		Padding:   c.Padding,
		Bleed:     c.Bleed,
		Algorithm: c.Algorithm,
		Workers:   c.Workers,
		// Pages are hashed for the manifest after they are written.
		KeepReadable: true,
	}
}

// ManifestFormat returns the manifest format. The configuration must be valid.
func (c *Config) ManifestFormat() manifest.Format {
	var f manifest.Format
	f.Set(c.Manifest)
	return f
}

// ManifestFile returns the manifest output path.
func (c *Config) ManifestFile() string {
	return c.Output + c.ManifestFormat().Ext()
}

// PageFile returns the output path for a page.
func (c *Config) PageFile(page int) string {
	return fmt.Sprintf("%s_%d.png", c.Output, page)
}

// ExpandInputs expands glob patterns in the inputs. Patterns which match
// nothing are an error. Files are returned in the order given, and each file
// is listed once.
func (c *Config) ExpandInputs() ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, in := range c.Inputs {
		matches, err := filepath.Glob(in)
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", in, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", in)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}
