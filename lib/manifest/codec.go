package manifest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// A Format is a manifest encoding.
type Format uint32

const (
	// JSON is indented JSON text.
	JSON Format = iota
	// YAML is YAML text.
	YAML
	// CBOR is CBOR with core deterministic encoding.
	CBOR
)

var formats = [...]struct {
	name string
	ext  string
}{
	JSON: {name: "json", ext: ".json"},
	YAML: {name: "yaml", ext: ".yaml"},
	CBOR: {name: "cbor", ext: ".cbor"},
}

// String returns the name of the format.
func (f Format) String() string {
	if int(f) < len(formats) {
		return formats[f].name
	}
	return fmt.Sprintf("Format(%d)", uint32(f))
}

// Set sets the format to a string value.
func (f *Format) Set(s string) error {
	for i, n := range formats {
		if strings.EqualFold(s, n.name) {
			*f = Format(i)
			return nil
		}
	}
	return fmt.Errorf("unknown manifest format: %q", s)
}

// Type returns the flag type name.
func (*Format) Type() string {
	return "format"
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if int(f) < len(formats) {
		return formats[f].ext
	}
	return ""
}

// FormatForFile returns the format for a file, based on its extension.
func FormatForFile(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".cbor":
		return CBOR, nil
	}
	return 0, fmt.Errorf("unknown manifest file extension: %q", filename)
}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("manifest: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("manifest: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode writes the manifest in the given format.
func Encode(w io.Writer, m *Manifest, f Format) error {
	switch f {
	case JSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(m)
	case YAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(m); err != nil {
			return err
		}
		return e.Close()
	case CBOR:
		return cborEnc.NewEncoder(w).Encode(m)
	}
	return fmt.Errorf("cannot encode manifest as %v", f)
}

// Decode reads a manifest in the given format and validates it.
func Decode(r io.Reader, f Format) (*Manifest, error) {
	var m Manifest
	var err error
	switch f {
	case JSON:
		d := json.NewDecoder(r)
		d.DisallowUnknownFields()
		err = d.Decode(&m)
	case YAML:
		d := yaml.NewDecoder(r)
		d.KnownFields(true)
		err = d.Decode(&m)
	case CBOR:
		err = cborDec.NewDecoder(r).Decode(&m)
	default:
		return nil, fmt.Errorf("cannot decode manifest as %v", f)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %v manifest: %w", f, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadFile reads a manifest file. The format is chosen by file extension.
func ReadFile(filename string) (*Manifest, error) {
	f, err := FormatForFile(filename)
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	m, err := Decode(bufio.NewReader(fp), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// WriteFile writes a manifest file. The format is chosen by file extension.
func WriteFile(filename string, m *Manifest) error {
	f, err := FormatForFile(filename)
	if err != nil {
		return err
	}
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	w := bufio.NewWriter(fp)
	if err := Encode(w, m, f); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return fp.Close()
}
