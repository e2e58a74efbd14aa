package atlas

import (
	"io"

	"github.com/depp/texpack/lib/rectpack"
	"github.com/sirupsen/logrus"
)

// MaxPageSize is the largest allowed page width or height.
const MaxPageSize = 16 * 1024

// Options configures a Builder.
type Options struct {
	// MaxWidth and MaxHeight are the maximum size of each page. Pages are
	// cropped to their contents, so they may be smaller.
	MaxWidth  int
	MaxHeight int

	// Padding is the number of pixels left between neighboring images. No
	// padding is added along the page edges.
	Padding int

	// Bleed repeats the edge pixels of each image into the padding to its
	// right and below it.
	Bleed bool

	// KeepReadable keeps page buffers after Page.Upload. If false, the
	// buffer is released after the first upload.
	KeepReadable bool

	// Algorithm is the name of the packing algorithm. See rectpack.Lookup.
	Algorithm string

	// Workers is the number of pages composited at the same time. Values
	// less than 1 composite one page at a time.
	Workers int

	// Logger receives build progress. Nil discards log output.
	Logger logrus.FieldLogger
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		MaxWidth:  2048,
		MaxHeight: 2048,
		Padding:   2,
		Algorithm: "guillotine",
		Workers:   1,
	}
}

// Validate checks that the options are valid.
func (o *Options) Validate() error {
	if o.MaxWidth < 1 || o.MaxWidth > MaxPageSize {
		return &ConfigError{Field: "MaxWidth", Reason: "must be between 1 and 16384"}
	}
	if o.MaxHeight < 1 || o.MaxHeight > MaxPageSize {
		return &ConfigError{Field: "MaxHeight", Reason: "must be between 1 and 16384"}
	}
	if o.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if _, err := rectpack.Lookup(o.Algorithm, 0); err != nil {
		return &ConfigError{Field: "Algorithm", Reason: err.Error()}
	}
	return nil
}

func (o *Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
