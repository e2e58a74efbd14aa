package atlas

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when no images are given to Build.
	ErrEmptyInput = errors.New("atlas: no images")

	// ErrInvalidImage is returned for a missing image, an image with zero
	// width or height, or an image whose pixel buffer has the wrong length.
	ErrInvalidImage = errors.New("atlas: invalid image")

	// ErrImageTooLarge is returned when an image is wider or taller than a
	// page. Images are never split across pages.
	ErrImageTooLarge = errors.New("atlas: image larger than page")

	// ErrPackingExhausted is returned when an image does not fit in an empty
	// page. This indicates a bug in the packer.
	ErrPackingExhausted = errors.New("atlas: image does not fit in empty page")

	// ErrOutOfBounds is returned by Blit when the source does not fit in the
	// destination at the given offset.
	ErrOutOfBounds = errors.New("atlas: blit out of bounds")

	// ErrReleased is returned when reading a page buffer that was discarded
	// after upload.
	ErrReleased = errors.New("atlas: page buffer released")
)

// An ImageError is an error caused by one of the input images.
type ImageError struct {
	// Index is the position of the image in the input.
	Index int
	// Name is the image name, empty if the image is missing.
	Name string
	Err  error
}

func (e *ImageError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("image #%d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("image #%d %q: %v", e.Index, e.Name, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// A ConfigError is an invalid builder option.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid options." + e.Field + ": " + e.Reason
}
