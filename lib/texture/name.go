package texture

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SpriteName returns the sprite name for an image file: the file name without
// directory or extension. The name is converted to Unicode normal form C, so
// the same name typed on different systems compares equal.
func SpriteName(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return norm.NFC.String(base)
}
