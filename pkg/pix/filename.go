// filename.go - Dimension-in-filename convention of the raw formats.
package pix

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Format suffixes carried after the dimensions, e.g. "img.16x32pi".
const (
	ImageSuffix    = "pi"
	BitFieldSuffix = "bf"
	BitmapExt      = ".bmp"
)

// ParseDims extracts width and height from a name of the form
// "<name>.<width>x<height><suffix>". Scanning starts at the first '.' of the
// base name.
func ParseDims(path, suffix string) (width, height int, err error) {
	name := filepath.Base(path)
	expect := fmt.Sprintf("expected <name>.<w>x<h>%s", suffix)

	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		return 0, 0, Errorf(KindFilename, "%s: %s (no . extension found)", path, expect)
	}
	ext := name[dot+1:]

	x := strings.IndexByte(ext, 'x')
	if x < 0 {
		return 0, 0, Errorf(KindFilename, "%s: %s (no x found in extension)", path, expect)
	}
	rest := ext[x+1:]

	end := strings.IndexByte(rest, suffix[0])
	if end < 0 {
		return 0, 0, Errorf(KindFilename, "%s: %s (no %c found in extension)", path, expect, suffix[0])
	}
	if rest[end:] != suffix {
		return 0, 0, Errorf(KindFilename, "%s: %s (extension ends in %q)", path, expect, rest[end:])
	}

	width, err = strconv.Atoi(ext[:x])
	if err != nil || width <= 0 {
		return 0, 0, Errorf(KindFilename, "%s: bad width %q", path, ext[:x])
	}
	height, err = strconv.Atoi(rest[:end])
	if err != nil || height <= 0 {
		return 0, 0, Errorf(KindFilename, "%s: bad height %q", path, rest[:end])
	}
	return width, height, nil
}

// BitmapName is the output path for a bitmap written under name.
func BitmapName(name string) string {
	return name + BitmapExt
}

// ImageName is the output path for a width x height Image written under name.
func ImageName(name string, width, height int) string {
	return fmt.Sprintf("%s.%dx%d%s", name, width, height, ImageSuffix)
}

// BitFieldName is the output path for a width x height BitField written under name.
func BitFieldName(name string, width, height int) string {
	return fmt.Sprintf("%s.%dx%d%s", name, width, height, BitFieldSuffix)
}
