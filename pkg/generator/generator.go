// Package generator moves images between files and pix.Image.
//
// All output follows a unified pipeline: obtain a pix.Image first (loaded
// from any supported input or created as a solid colour), then write it as a
// bitmap, a raw .pi grid, a .bf bitfield or a PNG.
package generator

import (
	"fmt"
	"strings"

	"github.com/Phildo/piximg/pkg/bitmap"
	"github.com/Phildo/piximg/pkg/pix"
)

// Format names an on-disk representation.
type Format string

const (
	FormatBMP      Format = "bmp"
	FormatImage    Format = "pi"
	FormatBitField Format = "bf"
	FormatPNG      Format = "png"
	FormatOther    Format = "" // anything image.Decode understands
)

// ParseFormat validates a user-supplied output format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatBMP, FormatImage, FormatBitField, FormatPNG:
		return f, nil
	}
	return FormatOther, fmt.Errorf("unsupported format %q: use bmp, pi, bf or png", s)
}

// Detect infers the format of an input path from its name.
func Detect(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, pix.BitmapExt):
		return FormatBMP
	case strings.HasSuffix(lower, ".png"):
		return FormatPNG
	case strings.HasSuffix(lower, pix.ImageSuffix) && strings.Contains(lower, "."):
		return FormatImage
	case strings.HasSuffix(lower, pix.BitFieldSuffix) && strings.Contains(lower, "."):
		return FormatBitField
	}
	return FormatOther
}

// Config holds parameters for solid-colour generation.
type Config struct {
	Width  int    // Pixel width (default: 320)
	Height int    // Pixel height (default: 240)
	Color  string // Hex "#rrggbb[aa]" or "random"
}

// Solid creates the solid-colour image described by cfg.
func Solid(cfg Config) (*pix.Image, error) {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 320
	}
	if h <= 0 {
		h = 240
	}
	c, err := ParseColor(cfg.Color)
	if err != nil {
		return nil, err
	}
	return NewSolidImage(w, h, c)
}

// Save writes img under name in the given format and returns the path
// written. Name carries no extension; each format appends its own.
func Save(name string, format Format, img *pix.Image) (string, error) {
	switch format {
	case FormatBMP:
		b, err := bitmap.FromImage(img)
		if err != nil {
			return "", err
		}
		return bitmap.WriteFile(name, b)
	case FormatImage:
		return pix.WriteImageFile(name, img)
	case FormatBitField:
		bf, err := img.BitField()
		if err != nil {
			return "", err
		}
		return pix.WriteBitFieldFile(name, bf)
	case FormatPNG:
		return WritePNG(name, img)
	}
	return "", fmt.Errorf("unsupported output format %q", format)
}
