// Package preview renders a pix.Image as a scaled PNG-ready picture with a
// caption strip underneath, for eyeballing decoded bitmaps and bitfields.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/Phildo/piximg/pkg/pix"
)

// Options controls rendering. Zero values pick the defaults.
type Options struct {
	Width      int     // target image width in pixels (default: source width, at least 256)
	Smooth     bool    // CatmullRom instead of nearest-neighbour scaling
	FontPath   string  // optional TTF/OTF for the caption
	FontSize   float64 // caption size in points (default: 14)
	Background color.RGBA
	TextColor  color.RGBA
}

var (
	defaultBackground = color.RGBA{0x1a, 0x1a, 0x2e, 0xff}
	defaultText       = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
)

const (
	minWidth = 256
	padding  = 8
)

// Render scales img to opts.Width and draws caption below it. Long captions
// are wrapped to the output width.
func Render(img *pix.Image, caption string, opts Options) (*image.RGBA, error) {
	if opts.FontSize <= 0 {
		opts.FontSize = 14
	}
	if opts.Background == (color.RGBA{}) {
		opts.Background = defaultBackground
	}
	if opts.TextColor == (color.RGBA{}) {
		opts.TextColor = defaultText
	}
	w := opts.Width
	if w <= 0 {
		w = max(img.Width, minWidth)
	}
	h := 0
	if img.Width > 0 {
		h = max(img.Height*w/img.Width, 1)
	}

	fs, err := loadFont(opts.FontPath)
	if err != nil {
		return nil, err
	}
	face, err := fs.face(opts.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	lines := wrapText(caption, w-2*padding, face)
	lineHeight := face.Metrics().Height.Ceil()
	captionH := 0
	if len(lines) > 0 {
		captionH = len(lines)*lineHeight + 2*padding
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h+captionH))
	draw.Draw(out, out.Bounds(), &image.Uniform{opts.Background}, image.Point{}, draw.Src)

	if h > 0 {
		var scaler draw.Interpolator = draw.NearestNeighbor
		if opts.Smooth {
			scaler = draw.CatmullRom
		}
		src := img.NRGBA()
		scaler.Scale(out, image.Rect(0, 0, w, h), src, src.Bounds(), draw.Over, nil)
	}

	y := h + padding + face.Metrics().Ascent.Ceil()
	for _, line := range lines {
		drawString(out, line, padding, y, opts.TextColor, face)
		y += lineHeight
	}
	return out, nil
}

// Caption is the default caption for a preview: name plus dimensions.
func Caption(name string, img *pix.Image) string {
	return fmt.Sprintf("%s %dx%d", name, img.Width, img.Height)
}

// wrapText breaks text into lines that each fit within maxWidth pixels.
func wrapText(text string, maxWidth int, face font.Face) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxWidth <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		test := current + " " + word
		if font.MeasureString(face, test).Ceil() > maxWidth {
			lines = append(lines, current)
			current = word
		} else {
			current = test
		}
	}
	return append(lines, current)
}

// drawString draws text with its baseline at (x, y).
func drawString(img *image.RGBA, text string, x, y int, col color.Color, face font.Face) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
