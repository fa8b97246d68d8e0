// load.go - Load any supported input into a pix.Image.
package generator

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Phildo/piximg/pkg/bitmap"
	"github.com/Phildo/piximg/pkg/pix"
)

// Load reads path into a new image. Bitmaps go through the bitmap codec;
// bitmaps it does not support (palettes, 16bpp, RLE) fall back to
// golang.org/x/image/bmp. Raw grids and bitfields use their own readers and
// everything else goes through image.Decode.
func Load(path string) (*pix.Image, error) {
	switch Detect(path) {
	case FormatBMP:
		img, err := loadBitmap(path)
		if err == nil || !pix.IsKind(err, pix.KindUnsupported) {
			return img, err
		}
		img, ferr := decodeFile(path, bmp.Decode)
		if ferr != nil {
			return nil, fmt.Errorf("%w (fallback decoder: %v)", err, ferr)
		}
		return img, nil
	case FormatImage:
		return pix.ReadImageFile(path)
	case FormatBitField:
		bf, err := pix.ReadBitFieldFile(path)
		if err != nil {
			return nil, err
		}
		return bf.Image()
	}
	return decodeFile(path, func(r io.Reader) (image.Image, error) {
		m, _, err := image.Decode(r)
		return m, err
	})
}

// Decode reads an encoded image (PNG, JPEG, GIF, BMP, TIFF, WebP) from r.
func Decode(r io.Reader) (*pix.Image, string, error) {
	m, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	img, err := pix.FromImage(m)
	return img, name, err
}

func loadBitmap(path string) (*pix.Image, error) {
	b, err := bitmap.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return b.Image()
}

func decodeFile(path string, decode func(io.Reader) (image.Image, error)) (*pix.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pix.Wrap(pix.KindFileOpen, err, "can't open input file %s", path)
	}
	defer f.Close()

	m, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return pix.FromImage(m)
}
