// Package bitmap reads and writes Windows BMP files and converts their pixel
// arrays to and from pix.Image.
//
// Only BITMAPINFOHEADER (40 bytes) and BITMAPV5HEADER (124 bytes) files with
// 24 or 32 bits per pixel, uncompressed or in bitfields mode, are accepted.
// Writing always produces a 32bpp bitfields-mode V5 file.
package bitmap

import (
	"io"
	"os"

	"github.com/Phildo/piximg/pkg/pix"
)

// Bitmap is a decoded BMP file. Pixels is the raw, row-padded pixel array
// and always holds exactly Layout.Size bytes.
type Bitmap struct {
	FileHeader FileHeader
	DIB        DIBHeader
	Layout     Layout
	Pixels     []byte
}

// Read parses a BMP file from r.
func Read(r io.ReadSeeker) (*Bitmap, error) {
	fh, err := readFileHeader(r)
	if err != nil {
		return nil, err
	}
	dh, err := readDIBHeader(r)
	if err != nil {
		return nil, err
	}
	l, err := deriveLayout(fh, dh)
	if err != nil {
		return nil, err
	}

	if err := checkPixelArray(r, l.Offset, l.Size); err != nil {
		return nil, err
	}
	pixels := make([]byte, l.Size)
	if err := readPixelArray(r, l.Offset, pixels); err != nil {
		return nil, err
	}
	return &Bitmap{FileHeader: fh, DIB: dh, Layout: l, Pixels: pixels}, nil
}

// ReadFile opens path and parses it as a BMP file.
func ReadFile(path string) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pix.Wrap(pix.KindFileOpen, err, "can't open input file %s", path)
	}
	defer f.Close()

	return Read(f)
}

// Write encodes b to w as a 32bpp bitfields-mode V5 bitmap. Bitmaps in any
// other layout are converted first.
func Write(w io.WriteSeeker, b *Bitmap) error {
	if !b.Layout.canonical() {
		img, err := b.Image()
		if err != nil {
			return err
		}
		if b, err = FromImage(img); err != nil {
			return err
		}
	}
	if len(b.Pixels) != b.Layout.Size {
		return pix.Errorf(pix.KindFormat, "pixel array holds %d bytes, layout needs %d", len(b.Pixels), b.Layout.Size)
	}
	fh, dh := b.Layout.headers()

	if err := writeFileHeader(w, fh); err != nil {
		return err
	}
	if err := writeDIBHeader(w, dh); err != nil {
		return err
	}
	return writePixelArray(w, b.Layout.Offset, b.Pixels)
}

// WriteFile writes b to "<name>.bmp" and returns that path.
func WriteFile(name string, b *Bitmap) (string, error) {
	out := pix.BitmapName(name)
	f, err := os.Create(out)
	if err != nil {
		return "", pix.Wrap(pix.KindFileOpen, err, "can't open output file %s", out)
	}
	defer f.Close()

	if err := Write(f, b); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", pix.Wrap(pix.KindIO, err, "can't flush %s", out)
	}
	return out, nil
}
