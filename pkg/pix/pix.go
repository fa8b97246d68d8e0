// Package pix holds the in-memory pixel representations shared by the codecs:
// an RGBA grid (Image) and a packed 1-bit grid (BitField), together with the
// raw ".<w>x<h>pi" and ".<w>x<h>bf" file formats that store them.
package pix

import (
	"image"
	"image/color"
)

// MaxPixels caps width*height for any grid allocated from untrusted input.
const MaxPixels = 1 << 28

// Pix is one straight (non-premultiplied) RGBA sample.
type Pix struct {
	R, G, B, A uint8
}

// Image is a row-major, top-down grid of Pix.
type Image struct {
	Width  int
	Height int
	Data   []Pix
}

// NewImage allocates a zeroed width x height grid.
func NewImage(width, height int) (*Image, error) {
	if err := checkDims(width, height); err != nil {
		return nil, err
	}
	return &Image{
		Width:  width,
		Height: height,
		Data:   make([]Pix, width*height),
	}, nil
}

// At returns the pixel at column x, row y (row 0 is the top).
func (img *Image) At(x, y int) Pix {
	return img.Data[y*img.Width+x]
}

// Set stores p at column x, row y.
func (img *Image) Set(x, y int, p Pix) {
	img.Data[y*img.Width+x] = p
}

// NRGBA copies img into a standard library image.
func (img *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i, p := range img.Data {
		out.Pix[i*4+0] = p.R
		out.Pix[i*4+1] = p.G
		out.Pix[i*4+2] = p.B
		out.Pix[i*4+3] = p.A
	}
	return out
}

// FromImage copies any image.Image into a new Image.
func FromImage(m image.Image) (*Image, error) {
	b := m.Bounds()
	img, err := NewImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			img.Data[y*img.Width+x] = Pix{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	return img, nil
}

// BitField is a width x height grid packed one bit per pixel, MSB first.
type BitField struct {
	Width  int
	Height int
	Data   []byte
}

// BitFieldLen is the byte count of a packed width x height grid.
func BitFieldLen(width, height int) int {
	return (width*height + 7) / 8
}

// NewBitField allocates a cleared width x height bitfield.
func NewBitField(width, height int) (*BitField, error) {
	if err := checkDims(width, height); err != nil {
		return nil, err
	}
	return &BitField{
		Width:  width,
		Height: height,
		Data:   make([]byte, BitFieldLen(width, height)),
	}, nil
}

// Bit reports whether pixel idx (row-major) is set.
func (b *BitField) Bit(idx int) bool {
	return b.Data[idx/8]&(1<<(7-idx%8)) != 0
}

// SetBit sets pixel idx (row-major).
func (b *BitField) SetBit(idx int) {
	b.Data[idx/8] |= 1 << (7 - idx%8)
}

// Image expands the bitfield into an RGBA grid. A set bit yields alpha 1;
// every other channel, and alpha of a clear bit, stays 0.
func (b *BitField) Image() (*Image, error) {
	img, err := NewImage(b.Width, b.Height)
	if err != nil {
		return nil, err
	}
	for idx := range img.Data {
		if b.Bit(idx) {
			img.Data[idx].A = 1
		}
	}
	return img, nil
}

// BitField packs the grid into one bit per pixel. A pixel's bit is set when
// its red channel is 0. This is not the inverse of (*BitField).Image.
func (img *Image) BitField() (*BitField, error) {
	bf, err := NewBitField(img.Width, img.Height)
	if err != nil {
		return nil, err
	}
	for idx, p := range img.Data {
		if p.R == 0 {
			bf.SetBit(idx)
		}
	}
	return bf, nil
}

func checkDims(width, height int) error {
	if width < 0 || height < 0 {
		return Errorf(KindFormat, "invalid dimensions %dx%d", width, height)
	}
	if width != 0 && height > MaxPixels/width {
		return Errorf(KindOutOfMemory, "image %dx%d exceeds %d pixels", width, height, MaxPixels)
	}
	return nil
}
