package bitmap

import "github.com/Phildo/piximg/pkg/pix"

// MaxPixelBytes caps the pixel array a header may ask us to allocate.
const MaxPixelBytes = 1 << 30

// Layout is what the pixel converter needs to walk the pixel array. It is
// derived from the headers, never stored on disk.
type Layout struct {
	Width       int
	Height      int  // absolute
	Reversed    bool // rows stored top-down
	BPP         int
	Stride      int // bytes per row, multiple of 4
	Size        int // Stride * Height
	Offset      int64
	Compression uint32

	RedMask   uint32
	GreenMask uint32
	BlueMask  uint32
	AlphaMask uint32
}

// Stride is the padded row length in bytes of a width-pixel row at bpp.
func Stride(width, bpp int) int {
	return ((bpp*width + 31) / 32) * 4
}

func deriveLayout(fh FileHeader, dh DIBHeader) (Layout, error) {
	if dh.Width < 0 {
		return Layout{}, pix.Errorf(pix.KindFormat, "width invalid (%d)", dh.Width)
	}
	l := Layout{
		Width:       int(dh.Width),
		Height:      int(dh.Height),
		BPP:         int(dh.BPP),
		Offset:      int64(fh.Offset),
		Compression: dh.Compression,
		RedMask:     dh.RedMask,
		GreenMask:   dh.GreenMask,
		BlueMask:    dh.BlueMask,
		AlphaMask:   dh.AlphaMask,
	}
	if dh.Height < 0 {
		l.Height = -int(dh.Height)
		l.Reversed = true
	}
	l.Stride = Stride(l.Width, l.BPP)

	size := int64(l.Stride) * int64(l.Height)
	if size > MaxPixelBytes {
		return Layout{}, pix.Errorf(pix.KindOutOfMemory, "pixel array of %d bytes exceeds %d", size, MaxPixelBytes)
	}
	l.Size = int(size)
	return l, nil
}
