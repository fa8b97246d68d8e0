package bitmap

import (
	"io"

	"github.com/Phildo/piximg/pkg/pix"
)

// DIB header sizes. Only InfoHeaderLen and V5HeaderLen are accepted.
const (
	coreHeaderLen  = 12
	v2HeaderLen    = 52
	v3HeaderLen    = 56
	os22xHeaderLen = 64
	v4HeaderLen    = 108

	InfoHeaderLen = 40
	V5HeaderLen   = 124
)

// Compression modes.
const (
	CompressionRGB       = 0
	CompressionBitFields = 3
)

// masksLen is the size of the four channel masks following the common fields.
const masksLen = 16

var rejectedHeaders = map[uint32]string{
	coreHeaderLen:  "CORE",
	os22xHeaderLen: "OS22X",
	v2HeaderLen:    "V2",
	v3HeaderLen:    "V3",
	v4HeaderLen:    "V4",
}

// DIBHeader holds the fields of a BITMAPINFOHEADER or BITMAPV5HEADER that
// the codec understands. The masks are only populated from a V5 header in
// bitfields mode.
type DIBHeader struct {
	HeaderSize       uint32
	Width            int32
	Height           int32 // negative: rows stored top-down
	Planes           uint16
	BPP              uint16
	Compression      uint32
	ImageSize        uint32
	HorizResolution  int32
	VertResolution   int32
	NColors          uint32
	NImportantColors uint32

	RedMask   uint32
	GreenMask uint32
	BlueMask  uint32
	AlphaMask uint32
}

func readDIBHeader(r io.Reader) (DIBHeader, error) {
	var h DIBHeader
	if err := readField(r, &h.HeaderSize, "header_size"); err != nil {
		return h, err
	}
	switch h.HeaderSize {
	case InfoHeaderLen, V5HeaderLen:
	default:
		if name, ok := rejectedHeaders[h.HeaderSize]; ok {
			return h, pix.Errorf(pix.KindUnsupported, "unsupported DIB header %s (header size %d)", name, h.HeaderSize)
		}
		return h, pix.Errorf(pix.KindUnsupported, "unsupported DIB header (header size %d)", h.HeaderSize)
	}

	if err := readField(r, &h.Width, "width"); err != nil {
		return h, err
	}
	if err := readField(r, &h.Height, "height"); err != nil {
		return h, err
	}
	if err := readField(r, &h.Planes, "nplanes"); err != nil {
		return h, err
	}
	if err := readField(r, &h.BPP, "bpp"); err != nil {
		return h, err
	}
	if err := readField(r, &h.Compression, "compression"); err != nil {
		return h, err
	}
	if h.Compression != CompressionRGB && h.Compression != CompressionBitFields {
		return h, pix.Errorf(pix.KindUnsupported, "compressed bitmaps unsupported (compression %d)", h.Compression)
	}
	if err := readField(r, &h.ImageSize, "image_size"); err != nil {
		return h, err
	}
	if h.ImageSize != 0 && int64(h.ImageSize) < minImageSize(h) {
		return h, pix.Errorf(pix.KindUnsupported, "compressed bitmaps unsupported (image size %d)", h.ImageSize)
	}
	if err := readField(r, &h.HorizResolution, "horiz_resolution"); err != nil {
		return h, err
	}
	if err := readField(r, &h.VertResolution, "vert_resolution"); err != nil {
		return h, err
	}
	if err := readField(r, &h.NColors, "ncolors"); err != nil {
		return h, err
	}
	if h.NColors != 0 {
		return h, pix.Errorf(pix.KindUnsupported, "indexed bitmaps unsupported (%d colors)", h.NColors)
	}
	if err := readField(r, &h.NImportantColors, "nimportantcolors"); err != nil {
		return h, err
	}

	if h.HeaderSize == V5HeaderLen && h.Compression == CompressionBitFields {
		if err := readField(r, &h.RedMask, "red_mask"); err != nil {
			return h, err
		}
		if err := readField(r, &h.GreenMask, "green_mask"); err != nil {
			return h, err
		}
		if err := readField(r, &h.BlueMask, "blue_mask"); err != nil {
			return h, err
		}
		if h.BPP == 32 {
			if err := readField(r, &h.AlphaMask, "alpha_mask"); err != nil {
				return h, err
			}
		}
	}
	return h, nil
}

// minImageSize is width*|height|*(bpp/8), the smallest uncompressed payload.
func minImageSize(h DIBHeader) int64 {
	height := int64(h.Height)
	if height < 0 {
		height = -height
	}
	return int64(h.Width) * height * int64(h.BPP/8)
}

// writeDIBHeader always emits a V5 header: the common fields, the four masks,
// then zeros up to V5HeaderLen.
func writeDIBHeader(w io.Writer, h DIBHeader) error {
	fw := fieldWriter{w: w}
	put(&fw, uint32(V5HeaderLen), "header_size")
	put(&fw, h.Width, "width")
	put(&fw, h.Height, "height")
	put(&fw, h.Planes, "nplanes")
	put(&fw, h.BPP, "bpp")
	put(&fw, h.Compression, "compression")
	put(&fw, h.ImageSize, "image_size")
	put(&fw, h.HorizResolution, "horiz_resolution")
	put(&fw, h.VertResolution, "vert_resolution")
	put(&fw, h.NColors, "ncolors")
	put(&fw, h.NImportantColors, "nimportantcolors")
	put(&fw, h.RedMask, "red_mask")
	put(&fw, h.GreenMask, "green_mask")
	put(&fw, h.BlueMask, "blue_mask")
	put(&fw, h.AlphaMask, "alpha_mask")
	if fw.err != nil {
		return fw.err
	}

	pad := make([]byte, V5HeaderLen-InfoHeaderLen-masksLen)
	if _, err := w.Write(pad); err != nil {
		return pix.Wrap(pix.KindIO, err, "error writing V5 header tail")
	}
	return nil
}
