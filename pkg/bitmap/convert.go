package bitmap

import "github.com/Phildo/piximg/pkg/pix"

// Canonical layout produced by the encoder: 32bpp BGRA in bitfields mode.
const (
	canonicalBPP       = 32
	canonicalRedMask   = maskByte2
	canonicalGreenMask = maskByte1
	canonicalBlueMask  = maskByte0
	canonicalAlphaMask = maskByte3
)

// channel is the byte of a packed pixel holding one colour channel, if any.
type channel struct {
	idx int
	ok  bool
}

func at(idx int) channel { return channel{idx: idx, ok: true} }

func fromMask(mask uint32) channel {
	idx, ok := MaskMap(mask)
	return channel{idx: idx, ok: ok}
}

// sample reads the channel from one packed pixel; an absent channel reads as 255.
func (c channel) sample(px []byte) uint8 {
	if !c.ok {
		return 255
	}
	return px[c.idx]
}

type channels struct {
	r, g, b, a channel
}

// channelsFor picks the byte offsets used to unpack pixels of layout l.
func channelsFor(l Layout) (ch channels, bytesPP int, err error) {
	switch l.BPP {
	case 32:
		bytesPP = 4
		if l.Compression == CompressionBitFields {
			ch = channels{fromMask(l.RedMask), fromMask(l.GreenMask), fromMask(l.BlueMask), fromMask(l.AlphaMask)}
		} else {
			ch = channels{at(2), at(1), at(0), at(3)}
		}
	case 24:
		bytesPP = 3
		ch = channels{r: at(2), g: at(1), b: at(0)}
		if l.Compression == CompressionBitFields {
			ch = channels{fromMask(l.RedMask), fromMask(l.GreenMask), fromMask(l.BlueMask), fromMask(l.AlphaMask)}
		}
		// Alpha is sampled from the blue byte. 24bpp headers never carry an
		// alpha mask, so alpha always ends up absent in practice.
		ch.a = channel{idx: ch.b.idx, ok: ch.a.ok && ch.b.ok}
		// A mask naming the fourth byte points past a 3-byte pixel.
		for _, c := range []*channel{&ch.r, &ch.g, &ch.b, &ch.a} {
			if c.idx >= bytesPP {
				c.ok = false
			}
		}
	default:
		return ch, 0, pix.Errorf(pix.KindUnsupported, "unsupported bpp %d", l.BPP)
	}
	return ch, bytesPP, nil
}

// Image decodes the pixel array into a new top-down RGBA grid.
func (b *Bitmap) Image() (*pix.Image, error) {
	l := b.Layout
	ch, bytesPP, err := channelsFor(l)
	if err != nil {
		return nil, err
	}
	if len(b.Pixels) < l.Stride*l.Height {
		return nil, pix.Errorf(pix.KindFormat, "pixel array holds %d bytes, layout needs %d", len(b.Pixels), l.Stride*l.Height)
	}

	img, err := pix.NewImage(l.Width, l.Height)
	if err != nil {
		return nil, err
	}
	for i := 0; i < l.Height; i++ {
		src := l.Height - 1 - i
		if l.Reversed {
			src = i
		}
		row := b.Pixels[src*l.Stride : (src+1)*l.Stride]
		for j := 0; j < l.Width; j++ {
			px := row[j*bytesPP : (j+1)*bytesPP]
			img.Data[i*l.Width+j] = pix.Pix{
				R: ch.r.sample(px),
				G: ch.g.sample(px),
				B: ch.b.sample(px),
				A: ch.a.sample(px),
			}
		}
	}
	return img, nil
}

// FromImage encodes img as a canonical bitmap: 32bpp, bitfields mode, BGRA
// bytes, rows stored bottom-up. The headers are filled in as Write emits them.
func FromImage(img *pix.Image) (*Bitmap, error) {
	if img.Width < 0 || img.Height < 0 || len(img.Data) != img.Width*img.Height {
		return nil, pix.Errorf(pix.KindFormat, "image %dx%d holds %d pixels", img.Width, img.Height, len(img.Data))
	}
	l := Layout{
		Width:       img.Width,
		Height:      img.Height,
		BPP:         canonicalBPP,
		Stride:      img.Width * 4,
		Offset:      FileHeaderLen + V5HeaderLen,
		Compression: CompressionBitFields,
		RedMask:     canonicalRedMask,
		GreenMask:   canonicalGreenMask,
		BlueMask:    canonicalBlueMask,
		AlphaMask:   canonicalAlphaMask,
	}
	l.Size = l.Stride * l.Height

	ch := channels{fromMask(l.RedMask), fromMask(l.GreenMask), fromMask(l.BlueMask), fromMask(l.AlphaMask)}
	buf := make([]byte, l.Size)
	for i := 0; i < l.Height; i++ {
		row := buf[(l.Height-1-i)*l.Stride:]
		for j := 0; j < l.Width; j++ {
			p := img.Data[i*l.Width+j]
			px := row[j*4 : j*4+4]
			px[ch.r.idx] = p.R
			px[ch.g.idx] = p.G
			px[ch.b.idx] = p.B
			px[ch.a.idx] = p.A
		}
	}

	fh, dh := l.headers()
	return &Bitmap{FileHeader: fh, DIB: dh, Layout: l, Pixels: buf}, nil
}

// canonical reports whether l is exactly what FromImage produces.
func (l Layout) canonical() bool {
	return l.BPP == canonicalBPP &&
		l.Compression == CompressionBitFields &&
		!l.Reversed &&
		l.Stride == l.Width*4 &&
		l.Offset == FileHeaderLen+V5HeaderLen &&
		l.RedMask == canonicalRedMask &&
		l.GreenMask == canonicalGreenMask &&
		l.BlueMask == canonicalBlueMask &&
		l.AlphaMask == canonicalAlphaMask
}

// headers builds the file and V5 headers describing l.
func (l Layout) headers() (FileHeader, DIBHeader) {
	height := int32(l.Height)
	if l.Reversed {
		height = -height
	}
	fh := FileHeader{
		Magic:  magic,
		Size:   uint32(l.Offset) + uint32(l.Size),
		Offset: uint32(l.Offset),
	}
	dh := DIBHeader{
		HeaderSize:  V5HeaderLen,
		Width:       int32(l.Width),
		Height:      height,
		Planes:      1,
		BPP:         uint16(l.BPP),
		Compression: l.Compression,
		ImageSize:   uint32(l.Size),
		RedMask:     l.RedMask,
		GreenMask:   l.GreenMask,
		BlueMask:    l.BlueMask,
		AlphaMask:   l.AlphaMask,
	}
	return fh, dh
}
