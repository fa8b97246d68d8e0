// file.go - Raw .pi (RGBA bytes) and .bf (packed bits) file IO.
package pix

import (
	"io"
	"os"
)

// ReadImageFile loads "<name>.<w>x<h>pi": w*h*4 bytes, R G B A per pixel,
// rows top-down.
func ReadImageFile(path string) (*Image, error) {
	width, height, err := ParseDims(path, ImageSuffix)
	if err != nil {
		return nil, err
	}
	img, err := NewImage(width, height)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Wrap(KindFileOpen, err, "can't open input file %s", path)
	}
	defer f.Close()

	buf := make([]byte, width*height*4)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, Wrap(KindIO, err, "can't read %d bytes from %s", len(buf), path)
	}
	for i := range img.Data {
		img.Data[i] = Pix{R: buf[i*4+0], G: buf[i*4+1], B: buf[i*4+2], A: buf[i*4+3]}
	}
	return img, nil
}

// WriteImageFile stores img as "<name>.<w>x<h>pi" and returns that path.
func WriteImageFile(name string, img *Image) (string, error) {
	out := ImageName(name, img.Width, img.Height)

	buf := make([]byte, len(img.Data)*4)
	for i, p := range img.Data {
		buf[i*4+0] = p.R
		buf[i*4+1] = p.G
		buf[i*4+2] = p.B
		buf[i*4+3] = p.A
	}
	if err := writeFile(out, buf); err != nil {
		return "", err
	}
	return out, nil
}

// ReadBitFieldFile loads "<name>.<w>x<h>bf".
func ReadBitFieldFile(path string) (*BitField, error) {
	width, height, err := ParseDims(path, BitFieldSuffix)
	if err != nil {
		return nil, err
	}
	bf, err := NewBitField(width, height)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Wrap(KindFileOpen, err, "can't open input file %s", path)
	}
	defer f.Close()

	if _, err := io.ReadFull(f, bf.Data); err != nil {
		return nil, Wrap(KindIO, err, "can't read %d bytes from %s", len(bf.Data), path)
	}
	return bf, nil
}

// WriteBitFieldFile stores bf as "<name>.<w>x<h>bf" and returns that path.
func WriteBitFieldFile(name string, bf *BitField) (string, error) {
	out := BitFieldName(name, bf.Width, bf.Height)
	if err := writeFile(out, bf.Data); err != nil {
		return "", err
	}
	return out, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return Wrap(KindFileOpen, err, "can't open output file %s", path)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return Wrap(KindIO, err, "can't write %d bytes to %s", len(data), path)
	}
	if err := f.Close(); err != nil {
		return Wrap(KindIO, err, "can't flush %s", path)
	}
	return nil
}
