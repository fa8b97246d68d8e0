package bitmap

import (
	"io"

	"github.com/Phildo/piximg/pkg/pix"
)

// FileHeaderLen is the encoded size of FileHeader.
const FileHeaderLen = 14

var magic = [2]byte{'B', 'M'}

// FileHeader is the BITMAPFILEHEADER that opens every BMP file.
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type FileHeader struct {
	Magic     [2]byte // "BM"
	Size      uint32  // whole file, in bytes
	ReservedA uint16
	ReservedB uint16
	Offset    uint32 // start of the pixel array
}

func readFileHeader(r io.Reader) (FileHeader, error) {
	var h FileHeader
	if _, err := io.ReadFull(r, h.Magic[:]); err != nil {
		return h, pix.Wrap(pix.KindIO, err, "error reading field magic")
	}
	if h.Magic != magic {
		return h, pix.Errorf(pix.KindFormat, "file not valid bitmap (magic %q)", h.Magic[:])
	}
	if err := readField(r, &h.Size, "size"); err != nil {
		return h, err
	}
	if h.Size == 0 {
		return h, pix.Errorf(pix.KindFormat, "filesize invalid")
	}
	if err := readField(r, &h.ReservedA, "reserved_a"); err != nil {
		return h, err
	}
	if err := readField(r, &h.ReservedB, "reserved_b"); err != nil {
		return h, err
	}
	if err := readField(r, &h.Offset, "offset"); err != nil {
		return h, err
	}
	if h.Offset == 0 {
		return h, pix.Errorf(pix.KindFormat, "data offset invalid")
	}
	return h, nil
}

// writeFileHeader emits h verbatim after the literal magic.
func writeFileHeader(w io.Writer, h FileHeader) error {
	if _, err := w.Write(magic[:]); err != nil {
		return pix.Wrap(pix.KindIO, err, "error writing field magic")
	}
	if err := writeField(w, h.Size, "size"); err != nil {
		return err
	}
	if err := writeField(w, h.ReservedA, "reserved_a"); err != nil {
		return err
	}
	if err := writeField(w, h.ReservedB, "reserved_b"); err != nil {
		return err
	}
	return writeField(w, h.Offset, "offset")
}
