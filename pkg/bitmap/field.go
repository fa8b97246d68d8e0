package bitmap

import (
	"encoding/binary"
	"io"

	"github.com/Phildo/piximg/pkg/pix"
)

// fixedWidth lists the on-disk field types of the BMP headers.
type fixedWidth interface {
	~uint16 | ~uint32 | ~int32
}

// readField decodes one little-endian field into dst.
func readField[T fixedWidth](r io.Reader, dst *T, name string) error {
	if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
		return pix.Wrap(pix.KindIO, err, "error reading field %s", name)
	}
	return nil
}

// writeField encodes one little-endian field.
func writeField[T fixedWidth](w io.Writer, v T, name string) error {
	if err := binary.Write(w, binary.LittleEndian, v); err != nil {
		return pix.Wrap(pix.KindIO, err, "error writing field %s", name)
	}
	return nil
}

// fieldWriter writes a run of fields, keeping the first error.
type fieldWriter struct {
	w   io.Writer
	err error
}

func put[T fixedWidth](fw *fieldWriter, v T, name string) {
	if fw.err == nil {
		fw.err = writeField(fw.w, v, name)
	}
}
