package bitmap

import (
	"io"

	"github.com/Phildo/piximg/pkg/pix"
)

// checkPixelArray fails when the stream ends before offset+size, leaving r's
// position unchanged.
func checkPixelArray(r io.Seeker, offset int64, size int) error {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return pix.Wrap(pix.KindIO, err, "unable to query stream position")
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return pix.Wrap(pix.KindIO, err, "unable to seek to end of stream")
	}
	if _, err := r.Seek(cur, io.SeekStart); err != nil {
		return pix.Wrap(pix.KindIO, err, "unable to restore stream position")
	}
	if offset+int64(size) > end {
		return pix.Wrap(pix.KindIO, io.ErrUnexpectedEOF, "can't read %d bytes at offset %d (stream is %d bytes)", size, offset, end)
	}
	return nil
}

// readPixelArray fills buf from offset in one exact-length transfer.
func readPixelArray(r io.ReadSeeker, offset int64, buf []byte) error {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return pix.Wrap(pix.KindIO, err, "unable to seek to pixel data at %d", offset)
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return pix.Wrap(pix.KindIO, err, "can't read %d bytes at offset %d", len(buf), offset)
	}
	return nil
}

// writePixelArray stores buf at offset in one exact-length transfer.
func writePixelArray(w io.WriteSeeker, offset int64, buf []byte) error {
	if _, err := w.Seek(offset, io.SeekStart); err != nil {
		return pix.Wrap(pix.KindIO, err, "unable to seek to pixel data at %d", offset)
	}
	n, err := w.Write(buf)
	if err == nil && n != len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return pix.Wrap(pix.KindIO, err, "can't write %d bytes at offset %d", len(buf), offset)
	}
	return nil
}
