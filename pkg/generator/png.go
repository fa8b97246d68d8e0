// png.go - PNG output for pix images.
package generator

import (
	"bufio"
	"image/png"
	"os"

	"github.com/Phildo/piximg/pkg/pix"
)

// WritePNG writes img to "<name>.png" as non-premultiplied RGBA and returns
// that path. Alpha is stored as-is, so bitfield images (alpha 0 or 1) stay
// distinguishable after a round trip.
func WritePNG(name string, img *pix.Image) (string, error) {
	out := name + ".png"
	f, err := os.Create(out)
	if err != nil {
		return "", pix.Wrap(pix.KindFileOpen, err, "can't open output file %s", out)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(bw, img.NRGBA()); err != nil {
		return "", pix.Wrap(pix.KindIO, err, "can't encode %s", out)
	}
	if err := bw.Flush(); err != nil {
		return "", pix.Wrap(pix.KindIO, err, "can't write %s", out)
	}
	if err := f.Close(); err != nil {
		return "", pix.Wrap(pix.KindIO, err, "can't flush %s", out)
	}
	return out, nil
}
