// color.go - Colour parsing and solid image creation.
package generator

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"

	"github.com/Phildo/piximg/pkg/pix"
)

// ParseColor parses a colour string. Accepts "#rrggbb", "#rrggbbaa",
// "random", or "". Empty string is treated as "random". Alpha defaults to 255.
func ParseColor(s string) (pix.Pix, error) {
	if s == "" || s == "random" {
		buf := make([]byte, 3)
		if _, err := rand.Read(buf); err != nil {
			return pix.Pix{}, fmt.Errorf("random color: %w", err)
		}
		return pix.Pix{R: buf[0], G: buf[1], B: buf[2], A: 255}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return pix.Pix{}, fmt.Errorf("invalid color %q: expected 6 or 8-char hex", s)
	}

	var ch [4]uint8
	ch[3] = 255
	names := [4]string{"red", "green", "blue", "alpha"}
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return pix.Pix{}, fmt.Errorf("invalid %s channel in %q: %w", names[i], s, err)
		}
		ch[i] = uint8(v)
	}
	return pix.Pix{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// NewSolidImage creates a uniform w x h image.
func NewSolidImage(w, h int, c pix.Pix) (*pix.Image, error) {
	img, err := pix.NewImage(w, h)
	if err != nil {
		return nil, err
	}
	for i := range img.Data {
		img.Data[i] = c
	}
	return img, nil
}
