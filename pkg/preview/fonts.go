// fonts.go - Caption font loading with an embedded fallback.
// A custom TTF/OTF path is optional; Go Regular is used when none is given
// or when it cannot be read.
package preview

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontSource holds a parsed font and hands out faces at any size.
type fontSource struct {
	parsed *opentype.Font
}

func loadFont(customPath string) (*fontSource, error) {
	var data []byte
	if customPath != "" {
		b, err := os.ReadFile(customPath)
		if err != nil {
			log.Printf("preview: could not load font %q, using default: %v", customPath, err)
		} else {
			data = b
		}
	}
	if data == nil {
		data = goregular.TTF
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &fontSource{parsed: parsed}, nil
}

// face returns a font.Face at size points and 72 DPI.
func (fs *fontSource) face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(fs.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}
