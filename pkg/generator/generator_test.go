package generator

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Phildo/piximg/pkg/pix"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want pix.Pix
		ok   bool
	}{
		{"#ff0000", pix.Pix{R: 255, A: 255}, true},
		{"00ff0080", pix.Pix{G: 255, A: 0x80}, true},
		{"#12345", pix.Pix{}, false},
		{"#zz0000", pix.Pix{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("err = %v, ok = %v", err, tt.ok)
			}
			if tt.ok && got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	c, err := ParseColor("random")
	if err != nil || c.A != 255 {
		t.Errorf("random: %+v, %v", c, err)
	}
}

func TestDetect(t *testing.T) {
	tests := map[string]Format{
		"a.bmp":       FormatBMP,
		"A.BMP":       FormatBMP,
		"a.png":       FormatPNG,
		"a.3x4pi":     FormatImage,
		"dir/a.3x4bf": FormatBitField,
		"a.jpg":       FormatOther,
	}
	for in, want := range tests {
		if got := Detect(in); got != want {
			t.Errorf("Detect(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src, err := Solid(Config{Width: 6, Height: 5, Color: "#102030c0"})
	if err != nil {
		t.Fatal(err)
	}
	src.Set(2, 3, pix.Pix{R: 200, G: 100, B: 50, A: 255})

	for _, f := range []Format{FormatBMP, FormatImage, FormatPNG} {
		t.Run(string(f), func(t *testing.T) {
			path, err := Save(filepath.Join(t.TempDir(), "img"), f, src)
			if err != nil {
				t.Fatal(err)
			}
			if Detect(path) != f {
				t.Errorf("Detect(%q) = %q", path, Detect(path))
			}
			got, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			for i := range src.Data {
				if got.Data[i] != src.Data[i] {
					t.Fatalf("pixel %d = %+v, want %+v", i, got.Data[i], src.Data[i])
				}
			}
		})
	}
}

func TestSaveBitField(t *testing.T) {
	src, err := Solid(Config{Width: 3, Height: 1, Color: "#000000"})
	if err != nil {
		t.Fatal(err)
	}
	src.Set(1, 0, pix.Pix{R: 1})

	path, err := Save(filepath.Join(t.TempDir(), "mask"), FormatBitField, src)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []pix.Pix{{A: 1}, {}, {A: 1}}
	for i := range want {
		if got.Data[i] != want[i] {
			t.Errorf("pixel %d = %+v, want %+v", i, got.Data[i], want[i])
		}
	}
}

func TestLoadPalettedBMPFallsBack(t *testing.T) {
	pal := color.Palette{color.NRGBA{0, 0, 0, 255}, color.NRGBA{10, 20, 30, 255}}
	m := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
	m.SetColorIndex(1, 1, 1)

	path := filepath.Join(t.TempDir(), "pal.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, m); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.At(1, 1); got != (pix.Pix{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel = %+v", got)
	}
}

func TestWritePNG(t *testing.T) {
	img, err := NewSolidImage(2, 2, pix.Pix{R: 9, G: 8, B: 7, A: 255})
	if err != nil {
		t.Fatal(err)
	}
	img.Set(0, 1, pix.Pix{A: 1})
	path, err := WritePNG(filepath.Join(t.TempDir(), "out"), img)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("path = %q, want .png", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	m, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if c := color.NRGBAModel.Convert(m.At(1, 1)).(color.NRGBA); c != (color.NRGBA{9, 8, 7, 255}) {
		t.Errorf("pixel = %+v", c)
	}
	if c := color.NRGBAModel.Convert(m.At(0, 1)).(color.NRGBA); c.A != 1 {
		t.Errorf("bitfield pixel alpha = %d, want 1", c.A)
	}
}

func TestWritePNGMissingDir(t *testing.T) {
	img, err := NewSolidImage(1, 1, pix.Pix{A: 255})
	if err != nil {
		t.Fatal(err)
	}
	_, err = WritePNG(filepath.Join(t.TempDir(), "no", "such", "dir"), img)
	if !pix.IsKind(err, pix.KindFileOpen) {
		t.Errorf("err = %v, want file open error", err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(".BMP"); err != nil || f != FormatBMP {
		t.Errorf("ParseFormat(.BMP) = %q, %v", f, err)
	}
	if _, err := ParseFormat("avi"); err == nil {
		t.Error("ParseFormat(avi) succeeded")
	}
}
