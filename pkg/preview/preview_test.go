package preview

import (
	"image/color"
	"testing"

	"github.com/Phildo/piximg/pkg/pix"
)

func solid(t *testing.T, w, h int, p pix.Pix) *pix.Image {
	t.Helper()
	img, err := pix.NewImage(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for i := range img.Data {
		img.Data[i] = p
	}
	return img
}

func TestRenderScalesAndCaptions(t *testing.T) {
	img := solid(t, 4, 2, pix.Pix{R: 255, A: 255})
	out, err := Render(img, Caption("red", img), Options{Width: 200})
	if err != nil {
		t.Fatal(err)
	}
	b := out.Bounds()
	if b.Dx() != 200 {
		t.Errorf("width = %d, want 200", b.Dx())
	}
	if b.Dy() <= 100 {
		t.Errorf("height = %d, want image (100) plus caption", b.Dy())
	}
	if c := out.RGBAAt(10, 10); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("scaled pixel = %+v", c)
	}
	if c := out.RGBAAt(199, b.Dy()-1); c != defaultBackground {
		t.Errorf("caption corner = %+v, want background", c)
	}
}

func TestRenderNoCaption(t *testing.T) {
	img := solid(t, 300, 10, pix.Pix{G: 255, A: 255})
	out, err := Render(img, "", Options{Smooth: true})
	if err != nil {
		t.Fatal(err)
	}
	if b := out.Bounds(); b.Dx() != 300 || b.Dy() != 10 {
		t.Errorf("bounds = %v, want 300x10", b)
	}
}

func TestRenderMissingFontFallsBack(t *testing.T) {
	img := solid(t, 1, 1, pix.Pix{A: 255})
	if _, err := Render(img, "x", Options{FontPath: "/nonexistent/font.ttf"}); err != nil {
		t.Fatal(err)
	}
}

func TestWrapText(t *testing.T) {
	fs, err := loadFont("")
	if err != nil {
		t.Fatal(err)
	}
	face, err := fs.face(12)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	lines := wrapText("one two three four five six seven", 60, face)
	if len(lines) < 2 {
		t.Errorf("lines = %q, want wrapping", lines)
	}
	if got := wrapText("   ", 60, face); got != nil {
		t.Errorf("blank caption = %q", got)
	}
}

func TestCaption(t *testing.T) {
	img := solid(t, 3, 7, pix.Pix{})
	if got := Caption("a.bmp", img); got != "a.bmp 3x7" {
		t.Errorf("Caption = %q", got)
	}
}
