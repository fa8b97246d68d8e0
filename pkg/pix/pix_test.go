package pix

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBitFieldLen(t *testing.T) {
	tests := []struct{ w, h, want int }{
		{10, 3, 4},
		{8, 1, 1},
		{1, 1, 1},
		{9, 1, 2},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := BitFieldLen(tt.w, tt.h); got != tt.want {
			t.Errorf("BitFieldLen(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
	bf, err := NewBitField(10, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(bf.Data) != 4 {
		t.Errorf("len(Data) = %d, want 4", len(bf.Data))
	}
}

func TestBitFieldImage(t *testing.T) {
	bf, err := NewBitField(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	bf.Data[0] = 0b1000_0001 // pixels 0 and 7
	bf.Data[1] = 0b1000_0000 // pixel 8

	img, err := bf.Image()
	if err != nil {
		t.Fatal(err)
	}
	for idx, p := range img.Data {
		want := Pix{}
		if idx == 0 || idx == 7 || idx == 8 {
			want.A = 1
		}
		if p != want {
			t.Errorf("pixel %d = %+v, want %+v", idx, p, want)
		}
	}
}

func TestImageBitField(t *testing.T) {
	img, err := NewImage(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range img.Data {
		img.Data[i] = Pix{R: 200, A: 255}
	}
	// Red == 0 sets the bit; alpha is irrelevant.
	img.Data[1] = Pix{R: 0, G: 9, A: 0}
	img.Data[8] = Pix{R: 0, A: 255}

	bf, err := img.BitField()
	if err != nil {
		t.Fatal(err)
	}
	if bf.Data[0] != 0b0100_0000 || bf.Data[1] != 0b1000_0000 {
		t.Errorf("Data = %08b", bf.Data)
	}
	if !bf.Bit(1) || !bf.Bit(8) || bf.Bit(0) {
		t.Errorf("Bit mismatch: %08b", bf.Data)
	}
}

func TestBitFieldPairIsNotInverse(t *testing.T) {
	img, err := NewImage(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	img.Data[0] = Pix{R: 0, G: 50, B: 60, A: 255}
	img.Data[1] = Pix{R: 10, G: 50, B: 60, A: 255}

	bf, err := img.BitField()
	if err != nil {
		t.Fatal(err)
	}
	back, err := bf.Image()
	if err != nil {
		t.Fatal(err)
	}
	if back.Data[0] != (Pix{A: 1}) || back.Data[1] != (Pix{}) {
		t.Errorf("back = %+v", back.Data)
	}
}

func TestParseDims(t *testing.T) {
	tests := []struct {
		path   string
		suffix string
		w, h   int
		ok     bool
	}{
		{"img.16x32pi", ImageSuffix, 16, 32, true},
		{"dir/sub.d/img.3x7bf", BitFieldSuffix, 3, 7, true},
		{"img16x32pi", ImageSuffix, 0, 0, false},
		{"img.1632pi", ImageSuffix, 0, 0, false},
		{"img.16x32", ImageSuffix, 0, 0, false},
		{"img.ax32pi", ImageSuffix, 0, 0, false},
		{"img.0x32pi", ImageSuffix, 0, 0, false},
		{"img.16x32px", ImageSuffix, 0, 0, false},
		{"img.16x32pix", ImageSuffix, 0, 0, false},
		{"img.16x32bf", ImageSuffix, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, h, err := ParseDims(tt.path, tt.suffix)
			if !tt.ok {
				if !IsKind(err, KindFilename) {
					t.Errorf("err = %v, want filename format error", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("dims = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestOutputNames(t *testing.T) {
	if got := BitmapName("out"); got != "out.bmp" {
		t.Errorf("BitmapName = %q", got)
	}
	if got := ImageName("out", 4, 2); got != "out.4x2pi" {
		t.Errorf("ImageName = %q", got)
	}
	if got := BitFieldName("out", 4, 2); got != "out.4x2bf" {
		t.Errorf("BitFieldName = %q", got)
	}
}

func TestImageFileRoundTrip(t *testing.T) {
	img, err := NewImage(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range img.Data {
		img.Data[i] = Pix{R: uint8(i), G: uint8(i * 2), B: uint8(i * 3), A: uint8(255 - i)}
	}
	path, err := WriteImageFile(filepath.Join(t.TempDir(), "img"), img)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "img.4x3pi") {
		t.Errorf("path = %q", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 4*3*4 || raw[4] != 1 || raw[5] != 2 || raw[6] != 3 || raw[7] != 254 {
		t.Errorf("raw = %v", raw[:8])
	}

	got, err := ReadImageFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := range img.Data {
		if got.Data[i] != img.Data[i] {
			t.Fatalf("pixel %d = %+v, want %+v", i, got.Data[i], img.Data[i])
		}
	}
}

func TestBitFieldFileRoundTrip(t *testing.T) {
	bf, err := NewBitField(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	bf.SetBit(0)
	bf.SetBit(12)
	bf.SetBit(24)
	path, err := WriteBitFieldFile(filepath.Join(t.TempDir(), "mask"), bf)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadBitFieldFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Data) != string(bf.Data) {
		t.Errorf("Data = %08b, want %08b", got.Data, bf.Data)
	}
}

func TestReadImageFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadImageFile(filepath.Join(dir, "missing.2x2pi")); !IsKind(err, KindFileOpen) {
		t.Errorf("missing: err = %v, want file open error", err)
	}

	short := filepath.Join(dir, "short.2x2pi")
	if err := os.WriteFile(short, make([]byte, 5), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadImageFile(short); !IsKind(err, KindIO) {
		t.Errorf("short: err = %v, want io error", err)
	}

	if _, err := ReadBitFieldFile(filepath.Join(dir, "noext")); !IsKind(err, KindFilename) {
		t.Errorf("noext: err = %v, want filename format error", err)
	}
}

func TestNewImageLimits(t *testing.T) {
	if _, err := NewImage(MaxPixels, 2); !IsKind(err, KindOutOfMemory) {
		t.Errorf("err = %v, want out of memory", err)
	}
	if _, err := NewImage(-1, 2); !IsKind(err, KindFormat) {
		t.Errorf("err = %v, want format error", err)
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(KindIO, cause, "writing %s", "x")
	if !errors.Is(err, cause) {
		t.Error("errors.Is lost the cause")
	}
	if !IsKind(err, KindIO) || IsKind(err, KindFormat) {
		t.Error("IsKind mismatch")
	}
	if got := err.Error(); got != "io error: writing x: disk on fire" {
		t.Errorf("Error() = %q", got)
	}
	long := Errorf(KindFormat, "%s", strings.Repeat("a", 1000))
	if len(long.(*Error).Msg) != maxMessageLen {
		t.Errorf("message not bounded: %d", len(long.(*Error).Msg))
	}
}

func TestStdlibInterop(t *testing.T) {
	m := image.NewNRGBA(image.Rect(2, 3, 4, 4))
	m.Set(2, 3, color.NRGBA{1, 2, 3, 4})
	m.Set(3, 3, color.NRGBA{5, 6, 7, 255})

	img, err := FromImage(m)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 2 || img.Height != 1 {
		t.Fatalf("dims = %dx%d", img.Width, img.Height)
	}
	if img.At(0, 0) != (Pix{1, 2, 3, 4}) || img.At(1, 0) != (Pix{5, 6, 7, 255}) {
		t.Errorf("Data = %+v", img.Data)
	}

	back := img.NRGBA()
	if back.NRGBAAt(1, 0) != (color.NRGBA{5, 6, 7, 255}) {
		t.Errorf("NRGBA = %+v", back.NRGBAAt(1, 0))
	}
}
