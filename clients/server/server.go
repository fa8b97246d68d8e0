// Package server exposes the bitmap codec over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/Phildo/piximg/pkg/bitmap"
	"github.com/Phildo/piximg/pkg/generator"
	"github.com/Phildo/piximg/pkg/pix"
	"github.com/Phildo/piximg/pkg/preview"
)

// maxBody caps request bodies.
const maxBody = 64 << 20

type srv struct {
	tmpDir string
}

// RunServe starts the conversion API on the given port.
func RunServe(args []string) error {
	port := "8080"
	for i, a := range args {
		if (a == "--port" || a == "-p") && i+1 < len(args) {
			port = args[i+1]
		}
	}

	tmpDir, err := os.MkdirTemp("", "piximg-serve-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	addr := ":" + port
	log.Printf("piximg API → http://localhost%s", addr)
	return http.ListenAndServe(addr, NewHandler(tmpDir))
}

// NewHandler returns the API mux. Scratch files are created under tmpDir.
func NewHandler(tmpDir string) http.Handler {
	s := &srv{tmpDir: tmpDir}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/decode", s.handleDecode)
	mux.HandleFunc("POST /api/encode", s.handleEncode)
	mux.HandleFunc("POST /api/info", s.handleInfo)
	mux.HandleFunc("POST /api/bitfield", s.handleBitField)
	mux.HandleFunc("POST /api/preview", s.handlePreview)
	return mux
}

// ── Decode ──

// readBitmap parses the request body as a BMP file.
func readBitmap(w http.ResponseWriter, r *http.Request) (*bitmap.Bitmap, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		return nil, pix.Wrap(pix.KindIO, err, "read request body")
	}
	return bitmap.Read(bytes.NewReader(body))
}

func (s *srv) handleDecode(w http.ResponseWriter, r *http.Request) {
	b, err := readBitmap(w, r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	img, err := b.Image()
	if err != nil {
		httpError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img.NRGBA()); err != nil {
		httpError(w, r, fmt.Errorf("encode PNG: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func (s *srv) handleInfo(w http.ResponseWriter, r *http.Request) {
	b, err := readBitmap(w, r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"fileHeader": b.FileHeader,
		"dibHeader":  b.DIB,
		"layout":     b.Layout,
	})
}

func (s *srv) handleBitField(w http.ResponseWriter, r *http.Request) {
	b, err := readBitmap(w, r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	img, err := b.Image()
	if err != nil {
		httpError(w, r, err)
		return
	}
	bf, err := img.BitField()
	if err != nil {
		httpError(w, r, err)
		return
	}

	name := pix.BitFieldName("output", bf.Width, bf.Height)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("X-Width", strconv.Itoa(bf.Width))
	w.Header().Set("X-Height", strconv.Itoa(bf.Height))
	w.Write(bf.Data)
}

func (s *srv) handlePreview(w http.ResponseWriter, r *http.Request) {
	b, err := readBitmap(w, r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	img, err := b.Image()
	if err != nil {
		httpError(w, r, err)
		return
	}

	width, _ := strconv.Atoi(r.URL.Query().Get("width"))
	caption := r.URL.Query().Get("caption")
	if caption == "" {
		caption = preview.Caption("bitmap", img)
	}
	out, err := preview.Render(img, caption, preview.Options{Width: width})
	if err != nil {
		httpError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		httpError(w, r, fmt.Errorf("encode PNG: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// ── Encode ──

func (s *srv) handleEncode(w http.ResponseWriter, r *http.Request) {
	img, format, err := generator.Decode(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}

	// The bitmap writer seeks, so it goes through a scratch file.
	tmp, err := os.CreateTemp(s.tmpDir, "encode-*")
	if err != nil {
		httpError(w, r, fmt.Errorf("create scratch file: %w", err))
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	b, err := bitmap.FromImage(img)
	if err != nil {
		httpError(w, r, err)
		return
	}
	if err := bitmap.Write(tmp, b); err != nil {
		httpError(w, r, err)
		return
	}
	data, err := os.ReadFile(tmp.Name())
	if err != nil {
		httpError(w, r, fmt.Errorf("read scratch file: %w", err))
		return
	}

	w.Header().Set("Content-Type", "image/bmp")
	w.Header().Set("Content-Disposition", `attachment; filename="output.bmp"`)
	w.Header().Set("X-Source-Format", format)
	w.Write(data)
}

// ── Helpers ──

// httpError maps codec error kinds to status codes.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case pix.IsKind(err, pix.KindUnsupported):
		status = http.StatusUnsupportedMediaType
	case pix.IsKind(err, pix.KindFormat), pix.IsKind(err, pix.KindIO):
		status = http.StatusBadRequest
	case pix.IsKind(err, pix.KindOutOfMemory):
		status = http.StatusRequestEntityTooLarge
	}
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	http.Error(w, err.Error(), status)
}
