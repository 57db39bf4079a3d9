package bulletin

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"hash/crc32"
	"strings"
	"testing"

	"github.com/eringen/instantbulletin/export"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProcessUploadOpaqueBecomesJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	up, err := ProcessUpload(bytes.NewReader(encodePNG(t, img)))
	if err != nil {
		t.Fatalf("ProcessUpload: %v", err)
	}
	if !strings.HasPrefix(up.Image.URL, "data:image/jpeg;base64,") {
		t.Errorf("URL prefix = %q", up.Image.URL[:30])
	}
	if up.Width != 40 || up.Height != 20 {
		t.Errorf("size = %dx%d, want 40x20", up.Width, up.Height)
	}
	if up.Image.Scale != 1 || up.Image.Fit != "cover" || up.Image.Position.X != 50 {
		t.Errorf("framing = %+v", up.Image)
	}
}

func TestProcessUploadKeepsTransparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.Set(2, 2, color.NRGBA{R: 255, A: 128})

	up, err := ProcessUpload(bytes.NewReader(encodePNG(t, img)))
	if err != nil {
		t.Fatalf("ProcessUpload: %v", err)
	}
	if !strings.HasPrefix(up.Image.URL, "data:image/png;base64,") {
		t.Errorf("URL prefix = %q", up.Image.URL[:30])
	}
	data, err := export.DecodeDataURL(up.Image.URL)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if len(data) != up.Size {
		t.Errorf("Size = %d, want %d", up.Size, len(data))
	}
}

func TestProcessUploadShrinksWideImages(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4800, 100))
	up, err := ProcessUpload(bytes.NewReader(encodePNG(t, img)))
	if err != nil {
		t.Fatalf("ProcessUpload: %v", err)
	}
	if up.Width != maxImageWidth || up.Height != 50 {
		t.Errorf("size = %dx%d, want %dx50", up.Width, up.Height, maxImageWidth)
	}
}

func TestProcessUploadRejectsNonImages(t *testing.T) {
	_, err := ProcessUpload(strings.NewReader("<svg onload=alert(1)>"))
	if !errors.Is(err, ErrNotImage) {
		t.Errorf("err = %v, want ErrNotImage", err)
	}
}

// pngHeader returns a PNG signature and IHDR chunk declaring a w x h RGB
// image with no pixel data behind it.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolor
	chunk := append([]byte("IHDR"), ihdr...)
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestProcessUploadPixelBudget(t *testing.T) {
	tests := []struct {
		name string
		w, h uint32
		want error
	}{
		{"huge square", 30000, 30000, ErrTooLarge},
		{"one pixel over", maxUploadPixels/1000 + 1, 1000, ErrTooLarge},
		{"within budget but truncated", 100, 100, ErrNotImage},
	}
	for _, tt := range tests {
		_, err := ProcessUpload(bytes.NewReader(pngHeader(tt.w, tt.h)))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}
