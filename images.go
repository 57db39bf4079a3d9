package bulletin

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/export"
)

const (
	maxImageWidth   = 2400
	maxUploadPixels = 40_000_000
	jpegQuality     = 85
)

var (
	// ErrNotImage is returned when an upload cannot be decoded as an image.
	ErrNotImage = errors.New("bulletin: upload is not a supported image")
	// ErrTooLarge is returned when an upload declares more than
	// maxUploadPixels pixels.
	ErrTooLarge = errors.New("bulletin: upload dimensions too large")
)

// Upload is an ingested image, ready to be stored in a slot.
type Upload struct {
	Image  document.ImageMetadata
	Width  int
	Height int
	Size   int
}

// ProcessUpload decodes an uploaded image, shrinks it to maxImageWidth and
// re-encodes it as a self-contained data URL: JPEG for opaque images, PNG
// when transparency has to survive.
func ProcessUpload(src io.Reader) (Upload, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return Upload{}, fmt.Errorf("bulletin: read upload: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Upload{}, fmt.Errorf("%w: %dx%d", ErrNotImage, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxUploadPixels {
		return Upload{}, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxImageWidth, newH
	}

	var buf bytes.Buffer
	mime := "image/jpeg"
	if opaque(img) {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	} else {
		mime = "image/png"
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return Upload{}, fmt.Errorf("bulletin: encode upload: %w", err)
	}

	return Upload{
		Image:  document.NewImage(export.EncodeDataURL(mime, buf.Bytes())),
		Width:  w,
		Height: h,
		Size:   buf.Len(),
	}, nil
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return true
}
