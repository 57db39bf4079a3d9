package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"

	"github.com/eringen/instantbulletin/layout"
)

const renderTimeout = 30 * time.Second

// Fitz rasterizes by printing the tree to PDF and rendering each sheet with
// MuPDF. Output matches the printed document glyph for glyph.
type Fitz struct {
	printer Printer
}

// NewFitz returns a rasterizer that renders p's output.
func NewFitz(p Printer) *Fitz {
	return &Fitz{printer: p}
}

func (fz *Fitz) Rasterize(ctx context.Context, tree layout.Tree, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	ctx, cancel := context.WithTimeout(ctx, opts.Settle+renderTimeout)
	defer cancel()

	pdf, err := fz.printer.Print(ctx, tree, tree.Title)
	if err != nil {
		return nil, err
	}
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("export: open pdf: %w", err)
	}
	defer doc.Close()

	dpi := 96 * opts.PixelRatio
	var pages []image.Image
	width, height := 0, 0
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(i, dpi)
		if err != nil {
			return nil, fmt.Errorf("export: render page %d: %w", i+1, err)
		}
		pages = append(pages, img)
		width = max(width, img.Bounds().Dx())
		height += img.Bounds().Dy()
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("export: nothing to rasterize")
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	y := 0
	for _, p := range pages {
		b := p.Bounds()
		draw.Draw(canvas, image.Rect(0, y, b.Dx(), y+b.Dy()), p, b.Min, draw.Over)
		y += b.Dy()
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("export: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
