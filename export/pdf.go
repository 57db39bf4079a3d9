package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"

	"github.com/eringen/instantbulletin/framing"
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

const (
	printDPI    = 300
	fadeBands   = 32
	jpegQuality = 90
)

// encodeFunc writes img in the given format.
type encodeFunc func(w io.Writer, img image.Image, format imaging.Format, opts ...imaging.EncodeOption) error

// PDF prints trees with gofpdf, one A4 sheet per page.
type PDF struct {
	loader *Loader
	opts   Options
	encode encodeFunc
}

// NewPDF returns a printer that loads images through loader.
func NewPDF(loader *Loader) *PDF {
	return &PDF{loader: loader, opts: DefaultOptions(), encode: imaging.Encode}
}

// Print renders the exportable part of tree. Preview-only nodes such as
// page labels are left out, and every page starts on a fresh sheet.
func (p *PDF) Print(ctx context.Context, tree layout.Tree, title string) ([]byte, error) {
	tree = Exportable(tree)
	assets, err := p.loader.Preload(ctx, tree.ImageURLs(), p.opts.Settle)
	if err != nil {
		return nil, err
	}

	f := gofpdf.New("P", "mm", "A4", "")
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(0, 0, 0)
	f.SetTitle(PrintName(title), true)
	f.SetCreator("InstantBulletin", true)

	w := &pdfWriter{
		f:      f,
		tr:     f.UnicodeTranslatorFromDescriptor(""),
		family: tree.Font,
		assets: assets,
		encode: p.encode,
	}
	for _, page := range tree.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f.AddPage()
		if bg, ok := resolve(page.Background, 1, false); ok && page.Background != "#ffffff" {
			w.fill(bg)
			f.Rect(0, 0, layout.PageWidth, layout.PageHeight, "F")
		}
		for _, n := range page.Nodes {
			w.node(n, group{alpha: 1})
		}
		if w.err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAssetCapture, w.err)
		}
	}
	f.SetAlpha(1, "Normal")

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	f      *gofpdf.Fpdf
	tr     func(string) string
	family style.FontFamily // tree-wide family, used when a node sets none
	assets map[string]image.Image
	encode encodeFunc
	images int
	err    error // first image that could not be embedded
}

func (w *pdfWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *pdfWriter) node(n layout.Node, g group) {
	g = g.enter(n.Style)
	switch n.Kind {
	case layout.KindBox:
		w.box(n, g)
	case layout.KindText:
		w.text(n, g)
	case layout.KindImage:
		w.image(n, g)
	}
	for _, c := range n.Children {
		w.node(c, g)
	}
}

func (w *pdfWriter) fill(p paint) {
	w.f.SetFillColor(p.ints())
	w.f.SetAlpha(p.alpha, "Normal")
}

func (w *pdfWriter) box(n layout.Node, g group) {
	r, s := n.Rect, n.Style
	if r.Empty() {
		return
	}
	if bg, ok := resolve(s.Background, g.alpha, g.gray); ok {
		if s.Fade {
			w.fade(r, bg)
		} else {
			w.fill(bg)
			w.shape(r, s.Radius, "F")
		}
	}
	if bc, ok := resolve(s.Border, g.alpha, g.gray); ok && s.BorderWidth > 0 {
		w.f.SetDrawColor(bc.ints())
		w.f.SetAlpha(bc.alpha, "Normal")
		w.f.SetLineWidth(s.BorderWidth)
		w.shape(r.Inset(s.BorderWidth/2), math.Max(0, s.Radius-s.BorderWidth/2), "D")
	}
}

// shape fills ("F") or strokes ("D") r. Rounded shapes go through a
// rounded clip path, which gofpdf can also stroke.
func (w *pdfWriter) shape(r framing.Rect, radius float64, op string) {
	if radius <= 0 {
		w.f.Rect(r.X, r.Y, r.W, r.H, op)
		return
	}
	w.f.ClipRoundedRect(r.X, r.Y, r.W, r.H, radius, op == "D")
	if op == "F" {
		w.f.Rect(r.X, r.Y, r.W, r.H, "F")
	}
	w.f.ClipEnd()
}

// fade approximates a transparent-to-opaque vertical gradient with bands.
func (w *pdfWriter) fade(r framing.Rect, p paint) {
	band := r.H / fadeBands
	w.f.SetFillColor(p.ints())
	for i := 0; i < fadeBands; i++ {
		w.f.SetAlpha(p.alpha*(float64(i)+0.5)/fadeBands, "Normal")
		w.f.Rect(r.X, r.Y+float64(i)*band, r.W, band+0.05, "F")
	}
}

func fontFamily(f style.FontFamily) string {
	if f == style.Serif {
		return "Times"
	}
	return "Helvetica"
}

func fontStyle(s layout.Style) string {
	switch {
	case s.Bold && s.Italic:
		return "BI"
	case s.Bold:
		return "B"
	case s.Italic:
		return "I"
	}
	return ""
}

func (w *pdfWriter) text(n layout.Node, g group) {
	s := n.Style
	c, ok := resolve(s.Color, g.alpha, g.gray)
	if !ok || n.Text == "" || s.FontSize <= 0 || n.Rect.Empty() {
		return
	}
	family := s.Family
	if family == "" {
		family = w.family
	}
	w.f.SetFont(fontFamily(family), fontStyle(s), s.FontSize)
	w.f.SetTextColor(c.ints())
	w.f.SetAlpha(c.alpha, "Normal")

	tl := layoutText(n, func(t string) float64 { return w.f.GetStringWidth(w.tr(t)) })
	track := s.Tracking * s.FontSize * layout.PointMM
	r := n.Rect

	w.f.ClipRect(r.X, r.Y, r.W, r.H, false)
	defer w.f.ClipEnd()

	if s.Vertical {
		// Rotated a quarter turn clockwise about the box's top-left corner,
		// local x runs down the page and local y runs right to left.
		size := s.FontSize * layout.PointMM
		w.f.TransformBegin()
		w.f.TransformRotate(-90, r.X, r.Y)
		x := r.X + lineX(0, r.H, tl.widths[0], s.Align)
		y := r.Y - (r.W-size*0.7)/2
		w.line(tl.lines[0], x, y, track)
		w.f.TransformEnd()
		return
	}

	base := baseline(s, tl.leading)
	for i, line := range tl.lines {
		y := tl.top + float64(i)*tl.leading + base
		if y-base > r.Bottom() {
			break
		}
		w.line(line, lineX(r.X, r.W, tl.widths[i], s.Align), y, track)
	}
}

func (w *pdfWriter) line(line string, x, y, track float64) {
	if track == 0 {
		w.f.Text(x, y, w.tr(line))
		return
	}
	for _, ch := range line {
		t := w.tr(string(ch))
		w.f.Text(x, y, t)
		x += w.f.GetStringWidth(t) + track
	}
}

func (w *pdfWriter) image(n layout.Node, g group) {
	img, ok := w.assets[n.Image.URL]
	if !ok {
		return
	}
	b := img.Bounds()
	pl, ok := framing.Resolve(n.Image, n.Rect, framing.Size{W: float64(b.Dx()), H: float64(b.Dy())})
	if !ok {
		return
	}

	crop := imaging.Crop(img, sourceRect(pl.Source, b))
	if limit := int(pl.Visible.W / 25.4 * printDPI); limit > 0 && crop.Bounds().Dx() > limit {
		crop = imaging.Resize(crop, limit, 0, imaging.Lanczos)
	}
	var out image.Image = crop
	if g.gray {
		out = imaging.Grayscale(crop)
	}

	var buf bytes.Buffer
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	var err error
	if opaque(out) {
		opts.ImageType = "JPG"
		err = w.encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	} else {
		err = w.encode(&buf, out, imaging.PNG)
	}
	if err != nil {
		w.fail(fmt.Errorf("encode %s: %w", truncate(n.Image.URL, 48), err))
		return
	}

	w.images++
	name := fmt.Sprintf("img%d", w.images)
	w.f.RegisterImageOptionsReader(name, opts, &buf)
	if w.f.Err() {
		w.fail(fmt.Errorf("embed %s: %w", truncate(n.Image.URL, 48), w.f.Error()))
		return
	}

	if n.Style.Radius > 0 {
		w.f.ClipRoundedRect(pl.Box.X, pl.Box.Y, pl.Box.W, pl.Box.H, n.Style.Radius, false)
	} else {
		w.f.ClipRect(pl.Box.X, pl.Box.Y, pl.Box.W, pl.Box.H, false)
	}
	w.f.SetAlpha(g.alpha, "Normal")
	v := pl.Visible
	w.f.ImageOptions(name, v.X, v.Y, v.W, v.H, false, opts, 0, "")
	w.f.ClipEnd()
}

// sourceRect rounds a crop in natural pixels onto the image bounds.
func sourceRect(r framing.Rect, b image.Rectangle) image.Rectangle {
	out := image.Rect(
		b.Min.X+int(math.Floor(r.X)),
		b.Min.Y+int(math.Floor(r.Y)),
		b.Min.X+int(math.Ceil(r.Right())),
		b.Min.Y+int(math.Ceil(r.Bottom())),
	).Intersect(b)
	if out.Empty() {
		return b
	}
	return out
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
