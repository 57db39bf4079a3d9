package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/eringen/instantbulletin/framing"
	"github.com/eringen/instantbulletin/layout"
)

// cssPxPerMM is the CSS reference density: 96px per inch.
const cssPxPerMM = 96 / 25.4

// Native rasterizes trees in process. Pages are stacked vertically on one
// canvas, so a multi-page bulletin becomes one tall image.
type Native struct {
	loader *Loader
}

// NewNative returns a rasterizer that loads images through loader.
func NewNative(loader *Loader) *Native {
	return &Native{loader: loader}
}

// PageSize returns the pixel size of one page at ratio.
func PageSize(ratio float64) image.Point {
	k := cssPxPerMM * ratio
	return image.Pt(int(math.Round(layout.PageWidth*k)), int(math.Round(layout.PageHeight*k)))
}

// Rasterize draws the exportable part of tree and encodes it as PNG.
func (nv *Native) Rasterize(ctx context.Context, tree layout.Tree, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	tree = Exportable(tree)
	if len(tree.Pages) == 0 {
		return nil, fmt.Errorf("export: nothing to rasterize")
	}
	assets, err := nv.loader.Preload(ctx, tree.ImageURLs(), opts.Settle)
	if err != nil {
		return nil, err
	}

	page := PageSize(opts.PixelRatio)
	canvas := image.NewRGBA(image.Rect(0, 0, page.X, page.Y*len(tree.Pages)))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	r := &raster{
		canvas: canvas,
		k:      cssPxPerMM * opts.PixelRatio,
		assets: assets,
		faces:  faceCache(),
	}
	for i, p := range tree.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.offset = i * page.Y
		if bg, ok := resolve(p.Background, 1, false); ok {
			r.fillRect(r.px(layout.PageRect), bg, nil)
		}
		for _, n := range p.Nodes {
			r.node(n, group{alpha: 1})
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("export: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type raster struct {
	canvas *image.RGBA
	k      float64 // px per mm
	offset int     // y of the current page
	assets map[string]image.Image
	faces  *faces
}

func (r *raster) px(m framing.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(m.X*r.k)),
		int(math.Round(m.Y*r.k))+r.offset,
		int(math.Round(m.Right()*r.k)),
		int(math.Round(m.Bottom()*r.k))+r.offset,
	)
}

func (r *raster) node(n layout.Node, g group) {
	g = g.enter(n.Style)
	switch n.Kind {
	case layout.KindBox:
		r.box(n, g)
	case layout.KindText:
		r.text(n, g)
	case layout.KindImage:
		r.image(n, g)
	}
	for _, c := range n.Children {
		r.node(c, g)
	}
}

func (r *raster) fillRect(dst image.Rectangle, p paint, mask image.Image) {
	src := image.NewUniform(color.NRGBA{R: p.r, G: p.g, B: p.b, A: uint8(255*math.Min(p.alpha, 1) + 0.5)})
	if mask == nil {
		draw.Draw(r.canvas, dst, src, image.Point{}, draw.Over)
		return
	}
	draw.DrawMask(r.canvas, dst, src, image.Point{}, mask, dst.Min, draw.Over)
}

func (r *raster) box(n layout.Node, g group) {
	dst := r.px(n.Rect)
	if dst.Empty() {
		return
	}
	s := n.Style
	radius := s.Radius * r.k
	if bg, ok := resolve(s.Background, g.alpha, g.gray); ok {
		switch {
		case s.Fade:
			r.fillRect(dst, bg, fadeMask(dst))
		case radius > 0:
			r.fillRect(dst, bg, roundedMask(dst, radius, 0))
		default:
			r.fillRect(dst, bg, nil)
		}
	}
	if bc, ok := resolve(s.Border, g.alpha, g.gray); ok && s.BorderWidth > 0 {
		r.fillRect(dst, bc, roundedMask(dst, radius, math.Max(1, s.BorderWidth*r.k)))
	}
}

func (r *raster) image(n layout.Node, g group) {
	img, ok := r.assets[n.Image.URL]
	if !ok {
		return
	}
	b := img.Bounds()
	pl, ok := framing.Resolve(n.Image, n.Rect, framing.Size{W: float64(b.Dx()), H: float64(b.Dy())})
	if !ok {
		return
	}
	dst := r.px(pl.Visible)
	if dst.Empty() {
		return
	}

	var src image.Image = imaging.Crop(img, sourceRect(pl.Source, b))
	if g.gray {
		src = imaging.Grayscale(src)
	}
	scaled := image.NewNRGBA(image.Rect(0, 0, dst.Dx(), dst.Dy()))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	var mask *image.Alpha
	if n.Style.Radius > 0 {
		box := r.px(pl.Box)
		full := roundedMask(box, n.Style.Radius*r.k, 0)
		mask = image.NewAlpha(dst)
		draw.Draw(mask, dst, full, dst.Min, draw.Src)
	}
	if g.alpha < 1 {
		if mask == nil {
			mask = image.NewAlpha(dst)
			draw.Draw(mask, dst, image.Opaque, image.Point{}, draw.Src)
		}
		scaleAlpha(mask, g.alpha)
	}
	if mask == nil {
		draw.Draw(r.canvas, dst, scaled, image.Point{}, draw.Over)
		return
	}
	draw.DrawMask(r.canvas, dst, scaled, image.Point{}, mask, dst.Min, draw.Over)
}

func (r *raster) text(n layout.Node, g group) {
	s := n.Style
	c, ok := resolve(s.Color, g.alpha, g.gray)
	if !ok || n.Text == "" || s.FontSize <= 0 {
		return
	}
	clip := r.px(n.Rect).Intersect(r.canvas.Bounds())
	if clip.Empty() {
		return
	}
	face := r.faces.get(s, r.k)
	measure := func(t string) float64 {
		return float64(font.MeasureString(face, t)) / 64 / r.k
	}
	tl := layoutText(n, measure)
	track := s.Tracking * s.FontSize * layout.PointMM * r.k
	src := image.NewUniform(color.NRGBA{R: c.r, G: c.g, B: c.b, A: uint8(255*math.Min(c.alpha, 1) + 0.5)})

	if s.Vertical {
		r.vertical(n, tl, face, src, track)
		return
	}

	d := &font.Drawer{Dst: r.canvas.SubImage(clip).(*image.RGBA), Src: src, Face: face}
	base := baseline(s, tl.leading)
	for i, line := range tl.lines {
		top := tl.top + float64(i)*tl.leading
		if top > n.Rect.Bottom() {
			break
		}
		x := lineX(n.Rect.X, n.Rect.W, tl.widths[i], s.Align) * r.k
		y := (top+base)*r.k + float64(r.offset)
		drawLine(d, line, x, y, track)
	}
}

// vertical renders one line into a scratch image and rotates it a quarter
// turn clockwise into the node box.
func (r *raster) vertical(n layout.Node, tl textLayout, face font.Face, src image.Image, track float64) {
	dst := r.px(n.Rect)
	w, h := dst.Dy(), dst.Dx()
	if w <= 0 || h <= 0 || len(tl.lines) == 0 {
		return
	}
	scratch := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{Dst: scratch, Src: src, Face: face}
	m := face.Metrics()
	asc, desc := float64(m.Ascent)/64, float64(m.Descent)/64
	x := lineX(0, float64(w), tl.widths[0]*r.k, n.Style.Align)
	y := (float64(h)-asc-desc)/2 + asc
	drawLine(d, tl.lines[0], x, y, track)

	rot := imaging.Rotate270(scratch)
	draw.Draw(r.canvas, dst, rot, image.Point{}, draw.Over)
}

func drawLine(d *font.Drawer, line string, x, y, track float64) {
	d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	if track == 0 {
		d.DrawString(line)
		return
	}
	for _, ch := range line {
		d.DrawString(string(ch))
		d.Dot.X += fixed.Int26_6(track * 64)
	}
}

// roundedMask returns coverage for a rounded rectangle filling dst. With
// ring > 0 only a band of that width along the edge is covered.
func roundedMask(dst image.Rectangle, radius, ring float64) *image.Alpha {
	m := image.NewAlpha(dst)
	w, h := float64(dst.Dx()), float64(dst.Dy())
	radius = math.Min(radius, math.Min(w, h)/2)
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			px := float64(x-dst.Min.X) + 0.5
			py := float64(y-dst.Min.Y) + 0.5
			d := edgeDistance(px, py, w, h, radius)
			a := clamp01(d + 0.5)
			if ring > 0 {
				a *= clamp01(ring - d + 0.5)
			}
			m.SetAlpha(x, y, color.Alpha{A: uint8(255*a + 0.5)})
		}
	}
	return m
}

// edgeDistance is the distance from (x, y) inward to the edge of a w×h
// rounded rectangle; negative outside.
func edgeDistance(x, y, w, h, radius float64) float64 {
	d := math.Min(math.Min(x, w-x), math.Min(y, h-y))
	if radius <= 0 {
		return d
	}
	cx := math.Max(radius-x, x-(w-radius))
	cy := math.Max(radius-y, y-(h-radius))
	if cx > 0 && cy > 0 {
		return radius - math.Hypot(cx, cy)
	}
	return d
}

// fadeMask ramps from transparent at the top row to opaque at the bottom.
func fadeMask(dst image.Rectangle) *image.Alpha {
	m := image.NewAlpha(dst)
	h := float64(dst.Dy())
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		a := color.Alpha{A: uint8(255 * (float64(y-dst.Min.Y) + 0.5) / h)}
		for x := dst.Min.X; x < dst.Max.X; x++ {
			m.SetAlpha(x, y, a)
		}
	}
	return m
}

func scaleAlpha(m *image.Alpha, k float64) {
	for i, a := range m.Pix {
		m.Pix[i] = uint8(float64(a)*k + 0.5)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

type faceKey struct {
	bold, italic bool
	size         float64
}

type faces struct {
	mu    sync.Mutex
	fonts map[faceKey]*opentype.Font
	cache map[faceKey]font.Face
}

var (
	goFonts     map[faceKey]*opentype.Font
	goFontsOnce sync.Once
)

// faceCache returns a face cache backed by the bundled Go fonts. Serif and
// sans both map onto them.
func faceCache() *faces {
	goFontsOnce.Do(func() {
		goFonts = map[faceKey]*opentype.Font{}
		for key, ttf := range map[faceKey][]byte{
			{}:                         goregular.TTF,
			{bold: true}:               gobold.TTF,
			{italic: true}:             goitalic.TTF,
			{bold: true, italic: true}: gobolditalic.TTF,
		} {
			f, err := opentype.Parse(ttf)
			if err != nil {
				panic(fmt.Sprintf("export: parse bundled font: %v", err))
			}
			goFonts[key] = f
		}
	})
	return &faces{fonts: goFonts, cache: map[faceKey]font.Face{}}
}

func (f *faces) get(s layout.Style, pxPerMM float64) font.Face {
	key := faceKey{bold: s.Bold, italic: s.Italic, size: s.FontSize}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.cache[key]; ok {
		return face
	}
	face, err := opentype.NewFace(f.fonts[faceKey{bold: s.Bold, italic: s.Italic}], &opentype.FaceOptions{
		Size:    s.FontSize,
		DPI:     pxPerMM * 25.4,
		Hinting: font.HintingNone,
	})
	if err != nil {
		face = basicfont.Face7x13
	}
	f.cache[key] = face
	return face
}
