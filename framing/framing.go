// Package framing resolves an image's display transform (fit, zoom and
// focal point) into concrete geometry inside a slot. The same placement
// drives the HTML preview, the PDF printer and the raster exporter.
package framing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/eringen/instantbulletin/document"
)

// Ranges offered by editor controls.
const (
	MinZoom  = 0.5
	MaxZoom  = 3.0
	ZoomStep = 0.1
	MinPan   = 0.0
	MaxPan   = 100.0
)

var (
	ErrInvalidScale = errors.New("framing: scale must be a positive number")
	ErrInvalidFit   = errors.New("framing: unknown fit mode")
)

// Size is a width and height in arbitrary units.
type Size struct {
	W, H float64
}

// Known reports whether both dimensions are positive.
func (s Size) Known() bool {
	return s.W > 0 && s.H > 0
}

// Rect is an axis-aligned rectangle, origin top-left.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Right and Bottom return the far edges.
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Intersect returns the overlap of r and o, or a zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Placement is a resolved image inside a slot.
type Placement struct {
	// Box is the slot the image is clipped to.
	Box Rect
	// Drawn is where the whole image lands; it may extend past Box.
	Drawn Rect
	// Visible is the part of Drawn inside Box.
	Visible Rect
	// Source is the crop of the natural image that maps onto Visible,
	// in natural pixels.
	Source Rect
}

// Resolve places meta inside box. natural is the intrinsic image size; when
// unknown the image is assumed to share the box aspect. An empty slot
// returns ok=false and contributes nothing to the layout.
func Resolve(meta *document.ImageMetadata, box Rect, natural Size) (Placement, bool) {
	if meta.Empty() || box.Empty() {
		return Placement{}, false
	}
	if !natural.Known() {
		natural = Size{W: box.W, H: box.H}
	}

	kx, ky := box.W/natural.W, box.H/natural.H
	k := math.Max(kx, ky)
	if meta.Fit == document.FitContain {
		k = math.Min(kx, ky)
	}
	dw, dh := natural.W*k, natural.H*k

	pos := meta.Position.Clamp()
	drawn := Rect{
		X: box.X + (box.W-dw)*pos.X/100,
		Y: box.Y + (box.H-dh)*pos.Y/100,
		W: dw,
		H: dh,
	}

	s := effectiveScale(meta.Scale)
	cx, cy := box.X+box.W/2, box.Y+box.H/2
	drawn = Rect{
		X: cx + (drawn.X-cx)*s,
		Y: cy + (drawn.Y-cy)*s,
		W: drawn.W * s,
		H: drawn.H * s,
	}

	visible := drawn.Intersect(box)
	if visible.Empty() {
		return Placement{}, false
	}
	sx, sy := natural.W/drawn.W, natural.H/drawn.H
	return Placement{
		Box:     box,
		Drawn:   drawn,
		Visible: visible,
		Source: Rect{
			X: (visible.X - drawn.X) * sx,
			Y: (visible.Y - drawn.Y) * sy,
			W: visible.W * sx,
			H: visible.H * sy,
		},
	}, true
}

func effectiveScale(s float64) float64 {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1
	}
	return s
}

// Validate checks the transform fields an API caller may send.
func Validate(m document.ImageMetadata) error {
	if m.Scale <= 0 || math.IsNaN(m.Scale) || math.IsInf(m.Scale, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, m.Scale)
	}
	if !m.Fit.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFit, m.Fit)
	}
	return nil
}

// CSS returns inline declarations reproducing the transform on an <img>
// sized to its slot.
func CSS(m document.ImageMetadata) string {
	fit := m.Fit
	if !fit.Valid() {
		fit = document.FitCover
	}
	pos := m.Position.Clamp()
	var b strings.Builder
	b.WriteString("object-fit:")
	b.WriteString(string(fit))
	b.WriteString(";object-position:")
	b.WriteString(num(pos.X))
	b.WriteString("% ")
	b.WriteString(num(pos.Y))
	b.WriteString("%;transform:scale(")
	b.WriteString(num(effectiveScale(m.Scale)))
	b.WriteString(");transform-origin:center")
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
