package templates

import (
	"math"
	"strings"

	"github.com/eringen/instantbulletin/framing"
	"github.com/eringen/instantbulletin/layout"
)

// Neutral palette shared by all variants.
const (
	white     = "#ffffff"
	black     = "#000000"
	ink       = "#111111"
	gray900   = "#111827"
	gray800   = "#1f2937"
	gray700   = "#374151"
	gray600   = "#4b5563"
	gray500   = "#6b7280"
	gray400   = "#9ca3af"
	gray300   = "#d1d5db"
	gray200   = "#e5e7eb"
	gray100   = "#f3f4f6"
	gray50    = "#f9fafb"
	slate50   = "#f8fafc"
	slate100  = "#f1f5f9"
	slate200  = "#e2e8f0"
	indigo400 = "#818cf8"
)

const (
	dateFallback     = "TBA"
	locationFallback = "Online"
)

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func rect(x, y, w, h float64) framing.Rect {
	return framing.Rect{X: x, Y: y, W: w, H: h}
}

// label is the small bold uppercase caption style used across variants.
func label(color string) layout.Style {
	return layout.Style{
		FontSize:   7.5,
		Bold:       true,
		Uppercase:  true,
		Tracking:   0.2,
		Color:      color,
		SingleLine: true,
	}
}

// logo places the logo in r, or reports false for an empty slot.
func logo(c Context, r framing.Rect, s layout.Style) (layout.Node, bool) {
	return layout.Image(layout.RoleLogo, r, c.Data.Logo, s)
}

const barHeight = 10.0

// dateVenueBar lays out the date and location with accent markers. Missing
// values read "TBA" and "Online".
func dateVenueBar(c Context, x, y, w float64, align layout.Align, bordered bool) []layout.Node {
	date := fallback(c.Data.Date, dateFallback)
	loc := fallback(c.Data.Location, locationFallback)

	ts := layout.Style{
		FontSize:   7.5,
		Bold:       true,
		Uppercase:  true,
		Tracking:   0.05,
		Color:      gray500,
		SingleLine: true,
		VAlign:     layout.VAlignMiddle,
	}
	const marker, gap, sep = 2.0, 2.0, 5.0
	fixed := 2*(marker+gap) + 2*sep + 1
	dw := layout.TextWidth(date, ts)
	lw := layout.TextWidth(loc, ts)
	if avail := w - fixed; dw+lw > avail {
		half := avail / 2
		dw, lw = math.Min(dw, math.Max(half, avail-lw)), math.Min(lw, math.Max(half, avail-dw))
	}
	total := fixed + dw + lw

	cx := x
	switch align {
	case layout.AlignCenter:
		cx = x + (w-total)/2
	case layout.AlignRight:
		cx = x + w - total
	}
	mid := y + barHeight/2

	var out []layout.Node
	if bordered {
		out = append(out,
			layout.Rule(rect(x, y, w, 0.25), gray100),
			layout.Rule(rect(x, y+barHeight-0.25, w, 0.25), gray100),
		)
	}
	out = append(out,
		layout.Box(rect(cx, mid-marker/2, marker, marker), layout.Style{Background: c.Accent, Radius: 0.4}),
		layout.Text(layout.RoleDate, rect(cx+marker+gap, y, dw, barHeight), date, ts),
	)
	cx += marker + gap + dw + sep
	out = append(out, layout.Box(rect(cx, mid-0.5, 1, 1), layout.Style{Background: gray300, Radius: 0.5}))
	cx += 1 + sep
	out = append(out,
		layout.Box(rect(cx, mid-marker/2, marker, marker), layout.Style{Background: c.Accent, Radius: marker / 2}),
		layout.Text(layout.RoleLocation, rect(cx+marker+gap, y, lw, barHeight), loc, ts),
	)
	return out
}

type panelVariant int

const (
	panelMuted panelVariant = iota
	panelAccent
)

// highlightsPanel lays out the filtered highlights under a heading. Items
// that would push the panel past maxH are dropped. It returns the panel
// and its height.
func highlightsPanel(c Context, x, y, w, maxH float64, title string, v panelVariant) (layout.Node, float64) {
	const pad, titleGap, itemGap, dot = 6.0, 5.0, 4.5, 1.6

	ps := layout.Style{Background: slate50, Radius: 4}
	if v == panelAccent {
		ps = layout.Style{Background: c.Wash, Radius: 4}
	}

	ts := label(c.Accent)
	ts.FontSize = 9
	is := layout.Style{FontSize: 9, Bold: true, Color: gray800, LineHeight: 1.375}

	inner := w - 2*pad
	cy := y + pad
	children := []layout.Node{layout.Text(layout.RoleLabel, rect(x+pad, cy, inner, ts.Leading()), title, ts)}
	cy += ts.Leading() + titleGap

	added := 0
	for _, h := range c.Highlights {
		th := layout.TextHeight(h, inner-4, is)
		if cy+th+pad > y+maxH {
			break
		}
		added++
		children = append(children,
			layout.Box(rect(x+pad, cy+1.2, dot, dot), layout.Style{Background: c.Accent, Radius: dot / 2}),
			layout.Text(layout.RoleHighlight, rect(x+pad+4, cy, inner-4, th), h, is),
		)
		cy += th + itemGap
	}
	if added > 0 {
		cy -= itemGap
	}
	h := cy + pad - y

	if v == panelAccent {
		children = append([]layout.Node{layout.Rule(rect(x, y, 1.1, h), c.Accent)}, children...)
	}
	panel := layout.Box(rect(x, y, w, h), ps, children...)
	panel.Role = layout.RoleHighlights
	return panel, h
}
