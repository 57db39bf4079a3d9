package templates

import (
	"strings"

	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// minimal centers a narrow column vertically on the page.
type minimal struct{}

func (minimal) ID() style.TemplateID   { return style.Minimal }
func (minimal) Name() string           { return "The Pure" }
func (minimal) Description() string    { return "Ultra-clean, spacing-focused design." }
func (minimal) Font() style.FontFamily { return style.Minimal.RecommendedFont() }

func (minimal) Front(c Context) []layout.Node {
	const colW, pad = 152.0, 21.0
	x := (layout.PageWidth - colW) / 2

	// Laid out from y=0, then shifted to sit in the vertical centre.
	col := layout.NewColumn(x, 0, colW, layout.PageHeight-2*pad)
	if n, ok := logo(c, rect(x+(colW-17)/2, 0, 17, 17), layout.Style{}); ok {
		col.Nodes = append(col.Nodes, n)
		col.Gap(17 + 10.6)
	}
	col.Nodes = append(col.Nodes, layout.Rule(rect(x+(colW-17)/2, col.Y, 17, 1), c.Accent))
	col.Gap(1 + 10.6)

	col.Text(layout.RoleTitle, c.Data.Title, layout.Style{
		FontSize: 27, Bold: true, Uppercase: true, Tracking: -0.025, LineHeight: 1.2,
		Color: ink, Align: layout.AlignCenter,
	})
	col.Gap(8)

	meta := label(gray400)
	meta.FontSize = 9
	meta.Tracking = 0.1
	col.Nodes = append(col.Nodes, metaLine(c, x, col.Y, colW, meta)...)
	col.Gap(meta.Leading() + 12.7)

	col.Image(layout.RoleCover, colW*10/16, c.Data.CoverImage, layout.Style{
		Grayscale: true, Radius: 8, Border: gray100, BorderWidth: 0.3,
	})
	col.Gap(12.7)
	col.Text(layout.RoleContent, c.Data.Content, layout.Style{
		FontSize: 10.5, Color: gray500, LineHeight: 2, Align: layout.AlignCenter,
	})

	dy := (layout.PageHeight - col.Y) / 2
	if dy < pad {
		dy = pad
	}
	return layout.Shift(col.Nodes, 0, dy)
}

// metaLine prints "date / location" centered, with a faint separator. Blank
// parts are left out along with their separator.
func metaLine(c Context, x, y, w float64, s layout.Style) []layout.Node {
	date := strings.TrimSpace(c.Data.Date)
	loc := strings.TrimSpace(c.Data.Location)
	if date == "" && loc == "" {
		return nil
	}
	const gap = 4.0
	sep := s
	sep.Opacity = 0.2

	dw := layout.TextWidth(date, s)
	lw := layout.TextWidth(loc, s)
	sw := 0.0
	if date != "" && loc != "" {
		sw = layout.TextWidth("/", sep) + 2*gap
	}
	total := dw + sw + lw
	if total > w {
		scale := w / total
		dw, sw, lw = dw*scale, sw*scale, lw*scale
	}
	cx := x + (w-dw-sw-lw)/2
	h := s.Leading()

	var out []layout.Node
	if date != "" {
		out = append(out, layout.Text(layout.RoleDate, rect(cx, y, dw, h), date, s))
		cx += dw
	}
	if sw > 0 {
		sep.Align = layout.AlignCenter
		out = append(out, layout.Text(layout.RoleNone, rect(cx, y, sw, h), "/", sep))
		cx += sw
	}
	if loc != "" {
		out = append(out, layout.Text(layout.RoleLocation, rect(cx, y, lw, h), loc, s))
	}
	return out
}
