package templates

import (
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// magazineQuote is the pull quote printed beside the date bar.
const magazineQuote = "A landmark event showcasing innovation and creative collaboration."

// magazine leads with a full-bleed hero carrying the title, then a pull
// quote and the narrative beside an accent details panel.
type magazine struct{}

func (magazine) ID() style.TemplateID   { return style.Magazine }
func (magazine) Name() string           { return "The Feature" }
func (magazine) Description() string    { return "Editorial hero-focused composition." }
func (magazine) Font() style.FontFamily { return style.Magazine.RecommendedFont() }

func (magazine) Front(c Context) []layout.Node {
	const heroH, pad, logoSize = 119.0, 10.6, 21.0
	nodes := heroWithTitle(c, heroH, pad, logoSize, 40)

	x := pad
	w := layout.PageWidth - 2*pad
	const asideW, gutter = 56.0, 10.6
	mainW := w - asideW - gutter
	top := heroH + pad
	limit := layout.PageHeight - pad

	col := layout.NewColumn(x, top, mainW, limit)
	col.Nodes = append(col.Nodes, dateVenueBar(c, x, top, mainW, layout.AlignLeft, true)...)
	col.Gap(barHeight + 8)

	qs := layout.Style{FontSize: 13.5, Italic: true, Color: gray600, LineHeight: 1.625}
	const markW = 12.0
	qh := layout.TextHeight(magazineQuote, mainW-markW-4, qs)
	col.Nodes = append(col.Nodes,
		layout.Text(layout.RoleNone, rect(x, col.Y-2, markW, 14), "“",
			layout.Style{FontSize: 40, Bold: true, Color: c.Accent, Opacity: 0.1, LineHeight: 1}),
		layout.Rule(rect(x+markW, col.Y, 0.5, qh), c.Accent),
		layout.Text(layout.RoleLabel, rect(x+markW+4, col.Y, mainW-markW-4, qh), magazineQuote, qs),
	)
	col.Gap(qh + 6)
	col.Text(layout.RoleContent, c.Data.Content, layout.Style{FontSize: 12, Color: gray800, LineHeight: 1.625})
	nodes = append(nodes, col.Nodes...)

	panel, _ := highlightsPanel(c, x+mainW+gutter, top, asideW, limit-top, "Event Details", panelAccent)
	return append(nodes, panel)
}

// heroWithTitle draws a full-width cover band of height h with a dark fade
// and the title and logo laid over its lower edge. Without a cover the band
// shows a placeholder tile.
func heroWithTitle(c Context, h, pad, logoSize, titleSize float64) []layout.Node {
	band := rect(0, 0, layout.PageWidth, h)
	nodes := []layout.Node{layout.Box(band, layout.Style{Background: slate100})}
	if n, ok := layout.Image(layout.RoleCover, band, c.Data.CoverImage, layout.Style{}); ok {
		nodes = append(nodes, n)
	} else {
		nodes = append(nodes, layout.Box(rect((layout.PageWidth-14)/2, (h-14)/2, 14, 14),
			layout.Style{Border: slate200, BorderWidth: 1, Radius: 2}))
	}
	nodes = append(nodes, layout.Box(band, layout.Style{Background: black, Opacity: 0.8, Fade: true}))

	titleW := layout.PageWidth - 2*pad
	if !c.Data.Logo.Empty() {
		titleW -= logoSize + 6
	}
	nodes = append(nodes, layout.Text(layout.RoleTitle, rect(pad, pad, titleW, h-2*pad), c.Data.Title, layout.Style{
		FontSize: titleSize, Bold: true, Uppercase: true, Tracking: -0.05,
		LineHeight: 1, Color: white, VAlign: layout.VAlignBottom,
	}))
	if n, ok := logo(c, rect(layout.PageWidth-pad-logoSize, h-pad-logoSize, logoSize, logoSize),
		layout.Style{Radius: 3, Border: gray200, BorderWidth: 0.3}); ok {
		nodes = append(nodes, n)
	}
	return nodes
}
