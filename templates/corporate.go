package templates

import (
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// corporate reserves an accent header band for the brand logo, then runs a
// conventional title, cover and agenda layout inside a thin frame.
type corporate struct{}

func (corporate) ID() style.TemplateID   { return style.Corporate }
func (corporate) Name() string           { return "The Corporate" }
func (corporate) Description() string    { return "Dedicated header space for prominent brand logos." }
func (corporate) Font() style.FontFamily { return style.Corporate.RecommendedFont() }

func (corporate) Front(c Context) []layout.Node {
	const bandH, pad, logoSize = 42.0, 14.0, 30.0
	nodes := []layout.Node{
		{Kind: layout.KindBox, Role: layout.RoleFrame, Rect: layout.PageRect, Style: layout.Style{Border: c.Accent, BorderWidth: 0.8}},
		layout.Box(rect(0, 0, layout.PageWidth, bandH), layout.Style{Background: c.Accent}),
	}

	x := pad
	w := layout.PageWidth - 2*pad
	infoX := x
	if n, ok := logo(c, rect(x+1.5, (bandH-logoSize)/2+1.5, logoSize-3, logoSize-3), layout.Style{}); ok {
		nodes = append(nodes, layout.Box(rect(x, (bandH-logoSize)/2, logoSize, logoSize), layout.Style{Background: white, Radius: 2}), n)
		infoX = x + logoSize + 8
	}

	kicker := label(white)
	kicker.Opacity = 0.75
	kicker.Align = layout.AlignRight
	meta := label(white)
	meta.FontSize = 9
	meta.Tracking = 0.05
	meta.Align = layout.AlignRight
	metaW := x + w - infoX
	nodes = append(nodes,
		layout.Text(layout.RoleLabel, rect(infoX, 12, metaW, kicker.Leading()), "Corporate Bulletin", kicker),
		layout.Text(layout.RoleDate, rect(infoX, 19, metaW, meta.Leading()), fallback(c.Data.Date, dateFallback), meta),
		layout.Text(layout.RoleLocation, rect(infoX, 19+meta.Leading()+1, metaW, meta.Leading()), fallback(c.Data.Location, locationFallback), meta),
	)

	footerY := layout.PageHeight - 12
	limit := footerY - 6
	col := layout.NewColumn(x, bandH+10, w, limit)
	col.Text(layout.RoleTitle, c.Data.Title, layout.Style{
		FontSize: 28, Bold: true, Tracking: -0.02, LineHeight: 1.15, Color: ink,
	})
	col.Gap(4)
	col.Nodes = append(col.Nodes, layout.Rule(rect(x, col.Y, 24, 1.2), c.Accent))
	col.Gap(1.2 + 7)
	col.Image(layout.RoleCover, w/2, c.Data.CoverImage, layout.Style{Radius: 1.5})
	col.Gap(8)
	nodes = append(nodes, col.Nodes...)

	const agendaW, gutter = 60.0, 9.0
	top := col.Y
	body := layout.NewColumn(x, top, w-agendaW-gutter, limit)
	body.Text(layout.RoleContent, c.Data.Content, layout.Style{FontSize: 10.5, Color: gray700, LineHeight: 1.65})
	nodes = append(nodes, body.Nodes...)

	panel, _ := highlightsPanel(c, x+w-agendaW, top, agendaW, limit-top, "Agenda", panelMuted)
	nodes = append(nodes, panel)

	foot := label(gray500)
	foot.VAlign = layout.VAlignMiddle
	right := foot
	right.Align = layout.AlignRight
	return append(nodes,
		layout.Rule(rect(0, footerY, layout.PageWidth, 1.5), c.Accent),
		layout.Text(layout.RoleFooter, rect(x, footerY+1.5, w*0.6, 10.5-1.5), c.Data.Title, foot),
		layout.Text(layout.RoleNone, rect(x+w*0.6, footerY+1.5, w*0.4, 10.5-1.5), fallback(c.Data.Location, locationFallback), right),
	)
}
