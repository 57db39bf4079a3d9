package templates

import (
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// executive puts the logo first: a framed sheet with a logo-led masthead,
// a panoramic cover and an agenda column beside the overview.
type executive struct{}

func (executive) ID() style.TemplateID   { return style.Executive }
func (executive) Name() string           { return "The Executive" }
func (executive) Description() string    { return "Balanced logo-first corporate aesthetic." }
func (executive) Font() style.FontFamily { return style.Executive.RecommendedFont() }

func (executive) Front(c Context) []layout.Node {
	const inset, rule, pad, logoSize = 8.0, 1.2, 9.0, 24.0
	frame := layout.PageRect.Inset(inset)
	nodes := []layout.Node{
		{Kind: layout.KindBox, Role: layout.RoleFrame, Rect: frame, Style: layout.Style{Border: c.Accent, BorderWidth: rule}},
		layout.Box(frame.Inset(rule+1.2), layout.Style{Border: c.Tint, BorderWidth: 0.3}),
	}

	x := inset + rule + pad
	w := layout.PageWidth - 2*x
	footerTop := layout.PageHeight - x - 8
	limit := footerTop - 6

	// Masthead: logo on the left, kicker and title to its right.
	tx, tw := x, w
	if n, ok := logo(c, rect(x, x, logoSize, logoSize), layout.Style{}); ok {
		nodes = append(nodes, n)
		tx, tw = x+logoSize+8, w-logoSize-8
	}
	head := layout.NewColumn(tx, x, tw, limit)
	head.Text(layout.RoleLabel, "Executive Briefing", label(c.Accent))
	head.Gap(2)
	head.Text(layout.RoleTitle, c.Data.Title, layout.Style{FontSize: 26, Bold: true, LineHeight: 1.15, Color: ink})
	nodes = append(nodes, head.Nodes...)

	col := layout.NewColumn(x, max(head.Y, x+logoSize)+5, w, limit)
	col.Rule(0.6, c.Accent)
	col.Gap(3)
	col.Nodes = append(col.Nodes, dateVenueBar(c, x, col.Y, w, layout.AlignLeft, false)...)
	col.Gap(barHeight + 5)
	col.Image(layout.RoleCover, w*7/16, c.Data.CoverImage, layout.Style{Radius: 2})
	col.Gap(8)
	nodes = append(nodes, col.Nodes...)

	const agendaW, gutter = 58.0, 9.0
	top := col.Y
	panel, _ := highlightsPanel(c, x, top, agendaW, limit-top, "Key Agenda", panelMuted)
	nodes = append(nodes, panel)

	body := layout.NewColumn(x+agendaW+gutter, top, w-agendaW-gutter, limit)
	heading := label(ink)
	heading.FontSize = 10.5
	heading.Tracking = 0.1
	body.Text(layout.RoleLabel, "Overview", heading)
	body.Gap(1.5)
	body.Rule(0.25, gray200)
	body.Gap(4)
	body.Text(layout.RoleContent, c.Data.Content, layout.Style{FontSize: 10.5, Color: gray700, LineHeight: 1.7})
	nodes = append(nodes, body.Nodes...)

	foot := label(gray500)
	foot.VAlign = layout.VAlignMiddle
	right := foot
	right.Align = layout.AlignRight
	return append(nodes, layout.Box(rect(x, footerTop, w, 8), layout.Style{Opacity: 0.6},
		layout.Rule(rect(x, footerTop, w, 0.25), gray200),
		layout.Text(layout.RoleFooter, rect(x, footerTop+0.5, w*0.6, 7.5), c.Data.Title, foot),
		layout.Text(layout.RoleNone, rect(x+w*0.6, footerTop+0.5, w*0.4, 7.5), "Executive Summary", right),
	))
}
