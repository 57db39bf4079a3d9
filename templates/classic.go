package templates

import (
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// classic is the symmetrical announcement: accent frame, centered masthead,
// wide cover, narrative beside a highlights panel.
type classic struct{}

func (classic) ID() style.TemplateID   { return style.Classic }
func (classic) Name() string           { return "The Classic" }
func (classic) Description() string    { return "Timeless symmetrical arrangement." }
func (classic) Font() style.FontFamily { return style.Classic.RecommendedFont() }

func (classic) Front(c Context) []layout.Node {
	const frame, pad = 2.6, 10.6
	x := frame + pad
	w := layout.PageWidth - 2*x
	footerTop := layout.PageHeight - x - 10

	nodes := []layout.Node{{
		Kind:  layout.KindBox,
		Role:  layout.RoleFrame,
		Rect:  layout.PageRect,
		Style: layout.Style{Border: c.Accent, BorderWidth: frame},
	}}

	col := layout.NewColumn(x, x, w, footerTop-8)
	if n, ok := logo(c, rect(x+(w-17)/2, col.Y, 17, 17), layout.Style{}); ok {
		col.Nodes = append(col.Nodes, n)
		col.Gap(17 + 6)
	}

	badge := label(white)
	badge.Align = layout.AlignCenter
	badge.VAlign = layout.VAlignMiddle
	const badgeText = "Official Event Announcement"
	bw := layout.TextWidth(badgeText, badge) + 6
	col.Nodes = append(col.Nodes, layout.Box(rect(x+(w-bw)/2, col.Y, bw, 6), layout.Style{Background: c.Accent},
		layout.Text(layout.RoleLabel, rect(x+(w-bw)/2, col.Y, bw, 6), badgeText, badge)))
	col.Gap(6 + 4)

	col.Text(layout.RoleTitle, c.Data.Title, layout.Style{
		FontSize: 30, Bold: true, Uppercase: true, Tracking: -0.025,
		LineHeight: 1.15, Color: ink, Align: layout.AlignCenter,
	})
	col.Gap(5)
	col.Nodes = append(col.Nodes, dateVenueBar(c, x, col.Y, w, layout.AlignCenter, true)...)
	col.Gap(barHeight + 6)

	col.Image(layout.RoleCover, w*9/21, c.Data.CoverImage, layout.Style{Radius: 4, Border: gray50, BorderWidth: 0.3})
	col.Gap(8)

	const asideW, gutter = 64.0, 10.0
	articleW := w - asideW - gutter
	top := col.Y

	article := layout.NewColumn(x, top, articleW, col.Limit)
	heading := layout.Style{FontSize: 13.5, Bold: true, Uppercase: true, Tracking: 0.1, Color: ink, SingleLine: true}
	hw := layout.TextWidth("The Narrative", heading)
	article.Nodes = append(article.Nodes,
		layout.Text(layout.RoleLabel, rect(x, top, hw, heading.Leading()), "The Narrative", heading),
		layout.Rule(rect(x+hw+4, top+heading.Leading()/2, articleW-hw-4, 0.25), gray100),
	)
	article.Gap(heading.Leading() + 4)
	article.Text(layout.RoleContent, c.Data.Content, layout.Style{FontSize: 10.5, Color: gray700, LineHeight: 1.625})

	panel, _ := highlightsPanel(c, x+articleW+gutter, top, asideW, col.Limit-top, "Highlights", panelMuted)

	nodes = append(nodes, col.Nodes...)
	nodes = append(nodes, article.Nodes...)
	nodes = append(nodes, panel)

	footer := label(ink)
	footer.VAlign = layout.VAlignMiddle
	mono := layout.Style{FontSize: 9, Bold: true, Color: c.Accent, Align: layout.AlignCenter, VAlign: layout.VAlignMiddle, SingleLine: true}
	nodes = append(nodes, layout.Box(rect(x, footerTop, w, 10), layout.Style{Opacity: 0.4},
		layout.Rule(rect(x, footerTop, w, 0.25), gray100),
		layout.Text(layout.RoleFooter, rect(x, footerTop+0.5, w/2, 9.5), "EST. 2024", footer),
		layout.Box(rect(x+w-9.5, footerTop+0.5, 9.5, 9.5), layout.Style{Border: c.Accent, BorderWidth: 0.5},
			layout.Text(layout.RoleNone, rect(x+w-9.5, footerTop+0.5, 9.5, 9.5), "IB", mono)),
	))
	return nodes
}
