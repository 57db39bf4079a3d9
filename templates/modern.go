package templates

import (
	"fmt"

	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// modern runs a narrow sidebar with the logo and a vertical wordmark, then
// a tight masthead and two columns: narrative with a square grayscale
// cover, and a dark focus panel.
type modern struct{}

func (modern) ID() style.TemplateID   { return style.Modern }
func (modern) Name() string           { return "The Edge" }
func (modern) Description() string    { return "Sleek sidebar-driven tech layout." }
func (modern) Font() style.FontFamily { return style.Modern.RecommendedFont() }

func (modern) Front(c Context) []layout.Node {
	const sidebar, pad, gutter = 21.0, 12.7, 10.6
	nodes := []layout.Node{
		{Kind: layout.KindBox, Role: layout.RoleFrame, Rect: layout.PageRect, Style: layout.Style{Border: gray100, BorderWidth: 0.3}},
		layout.Rule(rect(sidebar, 0, 0.3, layout.PageHeight), gray100),
	}

	sy := 10.6
	if n, ok := logo(c, rect((sidebar-12.7)/2, sy, 12.7, 12.7), layout.Style{}); ok {
		nodes = append(nodes, n)
		sy += 12.7
	}
	sy += 20
	nodes = append(nodes, layout.Text(layout.RoleLabel, rect(0, sy, sidebar, 60), "Bulletin", layout.Style{
		FontSize: 15, Bold: true, Uppercase: true, Tracking: 0.5, Color: gray300,
		Vertical: true, Align: layout.AlignCenter, SingleLine: true,
	}))

	x := sidebar + pad
	w := layout.PageWidth - x - pad
	limit := layout.PageHeight - pad

	col := layout.NewColumn(x, pad, w, limit)
	kicker := label(gray400)
	kicker.FontSize = 9
	kicker.Tracking = 0.1
	col.Nodes = append(col.Nodes,
		layout.Rule(rect(x, col.Y+kicker.Leading()/2, 12.7, 0.5), c.Accent),
		layout.Text(layout.RoleLabel, rect(x+16, col.Y, w-16, kicker.Leading()), "Exclusive Record", kicker),
	)
	col.Gap(kicker.Leading() + 2)
	col.Text(layout.RoleTitle, c.Data.Title, layout.Style{
		FontSize: 45, Bold: true, Uppercase: true, Tracking: -0.05, LineHeight: 0.85, Color: ink,
	})
	col.Gap(8)
	col.Nodes = append(col.Nodes, dateVenueBar(c, x, col.Y, w, layout.AlignLeft, false)...)
	col.Gap(barHeight + 10.6)
	nodes = append(nodes, col.Nodes...)

	colW := (w - gutter) / 2
	top := col.Y

	left := layout.NewColumn(x, top, colW, limit)
	left.Text(layout.RoleContent, c.Data.Content, layout.Style{FontSize: 10.5, Bold: true, Color: gray500, LineHeight: 1.625})
	left.Gap(8)
	if left.Remaining() >= colW {
		left.Image(layout.RoleCover, colW, c.Data.CoverImage, layout.Style{
			Grayscale: true, Radius: 10, Border: white, BorderWidth: 1,
		})
	}
	nodes = append(nodes, left.Nodes...)

	return append(nodes, focusPanel(c, x+colW+gutter, top, colW, limit-top))
}

// focusPanel is the dark numbered highlights card.
func focusPanel(c Context, x, y, w, h float64) layout.Node {
	const pad = 10.6
	inner := w - 2*pad
	head := label(indigo400)
	head.FontSize = 9
	head.Tracking = 0.1
	index := label(white)
	index.FontSize = 7.5
	index.Opacity = 0.3
	item := layout.Style{FontSize: 9, Bold: true, Uppercase: true, Tracking: -0.025, LineHeight: 1.25, Color: white}

	cy := y + pad
	children := []layout.Node{layout.Text(layout.RoleLabel, rect(x+pad, cy, inner, head.Leading()), "Main Focus", head)}
	cy += head.Leading() + 10.6

	for i, hl := range c.Highlights {
		th := layout.TextHeight(hl, inner, item)
		need := index.Leading() + 1 + th
		if cy+need > y+h-pad {
			break
		}
		if i > 0 {
			children = append(children, layout.Box(rect(x+pad, cy-4, inner, 0.25), layout.Style{Background: white, Opacity: 0.1}))
		}
		children = append(children,
			layout.Text(layout.RoleLabel, rect(x+pad, cy, inner, index.Leading()), fmt.Sprintf("Index %02d", i+1), index),
			layout.Text(layout.RoleHighlight, rect(x+pad, cy+index.Leading()+1, inner, th), hl, item),
		)
		cy += need + 8
	}

	panel := layout.Box(rect(x, y, w, h), layout.Style{Background: gray900, Radius: 12}, children...)
	panel.Role = layout.RoleHighlights
	return panel
}
