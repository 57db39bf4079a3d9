package templates

import (
	"fmt"

	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// gallery gives most of the sheet to one framed image. Text is reduced to
// a caption block and a small signature.
type gallery struct{}

func (gallery) ID() style.TemplateID   { return style.Gallery }
func (gallery) Name() string           { return "The Gallery" }
func (gallery) Description() string    { return "Bold imagery with minimal signatures." }
func (gallery) Font() style.FontFamily { return style.Gallery.RecommendedFont() }

func (gallery) Front(c Context) []layout.Node {
	const pad, mat = 14.0, 3.0
	x := pad
	w := layout.PageWidth - 2*pad
	limit := layout.PageHeight - pad - 8

	var nodes []layout.Node
	sigY := pad
	if n, ok := logo(c, rect(x+(w-10)/2, sigY, 10, 10), layout.Style{}); ok {
		nodes = append(nodes, n)
		sigY += 10
	} else {
		nodes = append(nodes, layout.Rule(rect(x+(w-8)/2, sigY+4, 8, 1), gray300))
		sigY += 8
	}

	frame := rect(x, sigY+6, w, 160)
	nodes = append(nodes, layout.Box(frame, layout.Style{Background: slate100, Border: gray200, BorderWidth: 1.2}))
	if n, ok := layout.Image(layout.RoleCover, frame.Inset(mat), c.Data.CoverImage, layout.Style{}); ok {
		nodes = append(nodes, n)
	}

	col := layout.NewColumn(x, frame.Bottom()+8, w, limit)
	col.Text(layout.RoleTitle, c.Data.Title, layout.Style{
		FontSize: 28, Bold: true, Uppercase: true, Tracking: -0.025, LineHeight: 1.05, Color: ink,
	})
	col.Gap(3)
	col.Nodes = append(col.Nodes, dateVenueBar(c, x, col.Y, w, layout.AlignLeft, true)...)
	col.Gap(barHeight + 5)
	nodes = append(nodes, col.Nodes...)

	const listW, gutter = 58.0, 8.0
	top := col.Y
	body := layout.NewColumn(x, top, w-listW-gutter, limit)
	body.Text(layout.RoleContent, c.Data.Content, layout.Style{FontSize: 9.5, Color: gray600, LineHeight: 1.6})
	nodes = append(nodes, body.Nodes...)

	list := layout.NewColumn(x+w-listW, top, listW, limit)
	list.Text(layout.RoleLabel, "Featured", label(c.Accent))
	list.Gap(2)
	num := label(c.Accent)
	item := layout.Style{FontSize: 8.5, Bold: true, Color: gray800, LineHeight: 1.3}
	for i, h := range c.Highlights {
		th := layout.TextHeight(h, listW-8, item)
		if th > list.Remaining() {
			break
		}
		list.Nodes = append(list.Nodes,
			layout.Text(layout.RoleNone, rect(list.X, list.Y, 7, num.Leading()), fmt.Sprintf("%02d", i+1), num),
			layout.Text(layout.RoleHighlight, rect(list.X+8, list.Y, listW-8, th), h, item),
		)
		list.Gap(th + 2.5)
	}
	nodes = append(nodes, list.Nodes...)

	sig := label(gray400)
	sig.Align = layout.AlignCenter
	return append(nodes,
		layout.Rule(rect(x+(w-10)/2, layout.PageHeight-pad-5, 10, 0.5), c.Accent),
		layout.Text(layout.RoleFooter, rect(x, layout.PageHeight-pad-3.5, w, sig.Leading()), "Gallery Edition", sig),
	)
}
