package templates

import (
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// editorial is asymmetric: a tinted rail beside an off-centre cover, a
// large italic headline, and the narrative set against a margin column.
type editorial struct{}

func (editorial) ID() style.TemplateID   { return style.Editorial }
func (editorial) Name() string           { return "The Editorial" }
func (editorial) Description() string    { return "Asymmetric artistic layout for creative events." }
func (editorial) Font() style.FontFamily { return style.Editorial.RecommendedFont() }

func (editorial) Front(c Context) []layout.Node {
	const railW, heroH, pad = 62.0, 150.0, 14.0

	nodes := []layout.Node{layout.Box(rect(0, 0, railW, heroH), layout.Style{Background: c.Wash})}
	if n, ok := logo(c, rect(pad, pad, 18, 18), layout.Style{}); ok {
		nodes = append(nodes, n)
	}

	date := label(c.Accent)
	date.FontSize = 9
	date.Tracking = 0.1
	date.SingleLine = false
	loc := date
	loc.Color = gray600
	loc.Bold = false
	rail := layout.NewColumn(pad, heroH-pad-24, railW-2*pad, heroH-pad)
	rail.Text(layout.RoleDate, fallback(c.Data.Date, dateFallback), date)
	rail.Gap(2)
	rail.Text(layout.RoleLocation, fallback(c.Data.Location, locationFallback), loc)
	nodes = append(nodes, rail.Nodes...)

	hero := rect(railW, 0, layout.PageWidth-railW, heroH)
	if n, ok := layout.Image(layout.RoleCover, hero, c.Data.CoverImage, layout.Style{}); ok {
		nodes = append(nodes, n)
	} else {
		nodes = append(nodes, layout.Box(hero, layout.Style{Background: slate100}))
	}
	nodes = append(nodes, layout.Rule(rect(layout.PageWidth-pad-20, heroH-10, 20, 6), c.Accent))

	w := layout.PageWidth - 2*pad
	limit := layout.PageHeight - pad
	col := layout.NewColumn(pad, heroH+10, w, limit)
	col.Text(layout.RoleTitle, c.Data.Title, layout.Style{
		FontSize: 36, Bold: true, Italic: true, LineHeight: 1.05, Tracking: -0.02, Color: ink,
	})
	col.Gap(5)
	col.Nodes = append(col.Nodes, layout.Rule(rect(pad, col.Y, 30, 1), c.Accent))
	col.Gap(1 + 8)
	nodes = append(nodes, col.Nodes...)

	const marginW, gutter = 44.0, 8.0
	top := col.Y
	margin := layout.NewColumn(pad, top, marginW, limit)
	margin.Text(layout.RoleLabel, "In Focus", label(c.Accent))
	margin.Gap(3)
	item := layout.Style{FontSize: 9, Italic: true, Color: gray700, LineHeight: 1.4}
	for _, h := range c.Highlights {
		if layout.TextHeight(h, marginW, item) > margin.Remaining() {
			break
		}
		margin.Text(layout.RoleHighlight, h, item)
		margin.Gap(1.5)
		margin.Rule(0.25, gray200)
		margin.Gap(2.5)
	}
	nodes = append(nodes, margin.Nodes...)

	body := layout.NewColumn(pad+marginW+gutter, top, w-marginW-gutter, limit)
	body.Text(layout.RoleContent, c.Data.Content, layout.Style{FontSize: 11, Color: gray800, LineHeight: 1.7})
	return append(nodes, body.Nodes...)
}
