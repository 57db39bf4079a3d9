package templates

import (
	"fmt"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// Placeholders for blank supplemental pages.
const (
	supplementalBody = "Detailed supplemental content for this section."
	graphicLabel     = "Supplemental Graphic"
)

// SupplementalHeadline is the headline shown for page index i when the page
// has no title of its own.
func SupplementalHeadline(i int) string {
	return fmt.Sprintf("Extended Overview — %d", i+1)
}

// Supplemental lays out the continuation page for additionalPages[i]. Every
// template shares it. An index past the end renders a blank continuation.
func Supplemental(data document.EventData, cfg style.Config, i int) layout.Page {
	c := NewContext(data, cfg)
	pg, _ := data.Page(i)
	number := i + 2

	const pad, top, logoSize = 21.0, 2.1, 10.6
	x := pad
	w := layout.PageWidth - 2*pad
	footerY := layout.PageHeight - pad - 8
	limit := footerY - 8

	nodes := []layout.Node{layout.Rule(rect(0, 0, layout.PageWidth, top), c.Accent)}

	headline := layout.Style{
		FontSize: 22.5, Bold: true, Uppercase: true, Tracking: -0.025, LineHeight: 1.25, Color: c.Accent,
	}
	head := layout.NewColumn(x, pad, w-logoSize-10, limit)
	head.Text(layout.RoleTitle, fallback(pg.Title, SupplementalHeadline(i)), headline)
	nodes = append(nodes, head.Nodes...)
	if n, ok := logo(c, rect(x+w-logoSize, pad, logoSize, logoSize), layout.Style{Opacity: 0.4, Grayscale: true}); ok {
		nodes = append(nodes, n)
	}

	col := layout.NewColumn(x, max(head.Y, pad+logoSize)+4, w, limit)
	col.Nodes = append(col.Nodes, layout.Rule(rect(x, col.Y, 21, 1), c.Accent))
	col.Gap(1 + 12.7)
	nodes = append(nodes, col.Nodes...)

	const gutter = 10.6
	articleW := (w - gutter) * 8 / 12
	asideW := w - gutter - articleW
	bodyTop := col.Y

	article := layout.NewColumn(x, bodyTop, articleW, limit)
	article.Text(layout.RoleContent, fallback(pg.Content, supplementalBody), layout.Style{
		FontSize: 12, Color: gray800, LineHeight: 2,
	})
	if img := pg.Image(); img != nil {
		imgH := articleW * 9 / 16
		caption := label(gray300)
		if article.Remaining() >= 10.6+8+caption.Leading()+4+imgH {
			article.Gap(10.6 + 8)
			article.Nodes = append(article.Nodes,
				layout.Box(rect(x, article.Y+0.5, 3.5, 3.5), layout.Style{Border: gray300, BorderWidth: 0.4, Radius: 0.6}),
				layout.Text(layout.RoleLabel, rect(x+6, article.Y, articleW-6, caption.Leading()), graphicLabel, caption),
			)
			article.Gap(caption.Leading() + 4)
			article.Image(layout.RolePageImage, imgH, img, layout.Style{Radius: 8, Grayscale: true})
		}
	}
	nodes = append(nodes, article.Nodes...)

	// The context panel is a faded, slightly reduced copy anchored top-right.
	const shrink = 0.9
	pw := asideW * shrink
	panel, _ := highlightsPanel(c, x+w-pw, bodyTop, pw, limit-bodyTop, "Context", panelMuted)
	nodes = append(nodes, layout.Box(panel.Rect, layout.Style{Opacity: 0.5, Grayscale: true}, panel))

	foot := label(ink)
	foot.FontSize = 7.5
	foot.VAlign = layout.VAlignMiddle
	part := foot
	part.Italic = true
	part.Align = layout.AlignRight
	nodes = append(nodes, layout.Box(rect(x, footerY, w, 8), layout.Style{Opacity: 0.3},
		layout.Rule(rect(x, footerY, w, 0.25), gray100),
		layout.Text(layout.RoleFooter, rect(x, footerY+0.5, w*0.6, 7.5), data.Title, foot),
		layout.Text(layout.RoleNone, rect(x+w*0.6, footerY+0.5, w*0.4, 7.5), fmt.Sprintf("Part %d", number), part),
	))

	return layout.Page{Background: white, Nodes: nodes}
}
