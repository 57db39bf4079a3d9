// Package pagination keeps supplemental page records in step with the
// configured page count and assembles the full page tree.
package pagination

import (
	"fmt"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/framing"
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
	"github.com/eringen/instantbulletin/templates"
)

// SetPageCount returns pages with enough records for a bulletin of n pages
// when the count grows past current. Existing records are never dropped,
// reordered or modified, so lowering the count and raising it again
// restores earlier content. The input slice is not mutated.
func SetPageCount(pages []document.EventPage, current, n int) []document.EventPage {
	if n <= current {
		return pages
	}
	need := n - 1
	if len(pages) >= need {
		return pages
	}
	out := make([]document.EventPage, len(pages), need)
	copy(out, pages)
	for len(out) < need {
		out = append(out, document.EmptyPage())
	}
	return out
}

// Sync applies SetPageCount to a document whose page count changes from
// prev to next.
func Sync(data document.EventData, prev, next int) document.EventData {
	pages := SetPageCount(data.AdditionalPages, prev, next)
	if len(pages) == len(data.AdditionalPages) {
		return data
	}
	out := data.Clone()
	out.AdditionalPages = pages
	return out
}

// PageLabel is the preview caption of page n.
func PageLabel(n, total int) string {
	return fmt.Sprintf("Page %d / %d", n, total)
}

// Assemble renders the front page and pageCount-1 supplemental pages into
// one tree. Supplemental page k (1-based) renders additionalPages[k-2].
func Assemble(data document.EventData, cfg style.Config) layout.Tree {
	cfg = cfg.Normalize()
	total := cfg.PageCount

	pages := make([]layout.Page, 0, total)
	pages = append(pages, templates.Render(data, cfg))
	for i := 0; i < total-1; i++ {
		pages = append(pages, templates.Supplemental(data, cfg, i))
	}
	for i := range pages {
		p := &pages[i]
		p.Number = i + 1
		p.Total = total
		p.BreakAfter = i < total-1
		p.Nodes = append(p.Nodes, pageNumber(p.Number, total))
	}

	return layout.Tree{
		Title:  data.Title,
		Font:   cfg.FontFamily,
		Accent: cfg.Accent().Hex(),
		Pages:  pages,
	}
}

func pageNumber(n, total int) layout.Node {
	const w, h, right, bottom = 40.0, 4.0, 10.6, 6.35
	r := framing.Rect{X: layout.PageWidth - right - w, Y: layout.PageHeight - bottom - h, W: w, H: h}
	label := layout.Text(layout.RolePageNumber, r, PageLabel(n, total), layout.Style{
		FontSize: 7.5, Bold: true, Uppercase: true, Tracking: 0.1,
		Color: "#d1d5db", Align: layout.AlignRight, SingleLine: true,
	})
	label.PreviewOnly = true
	return label
}
