package views

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/instantbulletin/framing"
	"github.com/eringen/instantbulletin/layout"
)

// Preview renders a page tree as absolutely positioned HTML, one A4 sheet
// per page. Every page but the last carries a break marker for the print
// stylesheet; page labels are marked preview-only.
func Preview(tree layout.Tree) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderTree(&buf, tree)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func renderTree(buf *bytes.Buffer, tree layout.Tree) {
	buf.WriteString(`<div id="bulletin" class="bulletin" data-pages="`)
	buf.WriteString(strconv.Itoa(len(tree.Pages)))
	buf.WriteString(`" style="font-family:`)
	buf.WriteString(esc(FontStack(tree.Font)))
	buf.WriteString(`;--accent:`)
	buf.WriteString(esc(tree.Accent))
	buf.WriteString(`">`)
	for _, p := range tree.Pages {
		renderPage(buf, p)
	}
	buf.WriteString(`</div>`)
}

func renderPage(buf *bytes.Buffer, p layout.Page) {
	buf.WriteString(`<section class="bulletin-page" data-page="`)
	buf.WriteString(strconv.Itoa(p.Number))
	buf.WriteString(`"`)
	if p.Template != "" {
		buf.WriteString(` data-template="`)
		buf.WriteString(esc(string(p.Template)))
		buf.WriteString(`"`)
	} else {
		buf.WriteString(` data-supplemental="true"`)
	}
	if p.BreakAfter {
		buf.WriteString(` data-page-break="after"`)
	}
	buf.WriteString(` style="position:relative;overflow:hidden;width:`)
	buf.WriteString(mm(layout.PageWidth))
	buf.WriteString(`;height:`)
	buf.WriteString(mm(layout.PageHeight))
	if p.Background != "" {
		buf.WriteString(`;background:`)
		buf.WriteString(esc(p.Background))
	}
	if p.BreakAfter {
		buf.WriteString(`;break-after:page;page-break-after:always`)
	}
	buf.WriteString(`">`)
	for _, n := range p.Nodes {
		renderNode(buf, n, layout.PageRect)
	}
	buf.WriteString(`</section>`)
}

func renderNode(buf *bytes.Buffer, n layout.Node, parent framing.Rect) {
	tag := "div"
	if n.Kind == layout.KindText {
		tag = "p"
		if len(n.Children) > 0 {
			tag = "div"
		}
	}
	buf.WriteString("<" + tag)
	if n.Role != layout.RoleNone {
		buf.WriteString(` data-role="`)
		buf.WriteString(esc(string(n.Role)))
		buf.WriteString(`"`)
	}
	if n.PreviewOnly {
		buf.WriteString(` class="no-print" data-preview-only="true"`)
	}
	buf.WriteString(` style="`)
	buf.WriteString(esc(NodeCSS(n, parent)))
	buf.WriteString(`">`)

	switch n.Kind {
	case layout.KindText:
		buf.WriteString(esc(n.Text))
	case layout.KindImage:
		if !n.Image.Empty() {
			buf.WriteString(`<img src="`)
			buf.WriteString(esc(n.Image.URL))
			buf.WriteString(`" alt="`)
			buf.WriteString(esc(string(n.Role)))
			buf.WriteString(`" style="display:block;width:100%;height:100%;`)
			buf.WriteString(esc(framing.CSS(*n.Image)))
			buf.WriteString(`">`)
		}
	}
	for _, c := range n.Children {
		renderNode(buf, c, n.Rect)
	}
	buf.WriteString("</" + tag + ">")
}

// Standalone wraps the preview in a complete HTML document with the given
// stylesheet inlined, for files opened outside the editor.
func Standalone(title, css string, tree layout.Tree) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		buf.WriteString(esc(title))
		buf.WriteString(`</title><style>`)
		buf.WriteString(css)
		buf.WriteString(`</style></head><body>`)
		renderTree(&buf, tree)
		buf.WriteString(`</body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}
