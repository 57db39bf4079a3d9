package views

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/framing"
)

// Editor renders the full editor shell: layout picker, document form, style
// controls, live preview and export actions. The form talks to the JSON API
// through /public/editor.js and swaps in /preview/ after every change.
func Editor(p EditorPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		head(&buf, p.Site, p.Event.Title, p.CSRFToken)
		buf.WriteString(`<body><header class="no-print topbar"><strong>`)
		buf.WriteString(esc(p.Site.Name))
		buf.WriteString(`</strong><nav class="steps"><a href="#template">1 Layout</a><a href="#edit">2 Content</a><a href="#export">3 Export</a></nav></header>`)
		buf.WriteString(`<main class="editor">`)

		buf.WriteString(`<aside class="no-print panel">`)
		templatePicker(&buf, p)
		eventForm(&buf, p)
		styleForm(&buf, p)
		exportActions(&buf, p)
		buf.WriteString(`</aside>`)

		buf.WriteString(`<div id="preview" class="preview">`)
		renderTree(&buf, p.Tree)
		buf.WriteString(`</div></main>`)
		buf.WriteString(`<script src="/public/editor.js" defer></script></body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func head(buf *bytes.Buffer, site SiteConfig, title, csrf string) {
	buf.WriteString(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	if csrf != "" {
		buf.WriteString(`<meta name="csrf-token" content="`)
		buf.WriteString(esc(csrf))
		buf.WriteString(`">`)
	}
	buf.WriteString(`<title>`)
	if strings.TrimSpace(title) != "" {
		buf.WriteString(esc(title))
		buf.WriteString(` · `)
	}
	buf.WriteString(esc(site.Name))
	buf.WriteString(`</title><link rel="stylesheet" href="/public/bulletin.css"></head>`)
}

func templatePicker(buf *bytes.Buffer, p EditorPage) {
	buf.WriteString(`<section id="template"><h2>Layout</h2><div class="templates">`)
	for _, t := range p.Templates {
		buf.WriteString(`<button type="button" class="template`)
		if t.ID == p.Config.TemplateID {
			buf.WriteString(` selected`)
		}
		buf.WriteString(`" data-template="`)
		buf.WriteString(esc(string(t.ID)))
		buf.WriteString(`"><b>`)
		buf.WriteString(esc(t.Name))
		buf.WriteString(`</b><span>`)
		buf.WriteString(esc(t.Description))
		buf.WriteString(`</span><em>`)
		buf.WriteString(esc(string(t.Font)))
		buf.WriteString(`</em></button>`)
	}
	buf.WriteString(`</div></section>`)
}

func field(buf *bytes.Buffer, label, name, value string, multiline bool) {
	buf.WriteString(`<label>`)
	buf.WriteString(esc(label))
	if multiline {
		buf.WriteString(`<textarea name="`)
		buf.WriteString(esc(name))
		buf.WriteString(`" rows="5">`)
		buf.WriteString(esc(value))
		buf.WriteString(`</textarea>`)
	} else {
		buf.WriteString(`<input type="text" name="`)
		buf.WriteString(esc(name))
		buf.WriteString(`" value="`)
		buf.WriteString(esc(value))
		buf.WriteString(`">`)
	}
	buf.WriteString(`</label>`)
}

// MaxPageCount bounds the page-count control.
const MaxPageCount = 4

func slider(buf *bytes.Buffer, name string, min, max, step, value float64) {
	buf.WriteString(`<input type="range" name="` + name + `" min="` + num(min) + `" max="` + num(max) + `"`)
	if step > 0 {
		buf.WriteString(` step="` + num(step) + `"`)
	}
	buf.WriteString(` value="` + num(value) + `">`)
}

func upload(buf *bytes.Buffer, label, slot string, img *document.ImageMetadata) {
	buf.WriteString(`<div class="upload" data-slot="`)
	buf.WriteString(esc(slot))
	buf.WriteString(`"><span>`)
	buf.WriteString(esc(label))
	buf.WriteString(`</span><input type="file" accept="image/*" name="image">`)
	if !img.Empty() {
		buf.WriteString(`<div class="framing"><select name="fit">`)
		for _, f := range []document.Fit{document.FitCover, document.FitContain} {
			buf.WriteString(`<option`)
			if img.Fit == f {
				buf.WriteString(` selected`)
			}
			buf.WriteString(`>` + string(f) + `</option>`)
		}
		buf.WriteString(`</select>`)
		slider(buf, "scale", framing.MinZoom, framing.MaxZoom, framing.ZoomStep, img.Scale)
		slider(buf, "x", framing.MinPan, framing.MaxPan, 0, img.Position.X)
		slider(buf, "y", framing.MinPan, framing.MaxPan, 0, img.Position.Y)
		buf.WriteString(`<button type="button" data-action="reset">Reset</button>`)
		buf.WriteString(`<button type="button" data-action="remove">Remove</button></div>`)
	}
	buf.WriteString(`</div>`)
}

func eventForm(buf *bytes.Buffer, p EditorPage) {
	ev := p.Event
	buf.WriteString(`<section id="edit"><h2>Content</h2><form id="event-form">`)
	field(buf, "Title", "title", ev.Title, false)
	field(buf, "Date", "date", ev.Date, false)
	field(buf, "Location", "location", ev.Location, false)
	field(buf, "Narrative", "content", ev.Content, true)
	field(buf, "Highlights (one per line)", "highlights", strings.Join(ev.Highlights, "\n"), true)
	buf.WriteString(`</form>`)
	upload(buf, "Cover image", "cover", ev.CoverImage)
	upload(buf, "Logo", "logo", ev.Logo)

	for i := 0; i < p.Config.PageCount-1 && i < len(ev.AdditionalPages); i++ {
		pg := ev.AdditionalPages[i]
		n := strconv.Itoa(i)
		buf.WriteString(`<form class="page-form" data-index="`)
		buf.WriteString(n)
		buf.WriteString(`"><h3>Page `)
		buf.WriteString(strconv.Itoa(i + 2))
		buf.WriteString(`</h3>`)
		field(buf, "Headline", "title", pg.Title, false)
		field(buf, "Content", "content", pg.Content, true)
		buf.WriteString(`</form>`)
		upload(buf, "Page image", "page-"+n, pg.Image())
	}
	buf.WriteString(`</section>`)
}

func styleForm(buf *bytes.Buffer, p EditorPage) {
	cfg := p.Config
	buf.WriteString(`<section id="style"><h2>Style</h2><form id="config-form"><div class="swatches">`)
	for _, pr := range p.Presets {
		buf.WriteString(`<button type="button" class="swatch" title="`)
		buf.WriteString(esc(pr.Name))
		buf.WriteString(`" data-color="`)
		buf.WriteString(esc(pr.Value))
		buf.WriteString(`" style="background:`)
		buf.WriteString(esc(pr.Value))
		buf.WriteString(`"></button>`)
	}
	buf.WriteString(`</div><input type="color" name="primaryColor" value="`)
	buf.WriteString(esc(cfg.Accent().Hex()))
	buf.WriteString(`"><select name="fontFamily">`)
	for _, f := range []string{"serif", "sans"} {
		buf.WriteString(`<option value="` + f + `"`)
		if string(cfg.FontFamily) == f {
			buf.WriteString(` selected`)
		}
		buf.WriteString(`>` + f + `</option>`)
	}
	buf.WriteString(`</select><select name="pageCount">`)
	for n := 1; n <= MaxPageCount; n++ {
		v := strconv.Itoa(n)
		buf.WriteString(`<option value="` + v + `"`)
		if cfg.PageCount == n {
			buf.WriteString(` selected`)
		}
		buf.WriteString(`>` + v + ` page`)
		if n > 1 {
			buf.WriteString(`s`)
		}
		buf.WriteString(`</option>`)
	}
	buf.WriteString(`</select></form></section>`)
}

func exportActions(buf *bytes.Buffer, p EditorPage) {
	buf.WriteString(`<section id="export"><h2>Export</h2>`)
	buf.WriteString(`<a class="button" href="/export/png" data-export="png">Download image</a>`)
	buf.WriteString(`<a class="button" href="/export/pdf" target="_blank" data-export="pdf">Print / PDF</a>`)
	buf.WriteString(`<div class="busy`)
	if p.Exporting {
		buf.WriteString(` active`)
	}
	buf.WriteString(`" aria-live="polite">Generating…</div></section>`)
}

// ErrorPage renders a minimal standalone error page.
func ErrorPage(site SiteConfig, code int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		head(&buf, site, strconv.Itoa(code), "")
		buf.WriteString(`<body class="error"><main><h1>`)
		buf.WriteString(strconv.Itoa(code))
		buf.WriteString(`</h1><p>`)
		buf.WriteString(esc(message))
		buf.WriteString(`</p><a href="/">Back to the editor</a></main></body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}
