package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/framing"
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/pagination"
	"github.com/eringen/instantbulletin/style"
)

func render(t *testing.T, tree layout.Tree) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Preview(tree).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestPreviewBreakMarkers(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		cfg := style.Default()
		cfg.PageCount = n
		data := pagination.Sync(document.Default(), 1, n)
		out := render(t, pagination.Assemble(data, cfg))

		if got := strings.Count(out, `data-page-break="after"`); got != n-1 {
			t.Errorf("n=%d: break markers = %d, want %d", n, got, n-1)
		}
		if got := strings.Count(out, `class="bulletin-page"`); got != n {
			t.Errorf("n=%d: pages = %d, want %d", n, got, n)
		}
		last := out[strings.LastIndex(out, `class="bulletin-page"`):]
		if strings.Contains(last, `data-page-break`) {
			t.Errorf("n=%d: last page carries a break marker", n)
		}
		if got := strings.Count(out, `data-preview-only="true"`); got != n {
			t.Errorf("n=%d: preview-only labels = %d, want %d", n, got, n)
		}
	}
}

func TestPreviewEscapesText(t *testing.T) {
	data := document.Default()
	data.Title = `<script>alert("x")</script>`
	out := render(t, pagination.Assemble(data, style.Default()))
	if strings.Contains(out, "<script>") {
		t.Error("title rendered unescaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("escaped title missing")
	}
}

func TestPreviewImageFraming(t *testing.T) {
	img := document.ImageMetadata{URL: "data:image/png;base64,AA", Scale: 1.5, Fit: document.FitContain, Position: document.Position{X: 0, Y: 100}}
	node, _ := layout.Image(layout.RoleCover, framing.Rect{X: 10, Y: 10, W: 50, H: 50}, &img, layout.Style{})
	out := render(t, layout.Tree{Pages: []layout.Page{{Number: 1, Total: 1, Nodes: []layout.Node{node}}}})
	for _, want := range []string{"object-fit:contain", "object-position:0% 100%", "transform:scale(1.5)", `data-role="cover"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestNodeCSSRelativeToParent(t *testing.T) {
	n := layout.Box(framing.Rect{X: 30, Y: 40, W: 10, H: 5}, layout.Style{Background: "#000000", Opacity: 0.5, Grayscale: true})
	got := NodeCSS(n, framing.Rect{X: 20, Y: 10})
	for _, want := range []string{"left:10.00mm", "top:30.00mm", "width:10.00mm", "opacity:0.5", "filter:grayscale(1)", "background:#000000"} {
		if !strings.Contains(got, want) {
			t.Errorf("NodeCSS = %q, lacks %q", got, want)
		}
	}
}

func TestEditorShell(t *testing.T) {
	cfg := style.Default()
	data := document.Default()
	var buf bytes.Buffer
	err := Editor(EditorPage{
		Site:      SiteConfig{Name: "InstantBulletin"},
		Event:     data,
		Config:    cfg,
		Tree:      pagination.Assemble(data, cfg),
		Templates: []TemplateOption{{ID: style.Classic, Name: "Classic Bulletin"}, {ID: style.Modern, Name: "Modern"}},
		Presets:   style.Presets,
		CSRFToken: "tok",
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<meta name="csrf-token" content="tok">`,
		`class="template selected" data-template="classic"`,
		`id="bulletin"`,
		`href="/export/png"`,
		"Design Innovation Summit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("editor lacks %q", want)
		}
	}
}

func TestUploadFramingControls(t *testing.T) {
	tests := []struct {
		name string
		img  *document.ImageMetadata
		want []string
		not  []string
	}{
		{
			name: "framed logo",
			img:  &document.ImageMetadata{URL: "data:image/png;base64,AA==", Scale: 1.5, Fit: document.FitContain, Position: document.Position{X: 20, Y: 75}},
			want: []string{
				`name="scale" min="0.5" max="3" step="0.1" value="1.5"`,
				`name="x" min="0" max="100" value="20"`,
				`name="y" min="0" max="100" value="75"`,
				`<option selected>contain</option>`,
			},
			not: []string{`<option selected>cover</option>`},
		},
		{
			name: "fresh upload",
			img:  func() *document.ImageMetadata { m := document.NewImage("data:image/png;base64,AA=="); return &m }(),
			want: []string{`value="1">`, `name="x" min="0" max="100" value="50"`, `<option selected>cover</option>`},
		},
		{
			name: "empty slot",
			img:  nil,
			not:  []string{`class="framing"`},
		},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		upload(&buf, "Logo", "logo", tt.img)
		out := buf.String()
		for _, w := range tt.want {
			if !strings.Contains(out, w) {
				t.Errorf("%s: upload lacks %q in %s", tt.name, w, out)
			}
		}
		for _, n := range tt.not {
			if strings.Contains(out, n) {
				t.Errorf("%s: upload contains %q", tt.name, n)
			}
		}
	}
}

func TestEditorPageCountOptions(t *testing.T) {
	cfg := style.Default()
	var buf bytes.Buffer
	styleForm(&buf, EditorPage{Config: cfg})
	out := buf.String()
	if got := strings.Count(out, `<option value="`) - 2; got != MaxPageCount {
		t.Errorf("page count options = %d, want %d", got, MaxPageCount)
	}
	if strings.Contains(out, `value="5"`) {
		t.Error("page count offers 5 pages")
	}
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	if err := ErrorPage(SiteConfig{Name: "InstantBulletin"}, 404, "Not found").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<h1>404</h1>") {
		t.Errorf("error page = %q", buf.String())
	}
}

func TestStandaloneDocument(t *testing.T) {
	tree := pagination.Assemble(document.Default(), style.Default())
	var buf bytes.Buffer
	if err := Standalone("Q&A Night", "body{margin:0}", tree).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<!DOCTYPE html>", "<title>Q&amp;A Night</title>", "<style>body{margin:0}</style>", `id="bulletin"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}
