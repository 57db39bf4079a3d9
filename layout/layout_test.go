package layout

import (
	"strings"
	"testing"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/framing"
)

func TestLinesWrapsOnWords(t *testing.T) {
	s := Style{FontSize: 10}
	// 10pt at half an em per glyph is ~1.76mm, so 20mm holds 11 glyphs.
	got := Lines("alpha beta gamma delta", 20, s)
	want := []string{"alpha beta", "gamma delta"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Lines = %q, want %q", got, want)
	}
}

func TestLinesKeepsNewlinesAndBreaksLongWords(t *testing.T) {
	s := Style{FontSize: 10}
	got := Lines("a\n\nsupercalifragilistic", 10, s)
	if len(got) != 6 {
		t.Fatalf("Lines = %q, want 6 lines", got)
	}
	if got[1] != "" {
		t.Errorf("blank paragraph = %q, want empty line", got[1])
	}
}

func TestColumnSkipsBlankAndEmpty(t *testing.T) {
	c := NewColumn(10, 10, 100, 200)
	c.Text(RoleContent, "   ", Style{FontSize: 10})
	c.Image(RoleCover, 50, nil, Style{})
	if len(c.Nodes) != 0 {
		t.Errorf("Nodes = %d, want 0", len(c.Nodes))
	}
	if c.Y != 10 {
		t.Errorf("Y = %v, want 10", c.Y)
	}
}

func TestColumnClipsAtLimit(t *testing.T) {
	c := NewColumn(0, 0, 10, 5)
	c.Text(RoleContent, strings.Repeat("word ", 200), Style{FontSize: 12})
	if len(c.Nodes) != 1 {
		t.Fatalf("Nodes = %d, want 1", len(c.Nodes))
	}
	if h := c.Nodes[0].Rect.H; h != 5 {
		t.Errorf("H = %v, want 5", h)
	}
}

func TestTreeImageURLsDistinct(t *testing.T) {
	img := document.NewImage("data:a")
	n1, _ := Image(RoleCover, framing.Rect{W: 1, H: 1}, &img, Style{})
	n2, _ := Image(RoleLogo, framing.Rect{W: 1, H: 1}, &img, Style{})
	other := document.NewImage("data:b")
	n3, _ := Image(RolePageImage, framing.Rect{W: 1, H: 1}, &other, Style{})

	tree := Tree{Pages: []Page{
		{Nodes: []Node{Box(framing.Rect{}, Style{}, n1, n2)}},
		{Nodes: []Node{n3}},
	}}
	got := tree.ImageURLs()
	if len(got) != 2 || got[0] != "data:a" || got[1] != "data:b" {
		t.Errorf("ImageURLs = %v, want [data:a data:b]", got)
	}
}

func TestPageFind(t *testing.T) {
	p := Page{Nodes: []Node{
		Box(framing.Rect{}, Style{}, Text(RoleTitle, framing.Rect{}, "Summit", Style{})),
	}}
	n, ok := p.Find(RoleTitle)
	if !ok || n.Text != "Summit" {
		t.Errorf("Find(title) = %+v, %v", n, ok)
	}
	if _, ok := p.Find(RoleLogo); ok {
		t.Error("Find(logo) found a node")
	}
}
