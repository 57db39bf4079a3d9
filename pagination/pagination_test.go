package pagination

import (
	"testing"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

func TestSetPageCountAppends(t *testing.T) {
	tests := []struct {
		name    string
		pages   int
		current int
		n       int
		want    int
	}{
		{"grow from one", 0, 1, 3, 2},
		{"grow partially backed", 1, 2, 4, 3},
		{"shrink keeps records", 3, 4, 2, 3},
		{"same count", 2, 3, 3, 2},
		{"grow within retained", 3, 2, 4, 3},
		{"one page", 0, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := make([]document.EventPage, tt.pages)
			got := SetPageCount(pages, tt.current, tt.n)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if len(got) < tt.n-1 {
				t.Errorf("len = %d, below n-1 = %d", len(got), tt.n-1)
			}
		})
	}
}

func TestSetPageCountKeepsExistingAndNewAreEmpty(t *testing.T) {
	pages := []document.EventPage{{Title: "Agenda", Content: "Nine", Images: []document.ImageMetadata{}}}
	got := SetPageCount(pages, 2, 4)
	if got[0].Title != "Agenda" || got[0].Content != "Nine" {
		t.Errorf("existing page changed: %+v", got[0])
	}
	for i, p := range got[1:] {
		if p.Content != "" || p.Images == nil || len(p.Images) != 0 {
			t.Errorf("page %d = %+v, want empty record", i+1, p)
		}
	}
	if len(pages) != 1 {
		t.Errorf("input mutated: len = %d", len(pages))
	}
}

func TestSetPageCountFromFreshMatchesCount(t *testing.T) {
	for n := 1; n <= 6; n++ {
		got := SetPageCount(nil, 1, n)
		if len(got) != n-1 {
			t.Errorf("SetPageCount(fresh, %d) len = %d, want %d", n, len(got), n-1)
		}
	}
}

func TestAssembleSingleClassicPage(t *testing.T) {
	data := document.EventData{Title: "Tech Summit", Highlights: []string{"AI Workshop"}, AdditionalPages: []document.EventPage{}}
	cfg := style.Config{PageCount: 1, TemplateID: style.Classic}

	tree := Assemble(data, cfg)
	if len(tree.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(tree.Pages))
	}
	page := tree.Pages[0]
	if page.Template != style.Classic {
		t.Errorf("Template = %q, want classic", page.Template)
	}
	var bullets []string
	page.Walk(func(n layout.Node) bool {
		if n.Role == layout.RoleHighlight {
			bullets = append(bullets, n.Text)
		}
		return true
	})
	if len(bullets) != 1 || bullets[0] != "AI Workshop" {
		t.Errorf("highlights = %q, want [AI Workshop]", bullets)
	}
}

func TestPageCountRoundTripRestoresSameSlots(t *testing.T) {
	data := document.Default()
	data = Sync(data, 1, 3)
	if len(data.AdditionalPages) != 2 {
		t.Fatalf("AdditionalPages = %d, want 2", len(data.AdditionalPages))
	}
	first := data.AdditionalPages

	data = Sync(data, 3, 2)
	data = Sync(data, 2, 3)
	if len(data.AdditionalPages) != 2 {
		t.Fatalf("AdditionalPages = %d, want 2", len(data.AdditionalPages))
	}
	if &data.AdditionalPages[0] != &first[0] {
		t.Error("page slots were regenerated instead of retained")
	}
}

func TestPageCountRoundTripKeepsContent(t *testing.T) {
	data := Sync(document.Default(), 1, 3)
	data, err := data.WithPage(1, document.PagePatch{Title: strPtr("Agenda"), Content: strPtr("Keep me")})
	if err != nil {
		t.Fatalf("WithPage: %v", err)
	}

	cfg := style.Default()
	cfg.PageCount = 1
	data = Sync(data, 3, 1)
	if tree := Assemble(data, cfg); len(tree.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(tree.Pages))
	}

	cfg.PageCount = 3
	data = Sync(data, 1, 3)
	tree := Assemble(data, cfg)
	title, _ := tree.Pages[2].Find(layout.RoleTitle)
	if title.Text != "Agenda" {
		t.Errorf("restored headline = %q, want Agenda", title.Text)
	}
	body, _ := tree.Pages[2].Find(layout.RoleContent)
	if body.Text != "Keep me" {
		t.Errorf("restored body = %q, want %q", body.Text, "Keep me")
	}
	second, _ := tree.Pages[1].Find(layout.RoleTitle)
	if second.Text != "Extended Overview — 1" {
		t.Errorf("page 2 headline = %q, want fallback", second.Text)
	}
}

func TestAssembleUnknownTemplateKeepsFields(t *testing.T) {
	cfg := style.Default()
	cfg.TemplateID = "nonexistent"
	tree := Assemble(document.Default(), cfg)

	front := tree.Pages[0]
	if front.Template != style.Classic {
		t.Errorf("front template = %q, want classic", front.Template)
	}
	for _, r := range []layout.Role{layout.RoleTitle, layout.RoleDate, layout.RoleLocation, layout.RoleContent} {
		if _, ok := front.Find(r); !ok {
			t.Errorf("fallback page lacks %q", r)
		}
	}
}

func TestAssembleBreakMarkersAndLabels(t *testing.T) {
	for _, n := range []int{1, 2, 4} {
		cfg := style.Default()
		cfg.PageCount = n
		data := Sync(document.Default(), 1, n)
		tree := Assemble(data, cfg)

		if got := tree.BreakCount(); got != n-1 {
			t.Errorf("n=%d: BreakCount = %d, want %d", n, got, n-1)
		}
		if tree.Pages[n-1].BreakAfter {
			t.Errorf("n=%d: last page carries a break marker", n)
		}
		for i, p := range tree.Pages {
			if p.Number != i+1 || p.Total != n {
				t.Errorf("n=%d: page %d numbered %d/%d", n, i, p.Number, p.Total)
			}
			label, ok := p.Find(layout.RolePageNumber)
			if !ok {
				t.Errorf("n=%d: page %d has no label", n, i+1)
				continue
			}
			if !label.PreviewOnly {
				t.Errorf("n=%d: page label is exported", n)
			}
			if want := PageLabel(i+1, n); label.Text != want {
				t.Errorf("label = %q, want %q", label.Text, want)
			}
		}
	}
}

func TestAssembleNormalizesConfig(t *testing.T) {
	tree := Assemble(document.Default(), style.Config{PageCount: 0})
	if len(tree.Pages) != 1 {
		t.Errorf("pages = %d, want 1", len(tree.Pages))
	}
	if tree.Accent != style.DefaultAccent {
		t.Errorf("Accent = %q, want %q", tree.Accent, style.DefaultAccent)
	}
}

func strPtr(s string) *string { return &s }
