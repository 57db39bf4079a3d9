package style

import "testing"

func TestApplyTemplateSetsRecommendedFont(t *testing.T) {
	tests := []struct {
		id   TemplateID
		want FontFamily
	}{
		{Classic, Serif},
		{Magazine, Serif},
		{Executive, Serif},
		{Editorial, Serif},
		{Modern, Sans},
		{Minimal, Sans},
		{Gallery, Sans},
		{Corporate, Sans},
	}
	for _, tt := range tests {
		id := tt.id
		got := Default().Apply(Patch{TemplateID: &id})
		if got.FontFamily != tt.want {
			t.Errorf("Apply(template %q).FontFamily = %q, want %q", tt.id, got.FontFamily, tt.want)
		}
		if got.TemplateID != tt.id {
			t.Errorf("TemplateID = %q, want %q", got.TemplateID, tt.id)
		}
	}
}

func TestApplyExplicitFontWins(t *testing.T) {
	id := Modern
	font := Serif
	got := Default().Apply(Patch{TemplateID: &id, FontFamily: &font})
	if got.FontFamily != Serif {
		t.Errorf("FontFamily = %q, want %q", got.FontFamily, Serif)
	}
}

func TestApplyFontIndependentlySettable(t *testing.T) {
	font := Sans
	got := Default().Apply(Patch{FontFamily: &font})
	if got.FontFamily != Sans || got.TemplateID != Classic {
		t.Errorf("got %+v, want sans classic", got)
	}
}

func TestApplyUnknownTemplateKeepsFont(t *testing.T) {
	id := TemplateID("nonexistent")
	cfg := Default()
	cfg.FontFamily = Sans
	got := cfg.Apply(Patch{TemplateID: &id})
	if got.FontFamily != Sans {
		t.Errorf("FontFamily = %q, want %q", got.FontFamily, Sans)
	}
	if got.TemplateID != id {
		t.Errorf("TemplateID = %q, want %q", got.TemplateID, id)
	}
}

func TestApplyLeavesOtherFields(t *testing.T) {
	color := "#e11d48"
	got := Default().Apply(Patch{PrimaryColor: &color})
	want := Default()
	want.PrimaryColor = color
	if got != want {
		t.Errorf("Apply = %+v, want %+v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	got := Config{TemplateID: Gallery}.Normalize()
	if got.PrimaryColor != DefaultAccent {
		t.Errorf("PrimaryColor = %q, want %q", got.PrimaryColor, DefaultAccent)
	}
	if got.FontFamily != Sans {
		t.Errorf("FontFamily = %q, want %q", got.FontFamily, Sans)
	}
	if got.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", got.PageCount)
	}
	if (Config{}).Normalize().TemplateID != Classic {
		t.Error("empty template should normalize to classic")
	}
}

func TestAccent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#4f46e5", "#4f46e5"},
		{"#E11D48", "#e11d48"},
		{"#fff", "#ffffff"},
		{"not-a-color", DefaultAccent},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.PrimaryColor = tt.in
		if got := cfg.Accent().Hex(); got != tt.want {
			t.Errorf("Accent(%q).Hex() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAccentTint(t *testing.T) {
	a, err := ParseAccent("#000000")
	if err != nil {
		t.Fatalf("ParseAccent: %v", err)
	}
	if got := a.Tint(0); got != "#ffffff" {
		t.Errorf("Tint(0) = %q, want #ffffff", got)
	}
	if got := a.Tint(1); got != "#000000" {
		t.Errorf("Tint(1) = %q, want #000000", got)
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, p := range Presets {
		if !ValidColor(p.Value) {
			t.Errorf("preset %s has invalid color %q", p.Name, p.Value)
		}
	}
}
