// Package style holds the bulletin configuration: accent color, font
// family, template choice and page count.
package style

// FontFamily is the typeface class applied to every page.
type FontFamily string

const (
	Serif FontFamily = "serif"
	Sans  FontFamily = "sans"
)

// Valid reports whether f is a known family.
func (f FontFamily) Valid() bool {
	return f == Serif || f == Sans
}

// TemplateID names one front-page layout variant.
type TemplateID string

const (
	Classic   TemplateID = "classic"
	Modern    TemplateID = "modern"
	Magazine  TemplateID = "magazine"
	Minimal   TemplateID = "minimal"
	Executive TemplateID = "executive"
	Gallery   TemplateID = "gallery"
	Editorial TemplateID = "editorial"
	Corporate TemplateID = "corporate"
)

// DefaultTemplate is rendered whenever a template id is unknown.
const DefaultTemplate = Classic

// TemplateIDs lists every known variant in catalogue order.
var TemplateIDs = []TemplateID{Classic, Modern, Magazine, Minimal, Executive, Gallery, Editorial, Corporate}

// Known reports whether id is one of TemplateIDs.
func (id TemplateID) Known() bool {
	for _, k := range TemplateIDs {
		if id == k {
			return true
		}
	}
	return false
}

// RecommendedFont is the family a template is paired with when selected:
// serif for editorial-leaning layouts, sans for technical-leaning ones.
// Unknown ids have no pairing and return "".
func (id TemplateID) RecommendedFont() FontFamily {
	switch id {
	case Classic, Magazine, Executive, Editorial:
		return Serif
	case Modern, Minimal, Gallery, Corporate:
		return Sans
	}
	return ""
}

// Config is the style and pagination state of a bulletin, independent of
// its content.
type Config struct {
	PrimaryColor string     `json:"primaryColor" yaml:"primaryColor"`
	FontFamily   FontFamily `json:"fontFamily" yaml:"fontFamily"`
	TemplateID   TemplateID `json:"templateId" yaml:"templateId"`
	PageCount    int        `json:"pageCount" yaml:"pageCount"`
}

// Default returns the configuration a new session starts with.
func Default() Config {
	return Config{
		PrimaryColor: DefaultAccent,
		FontFamily:   Serif,
		TemplateID:   Classic,
		PageCount:    1,
	}
}

// Normalize fills zero values with consistent defaults. Unknown template
// ids are kept; rendering falls back on its own.
func (c Config) Normalize() Config {
	if c.PrimaryColor == "" {
		c.PrimaryColor = DefaultAccent
	}
	if c.TemplateID == "" {
		c.TemplateID = DefaultTemplate
	}
	if !c.FontFamily.Valid() {
		c.FontFamily = c.TemplateID.RecommendedFont()
		if c.FontFamily == "" {
			c.FontFamily = Serif
		}
	}
	if c.PageCount < 1 {
		c.PageCount = 1
	}
	return c
}

// Patch is a partial update of Config. Nil fields are left untouched.
type Patch struct {
	PrimaryColor *string     `json:"primaryColor"`
	FontFamily   *FontFamily `json:"fontFamily"`
	TemplateID   *TemplateID `json:"templateId"`
	PageCount    *int        `json:"pageCount"`
}

// Apply overlays p on c. Selecting a template also selects its recommended
// font unless the same patch names a font explicitly.
func (c Config) Apply(p Patch) Config {
	if p.PrimaryColor != nil {
		c.PrimaryColor = *p.PrimaryColor
	}
	if p.TemplateID != nil {
		c.TemplateID = *p.TemplateID
		if f := c.TemplateID.RecommendedFont(); f != "" {
			c.FontFamily = f
		}
	}
	if p.FontFamily != nil {
		c.FontFamily = *p.FontFamily
	}
	if p.PageCount != nil {
		c.PageCount = *p.PageCount
	}
	return c
}
