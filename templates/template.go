// Package templates turns a bulletin into front and supplemental pages.
// Each front-page variant is a total function over the document: empty or
// missing fields shrink the layout, they never fail it.
package templates

import (
	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// Template is one front-page layout variant.
type Template interface {
	ID() style.TemplateID
	Name() string
	Description() string
	// Font is the family selected alongside the template.
	Font() style.FontFamily
	// Front lays out page one.
	Front(c Context) []layout.Node
}

// Context is everything a template reads.
type Context struct {
	Data       document.EventData
	Config     style.Config
	Accent     string
	Tint       string // accent at 25% over white
	Wash       string // accent at 3% over white
	Highlights []string
}

// NewContext resolves colors and filtered highlights once per render.
func NewContext(data document.EventData, cfg style.Config) Context {
	a := cfg.Accent()
	return Context{
		Data:       data,
		Config:     cfg,
		Accent:     a.Hex(),
		Tint:       a.Tint(0.25),
		Wash:       a.Tint(0.03),
		Highlights: data.VisibleHighlights(),
	}
}

// Lookup returns the variant registered for id, or classic when id is
// unknown. It never returns nil.
func Lookup(id style.TemplateID) Template {
	switch id {
	case style.Modern:
		return modern{}
	case style.Magazine:
		return magazine{}
	case style.Minimal:
		return minimal{}
	case style.Executive:
		return executive{}
	case style.Gallery:
		return gallery{}
	case style.Editorial:
		return editorial{}
	case style.Corporate:
		return corporate{}
	default:
		return classic{}
	}
}

// All returns every variant in catalogue order.
func All() []Template {
	out := make([]Template, 0, len(style.TemplateIDs))
	for _, id := range style.TemplateIDs {
		out = append(out, Lookup(id))
	}
	return out
}

// Render lays out the front page for the configured template.
func Render(data document.EventData, cfg style.Config) layout.Page {
	t := Lookup(cfg.TemplateID)
	return layout.Page{
		Template:   t.ID(),
		Background: white,
		Nodes:      t.Front(NewContext(data, cfg)),
	}
}
