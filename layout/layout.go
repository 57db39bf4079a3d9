// Package layout defines the page tree every backend consumes: pages of
// absolutely positioned nodes measured in millimetres on an A4 sheet.
// Templates build trees; the HTML views, the PDF printer and the raster
// exporter only draw them.
package layout

import (
	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/framing"
	"github.com/eringen/instantbulletin/style"
)

// A4 portrait, in millimetres.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
)

// PointMM converts typographic points to millimetres.
const PointMM = 25.4 / 72

// PageRect is the full sheet.
var PageRect = framing.Rect{W: PageWidth, H: PageHeight}

// Kind is what a node draws.
type Kind string

const (
	KindBox   Kind = "box"
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Role tags a node with the document field it renders, so tests and
// exporters can find it without knowing the template.
type Role string

const (
	RoleNone       Role = ""
	RoleFrame      Role = "frame"
	RoleTitle      Role = "title"
	RoleDate       Role = "date"
	RoleLocation   Role = "location"
	RoleContent    Role = "content"
	RoleHighlights Role = "highlights"
	RoleHighlight  Role = "highlight"
	RoleCover      Role = "cover"
	RoleLogo       Role = "logo"
	RolePageImage  Role = "page-image"
	RoleLabel      Role = "label"
	RoleFooter     Role = "footer"
	RolePageNumber Role = "page-number"
)

// Align is horizontal text alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// VAlign is vertical text alignment inside the node box.
type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
	VAlignBottom VAlign = "bottom"
)

// Style is the visual treatment of a node. Colors are #rrggbb; an empty
// color draws nothing. Opacity and Grayscale also apply to children.
type Style struct {
	Color       string
	Background  string
	Border      string
	BorderWidth float64 // mm
	Radius      float64 // mm
	Opacity     float64 // 0 means fully opaque
	Grayscale   bool
	// Fade blends Background from transparent at the top edge to opaque
	// at the bottom edge.
	Fade bool

	FontSize   float64 // pt
	LineHeight float64 // multiple of FontSize; 0 means 1.3
	Bold       bool
	Italic     bool
	Uppercase  bool
	Tracking   float64 // em
	Family     style.FontFamily
	Align      Align
	VAlign     VAlign
	// SingleLine truncates instead of wrapping.
	SingleLine bool
	// Vertical runs the text top to bottom, rotated a quarter turn
	// clockwise.
	Vertical bool
}

// Alpha returns the effective opacity in (0,1].
func (s Style) Alpha() float64 {
	if s.Opacity <= 0 || s.Opacity > 1 {
		return 1
	}
	return s.Opacity
}

// Leading returns the line height in millimetres.
func (s Style) Leading() float64 {
	lh := s.LineHeight
	if lh <= 0 {
		lh = 1.3
	}
	return s.FontSize * lh * PointMM
}

// Node is one drawable element. Rect is absolute page geometry; children
// are drawn after their parent, in order.
type Node struct {
	Kind     Kind
	Role     Role
	Rect     framing.Rect
	Text     string
	Style    Style
	Image    *document.ImageMetadata
	Children []Node
	// PreviewOnly nodes appear in the live preview and never in exports.
	PreviewOnly bool
}

// Page is one printed sheet.
type Page struct {
	// Number is 1-based; Total is the page count of the whole tree.
	Number int
	Total  int
	// Template is the front-page variant that produced the page, empty for
	// supplemental pages.
	Template   style.TemplateID
	Background string
	Nodes      []Node
	// BreakAfter marks a page boundary. Every page but the last has one.
	BreakAfter bool
}

// Supplemental reports whether p uses the shared continuation layout.
func (p Page) Supplemental() bool {
	return p.Template == ""
}

// Tree is a rendered bulletin.
type Tree struct {
	Title  string
	Font   style.FontFamily
	Accent string
	Pages  []Page
}

// Walk visits every node of p depth-first in paint order. Returning false
// from fn skips the node's children.
func (p Page) Walk(fn func(Node) bool) {
	for _, n := range p.Nodes {
		walk(n, fn)
	}
}

func walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		walk(c, fn)
	}
}

// Find returns the first node of p with role r.
func (p Page) Find(r Role) (Node, bool) {
	var out Node
	found := false
	p.Walk(func(n Node) bool {
		if found {
			return false
		}
		if n.Role == r {
			out, found = n, true
			return false
		}
		return true
	})
	return out, found
}

// ImageURLs returns the distinct image URLs drawn anywhere in t, in first
// appearance order.
func (t Tree) ImageURLs() []string {
	seen := map[string]bool{}
	var urls []string
	for _, p := range t.Pages {
		p.Walk(func(n Node) bool {
			if n.Kind == KindImage && !n.Image.Empty() && !seen[n.Image.URL] {
				seen[n.Image.URL] = true
				urls = append(urls, n.Image.URL)
			}
			return true
		})
	}
	return urls
}

// BreakCount returns the number of page-break markers in t.
func (t Tree) BreakCount() int {
	n := 0
	for _, p := range t.Pages {
		if p.BreakAfter {
			n++
		}
	}
	return n
}
