// Package document holds the structured representation of one bulletin:
// the front-page fields, the ordered highlight list, the supplemental pages
// and the image slots. Values are treated as immutable snapshots; every
// update goes through Apply and returns a fresh value.
package document

import "strings"

// Fit selects how an image fills its slot.
type Fit string

const (
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
)

// Valid reports whether f is a known fit mode.
func (f Fit) Valid() bool {
	return f == FitCover || f == FitContain
}

// Position is a percentage focal point, 0,0 top-left and 100,100 bottom-right.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Centered is the identity focal point.
var Centered = Position{X: 50, Y: 50}

// Clamp limits both axes to [0,100].
func (p Position) Clamp() Position {
	return Position{X: clampPercent(p.X), Y: clampPercent(p.Y)}
}

func clampPercent(v float64) float64 {
	switch {
	case v != v: // NaN
		return 50
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

// ImageMetadata is one image asset plus its display transform.
// URL is expected to be a self-contained data URL, except for the remote
// sample images a fresh session starts with.
type ImageMetadata struct {
	URL      string   `json:"url" yaml:"url"`
	Scale    float64  `json:"scale" yaml:"scale"`
	Fit      Fit      `json:"fit" yaml:"fit"`
	Position Position `json:"position" yaml:"position"`
}

// NewImage returns metadata for a freshly ingested image: no zoom, cover
// fit, centered.
func NewImage(url string) ImageMetadata {
	return ImageMetadata{URL: url, Scale: 1, Fit: FitCover, Position: Centered}
}

// Empty reports whether the slot holding m should render nothing.
func (m *ImageMetadata) Empty() bool {
	return m == nil || strings.TrimSpace(m.URL) == ""
}

// Reset drops zoom and pan but keeps the fit mode.
func (m ImageMetadata) Reset() ImageMetadata {
	m.Scale = 1
	m.Position = Centered
	return m
}

func (m *ImageMetadata) clone() *ImageMetadata {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// EventPage is the content of one supplemental page.
type EventPage struct {
	Title   string          `json:"title,omitempty" yaml:"title,omitempty"`
	Content string          `json:"content" yaml:"content"`
	Images  []ImageMetadata `json:"images" yaml:"images"`
}

// Image returns the page's first image, the only one templates render.
func (p EventPage) Image() *ImageMetadata {
	if len(p.Images) == 0 || p.Images[0].URL == "" {
		return nil
	}
	img := p.Images[0]
	return &img
}

func (p EventPage) clone() EventPage {
	c := p
	c.Images = append([]ImageMetadata{}, p.Images...)
	return c
}

// EmptyPage is the record appended when the page count grows.
func EmptyPage() EventPage {
	return EventPage{Content: "", Images: []ImageMetadata{}}
}

// EventData is the root document.
type EventData struct {
	Title           string         `json:"title" yaml:"title"`
	Date            string         `json:"date" yaml:"date"`
	Location        string         `json:"location" yaml:"location"`
	Content         string         `json:"content" yaml:"content"`
	Highlights      []string       `json:"highlights" yaml:"highlights"`
	CoverImage      *ImageMetadata `json:"coverImage,omitempty" yaml:"coverImage,omitempty"`
	Logo            *ImageMetadata `json:"logo,omitempty" yaml:"logo,omitempty"`
	AdditionalPages []EventPage    `json:"additionalPages" yaml:"additionalPages"`
}

// Clone returns a deep copy sharing no slices or pointers with d.
func (d EventData) Clone() EventData {
	c := d
	c.Highlights = append([]string{}, d.Highlights...)
	c.CoverImage = d.CoverImage.clone()
	c.Logo = d.Logo.clone()
	c.AdditionalPages = make([]EventPage, len(d.AdditionalPages))
	for i, p := range d.AdditionalPages {
		c.AdditionalPages[i] = p.clone()
	}
	return c
}

// VisibleHighlights returns the highlights that are not blank, in order.
func (d EventData) VisibleHighlights() []string {
	var out []string
	for _, h := range d.Highlights {
		if strings.TrimSpace(h) != "" {
			out = append(out, h)
		}
	}
	return out
}

// Page returns the supplemental page at array index i.
func (d EventData) Page(i int) (EventPage, bool) {
	if i < 0 || i >= len(d.AdditionalPages) {
		return EventPage{}, false
	}
	return d.AdditionalPages[i], true
}

// SampleCoverURL is the remote cover image a new session starts with.
const SampleCoverURL = "https://images.unsplash.com/photo-1550745165-9bc0b252726f?auto=format&fit=crop&q=80&w=2070"

// Default returns the sample bulletin a new session is seeded with.
func Default() EventData {
	cover := NewImage(SampleCoverURL)
	return EventData{
		Title:    "Design Innovation Summit",
		Date:     "November 12, 2024",
		Location: "Metropolitan Arts Hub, NYC",
		Content: "An immersive experience exploring the intersection of technology and human-centric design. " +
			"This summit brings together global visionaries to redefine the future of creativity and social impact in the digital age.",
		Highlights: []string{
			"Generative Art Installations",
			"Future of UX Panel Discussion",
			"Sustainable Product Showcase",
		},
		CoverImage:      &cover,
		AdditionalPages: []EventPage{},
	}
}
