package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/framing"
)

// Box returns a decorative rectangle.
func Box(r framing.Rect, s Style, children ...Node) Node {
	return Node{Kind: KindBox, Rect: r, Style: s, Children: children}
}

// Text returns a text node. Backends wrap inside r and clip overflow.
func Text(role Role, r framing.Rect, text string, s Style) Node {
	return Node{Kind: KindText, Role: role, Rect: r, Text: text, Style: s}
}

// Image returns an image node, or false when img is an empty slot.
func Image(role Role, r framing.Rect, img *document.ImageMetadata, s Style) (Node, bool) {
	if img.Empty() {
		return Node{}, false
	}
	m := *img
	return Node{Kind: KindImage, Role: role, Rect: r, Image: &m, Style: s}, true
}

// Rule returns a filled bar, used for accent lines.
func Rule(r framing.Rect, color string) Node {
	return Box(r, Style{Background: color})
}

// averageAdvance approximates the mean glyph advance as a fraction of the
// font size. It only has to be stable, not exact.
const averageAdvance = 0.5

// Lines estimates how text wraps into width mm at s. Explicit newlines are
// kept; words longer than a line are broken.
func Lines(text string, width float64, s Style) []string {
	if s.Uppercase {
		text = strings.ToUpper(text)
	}
	adv := s.FontSize * PointMM * (averageAdvance + s.Tracking)
	if adv <= 0 || width <= 0 {
		return nil
	}
	perLine := int(math.Floor(width / adv))
	if perLine < 1 {
		perLine = 1
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for utf8.RuneCountInString(w) > perLine {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				r := []rune(w)
				out = append(out, string(r[:perLine]))
				w = string(r[perLine:])
			}
			switch {
			case line == "":
				line = w
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) <= perLine:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		out = append(out, line)
	}
	return out
}

// TextWidth estimates the unwrapped width of a single line of text at s.
func TextWidth(text string, s Style) float64 {
	if s.Uppercase {
		text = strings.ToUpper(text)
	}
	return float64(utf8.RuneCountInString(text)) * s.FontSize * PointMM * (averageAdvance + s.Tracking)
}

// Shift translates nodes and their children by (dx, dy).
func Shift(nodes []Node, dx, dy float64) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Rect.X += dx
		n.Rect.Y += dy
		n.Children = Shift(n.Children, dx, dy)
		out[i] = n
	}
	return out
}

// TextHeight estimates the height of text wrapped into width at s.
func TextHeight(text string, width float64, s Style) float64 {
	if s.SingleLine {
		return s.Leading()
	}
	return float64(len(Lines(text, width, s))) * s.Leading()
}

// Column stacks nodes top to bottom inside a fixed-width lane.
type Column struct {
	X, Y, W float64
	// Limit is the lowest y the column may reach; text is clipped to it.
	Limit float64
	Nodes []Node
}

// NewColumn starts a column at (x, y) of width w that may grow down to limit.
func NewColumn(x, y, w, limit float64) *Column {
	return &Column{X: x, Y: y, W: w, Limit: limit}
}

// Remaining is the vertical space left.
func (c *Column) Remaining() float64 {
	return math.Max(0, c.Limit-c.Y)
}

// Gap advances the cursor by d mm.
func (c *Column) Gap(d float64) *Column {
	c.Y += d
	return c
}

// Text appends a text block sized to its estimated wrap. Blank text adds
// nothing.
func (c *Column) Text(role Role, text string, s Style) *Column {
	if strings.TrimSpace(text) == "" {
		return c
	}
	h := math.Min(TextHeight(text, c.W, s), c.Remaining())
	if h <= 0 {
		return c
	}
	c.Nodes = append(c.Nodes, Text(role, framing.Rect{X: c.X, Y: c.Y, W: c.W, H: h}, text, s))
	c.Y += h
	return c
}

// Fixed appends n placed at the cursor with height h, keeping n's own
// horizontal geometry when it has one.
func (c *Column) Fixed(h float64, n Node) *Column {
	if n.Rect.W == 0 {
		n.Rect.X, n.Rect.W = c.X, c.W
	}
	n.Rect.Y, n.Rect.H = c.Y, h
	c.Nodes = append(c.Nodes, n)
	c.Y += h
	return c
}

// Image appends an image of height h. Empty slots and images that would
// run past Limit add nothing.
func (c *Column) Image(role Role, h float64, img *document.ImageMetadata, s Style) *Column {
	if h > c.Remaining() {
		return c
	}
	n, ok := Image(role, framing.Rect{X: c.X, Y: c.Y, W: c.W, H: h}, img, s)
	if !ok {
		return c
	}
	c.Nodes = append(c.Nodes, n)
	c.Y += h
	return c
}

// Rule appends a full-width bar of thickness h.
func (c *Column) Rule(h float64, color string) *Column {
	c.Nodes = append(c.Nodes, Rule(framing.Rect{X: c.X, Y: c.Y, W: c.W, H: h}, color))
	c.Y += h
	return c
}
