package export

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/eringen/instantbulletin/layout"
)

// paint is a resolved fill: an RGB color plus the opacity inherited from
// enclosing groups.
type paint struct {
	r, g, b uint8
	alpha   float64
}

// resolve parses a node color under the current group state. ok is false
// for an empty or unparsable color, which draws nothing.
func resolve(hex string, alpha float64, gray bool) (paint, bool) {
	if hex == "" || alpha <= 0 {
		return paint{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return paint{}, false
	}
	if gray {
		l, _, _ := c.Lab()
		c = colorful.Lab(l, 0, 0).Clamped()
	}
	r, g, b := c.RGB255()
	return paint{r: r, g: g, b: b, alpha: alpha}, true
}

// rgba returns the premultiplied color.
func (p paint) rgba() color.RGBA {
	a := p.alpha
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(p.r)*a + 0.5),
		G: uint8(float64(p.g)*a + 0.5),
		B: uint8(float64(p.b)*a + 0.5),
		A: uint8(255*a + 0.5),
	}
}

func (p paint) ints() (int, int, int) {
	return int(p.r), int(p.g), int(p.b)
}

// parseColor converts a #rrggbb color, falling back to white.
func parseColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.White
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// group is the inherited drawing state while walking a node tree.
type group struct {
	alpha float64
	gray  bool
}

func (g group) enter(s layout.Style) group {
	g.alpha *= s.Alpha()
	g.gray = g.gray || s.Grayscale
	return g
}
