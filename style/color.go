package style

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultAccent is the indigo a new session starts with, also used when a
// stored color cannot be parsed.
const DefaultAccent = "#4f46e5"

// Preset is one entry of the curated accent palette. The palette is a UI
// affordance; any valid color is accepted.
type Preset struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Presets is the curated accent palette.
var Presets = []Preset{
	{Name: "Indigo", Value: "#4f46e5"},
	{Name: "Emerald", Value: "#10b981"},
	{Name: "Rose", Value: "#e11d48"},
	{Name: "Amber", Value: "#f59e0b"},
	{Name: "Slate", Value: "#334155"},
	{Name: "Violet", Value: "#7c3aed"},
}

var white = colorful.Color{R: 1, G: 1, B: 1}

// Accent is a parsed accent color.
type Accent struct {
	c colorful.Color
}

// ParseAccent parses a #rgb or #rrggbb color.
func ParseAccent(s string) (Accent, error) {
	c, err := colorful.Hex(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return Accent{}, fmt.Errorf("style: parse color %q: %w", s, err)
	}
	return Accent{c: c}, nil
}

// ValidColor reports whether s can be used as an accent color.
func ValidColor(s string) bool {
	_, err := ParseAccent(s)
	return err == nil
}

// Accent returns the parsed accent color of c, or the default accent when
// the stored value does not parse.
func (c Config) Accent() Accent {
	a, err := ParseAccent(c.PrimaryColor)
	if err != nil {
		a, _ = ParseAccent(DefaultAccent)
	}
	return a
}

// Hex returns the color as lowercase #rrggbb.
func (a Accent) Hex() string {
	return a.c.Clamped().Hex()
}

// Tint returns the accent laid over white at the given opacity, as #rrggbb.
func (a Accent) Tint(opacity float64) string {
	return white.BlendRgb(a.c, opacity).Clamped().Hex()
}
