package export

import (
	"strings"
	"unicode/utf8"

	"github.com/eringen/instantbulletin/layout"
)

// measureFunc returns the advance of s in millimetres, tracking excluded.
type measureFunc func(s string) float64

// textLayout is a text node broken into lines and positioned in its box.
type textLayout struct {
	lines   []string
	widths  []float64
	leading float64
	top     float64 // y of the first line box
}

func layoutText(n layout.Node, measure measureFunc) textLayout {
	s := n.Style
	text := n.Text
	if s.Uppercase {
		text = strings.ToUpper(text)
	}
	track := s.Tracking * s.FontSize * layout.PointMM
	width := func(line string) float64 {
		return measure(line) + track*float64(utf8.RuneCountInString(line))
	}

	avail := n.Rect.W
	if s.Vertical {
		avail = n.Rect.H
	}
	var lines []string
	if s.SingleLine || s.Vertical {
		lines = []string{ellipsize(strings.ReplaceAll(text, "\n", " "), avail, width)}
	} else {
		lines = wrap(text, avail, width)
	}

	tl := textLayout{lines: lines, leading: s.Leading(), top: n.Rect.Y}
	tl.widths = make([]float64, len(lines))
	for i, l := range lines {
		tl.widths[i] = width(l)
	}
	if s.Vertical {
		return tl
	}
	block := float64(len(lines)) * tl.leading
	switch s.VAlign {
	case layout.VAlignMiddle:
		tl.top += (n.Rect.H - block) / 2
	case layout.VAlignBottom:
		tl.top += n.Rect.H - block
	}
	return tl
}

// lineX returns the left edge of a line of width w in a box starting at x.
func lineX(x, boxW, w float64, a layout.Align) float64 {
	switch a {
	case layout.AlignCenter:
		return x + (boxW-w)/2
	case layout.AlignRight:
		return x + boxW - w
	}
	return x
}

// baseline returns the offset from a line box top to its baseline.
func baseline(s layout.Style, leading float64) float64 {
	size := s.FontSize * layout.PointMM
	return (leading-size)/2 + size*0.8
}

func wrap(text string, avail float64, width measureFunc) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for width(w) > avail && utf8.RuneCountInString(w) > 1 {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head, tail := breakWord(w, avail, width)
				out = append(out, head)
				w = tail
			}
			switch {
			case line == "":
				line = w
			case width(line+" "+w) <= avail:
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

func breakWord(w string, avail float64, width measureFunc) (string, string) {
	r := []rune(w)
	n := 1
	for n < len(r) && width(string(r[:n+1])) <= avail {
		n++
	}
	return string(r[:n]), string(r[n:])
}

func ellipsize(s string, avail float64, width measureFunc) string {
	if width(s) <= avail {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && width(string(r)+"…") > avail {
		r = r[:len(r)-1]
	}
	return strings.TrimRight(string(r), " ") + "…"
}
