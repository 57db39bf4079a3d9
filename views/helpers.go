package views

import (
	"html"
	"strconv"
	"strings"

	"github.com/eringen/instantbulletin/framing"
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// FontStack maps a font family onto the CSS stack the preview uses.
func FontStack(f style.FontFamily) string {
	if f == style.Serif {
		return `'Playfair Display', Georgia, 'Times New Roman', serif`
	}
	return `Inter, system-ui, -apple-system, 'Segoe UI', sans-serif`
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "mm"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// box positions r relative to its parent's origin.
func box(r, parent framing.Rect) string {
	return "position:absolute;left:" + mm(r.X-parent.X) +
		";top:" + mm(r.Y-parent.Y) +
		";width:" + mm(r.W) +
		";height:" + mm(r.H) + ";"
}

// NodeCSS returns the inline style of n placed inside parent.
func NodeCSS(n layout.Node, parent framing.Rect) string {
	s := n.Style
	var b strings.Builder
	b.WriteString(box(n.Rect, parent))
	b.WriteString("box-sizing:border-box;")
	if s.Opacity > 0 && s.Opacity < 1 {
		b.WriteString("opacity:" + num(s.Opacity) + ";")
	}
	if s.Grayscale {
		b.WriteString("filter:grayscale(1);")
	}
	if s.Radius > 0 {
		b.WriteString("border-radius:" + mm(s.Radius) + ";")
	}

	switch n.Kind {
	case layout.KindBox:
		if s.Background != "" {
			if s.Fade {
				b.WriteString("background:linear-gradient(to bottom,transparent," + s.Background + ");")
			} else {
				b.WriteString("background:" + s.Background + ";")
			}
		}
		if s.Border != "" && s.BorderWidth > 0 {
			b.WriteString("border:" + mm(s.BorderWidth) + " solid " + s.Border + ";")
		}
	case layout.KindImage:
		b.WriteString("overflow:hidden;")
	case layout.KindText:
		b.WriteString(textCSS(s))
	}
	return b.String()
}

func textCSS(s layout.Style) string {
	var b strings.Builder
	b.WriteString("overflow:hidden;margin:0;")
	if s.Color != "" {
		b.WriteString("color:" + s.Color + ";")
	}
	if s.Family != "" {
		b.WriteString("font-family:" + FontStack(s.Family) + ";")
	}
	b.WriteString("font-size:" + num(s.FontSize) + "pt;")
	lh := s.LineHeight
	if lh <= 0 {
		lh = 1.3
	}
	b.WriteString("line-height:" + num(lh) + ";")
	if s.Bold {
		b.WriteString("font-weight:700;")
	}
	if s.Italic {
		b.WriteString("font-style:italic;")
	}
	if s.Uppercase {
		b.WriteString("text-transform:uppercase;")
	}
	if s.Tracking != 0 {
		b.WriteString("letter-spacing:" + num(s.Tracking) + "em;")
	}
	if s.Align != "" {
		b.WriteString("text-align:" + string(s.Align) + ";")
	}
	switch {
	case s.Vertical:
		b.WriteString("writing-mode:vertical-rl;white-space:nowrap;")
	case s.SingleLine:
		b.WriteString("white-space:nowrap;text-overflow:ellipsis;")
	default:
		b.WriteString("white-space:pre-line;overflow-wrap:anywhere;")
	}
	switch s.VAlign {
	case layout.VAlignMiddle:
		b.WriteString("display:flex;flex-direction:column;justify-content:center;")
	case layout.VAlignBottom:
		b.WriteString("display:flex;flex-direction:column;justify-content:flex-end;")
	}
	return b.String()
}

func esc(s string) string {
	return html.EscapeString(s)
}
