// Package export turns a page tree into deliverables: a PNG raster of the
// whole bulletin and a paginated PDF for printing. Exporters only read the
// tree they are handed; callers pass an immutable snapshot.
package export

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strings"
	"time"

	"github.com/eringen/instantbulletin/layout"
)

// Defaults for raster capture.
const (
	DefaultPixelRatio = 4.0
	DefaultSettle     = 2 * time.Second
)

// ErrAssetCapture is returned when an image in the tree cannot be loaded
// before the settle deadline. Exports are never retried.
var ErrAssetCapture = errors.New("export: asset capture failed")

// Options controls raster capture.
type Options struct {
	// PixelRatio is output pixels per CSS pixel (96 per inch).
	PixelRatio float64
	// Settle bounds how long image loading may take.
	Settle time.Duration
	// Background fills the canvas before pages are drawn.
	Background color.Color
}

// DefaultOptions returns a 4x capture on white with a 2s settle.
func DefaultOptions() Options {
	return Options{PixelRatio: DefaultPixelRatio, Settle: DefaultSettle, Background: color.White}
}

func (o Options) withDefaults() Options {
	if o.PixelRatio <= 0 {
		o.PixelRatio = DefaultPixelRatio
	}
	if o.Settle <= 0 {
		o.Settle = DefaultSettle
	}
	if o.Background == nil {
		o.Background = color.White
	}
	return o
}

// Rasterizer renders every exportable page of a tree into one PNG, pages
// stacked top to bottom.
type Rasterizer interface {
	Rasterize(ctx context.Context, tree layout.Tree, opts Options) ([]byte, error)
}

// Printer renders a tree as a PDF with one sheet per page. title is the
// document name embedded in the output.
type Printer interface {
	Print(ctx context.Context, tree layout.Tree, title string) ([]byte, error)
}

// NewRasterizer returns the rasterizer registered under name: "native"
// (the default) or "fitz".
func NewRasterizer(name string, loader *Loader) (Rasterizer, error) {
	switch name {
	case "", "native":
		return NewNative(loader), nil
	case "fitz":
		return NewFitz(NewPDF(loader)), nil
	default:
		return nil, fmt.Errorf("export: unknown rasterizer %q", name)
	}
}

var (
	whitespace  = regexp.MustCompile(`\s+`)
	unsafeChars = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]`)
)

// ImageFilename derives the PNG download name from a bulletin title:
// whitespace runs become underscores, characters unsafe in filenames are
// dropped and "_Bulletin.png" is appended. A blank title yields
// "Bulletin.png".
func ImageFilename(title string) string {
	return filename(title, ".png")
}

// PrintFilename is ImageFilename for the PDF output.
func PrintFilename(title string) string {
	return filename(title, ".pdf")
}

func filename(title, ext string) string {
	t := unsafeChars.ReplaceAllString(strings.TrimSpace(title), "")
	t = whitespace.ReplaceAllString(strings.TrimSpace(t), "_")
	if t == "" {
		return "Bulletin" + ext
	}
	return t + "_Bulletin" + ext
}

// PrintName is the transient document name used while printing.
func PrintName(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Bulletin"
	}
	return title
}

// Host is the environment whose document name a print run borrows.
type Host interface {
	Title() string
	SetTitle(string)
}

// WithPrintContext names h after the bulletin for the duration of fn and
// restores the previous name on every exit path, panics included.
func WithPrintContext(h Host, title string, fn func() error) error {
	prev := h.Title()
	h.SetTitle(PrintName(title))
	defer h.SetTitle(prev)
	return fn()
}

// PrintJob is a single print run. It is the Host for WithPrintContext: the
// title it holds when Print runs is embedded in the PDF.
type PrintJob struct {
	printer Printer
	title   string
}

// NewPrintJob returns a job whose resting name is the application name.
func NewPrintJob(p Printer, name string) *PrintJob {
	return &PrintJob{printer: p, title: name}
}

func (j *PrintJob) Title() string     { return j.title }
func (j *PrintJob) SetTitle(t string) { j.title = t }

// Print renders tree under the job's current title.
func (j *PrintJob) Print(ctx context.Context, tree layout.Tree) ([]byte, error) {
	return j.printer.Print(ctx, tree, j.title)
}

// Exportable returns the pages of tree with preview-only nodes removed.
func Exportable(tree layout.Tree) layout.Tree {
	out := tree
	out.Pages = make([]layout.Page, len(tree.Pages))
	for i, p := range tree.Pages {
		p.Nodes = stripPreview(p.Nodes)
		out.Pages[i] = p
	}
	return out
}

func stripPreview(nodes []layout.Node) []layout.Node {
	var out []layout.Node
	for _, n := range nodes {
		if n.PreviewOnly {
			continue
		}
		n.Children = stripPreview(n.Children)
		out = append(out, n)
	}
	return out
}
