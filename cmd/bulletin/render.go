package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	bulletin "github.com/eringen/instantbulletin"
	"github.com/eringen/instantbulletin/export"
	"github.com/eringen/instantbulletin/templates"
	"github.com/eringen/instantbulletin/views"
)

type renderFlags struct {
	in         string
	out        string
	format     string
	rasterizer string
	ratio      float64
	settle     time.Duration
}

func parseRenderFlags(args []string) (renderFlags, error) {
	var f renderFlags
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.StringVar(&f.in, "in", "", "bulletin YAML file (required)")
	fs.StringVar(&f.out, "out", "", "output path (default derived from the title)")
	fs.StringVar(&f.format, "format", "png", "png, pdf or html")
	fs.StringVar(&f.rasterizer, "rasterizer", "native", "png backend: native or fitz")
	fs.Float64Var(&f.ratio, "ratio", export.DefaultPixelRatio, "png pixel ratio")
	fs.DurationVar(&f.settle, "settle", export.DefaultSettle, "image load deadline")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.in == "" {
		return f, fmt.Errorf("render: -in is required")
	}
	switch f.format {
	case "png", "pdf", "html":
	default:
		return f, fmt.Errorf("render: unknown format %q", f.format)
	}
	return f, nil
}

func runRender(args []string) error {
	f, err := parseRenderFlags(args)
	if err != nil {
		return err
	}
	doc, err := readBulletin(f.in)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	data, name, err := renderBulletin(ctx, doc, f)
	if err != nil {
		return err
	}
	out := f.out
	if out == "" {
		out = name
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
	return nil
}

// renderBulletin produces the file contents and the default file name.
func renderBulletin(ctx context.Context, doc bulletinFile, f renderFlags) ([]byte, string, error) {
	st := doc.state()
	tree := st.Tree()
	title := st.Event.Title
	loader := export.NewLoader(nil)

	switch f.format {
	case "pdf":
		job := export.NewPrintJob(export.NewPDF(loader), "InstantBulletin")
		var data []byte
		err := export.WithPrintContext(job, title, func() error {
			var err error
			data, err = job.Print(ctx, tree)
			return err
		})
		return data, export.PrintFilename(title), err
	case "html":
		css, err := bulletin.EmbeddedAssets.ReadFile("embedded/bulletin.css")
		if err != nil {
			return nil, "", err
		}
		var buf bytes.Buffer
		if err := views.Standalone(export.PrintName(title), string(css), tree).Render(ctx, &buf); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), strings.TrimSuffix(export.PrintFilename(title), ".pdf") + ".html", nil
	}

	r, err := export.NewRasterizer(f.rasterizer, loader)
	if err != nil {
		return nil, "", err
	}
	opts := export.DefaultOptions()
	opts.PixelRatio = f.ratio
	opts.Settle = f.settle
	data, err := r.Rasterize(ctx, tree, opts)
	return data, export.ImageFilename(title), err
}

func printTemplates(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFONT\tDESCRIPTION")
	for _, t := range templates.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID(), t.Name(), t.Font(), t.Description())
	}
	tw.Flush()
}
