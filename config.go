package bulletin

import (
	"time"

	"github.com/eringen/instantbulletin/export"
)

// SiteConfig holds all configuration for an InstantBulletin server.
type SiteConfig struct {
	Name string // Site name (default "InstantBulletin")
	Addr string // Listen address (default ":3000")

	SessionSecret string        // Required: session cookie secret
	CookieSecure  bool          // Set true for HTTPS
	SessionTTL    time.Duration // Idle bulletin lifetime (default 2h)

	PixelRatio  float64       // Raster export density (default 4)
	Settle      time.Duration // Image load deadline for exports (default 2s)
	Rasterizer  string        // "native" (default) or "fitz"
	MaxUploadMB int           // Upload size cap (default 10)

	ExportLimit  int           // Exports per IP per window (default 10)
	ExportWindow time.Duration // (default 1min)
	ExportTTL    time.Duration // Cached export lifetime (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "InstantBulletin"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 2 * time.Hour
	}
	if c.PixelRatio <= 0 {
		c.PixelRatio = export.DefaultPixelRatio
	}
	if c.Settle <= 0 {
		c.Settle = export.DefaultSettle
	}
	if c.Rasterizer == "" {
		c.Rasterizer = "native"
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 10
	}
	if c.ExportLimit <= 0 {
		c.ExportLimit = 10
	}
	if c.ExportWindow == 0 {
		c.ExportWindow = time.Minute
	}
	if c.ExportTTL == 0 {
		c.ExportTTL = 5 * time.Minute
	}
}

func (c SiteConfig) exportOptions() export.Options {
	o := export.DefaultOptions()
	o.PixelRatio = c.PixelRatio
	o.Settle = c.Settle
	return o
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithRasterizer replaces the configured PNG exporter.
func WithRasterizer(r export.Rasterizer) Option {
	return func(a *App) {
		a.rasterizer = r
	}
}

// WithPrinter replaces the PDF exporter.
func WithPrinter(p export.Printer) Option {
	return func(a *App) {
		a.printer = p
	}
}

// WithLoader sets the image loader shared by the built-in exporters.
func WithLoader(l *export.Loader) Option {
	return func(a *App) {
		a.loader = l
	}
}
