// Package bulletin serves the InstantBulletin editor: an HTTP front end over
// the layout engine that keeps one in-memory bulletin per browser session,
// renders its live preview and exports it as PNG or PDF.
package bulletin

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/eringen/instantbulletin/export"
	"github.com/eringen/instantbulletin/session"
	"github.com/eringen/instantbulletin/views"
)

// Version is reported by the CLI and the editor footer.
var Version = "dev"

// App is the central InstantBulletin application. It wires together the
// session registry, exporters, handlers and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Sessions *session.Registry
	Exports  *ExportCache

	loader        *export.Loader
	rasterizer    export.Rasterizer
	printer       export.Printer
	exportLimiter *ExportLimiter
	customRoutes  []func(*App)
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init builds the registry, exporters, middleware and routes. Start calls
// it; tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("bulletin: SessionSecret is required")
	}

	if a.loader == nil {
		a.loader = export.NewLoader(nil)
	}
	if a.printer == nil {
		a.printer = export.NewPDF(a.loader)
	}
	if a.rasterizer == nil {
		r, err := export.NewRasterizer(a.Config.Rasterizer, a.loader)
		if err != nil {
			return fmt.Errorf("bulletin: %w", err)
		}
		a.rasterizer = r
	}

	a.Sessions = session.NewRegistry(a.Config.SessionTTL)
	a.Exports = NewExportCache(a.Config.ExportTTL)
	a.exportLimiter = NewExportLimiter(a.Config.ExportLimit, a.Config.ExportWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until the server stops.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	assets, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/*", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(assets)))))
	e.GET("/healthz", handleHealth)

	g := e.Group("", a.bulletinMiddleware)
	g.GET("/", a.handleEditor)
	g.GET("/preview/", a.handlePreview)

	g.GET("/api/state", a.handleState)
	g.GET("/api/templates", handleTemplates)
	g.PATCH("/api/event", a.handleEventPatch)
	g.PATCH("/api/config", a.handleConfigPatch)
	g.PATCH("/api/pages/:index", a.handlePagePatch)
	g.POST("/api/images/:slot", a.handleImageUpload)
	g.PATCH("/api/images/:slot", a.handleImageFrame)
	g.DELETE("/api/images/:slot", a.handleImageDelete)

	g.GET("/export/png", a.handleExportPNG)
	g.GET("/export/pdf", a.handleExportPDF)
}

func (a *App) site() views.SiteConfig {
	return views.SiteConfig{Name: a.Config.Name, Version: Version}
}

// Close cleans up background goroutines. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Sessions != nil {
		a.Sessions.Close()
	}
	if a.exportLimiter != nil {
		a.exportLimiter.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("bulletin: required environment variable %s is not set", key)
	}
	return v
}
