package bulletin

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/export"
	"github.com/eringen/instantbulletin/session"
	"github.com/eringen/instantbulletin/style"
	"github.com/eringen/instantbulletin/templates"
	"github.com/eringen/instantbulletin/views"
)

// captureFailed mirrors the message the editor shows when an export fails.
const captureFailed = "High-quality capture failed. Please ensure your images are fully loaded and try again."

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (a *App) handleEditor(c echo.Context) error {
	s := Bulletin(c)
	st := s.Snapshot()
	return Render(c, views.Editor(views.EditorPage{
		Site:      a.site(),
		Event:     st.Event,
		Config:    st.Config,
		Tree:      st.Tree(),
		Templates: templateOptions(),
		Presets:   style.Presets,
		CSRFToken: CsrfToken(c),
		Exporting: s.Exporting(),
	}))
}

func (a *App) handlePreview(c echo.Context) error {
	return Render(c, views.Preview(Bulletin(c).Snapshot().Tree()))
}

// StateResponse is the JSON view of a bulletin session.
type StateResponse struct {
	Event     document.EventData `json:"event"`
	Config    style.Config       `json:"config"`
	Version   uint64             `json:"version"`
	Exporting bool               `json:"exporting"`
	CSRFToken string             `json:"csrfToken,omitempty"`
}

func (a *App) state(c echo.Context, st session.State) error {
	return c.JSON(http.StatusOK, StateResponse{
		Event:     st.Event,
		Config:    st.Config,
		Version:   st.Version,
		Exporting: Bulletin(c).Exporting(),
		CSRFToken: CsrfToken(c),
	})
}

func (a *App) handleState(c echo.Context) error {
	return a.state(c, Bulletin(c).Snapshot())
}

func templateOptions() []views.TemplateOption {
	var out []views.TemplateOption
	for _, t := range templates.All() {
		out = append(out, views.TemplateOption{
			ID:          t.ID(),
			Name:        t.Name(),
			Description: t.Description(),
			Font:        t.Font(),
		})
	}
	return out
}

// TemplateInfo is one entry of GET /api/templates.
type TemplateInfo struct {
	ID          style.TemplateID `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Font        style.FontFamily `json:"font"`
}

func handleTemplates(c echo.Context) error {
	var out []TemplateInfo
	for _, t := range templateOptions() {
		out = append(out, TemplateInfo(t))
	}
	return c.JSON(http.StatusOK, out)
}

func (a *App) handleEventPatch(c echo.Context) error {
	var p document.EventPatch
	if err := c.Bind(&p); err != nil {
		return badRequest("Invalid request")
	}
	if err := validateEventPatch(p); err != nil {
		return badRequest(err.Error())
	}
	return a.state(c, Bulletin(c).UpdateEventData(p))
}

func (a *App) handleConfigPatch(c echo.Context) error {
	var p style.Patch
	if err := c.Bind(&p); err != nil {
		return badRequest("Invalid request")
	}
	if err := validateConfigPatch(p); err != nil {
		return badRequest(err.Error())
	}
	return a.state(c, Bulletin(c).UpdateConfig(p))
}

func (a *App) handlePagePatch(c echo.Context) error {
	i, err := pageIndex(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Unknown page")
	}
	var p document.PagePatch
	if err := c.Bind(&p); err != nil {
		return badRequest("Invalid request")
	}
	st, err := Bulletin(c).UpdatePage(i, p)
	if err != nil {
		return coreError(err)
	}
	return a.state(c, st)
}

func (a *App) handleImageUpload(c echo.Context) error {
	slot, err := document.ParseSlot(c.Param("slot"))
	if err != nil {
		return coreError(err)
	}
	file, err := c.FormFile("image")
	if err != nil {
		return badRequest("No image file provided")
	}
	if file.Size > int64(a.Config.MaxUploadMB)<<20 {
		return badRequest("File too large")
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	up, err := ProcessUpload(src)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotImage):
			return badRequest("Invalid image")
		case errors.Is(err, ErrTooLarge):
			return badRequest("Image too large")
		}
		return err
	}
	st, err := Bulletin(c).SetImage(slot, &up.Image)
	if err != nil {
		return coreError(err)
	}
	return a.state(c, st)
}

func (a *App) handleImageFrame(c echo.Context) error {
	slot, err := document.ParseSlot(c.Param("slot"))
	if err != nil {
		return coreError(err)
	}
	var p document.ImagePatch
	if err := c.Bind(&p); err != nil {
		return badRequest("Invalid request")
	}
	if err := validateImagePatch(p); err != nil {
		return badRequest(err.Error())
	}
	st, err := Bulletin(c).FrameImage(slot, p)
	if err != nil {
		return coreError(err)
	}
	return a.state(c, st)
}

func (a *App) handleImageDelete(c echo.Context) error {
	slot, err := document.ParseSlot(c.Param("slot"))
	if err != nil {
		return coreError(err)
	}
	st, err := Bulletin(c).SetImage(slot, nil)
	if err != nil {
		return coreError(err)
	}
	return a.state(c, st)
}

func (a *App) handleExportPNG(c echo.Context) error {
	return a.runExport(c, "png", func(st session.State) ([]byte, error) {
		return a.rasterizer.Rasterize(c.Request().Context(), st.Tree(), a.Config.exportOptions())
	}, func(st session.State, data []byte) error {
		return Attachment(c, "image/png", export.ImageFilename(st.Event.Title), data, false)
	})
}

func (a *App) handleExportPDF(c echo.Context) error {
	return a.runExport(c, "pdf", func(st session.State) ([]byte, error) {
		job := export.NewPrintJob(a.printer, a.Config.Name)
		var out []byte
		err := export.WithPrintContext(job, st.Event.Title, func() error {
			var err error
			out, err = job.Print(c.Request().Context(), st.Tree())
			return err
		})
		return out, err
	}, func(st session.State, data []byte) error {
		return Attachment(c, "application/pdf", export.PrintFilename(st.Event.Title), data, true)
	})
}

// runExport takes a snapshot, marks the session busy, serves a cached copy
// when the snapshot was already exported and otherwise produces it.
func (a *App) runExport(c echo.Context, format string, produce func(session.State) ([]byte, error), write func(session.State, []byte) error) error {
	if !a.exportLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many exports, please wait a minute")
	}
	s := Bulletin(c)
	st, done := s.BeginExport()
	defer done()

	id := bulletinID(c)
	if data, ok := a.Exports.Get(id, st.Version, format); ok {
		return write(st, data)
	}
	data, err := produce(st)
	if err != nil {
		c.Logger().Errorf("export %s failed: %v", format, err)
		return echo.NewHTTPError(http.StatusBadGateway, captureFailed).SetInternal(err)
	}
	a.Exports.Put(id, st.Version, format, data)
	return write(st, data)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 && code != http.StatusBadGateway {
		c.Logger().Errorf("server error: %v", err)
	}
	if wantsHTML(c) && (code == http.StatusNotFound || code >= 500) {
		msg := "Something went wrong."
		switch {
		case code == http.StatusNotFound:
			msg = "Page not found."
		case code == http.StatusBadGateway:
			msg = captureFailed
		}
		_ = RenderStatus(c, code, views.ErrorPage(a.site(), code, msg))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
