package bulletin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/export"
	"github.com/eringen/instantbulletin/layout"
)

type fakeRasterizer struct {
	calls atomic.Int32
	err   error
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, tree layout.Tree, opts export.Options) ([]byte, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png:" + tree.Pages[0].Template), nil
}

type fakePrinter struct {
	titles []string
}

func (f *fakePrinter) Print(ctx context.Context, tree layout.Tree, title string) ([]byte, error) {
	f.titles = append(f.titles, title)
	return []byte("%PDF-1.3"), nil
}

// client replays cookies and the CSRF token across requests, as a browser would.
type client struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
	token   string
}

func setupTestApp(t *testing.T, cfg SiteConfig, opts ...Option) (*client, func()) {
	t.Helper()
	cfg.SessionSecret = "test-secret"
	a := New(cfg, opts...)
	if err := a.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	c := &client{t: t, app: a, cookies: make(map[string]*http.Cookie)}
	st := c.state()
	c.token = st.CSRFToken
	if c.token == "" {
		t.Fatal("expected csrf token in state")
	}
	return c, func() { a.Close() }
}

func (c *client) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("X-CSRF-Token", c.token)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.app.Echo.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) json(method, path, body string) *httptest.ResponseRecorder {
	return c.do(method, path, strings.NewReader(body), "application/json")
}

func (c *client) state() StateResponse {
	c.t.Helper()
	rec := c.do(http.MethodGet, "/api/state", nil, "")
	if rec.Code != http.StatusOK {
		c.t.Fatalf("GET /api/state = %d, want 200", rec.Code)
	}
	return decodeState(c.t, rec)
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) StateResponse {
	t.Helper()
	var st StateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode state: %v (%s)", err, rec.Body.String())
	}
	return st
}

func TestInitRequiresSecret(t *testing.T) {
	a := New(SiteConfig{})
	if err := a.Init(); err == nil {
		t.Error("expected error without SessionSecret")
	}
}

func TestHealth(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	rec := c.do(http.MethodGet, "/healthz", nil, "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestStateSeedsSampleBulletin(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	if _, ok := c.cookies[sessionName]; !ok {
		t.Fatalf("expected %s cookie", sessionName)
	}
	st := c.state()
	if st.Event.Title != "Design Innovation Summit" {
		t.Errorf("title = %q", st.Event.Title)
	}
	if st.Config.PageCount != 1 || st.Version != 0 {
		t.Errorf("pageCount = %d, version = %d", st.Config.PageCount, st.Version)
	}
	if c.app.Sessions.Len() != 1 {
		t.Errorf("sessions = %d, want 1", c.app.Sessions.Len())
	}
}

func TestPatchRequiresCSRF(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	c.token = ""
	rec := c.json(http.MethodPatch, "/api/event", `{"title":"x"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestEventPatch(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	rec := c.json(http.MethodPatch, "/api/event", `{"title":"Tech Summit","highlights":["AI Workshop"],"coverImage":null}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	st := decodeState(t, rec)
	if st.Event.Title != "Tech Summit" || len(st.Event.Highlights) != 1 {
		t.Errorf("event = %+v", st.Event)
	}
	if st.Event.CoverImage != nil {
		t.Error("expected cover image removed")
	}
	if st.Event.Date != "November 12, 2024" {
		t.Errorf("untouched date = %q", st.Event.Date)
	}
	if st.Version != 1 {
		t.Errorf("version = %d, want 1", st.Version)
	}
}

func TestEventPatchRejectsBadInput(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"title":`},
		{"zero scale", `{"logo":{"url":"data:image/png;base64,AA==","scale":0,"fit":"cover"}}`},
		{"unknown fit", `{"logo":{"url":"data:image/png;base64,AA==","scale":1,"fit":"stretch"}}`},
		{"remote cover", `{"coverImage":{"url":"http://169.254.169.254/latest/meta-data","scale":1,"fit":"cover"}}`},
		{"remote logo", `{"logo":{"url":"https://example.com/logo.png","scale":1,"fit":"cover"}}`},
		{"file url", `{"logo":{"url":"file:///etc/passwd","scale":1,"fit":"cover"}}`},
		{"non-image data url", `{"logo":{"url":"data:text/html;base64,AA==","scale":1,"fit":"cover"}}`},
		{"remote page image", `{"additionalPages":[{"title":"","content":"","images":[{"url":"http://localhost/x.png","scale":1,"fit":"cover"}]}]}`},
	}
	for _, tt := range tests {
		rec := c.json(http.MethodPatch, "/api/event", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
		}
	}
	if v := c.state().Version; v != 0 {
		t.Errorf("version = %d after rejected patches, want 0", v)
	}
}

func TestEventPatchAcceptsUploadedAndSampleImages(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	tests := []struct {
		name string
		url  string
	}{
		{"inline", "data:image/png;base64,AA=="},
		{"sample cover", document.SampleCoverURL},
	}
	for _, tt := range tests {
		body := `{"coverImage":{"url":"` + tt.url + `","scale":1,"fit":"cover","position":{"x":50,"y":50}}}`
		if rec := c.json(http.MethodPatch, "/api/event", body); rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, http.StatusOK)
		}
	}
}

func TestConfigPatch(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	tests := []struct {
		body string
		want int
	}{
		{`{"primaryColor":"#be123c"}`, http.StatusOK},
		{`{"primaryColor":"not-a-color"}`, http.StatusBadRequest},
		{`{"fontFamily":"mono"}`, http.StatusBadRequest},
		{`{"pageCount":0}`, http.StatusBadRequest},
		{`{"pageCount":5}`, http.StatusBadRequest},
		{`{"templateId":"modern"}`, http.StatusOK},
		{`{"pageCount":3}`, http.StatusOK},
	}
	for _, tt := range tests {
		rec := c.json(http.MethodPatch, "/api/config", tt.body)
		if rec.Code != tt.want {
			t.Errorf("PATCH %s = %d, want %d", tt.body, rec.Code, tt.want)
		}
	}

	st := c.state()
	if st.Config.TemplateID != "modern" || st.Config.FontFamily != "sans" {
		t.Errorf("config = %+v", st.Config)
	}
	if len(st.Event.AdditionalPages) != 2 {
		t.Errorf("additionalPages = %d, want 2", len(st.Event.AdditionalPages))
	}
}

func TestPagePatch(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	if rec := c.json(http.MethodPatch, "/api/pages/0", `{"content":"x"}`); rec.Code != http.StatusNotFound {
		t.Errorf("patch before pages exist = %d, want 404", rec.Code)
	}
	c.json(http.MethodPatch, "/api/config", `{"pageCount":2}`)

	rec := c.json(http.MethodPatch, "/api/pages/0", `{"title":"Agenda","content":"Keynote at 9"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	pg := decodeState(t, rec).Event.AdditionalPages[0]
	if pg.Title != "Agenda" || pg.Content != "Keynote at 9" {
		t.Errorf("page = %+v", pg)
	}

	for _, path := range []string{"/api/pages/5", "/api/pages/-1", "/api/pages/two"} {
		if rec := c.json(http.MethodPatch, path, `{}`); rec.Code != http.StatusNotFound {
			t.Errorf("PATCH %s = %d, want 404", path, rec.Code)
		}
	}
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		img.Set(x, 1, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func (c *client) upload(slot string, data []byte) *httptest.ResponseRecorder {
	c.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", "photo.png")
	if err != nil {
		c.t.Fatal(err)
	}
	part.Write(data)
	w.Close()
	return c.do(http.MethodPost, "/api/images/"+slot, &body, w.FormDataContentType())
}

func TestImageLifecycle(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	rec := c.upload("logo", testPNG(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload = %d: %s", rec.Code, rec.Body.String())
	}
	logo := decodeState(t, rec).Event.Logo
	if logo == nil || !strings.HasPrefix(logo.URL, "data:image/") {
		t.Fatalf("logo = %+v", logo)
	}
	if logo.Scale != 1 || logo.Fit != "cover" {
		t.Errorf("new image framing = %v %v", logo.Scale, logo.Fit)
	}

	rec = c.json(http.MethodPatch, "/api/images/logo", `{"fit":"contain","scale":1.5,"position":{"x":150}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("frame = %d: %s", rec.Code, rec.Body.String())
	}
	logo = decodeState(t, rec).Event.Logo
	if logo.Fit != "contain" || logo.Scale != 1.5 || logo.Position.X != 100 {
		t.Errorf("framed logo = %+v", logo)
	}

	if rec := c.json(http.MethodPatch, "/api/images/logo", `{"scale":-1}`); rec.Code != http.StatusBadRequest {
		t.Errorf("negative scale = %d, want 400", rec.Code)
	}

	rec = c.do(http.MethodDelete, "/api/images/logo", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete = %d", rec.Code)
	}
	if decodeState(t, rec).Event.Logo != nil {
		t.Error("expected logo removed")
	}
	if rec := c.json(http.MethodPatch, "/api/images/logo", `{"reset":true}`); rec.Code != http.StatusNotFound {
		t.Errorf("frame empty slot = %d, want 404", rec.Code)
	}
}

func TestImageUploadErrors(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	if rec := c.upload("banner", testPNG(t)); rec.Code != http.StatusNotFound {
		t.Errorf("unknown slot = %d, want 404", rec.Code)
	}
	if rec := c.upload("page-0", testPNG(t)); rec.Code != http.StatusNotFound {
		t.Errorf("missing page = %d, want 404", rec.Code)
	}
	if rec := c.upload("cover", []byte("plain text")); rec.Code != http.StatusBadRequest {
		t.Errorf("not an image = %d, want 400", rec.Code)
	}
	rec := c.upload("cover", pngHeader(30000, 30000))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized dimensions = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Image too large") {
		t.Errorf("body = %q, want Image too large", rec.Body.String())
	}
}

func TestExportPNG(t *testing.T) {
	r := &fakeRasterizer{}
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(r))
	defer cleanup()

	c.json(http.MethodPatch, "/api/event", `{"title":"Tech Summit"}`)

	for i := 0; i < 2; i++ {
		rec := c.do(http.MethodGet, "/export/png", nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("export = %d: %s", rec.Code, rec.Body.String())
		}
		want := `attachment; filename="Tech_Summit_Bulletin.png"`
		if got := rec.Header().Get("Content-Disposition"); got != want {
			t.Errorf("Content-Disposition = %q, want %q", got, want)
		}
		if rec.Body.String() != "png:classic" {
			t.Errorf("body = %q", rec.Body.String())
		}
	}
	if n := r.calls.Load(); n != 1 {
		t.Errorf("rasterizer calls = %d, want 1 (second export cached)", n)
	}

	c.json(http.MethodPatch, "/api/config", `{"templateId":"gallery"}`)
	rec := c.do(http.MethodGet, "/export/png", nil, "")
	if rec.Body.String() != "png:gallery" {
		t.Errorf("body after edit = %q", rec.Body.String())
	}
	if n := r.calls.Load(); n != 2 {
		t.Errorf("rasterizer calls = %d, want 2", n)
	}
	if c.state().Exporting {
		t.Error("expected exporting flag cleared")
	}
}

func TestExportFailure(t *testing.T) {
	r := &fakeRasterizer{err: errors.New("decode cover: unexpected EOF")}
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(r))
	defer cleanup()

	rec := c.do(http.MethodGet, "/export/png", nil, "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "High-quality capture failed") {
		t.Errorf("body = %s", rec.Body.String())
	}
	if c.app.Exports.Len() != 0 {
		t.Error("failed export must not be cached")
	}
	if c.state().Exporting {
		t.Error("expected exporting flag cleared after failure")
	}
}

func TestExportPDFUsesTitle(t *testing.T) {
	p := &fakePrinter{}
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}), WithPrinter(p))
	defer cleanup()

	c.json(http.MethodPatch, "/api/event", `{"title":"Spring Gala"}`)
	rec := c.do(http.MethodGet, "/export/pdf", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `inline; filename="Spring_Gala_Bulletin.pdf"`
	if got := rec.Header().Get("Content-Disposition"); got != want {
		t.Errorf("Content-Disposition = %q, want %q", got, want)
	}
	if len(p.titles) != 1 || p.titles[0] != "Spring Gala" {
		t.Errorf("printed titles = %v", p.titles)
	}

	c.json(http.MethodPatch, "/api/event", `{"title":"  "}`)
	c.do(http.MethodGet, "/export/pdf", nil, "")
	if len(p.titles) != 2 || p.titles[1] != "Bulletin" {
		t.Errorf("printed titles = %v", p.titles)
	}
}

func TestExportRateLimit(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{ExportLimit: 1}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	if rec := c.do(http.MethodGet, "/export/png", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("first export = %d", rec.Code)
	}
	if rec := c.do(http.MethodGet, "/export/png", nil, ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second export = %d, want 429", rec.Code)
	}
}

func TestEditorAndPreview(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{Name: "Acme Bulletins"}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	rec := c.do(http.MethodGet, "/", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("editor = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Acme Bulletins", `name="csrf-token"`, `class="bulletin-page"`, `data-template="classic"`} {
		if !strings.Contains(body, want) {
			t.Errorf("editor missing %q", want)
		}
	}

	c.json(http.MethodPatch, "/api/config", `{"pageCount":2}`)
	rec = c.do(http.MethodGet, "/preview/", nil, "")
	if got := strings.Count(rec.Body.String(), `class="bulletin-page"`); got != 2 {
		t.Errorf("preview pages = %d, want 2", got)
	}
}

func TestNotFoundPage(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/missing/", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	c.app.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page not found.") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCacheControl(t *testing.T) {
	c, cleanup := setupTestApp(t, SiteConfig{}, WithRasterizer(&fakeRasterizer{}))
	defer cleanup()

	rec := c.do(http.MethodGet, "/public/bulletin.css", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("asset = %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=86400" {
		t.Errorf("asset Cache-Control = %q", got)
	}
	rec = c.do(http.MethodGet, "/api/state", nil, "")
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("api Cache-Control = %q", got)
	}
}
