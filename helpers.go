package bulletin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/framing"
	"github.com/eringen/instantbulletin/style"
	"github.com/eringen/instantbulletin/views"
)

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

// coreError maps document sentinels to HTTP statuses.
func coreError(err error) error {
	switch {
	case errors.Is(err, document.ErrUnknownSlot),
		errors.Is(err, document.ErrPageOutOfRange):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	case errors.Is(err, document.ErrEmptySlot):
		return echo.NewHTTPError(http.StatusNotFound, "No image in this slot").SetInternal(err)
	}
	return err
}

// pageIndex parses a zero-based supplemental page index from a path param.
func pageIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("bulletin: page index %q: %w", s, err)
	}
	if i < 0 {
		return 0, fmt.Errorf("bulletin: page index %d: %w", i, document.ErrPageOutOfRange)
	}
	return i, nil
}

// validImageURL accepts an empty slot, an inline base64 image or the sample
// cover. Anything else would make exports fetch arbitrary URLs.
func validImageURL(u string) bool {
	switch {
	case u == "", u == document.SampleCoverURL:
		return true
	case strings.HasPrefix(u, "data:image/"):
		return strings.Contains(u, ";base64,")
	}
	return false
}

func validateImage(img document.ImageMetadata) error {
	if !validImageURL(img.URL) {
		return errors.New("images must be uploaded")
	}
	return framing.Validate(img)
}

func validateEventPatch(p document.EventPatch) error {
	for _, f := range []document.ImageField{p.CoverImage, p.Logo} {
		if f.Set && f.Value != nil {
			if err := validateImage(*f.Value); err != nil {
				return err
			}
		}
	}
	for i, pg := range p.AdditionalPages {
		for _, img := range pg.Images {
			if err := validateImage(img); err != nil {
				return fmt.Errorf("page %d: %w", i, err)
			}
		}
	}
	return nil
}

func validateConfigPatch(p style.Patch) error {
	if p.PrimaryColor != nil && !style.ValidColor(*p.PrimaryColor) {
		return fmt.Errorf("invalid color %q", *p.PrimaryColor)
	}
	if p.FontFamily != nil && !p.FontFamily.Valid() {
		return fmt.Errorf("unknown font family %q", *p.FontFamily)
	}
	if p.PageCount != nil && (*p.PageCount < 1 || *p.PageCount > views.MaxPageCount) {
		return fmt.Errorf("page count must be between 1 and %d", views.MaxPageCount)
	}
	return nil
}

// validateImagePatch checks the patch against a neutral image, so the
// result does not depend on what the slot currently holds.
func validateImagePatch(p document.ImagePatch) error {
	return framing.Validate(document.NewImage("").Apply(p))
}

// wantsHTML reports whether the caller is a browser navigation rather than
// an API or fetch request.
func wantsHTML(c echo.Context) bool {
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/api/") {
		return false
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
