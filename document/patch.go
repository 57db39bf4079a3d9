package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrPageOutOfRange is returned when a supplemental page index does not exist.
	ErrPageOutOfRange = errors.New("document: page index out of range")
	// ErrUnknownSlot is returned for an image slot name that cannot be parsed.
	ErrUnknownSlot = errors.New("document: unknown image slot")
	// ErrEmptySlot is returned when framing an image slot that holds nothing.
	ErrEmptySlot = errors.New("document: image slot is empty")
)

// ImageField is a tri-state patch value: absent, explicit null (remove) or set.
type ImageField struct {
	Set   bool
	Value *ImageMetadata
}

// SetImage returns a field that replaces the slot with m.
func SetImage(m ImageMetadata) ImageField {
	return ImageField{Set: true, Value: &m}
}

// RemoveImage returns a field that empties the slot.
func RemoveImage() ImageField {
	return ImageField{Set: true}
}

// UnmarshalJSON records presence; null clears the slot.
func (f *ImageField) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		f.Value = nil
		return nil
	}
	var m ImageMetadata
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	f.Value = &m
	return nil
}

func (f ImageField) apply(cur *ImageMetadata) *ImageMetadata {
	if !f.Set {
		return cur
	}
	return f.Value.clone()
}

// EventPatch is a partial update of EventData. Nil fields are left untouched.
type EventPatch struct {
	Title           *string     `json:"title"`
	Date            *string     `json:"date"`
	Location        *string     `json:"location"`
	Content         *string     `json:"content"`
	Highlights      []string    `json:"highlights"`
	CoverImage      ImageField  `json:"coverImage"`
	Logo            ImageField  `json:"logo"`
	AdditionalPages []EventPage `json:"additionalPages"`
}

// Apply overlays p on a copy of d. d itself is never modified.
func (d EventData) Apply(p EventPatch) EventData {
	next := d.Clone()
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Date != nil {
		next.Date = *p.Date
	}
	if p.Location != nil {
		next.Location = *p.Location
	}
	if p.Content != nil {
		next.Content = *p.Content
	}
	if p.Highlights != nil {
		next.Highlights = append([]string{}, p.Highlights...)
	}
	next.CoverImage = p.CoverImage.apply(next.CoverImage)
	next.Logo = p.Logo.apply(next.Logo)
	if p.AdditionalPages != nil {
		pages := make([]EventPage, len(p.AdditionalPages))
		for i, pg := range p.AdditionalPages {
			pages[i] = pg.clone()
		}
		next.AdditionalPages = pages
	}
	return next
}

// PagePatch is a partial update of one supplemental page's text.
type PagePatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// WithPage returns a copy of d with page i patched.
func (d EventData) WithPage(i int, p PagePatch) (EventData, error) {
	if i < 0 || i >= len(d.AdditionalPages) {
		return d, fmt.Errorf("%w: %d", ErrPageOutOfRange, i)
	}
	next := d.Clone()
	if p.Title != nil {
		next.AdditionalPages[i].Title = *p.Title
	}
	if p.Content != nil {
		next.AdditionalPages[i].Content = *p.Content
	}
	return next, nil
}

// PositionPatch moves one or both pan axes.
type PositionPatch struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// ImagePatch is a partial update of an image's framing. Reset is applied
// before the other fields.
type ImagePatch struct {
	Fit      *Fit           `json:"fit"`
	Scale    *float64       `json:"scale"`
	Position *PositionPatch `json:"position"`
	Reset    bool           `json:"reset"`
}

// Apply overlays p on m and clamps the pan position.
func (m ImageMetadata) Apply(p ImagePatch) ImageMetadata {
	if p.Reset {
		m = m.Reset()
	}
	if p.Fit != nil {
		m.Fit = *p.Fit
	}
	if p.Scale != nil {
		m.Scale = *p.Scale
	}
	if p.Position != nil {
		if p.Position.X != nil {
			m.Position.X = *p.Position.X
		}
		if p.Position.Y != nil {
			m.Position.Y = *p.Position.Y
		}
	}
	m.Position = m.Position.Clamp()
	return m
}

// SlotKind names the kind of image placeholder.
type SlotKind string

const (
	SlotCover SlotKind = "cover"
	SlotLogo  SlotKind = "logo"
	SlotPage  SlotKind = "page"
)

// Slot addresses one image placeholder. Page is the supplemental page
// array index and is only meaningful for SlotPage.
type Slot struct {
	Kind SlotKind
	Page int
}

func (s Slot) String() string {
	if s.Kind == SlotPage {
		return "page-" + strconv.Itoa(s.Page)
	}
	return string(s.Kind)
}

// ParseSlot parses "cover", "logo" or "page-N" (N is the array index).
func ParseSlot(s string) (Slot, error) {
	switch s {
	case string(SlotCover):
		return Slot{Kind: SlotCover}, nil
	case string(SlotLogo):
		return Slot{Kind: SlotLogo}, nil
	}
	rest, ok := strings.CutPrefix(s, "page-")
	if !ok {
		return Slot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, s)
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return Slot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, s)
	}
	return Slot{Kind: SlotPage, Page: n}, nil
}

// Image returns the image held by slot, or nil for an empty slot.
func (d EventData) Image(slot Slot) (*ImageMetadata, error) {
	switch slot.Kind {
	case SlotCover:
		return d.CoverImage.clone(), nil
	case SlotLogo:
		return d.Logo.clone(), nil
	case SlotPage:
		pg, ok := d.Page(slot.Page)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrPageOutOfRange, slot.Page)
		}
		return pg.Image(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slot.Kind)
}

// WithImage returns a copy of d with slot replaced by img; nil empties it.
// A supplemental page keeps at most the one image templates render.
func (d EventData) WithImage(slot Slot, img *ImageMetadata) (EventData, error) {
	next := d.Clone()
	switch slot.Kind {
	case SlotCover:
		next.CoverImage = img.clone()
	case SlotLogo:
		next.Logo = img.clone()
	case SlotPage:
		if slot.Page < 0 || slot.Page >= len(next.AdditionalPages) {
			return d, fmt.Errorf("%w: %d", ErrPageOutOfRange, slot.Page)
		}
		if img == nil {
			next.AdditionalPages[slot.Page].Images = []ImageMetadata{}
		} else {
			next.AdditionalPages[slot.Page].Images = []ImageMetadata{*img}
		}
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownSlot, slot.Kind)
	}
	return next, nil
}

// FrameImage applies p to the image held by slot.
func (d EventData) FrameImage(slot Slot, p ImagePatch) (EventData, error) {
	cur, err := d.Image(slot)
	if err != nil {
		return d, err
	}
	if cur.Empty() {
		return d, fmt.Errorf("%w: %s", ErrEmptySlot, slot)
	}
	framed := cur.Apply(p)
	return d.WithImage(slot, &framed)
}
