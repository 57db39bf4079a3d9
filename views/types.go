package views

import (
	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/style"
)

// SiteConfig holds the settings every page needs.
type SiteConfig struct {
	Name    string // SITE_NAME (default "InstantBulletin")
	Version string
}

// TemplateOption is one entry of the layout picker.
type TemplateOption struct {
	ID          style.TemplateID
	Name        string
	Description string
	Font        style.FontFamily
}

// EditorPage is everything the editor shell renders.
type EditorPage struct {
	Site      SiteConfig
	Event     document.EventData
	Config    style.Config
	Tree      layout.Tree
	Templates []TemplateOption
	Presets   []style.Preset
	CSRFToken string
	Exporting bool
}
