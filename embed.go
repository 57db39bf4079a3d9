package bulletin

import "embed"

// EmbeddedAssets contains the editor's static assets:
// bulletin.css, editor.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
