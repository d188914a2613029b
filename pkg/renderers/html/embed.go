package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/components/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	StylesheetName    = "camgen-widget.css"
	RuntimeScriptName = "camgen-capture.js"

	// DefaultAssetBase is the serving prefix fragments reference when no
	// asset base or theme override is configured.
	DefaultAssetBase = "/assets/camgen"
)

// TemplatesFS exposes the embedded template bundle for consumers that want to
// use the built-in widget rendering out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded runtime asset bundle (CSS/JS) so callers can
// serve it over HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// Should never happen, but fall back to raw FS so assets remain usable.
		return embeddedAssets
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
