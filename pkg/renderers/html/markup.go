package html

import (
	"html"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/render"
)

type widgetParts struct {
	region       string
	uploadFields string
	controlBar   string
	translate    func(key string) string
}

// buildWidgetMarkup assembles the widget container: chrome div, optional
// heading copy, widget-level notices, the capture region, hidden upload
// fields, and the control bar. Output is deterministic for identical inputs.
func buildWidgetMarkup(widget model.WidgetModel, options render.RenderOptions, notices render.NoticeMapping, parts widgetParts) string {
	widgetClass := DefaultWidgetClass
	cameraClass := DefaultCameraClass
	controlsClass := DefaultControlsClass
	noticesClass := DefaultNoticesClass
	if chrome := options.ChromeClasses; chrome != nil {
		widgetClass = chromeClass(chrome.Widget, widgetClass)
		cameraClass = chromeClass(chrome.Camera, cameraClass)
		controlsClass = chromeClass(chrome.Controls, controlsClass)
		noticesClass = chromeClass(chrome.Notices, noticesClass)
	}

	classes := []string{widgetClass}
	for _, class := range widget.Classes {
		if cleaned := sanitizeClassList(class); cleaned != "" {
			classes = append(classes, cleaned)
		}
	}

	var builder strings.Builder
	builder.Grow(len(parts.region) + len(parts.uploadFields) + len(parts.controlBar) + 512)

	builder.WriteString(`<div id="`)
	builder.WriteString(model.ElementCamera)
	builder.WriteString(`" class="`)
	builder.WriteString(html.EscapeString(joinClasses(classes...)))
	builder.WriteString(`" data-camgen-widget data-backend="`)
	builder.WriteString(html.EscapeString(string(widget.Backend)))
	builder.WriteString(`"`)

	if upload := widget.Upload; upload != nil {
		if upload.Endpoint != "" {
			builder.WriteString(` data-upload-endpoint="`)
			builder.WriteString(html.EscapeString(upload.Endpoint))
			builder.WriteString(`"`)
		}
		if upload.Method != "" {
			builder.WriteString(` data-upload-method="`)
			builder.WriteString(html.EscapeString(upload.Method))
			builder.WriteString(`"`)
		}
		if upload.Field != "" {
			builder.WriteString(` data-upload-field="`)
			builder.WriteString(html.EscapeString(upload.Field))
			builder.WriteString(`"`)
		}
	}

	if style := cssVarsStyle(options.Theme); style != "" {
		builder.WriteString(` style="`)
		builder.WriteString(html.EscapeString(style))
		builder.WriteString(`"`)
	}

	builder.WriteString(">\n")

	if title := strings.TrimSpace(widget.Title); title != "" {
		builder.WriteString(`    <h2 class="camgen-title">`)
		builder.WriteString(html.EscapeString(parts.translate(title)))
		builder.WriteString("</h2>\n")
	}
	if description := strings.TrimSpace(widget.Description); description != "" {
		builder.WriteString(`    <p class="camgen-description">`)
		builder.WriteString(html.EscapeString(parts.translate(description)))
		builder.WriteString("</p>\n")
	}

	if len(notices.Widget) > 0 {
		builder.WriteString(`    <ul class="`)
		builder.WriteString(html.EscapeString(noticesClass))
		builder.WriteString(`" data-notices-for="`)
		builder.WriteString(model.ElementCamera)
		builder.WriteString(`">`)
		for _, notice := range notices.Widget {
			builder.WriteString(`<li>`)
			builder.WriteString(html.EscapeString(notice))
			builder.WriteString(`</li>`)
		}
		builder.WriteString("</ul>\n")
	}

	if parts.region != "" {
		builder.WriteString(`    <div class="`)
		builder.WriteString(html.EscapeString(cameraClass))
		builder.WriteString("\">\n")
		writeIndented(&builder, parts.region, "        ")
		builder.WriteString("    </div>\n")
	}

	// Notices addressed to region elements render right below the capture
	// surface; controls carry their own notices inline.
	for _, elementID := range []string{model.ElementVideo, model.ElementCanvas, model.ElementFlashObject, model.ElementCamera} {
		elementNotices := notices.Elements[elementID]
		if len(elementNotices) == 0 {
			continue
		}
		builder.WriteString(`    <ul class="`)
		builder.WriteString(html.EscapeString(noticesClass))
		builder.WriteString(`" data-notices-for="`)
		builder.WriteString(elementID)
		builder.WriteString(`">`)
		for _, notice := range elementNotices {
			builder.WriteString(`<li>`)
			builder.WriteString(html.EscapeString(notice))
			builder.WriteString(`</li>`)
		}
		builder.WriteString("</ul>\n")
	}

	if parts.uploadFields != "" {
		writeIndented(&builder, parts.uploadFields, "    ")
	}

	if parts.controlBar != "" {
		builder.WriteString(`    <div class="`)
		builder.WriteString(html.EscapeString(controlsClass))
		builder.WriteString("\">\n")
		writeIndented(&builder, parts.controlBar, "        ")
		builder.WriteString("    </div>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func writeIndented(builder *strings.Builder, block, indent string) {
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString(indent)
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
}

// cssVarsStyle flattens theme custom properties into an inline style value,
// sorted by property name so renders stay byte-identical.
func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+cfg.CSSVars[key])
	}
	return strings.Join(parts, "; ")
}

func joinAssetPath(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(name, "/")
}
