package components

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-camgen/pkg/model"
)

const (
	templatePrefix = "templates/components/"

	noticesClass = "camgen-notices"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the html renderer.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameViewfinder, Descriptor{
		Renderer: templateComponentRenderer("widget.viewfinder", templatePrefix+"viewfinder.tpl"),
		Scripts: []Script{
			{Inline: captureRuntimeInit},
		},
	})
	registry.MustRegister(NamePluginEmbed, Descriptor{
		Renderer: templateComponentRenderer("widget.plugin", templatePrefix+"plugin-embed.tpl"),
	})
	registry.MustRegister(NameControlBar, Descriptor{
		Renderer: controlBarRenderer,
	})
	registry.MustRegister(NameControl, Descriptor{
		Renderer: controlRenderer,
	})
	registry.MustRegister(NameUploadFields, Descriptor{
		Renderer: uploadFieldsRenderer,
	})

	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, widget model.WidgetModel, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if data.ThemePartials != nil {
			if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
				resolvedTemplate = candidate
			}
		}

		payload := map[string]any{
			"widget": widget,
			"labels": map[string]string{
				"live_view": translated(data, model.TextLiveView),
				"hint":      translated(data, hintText(widget)),
			},
			"locale": data.Locale,
			"config": data.Config,
		}
		rendered, err := data.Template.Render(resolvedTemplate, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

func controlBarRenderer(buf *bytes.Buffer, widget model.WidgetModel, data ComponentData) error {
	if len(widget.Controls) == 0 {
		return nil
	}
	if data.RenderChild == nil {
		return fmt.Errorf("components: control bar requires a child renderer")
	}

	var builder strings.Builder
	builder.WriteString("<ul>\n")
	for _, control := range widget.Controls {
		child, err := data.RenderChild(control)
		if err != nil {
			return err
		}
		for _, line := range strings.Split(child, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			builder.WriteString("    ")
			builder.WriteString(line)
			builder.WriteByte('\n')
		}
	}
	builder.WriteString("</ul>")
	buf.WriteString(builder.String())
	return nil
}

func controlRenderer(buf *bytes.Buffer, _ model.WidgetModel, data ComponentData) error {
	if data.Control == nil {
		return fmt.Errorf("components: control component requires a control")
	}
	control := *data.Control

	classes := []string{"control"}
	if kind := kindClass(control.Kind); kind != "" {
		classes = append(classes, kind)
	}
	for _, extra := range control.Classes {
		if cleaned := sanitizeClassList(extra); cleaned != "" {
			classes = append(classes, cleaned)
		}
	}
	if control.Hidden {
		classes = append(classes, "is-hidden")
	}

	var builder strings.Builder
	builder.WriteString(`<li class="`)
	builder.WriteString(html.EscapeString(strings.Join(classes, " ")))
	builder.WriteString(`">`)

	builder.WriteString(`<a href="#"`)
	if control.ID != "" {
		builder.WriteString(` id="`)
		builder.WriteString(html.EscapeString(control.ID))
		builder.WriteString(`"`)
	}
	builder.WriteString(` class="action"`)
	if len(data.Notices) > 0 {
		builder.WriteString(` data-invalid="true"`)
	}
	builder.WriteString(`>`)

	label := translated(data, control.Label)
	if icon := strings.TrimSpace(control.Icon); icon != "" {
		// Icon markup is sanitized when the profile loads; emit it verbatim
		// and keep the text label for assistive tech.
		builder.WriteString(icon)
		builder.WriteString(`<span class="sr">`)
		builder.WriteString(html.EscapeString(label))
		builder.WriteString(`</span>`)
	} else {
		builder.WriteString(html.EscapeString(label))
	}
	builder.WriteString(`</a>`)

	writeNotices(&builder, control.ID, data.Notices)

	builder.WriteString(`</li>`)
	buf.WriteString(builder.String())
	return nil
}

func uploadFieldsRenderer(buf *bytes.Buffer, _ model.WidgetModel, data ComponentData) error {
	if len(data.Hidden) == 0 {
		return nil
	}

	var builder strings.Builder
	for _, field := range data.Hidden {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		builder.WriteString(`<input type="hidden" name="`)
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(`" value="`)
		builder.WriteString(html.EscapeString(field.Value))
		builder.WriteString("\">\n")
	}
	buf.WriteString(strings.TrimSuffix(builder.String(), "\n"))
	return nil
}

func writeNotices(builder *strings.Builder, elementID string, notices []string) {
	if len(notices) == 0 {
		return
	}
	builder.WriteString(`<ul class="`)
	builder.WriteString(noticesClass)
	builder.WriteString(`"`)
	if elementID != "" {
		builder.WriteString(` data-notices-for="`)
		builder.WriteString(html.EscapeString(elementID))
		builder.WriteString(`"`)
	}
	builder.WriteString(`>`)
	for _, notice := range notices {
		builder.WriteString(`<li>`)
		builder.WriteString(html.EscapeString(notice))
		builder.WriteString(`</li>`)
	}
	builder.WriteString(`</ul>`)
}

func kindClass(kind model.ControlKind) string {
	switch kind {
	case model.ControlRetake:
		return "control-retake"
	case model.ControlCapture:
		return "control-do"
	}
	trimmed := strings.ToLower(strings.TrimSpace(string(kind)))
	if trimmed == "" {
		return ""
	}
	return "control-" + trimmed
}

// hintText prefers the per-widget hint and falls back to the stock
// permission prompt so plugin fallbacks always have copy to show.
func hintText(widget model.WidgetModel) string {
	if hint := strings.TrimSpace(widget.Video.Hint); hint != "" {
		return hint
	}
	return model.TextPermissionHint
}

func translated(data ComponentData, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if data.Translate == nil {
		return key
	}
	return data.Translate(key, "")
}

func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, "camgen-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}
