package html

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/render"
	"github.com/goliatone/go-camgen/pkg/render/template"
	"github.com/goliatone/go-camgen/pkg/renderers/html/components"
)

const componentConfigMetadataKey = "componentConfig"

// componentRenderer resolves and executes widget components for a single
// render pass, tracking which components ran so their assets can be
// aggregated afterwards.
type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	overrides map[string]string
	partials  map[string]string
	translate func(key, fallback string) string
	locale    string

	usedComponents map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, overrides map[string]string, opts render.RenderOptions) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	var partials map[string]string
	if opts.Theme != nil {
		partials = opts.Theme.Partials
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
		overrides: cloneStringMap(overrides),
		partials:  partials,
		translate: func(key, fallback string) string {
			return render.Translate(opts, key, fallback)
		},
		locale:         opts.Locale,
		usedComponents: make(map[string]struct{}),
	}
}

// renderRegion emits the backend-specific capture markup. BackendNone renders
// nothing: the widget keeps its chrome and controls but no capture surface.
func (r *componentRenderer) renderRegion(widget model.WidgetModel) (string, error) {
	var slot string
	switch widget.Backend {
	case model.BackendHTML5:
		slot = components.NameViewfinder
	case model.BackendFlash:
		slot = components.NamePluginEmbed
	case model.BackendNone:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported backend %q", widget.Backend)
	}

	name := r.overrideFor(slot, "")
	if name == "" {
		name = strings.TrimSpace(widget.UIHints["widget"])
	}
	if name == "" {
		name = slot
	}

	config, err := parseComponentConfig(widget.Metadata[componentConfigMetadataKey])
	if err != nil {
		return "", fmt.Errorf("parse component config for widget %q: %w", widget.Name, err)
	}

	return r.renderComponent(name, widget, components.ComponentData{Config: config})
}

// renderControlBar emits the shared control list. Element-level notices are
// routed to each control by its stable identifier.
func (r *componentRenderer) renderControlBar(widget model.WidgetModel, notices render.NoticeMapping) (string, error) {
	name := r.overrideFor(components.NameControlBar, "")
	if name == "" {
		name = components.NameControlBar
	}
	data := components.ComponentData{
		RenderChild: r.childRenderer(widget, notices),
	}
	return r.renderComponent(name, widget, data)
}

// renderUploadFields emits hidden inputs collaborating upload code submits
// alongside the captured frame.
func (r *componentRenderer) renderUploadFields(widget model.WidgetModel, hidden []render.HiddenField) (string, error) {
	if len(hidden) == 0 {
		return "", nil
	}
	name := r.overrideFor(components.NameUploadFields, "")
	if name == "" {
		name = components.NameUploadFields
	}
	return r.renderComponent(name, widget, components.ComponentData{Hidden: hidden})
}

func (r *componentRenderer) renderControl(widget model.WidgetModel, control model.Control, notices render.NoticeMapping) (string, error) {
	name := r.overrideFor(control.ID, string(control.Kind))
	if name == "" {
		name = strings.TrimSpace(control.Component)
	}
	if name == "" {
		name = components.NameControl
	}

	config, err := parseComponentConfig(control.Metadata[componentConfigMetadataKey])
	if err != nil {
		return "", fmt.Errorf("parse component config for control %q: %w", control.ID, err)
	}

	data := components.ComponentData{
		Control: &control,
		Notices: notices.Elements[control.ID],
		Config:  config,
	}
	return r.renderComponent(name, widget, data)
}

func (r *componentRenderer) renderComponent(name string, widget model.WidgetModel, data components.ComponentData) (string, error) {
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("component %q not registered", name)
	}

	data.Template = r.templates
	data.ThemePartials = r.partials
	data.Translate = r.translate
	data.Locale = r.locale

	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, widget, data); err != nil {
		return "", fmt.Errorf("render component %q: %w", name, err)
	}

	r.usedComponents[name] = struct{}{}
	return buf.String(), nil
}

func (r *componentRenderer) childRenderer(widget model.WidgetModel, notices render.NoticeMapping) func(any) (string, error) {
	return func(value any) (string, error) {
		control, err := coerceControl(value)
		if err != nil {
			return "", err
		}
		return r.renderControl(widget, control, notices)
	}
}

func (r *componentRenderer) assets() (stylesheets []string, scripts []components.Script) {
	if r.registry == nil || len(r.usedComponents) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	slices.Sort(names)
	return r.registry.Assets(names)
}

func (r *componentRenderer) overrideFor(primary, secondary string) string {
	if len(r.overrides) == 0 {
		return ""
	}
	if value := r.overrides[primary]; value != "" {
		return value
	}
	if secondary == "" {
		return ""
	}
	return r.overrides[secondary]
}

func parseComponentConfig(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var cfg map[string]any
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func coerceControl(value any) (model.Control, error) {
	switch v := value.(type) {
	case nil:
		return model.Control{}, fmt.Errorf("nil control value")
	case model.Control:
		return v, nil
	case *model.Control:
		if v == nil {
			return model.Control{}, fmt.Errorf("nil control pointer")
		}
		return *v, nil
	case map[string]any:
		var control model.Control
		payload, err := json.Marshal(v)
		if err != nil {
			return model.Control{}, fmt.Errorf("marshal control map: %w", err)
		}
		if err := json.Unmarshal(payload, &control); err != nil {
			return model.Control{}, fmt.Errorf("unmarshal control map: %w", err)
		}
		return control, nil
	default:
		return model.Control{}, fmt.Errorf("unsupported control type %T", value)
	}
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
