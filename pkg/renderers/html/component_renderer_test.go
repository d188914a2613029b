package html

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/render"
	"github.com/goliatone/go-camgen/pkg/renderers/html/components"
	theme "github.com/goliatone/go-theme"
)

func TestComponentRendererUnknownComponent(t *testing.T) {
	renderer := newComponentRenderer(nil, components.NewDefaultRegistry(), map[string]string{
		model.ElementCaptureControl: "missing",
	}, render.RenderOptions{})

	control := model.Control{ID: model.ElementCaptureControl, Kind: model.ControlCapture}
	_, err := renderer.renderControl(model.WidgetModel{}, control, render.NoticeMapping{})
	if err == nil {
		t.Fatal("expected error when component is missing")
	}

	if got := err.Error(); got != `component "missing" not registered` {
		t.Fatalf("unexpected error: %s", got)
	}
}

func TestComponentRendererUsesThemePartial(t *testing.T) {
	template := &recordingTemplateRenderer{}
	renderer := newComponentRenderer(template, components.NewDefaultRegistry(), nil, render.RenderOptions{
		Theme: &theme.RendererConfig{
			Partials: map[string]string{
				"widget.viewfinder": "themes/custom/viewfinder.tpl",
			},
		},
	})

	_, err := renderer.renderRegion(model.WidgetModel{Backend: model.BackendHTML5})
	if err != nil {
		t.Fatalf("render region: %v", err)
	}

	if len(template.calls) == 0 {
		t.Fatal("expected template renderer to be called")
	}
	if got := template.calls[0]; got != "themes/custom/viewfinder.tpl" {
		t.Fatalf("theme partial not applied, got %q", got)
	}
}

func TestComponentRendererControlResolution(t *testing.T) {
	registry := components.NewDefaultRegistry()
	registry.MustRegister("badge", components.Descriptor{
		Renderer: func(buf *bytes.Buffer, _ model.WidgetModel, _ components.ComponentData) error {
			buf.WriteString("<badge />")
			return nil
		},
	})

	cases := []struct {
		name      string
		overrides map[string]string
		control   model.Control
		wantBadge bool
	}{
		{
			name:      "override by control id",
			overrides: map[string]string{model.ElementCaptureControl: "badge"},
			control:   model.Control{ID: model.ElementCaptureControl, Kind: model.ControlCapture},
			wantBadge: true,
		},
		{
			name:      "override by control kind",
			overrides: map[string]string{"retake": "badge"},
			control:   model.Control{ID: "custom_reset", Kind: model.ControlRetake},
			wantBadge: true,
		},
		{
			name:      "component hint on the control",
			control:   model.Control{ID: model.ElementResetControl, Kind: model.ControlRetake, Component: "badge"},
			wantBadge: true,
		},
		{
			name:      "defaults to the control component",
			control:   model.Control{ID: model.ElementResetControl, Kind: model.ControlRetake, Label: "Retake Photo"},
			wantBadge: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			renderer := newComponentRenderer(nil, registry, tc.overrides, render.RenderOptions{})

			got, err := renderer.renderControl(model.WidgetModel{}, tc.control, render.NoticeMapping{})
			if err != nil {
				t.Fatalf("render control: %v", err)
			}

			if tc.wantBadge {
				if got != "<badge />" {
					t.Fatalf("expected badge component output, got %q", got)
				}
				return
			}
			if !strings.HasPrefix(got, `<li class="control`) {
				t.Fatalf("expected default control markup, got %q", got)
			}
		})
	}
}

func TestComponentRendererRegionResolution(t *testing.T) {
	registry := components.NewDefaultRegistry()
	registry.MustRegister("surface", components.Descriptor{
		Renderer: func(buf *bytes.Buffer, _ model.WidgetModel, _ components.ComponentData) error {
			buf.WriteString("<surface />")
			return nil
		},
	})

	cases := []struct {
		name        string
		overrides   map[string]string
		widget      model.WidgetModel
		wantSurface bool
	}{
		{
			name:        "override by slot name",
			overrides:   map[string]string{components.NameViewfinder: "surface"},
			widget:      model.WidgetModel{Backend: model.BackendHTML5},
			wantSurface: true,
		},
		{
			name: "widget ui hint",
			widget: model.WidgetModel{
				Backend: model.BackendFlash,
				UIHints: map[string]string{"widget": "surface"},
			},
			wantSurface: true,
		},
		{
			name: "hint cannot conjure a surface for none",
			widget: model.WidgetModel{
				Backend: model.BackendNone,
				UIHints: map[string]string{"widget": "surface"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			renderer := newComponentRenderer(nil, registry, tc.overrides, render.RenderOptions{})

			got, err := renderer.renderRegion(tc.widget)
			if err != nil {
				t.Fatalf("render region: %v", err)
			}

			if !tc.wantSurface {
				if got != "" {
					t.Fatalf("expected no capture surface, got %q", got)
				}
				return
			}
			if got != "<surface />" {
				t.Fatalf("expected surface component output, got %q", got)
			}
		})
	}
}

func TestComponentRendererRegionOverrideBeatsHint(t *testing.T) {
	template := &recordingTemplateRenderer{}
	renderer := newComponentRenderer(template, components.NewDefaultRegistry(), map[string]string{
		components.NameViewfinder: components.NameViewfinder,
	}, render.RenderOptions{})

	widget := model.WidgetModel{
		Backend: model.BackendHTML5,
		UIHints: map[string]string{"widget": "surface"},
	}
	if _, err := renderer.renderRegion(widget); err != nil {
		t.Fatalf("render region: %v", err)
	}

	if len(template.calls) == 0 {
		t.Fatal("expected viewfinder template to render")
	}
	if got := template.calls[0]; got != "templates/components/viewfinder.tpl" {
		t.Fatalf("override should pin the builtin viewfinder, got %q", got)
	}
}

type recordingTemplateRenderer struct {
	calls []string
}

func (r *recordingTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	r.calls = append(r.calls, name)
	return "", nil
}

func (r *recordingTemplateRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplateRenderer) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	return nil
}

func (r *recordingTemplateRenderer) GlobalContext(data any) error {
	return nil
}
