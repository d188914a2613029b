package orchestrator_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/orchestrator"
	"github.com/goliatone/go-camgen/pkg/profile"
	"github.com/goliatone/go-camgen/pkg/render"
)

const kioskProfileDoc = `profiles:
  kiosk:
    title: Kiosk capture
    backend: html5
`

func kioskProfilesFS() fstest.MapFS {
	return fstest.MapFS{
		"capture.yaml": &fstest.MapFile{Data: []byte(kioskProfileDoc)},
	}
}

func TestOrchestrator_AppliesDecorators(t *testing.T) {
	decorator := model.DecoratorFunc(func(widget *model.WidgetModel) error {
		if widget.Metadata == nil {
			widget.Metadata = make(map[string]string)
		}
		widget.Metadata["decorated"] = "true"
		return nil
	})

	baseWidget := model.WidgetModel{
		Name:     "kiosk",
		Controls: model.DefaultControls(),
	}

	builder := &stubWidgetBuilder{widget: baseWidget}
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithProfilesFS(kioskProfilesFS()),
		orchestrator.WithBuilder(builder),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithDecorators(decorator),
	)

	output, err := orch.Generate(context.Background(), orchestrator.Request{Profile: "kiosk"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != "ok" {
		t.Fatalf("unexpected renderer output: %s", output)
	}
	if renderer.last.Metadata["decorated"] != "true" {
		t.Fatalf("decorator not applied: %#v", renderer.last.Metadata)
	}
}

func TestOrchestrator_ComponentRegistryStampsControls(t *testing.T) {
	builder := &stubWidgetBuilder{widget: model.WidgetModel{
		Name:     "kiosk",
		Controls: model.DefaultControls(),
	}}
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithProfilesFS(kioskProfilesFS()),
		orchestrator.WithBuilder(builder),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Profile: "kiosk"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(renderer.last.Controls) == 0 {
		t.Fatal("expected controls on rendered widget")
	}

	for _, control := range renderer.last.Controls {
		if control.Component == "" {
			t.Fatalf("control %q missing component resolution: %#v", control.ID, control)
		}
		if control.UIHints["widget"] != control.Component {
			t.Fatalf("control %q hint mismatch: hint=%q component=%q", control.ID, control.UIHints["widget"], control.Component)
		}
	}
}

type stubWidgetBuilder struct {
	widget model.WidgetModel
	err    error
}

func (s *stubWidgetBuilder) Build(_ context.Context, _ profile.Profile, backend model.Backend) (model.WidgetModel, error) {
	if s.err != nil {
		return model.WidgetModel{}, s.err
	}
	widget := s.widget
	widget.Backend = backend
	widget.Controls = append([]model.Control(nil), s.widget.Controls...)
	return widget, nil
}

type stubRenderer struct {
	last model.WidgetModel
}

func (s *stubRenderer) Name() string {
	return "stub"
}

func (s *stubRenderer) ContentType() string {
	return "text/plain"
}

func (s *stubRenderer) Render(_ context.Context, widget model.WidgetModel, _ render.RenderOptions) ([]byte, error) {
	s.last = widget
	return []byte("ok"), nil
}
