package orchestrator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/orchestrator"
	"github.com/goliatone/go-camgen/pkg/render"
)

func TestOrchestrator_AppliesUploadOverride(t *testing.T) {
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
		orchestrator.WithUploadOverrides([]orchestrator.UploadOverride{
			{Profile: "kiosk", Target: model.UploadTarget{Endpoint: "/kiosk/upload"}},
		}),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Profile: "kiosk"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	upload := renderer.last.Upload
	if upload == nil {
		t.Fatalf("expected upload target injected")
	}
	if upload.Endpoint != "/kiosk/upload" {
		t.Fatalf("unexpected endpoint: %q", upload.Endpoint)
	}
	if upload.Method != "POST" || upload.Field != "photo" {
		t.Fatalf("override defaults not applied: %+v", upload)
	}
}

func TestOrchestrator_UploadOverrideKeepsBuilderTarget(t *testing.T) {
	builder := &stubWidgetBuilder{widget: model.WidgetModel{
		Name:   "kiosk",
		Upload: &model.UploadTarget{Endpoint: "/from-profile", Method: "PUT", Field: "face_image"},
	}}
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithProfilesFS(kioskProfilesFS()),
		orchestrator.WithBuilder(builder),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithUploadOverrides([]orchestrator.UploadOverride{
			{Profile: "kiosk", Target: model.UploadTarget{Endpoint: "/override"}},
		}),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Profile: "kiosk"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	upload := renderer.last.Upload
	if upload == nil || upload.Endpoint != "/from-profile" {
		t.Fatalf("builder target should win, got %+v", upload)
	}
}

func TestOrchestrator_UploadOverrideValidation(t *testing.T) {
	orch := orchestrator.New(
		orchestrator.WithProfilesFS(kioskProfilesFS()),
		orchestrator.WithUploadOverrides([]orchestrator.UploadOverride{
			{Profile: "kiosk"},
		}),
	)

	_, err := orch.Generate(context.Background(), orchestrator.Request{Profile: "kiosk"})
	if err == nil || !strings.Contains(err.Error(), `upload override "kiosk" missing endpoint`) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
