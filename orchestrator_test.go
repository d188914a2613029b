package camgen

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/render"
)

func TestGenerateHTMLEmbeddedProfile(t *testing.T) {
	output, err := GenerateHTML(context.Background(), "face", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fragment := string(output)
	for _, marker := range []string{
		`id="camera"`,
		`data-backend="html5"`,
		`id="webcam_capture_button"`,
		`id="webcam_reset_button"`,
	} {
		if !strings.Contains(fragment, marker) {
			t.Fatalf("expected fragment to contain %s, got:\n%s", marker, fragment)
		}
	}
}

func TestGenerateHTMLBackendOverride(t *testing.T) {
	output, err := GenerateHTML(context.Background(), "face", "flash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fragment := string(output)
	if !strings.Contains(fragment, `id="flash_video"`) {
		t.Fatalf("expected plugin embed, got:\n%s", fragment)
	}
	if strings.Contains(fragment, `id="photo_id_video"`) {
		t.Fatalf("expected no viewfinder alongside the plugin embed, got:\n%s", fragment)
	}
}

func TestGenerateHTMLUnknownProfile(t *testing.T) {
	if _, err := GenerateHTML(context.Background(), "missing", ""); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestRenderWidgetBypassesProfiles(t *testing.T) {
	widget := model.WidgetModel{
		Name:     "kiosk",
		Backend:  model.BackendNone,
		Controls: model.DefaultControls(),
	}

	output, err := RenderWidget(context.Background(), widget, render.RenderOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fragment := string(output)
	if !strings.Contains(fragment, "camgen-controls") {
		t.Fatalf("expected control bar, got:\n%s", fragment)
	}
	if strings.Contains(fragment, "<video") {
		t.Fatalf("expected no viewfinder for backend none, got:\n%s", fragment)
	}
}
