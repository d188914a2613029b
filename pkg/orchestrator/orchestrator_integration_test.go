package orchestrator_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-camgen/pkg/orchestrator"
	"github.com/goliatone/go-camgen/pkg/render"
	"github.com/goliatone/go-camgen/pkg/renderers/html"
	"github.com/goliatone/go-camgen/pkg/renderers/island"
	"github.com/goliatone/go-camgen/pkg/testsupport"
)

func TestOrchestrator_Integration_MultiRenderer(t *testing.T) {
	t.Parallel()

	ctx := testsupport.Context()

	registry := render.NewRegistry()
	registry.MustRegister(mustHTML(t))
	registry.MustRegister(mustIsland(t))

	orch := orchestrator.New(
		orchestrator.WithProfilesFS(kioskProfilesFS()),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("html"),
	)

	type rendererCase struct {
		name     string
		renderer string
		markers  []string
		absent   []string
	}

	cases := []rendererCase{
		{
			name:     "DefaultRenderer",
			renderer: "",
			markers: []string{
				`id="camera"`,
				`data-camgen-widget`,
				`id="photo_id_video"`,
				`id="webcam_capture_button"`,
			},
			absent: []string{`data-camgen-island`},
		},
		{
			name:     "ExplicitHTML",
			renderer: "html",
			markers: []string{
				`id="camera"`,
				`id="photo_id_video"`,
			},
			absent: []string{`data-camgen-island`},
		},
		{
			name:     "IslandRenderer",
			renderer: "island",
			markers: []string{
				`data-camgen-island`,
				`id="camgen-island-kiosk-props"`,
				`"video":"photo_id_video"`,
				`"capture":"webcam_capture_button"`,
			},
			absent: []string{`<video`, `id="photo_id_video"`},
		},
	}

	outputs := make(map[string][]byte)

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			output, err := orch.Generate(ctx, orchestrator.Request{
				Profile:  "kiosk",
				Renderer: tc.renderer,
			})
			if err != nil {
				t.Fatalf("generate (%s): %v", tc.name, err)
			}

			got := string(output)
			if !strings.Contains(got, `data-backend="html5"`) {
				t.Errorf("expected backend marker in every renderer's output, got:\n%s", got)
			}
			for _, marker := range tc.markers {
				if !strings.Contains(got, marker) {
					t.Errorf("expected %s in %s output, got:\n%s", marker, tc.name, got)
				}
			}
			for _, marker := range tc.absent {
				if strings.Contains(got, marker) {
					t.Errorf("expected no %s in %s output, got:\n%s", marker, tc.name, got)
				}
			}

			outputs[tc.name] = append([]byte(nil), output...)
		})
	}

	// The default renderer is the html renderer; the fragments must match.
	if diff := testsupport.CompareGolden(string(outputs["ExplicitHTML"]), string(outputs["DefaultRenderer"])); diff != "" {
		t.Errorf("default renderer output diverged from html (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_Integration_UnknownRenderer(t *testing.T) {
	t.Parallel()

	registry := render.NewRegistry()
	registry.MustRegister(mustHTML(t))

	orch := orchestrator.New(
		orchestrator.WithProfilesFS(kioskProfilesFS()),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("html"),
	)

	_, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Profile:  "kiosk",
		Renderer: "hologram",
	})
	if err == nil {
		t.Fatal("expected error for unregistered renderer")
	}
	if !strings.Contains(err.Error(), "hologram") {
		t.Errorf("expected renderer name in error, got: %v", err)
	}
}

func mustHTML(t *testing.T) render.Renderer {
	t.Helper()

	r, err := html.New()
	if err != nil {
		t.Fatalf("html renderer: %v", err)
	}
	return r
}

func mustIsland(t *testing.T) render.Renderer {
	t.Helper()

	r, err := island.New()
	if err != nil {
		t.Fatalf("island renderer: %v", err)
	}
	return r
}
