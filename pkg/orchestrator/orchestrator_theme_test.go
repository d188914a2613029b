package orchestrator

import (
	"context"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	pkgmodel "github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/profile"
	"github.com/goliatone/go-camgen/pkg/render"
)

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	t.Helper()

	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
	}

	selection := &theme.Selection{
		Theme:    "acme",
		Variant:  "custom-variant",
		Manifest: manifest,
	}

	selector := &stubThemeSelector{selection: selection}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithProfilesFS(themedProfileFS()),
		WithBuilder(stubBuilder{widget: pkgmodel.WidgetModel{Name: "booth"}}),
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	_, err := orch.Generate(context.Background(), Request{
		Profile:      "booth",
		Renderer:     renderer.Name(),
		ThemeName:    "custom-theme",
		ThemeVariant: "custom-variant",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "custom-theme" || selector.calls[0].variant != "custom-variant" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	if renderer.options.Theme == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if renderer.options.Theme.Theme != selection.Theme {
		t.Fatalf("theme name mismatch: want %s, got %s", selection.Theme, renderer.options.Theme.Theme)
	}
	if renderer.options.Theme.Variant != selection.Variant {
		t.Fatalf("theme variant mismatch: want %s, got %s", selection.Variant, renderer.options.Theme.Variant)
	}
	if renderer.options.Theme.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver present")
	}
	if got := renderer.options.Theme.Partials["widget.viewfinder"]; got != defaultThemeFallbacks()["widget.viewfinder"] {
		t.Fatalf("partials not merged with fallbacks: want %s, got %s", defaultThemeFallbacks()["widget.viewfinder"], got)
	}
	if renderer.options.Theme.Tokens["brand"] != manifest.Tokens["brand"] {
		t.Fatalf("tokens not propagated")
	}
	if renderer.options.Theme.CSSVars["--brand"] != manifest.Tokens["brand"] {
		t.Fatalf("css vars not derived from tokens")
	}
}

func TestOrchestrator_WithThemeProviderUsesDefaults(t *testing.T) {
	t.Helper()

	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"widget.viewfinder": "themes/acme/viewfinder.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"island.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"widget.control": "themes/acme/dark/control.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"island.runtime": "runtime.dark.js",
					},
				},
			},
		},
	}

	provider := theme.NewRegistry()
	if err := provider.Register(manifest); err != nil {
		t.Fatalf("register manifest: %v", err)
	}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithProfilesFS(themedProfileFS()),
		WithBuilder(stubBuilder{widget: pkgmodel.WidgetModel{Name: "booth"}}),
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeProvider(provider, "acme", "dark"),
	)

	_, err := orch.Generate(context.Background(), Request{
		Profile:  "booth",
		Renderer: renderer.Name(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != "acme" {
		t.Fatalf("theme name mismatch: want acme, got %s", cfg.Theme)
	}
	if cfg.Variant != "dark" {
		t.Fatalf("theme variant mismatch: want dark, got %s", cfg.Variant)
	}
	if cfg.Partials["widget.viewfinder"] != "themes/acme/viewfinder.tmpl" {
		t.Fatalf("expected base template override, got %s", cfg.Partials["widget.viewfinder"])
	}
	if cfg.Partials["widget.control"] != "themes/acme/dark/control.tmpl" {
		t.Fatalf("expected variant template override, got %s", cfg.Partials["widget.control"])
	}
	if cfg.Partials["widget.plugin"] != defaultThemeFallbacks()["widget.plugin"] {
		t.Fatalf("fallback partial not applied for plugin embed")
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("tokens not merged with variant override, got %s", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived from variant tokens, got %s", cfg.CSSVars["--brand"])
	}
	if cfg.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver present")
	}
	if got := cfg.AssetURL("island.runtime"); got != "/assets/themes/acme/runtime.dark.js" {
		t.Fatalf("unexpected runtime asset url: %s", got)
	}
	if got := cfg.AssetURL("island.stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet asset url: %s", got)
	}
}

func themedProfileFS() fstest.MapFS {
	return fstest.MapFS{
		"booth.yaml": &fstest.MapFile{Data: []byte("profiles:\n  booth:\n    backend: html5\n")},
	}
}

type stubBuilder struct {
	widget pkgmodel.WidgetModel
	err    error
}

func (s stubBuilder) Build(_ context.Context, _ profile.Profile, backend pkgmodel.Backend) (pkgmodel.WidgetModel, error) {
	if s.err != nil {
		return pkgmodel.WidgetModel{}, s.err
	}
	widget := s.widget
	widget.Backend = backend
	return widget, nil
}

type captureRenderer struct {
	options render.RenderOptions
}

func (r *captureRenderer) Name() string {
	return "capture"
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, widget pkgmodel.WidgetModel, opts render.RenderOptions) ([]byte, error) {
	r.options = opts
	return []byte(widget.Name), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
