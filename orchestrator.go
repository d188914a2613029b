package camgen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/orchestrator"
	"github.com/goliatone/go-camgen/pkg/render"
	"github.com/goliatone/go-camgen/pkg/renderers/html"
)

// WidgetModel is the renderer-agnostic capture widget description; alias
// exported via the root package for convenience.
type WidgetModel = model.WidgetModel

// UploadTarget describes where a captured frame is posted.
type UploadTarget = model.UploadTarget

// UploadOverride configures a manual upload target for a capture profile.
type UploadOverride = orchestrator.UploadOverride

// Request names the profile, backend, renderer, and locale for one render.
type Request = orchestrator.Request

// RenderOptions describes per-request overrides that renderers use to
// translate labels, surface notices, or apply a resolved theme.
type RenderOptions = render.RenderOptions

// ThemeConfig aliases the go-theme renderer contract carried on
// RenderOptions.Theme.
type ThemeConfig = theme.RendererConfig

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module so quick-start callers need a single import.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML resolves the named capture profile, builds its widget model
// for the requested backend, and renders it with the default html renderer.
// It is the simplest entry point for callers that just want a fragment.
func GenerateHTML(ctx context.Context, profileName, backend string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Profile: profileName,
		Backend: backend,
	})
}

// RenderWidget renders a pre-built widget model with the embedded html
// renderer, bypassing the profile and builder stages while still producing
// the same markup contract.
func RenderWidget(ctx context.Context, widget model.WidgetModel, options render.RenderOptions) ([]byte, error) {
	renderer, err := html.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, widget, options)
}

// WithUploadOverrides registers upload overrides that can be passed to
// GenerateHTML alongside other orchestrator options.
func WithUploadOverrides(overrides []UploadOverride) orchestrator.Option {
	return orchestrator.WithUploadOverrides(overrides)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector orchestrator.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider registers a selector together with the theme applied when
// neither the request nor the profile names one, so renderers receive
// resolved partials, tokens, and assets.
func WithThemeProvider(selector orchestrator.ThemeSelector, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(selector, defaultTheme, defaultVariant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
