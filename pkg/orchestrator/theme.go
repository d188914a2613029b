package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-camgen/pkg/profile"
)

// ThemeSelector resolves a theme name/variant pair into a selection. The
// go-theme registry satisfies this seam.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// WithThemeSelector injects the selector consulted when a request or profile
// names a theme.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider injects a selector together with the theme applied when
// neither the request nor the profile names one.
func WithThemeProvider(selector ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = strings.TrimSpace(name)
		o.themeVariant = strings.TrimSpace(variant)
	}
}

// WithThemeFallbacks overrides the partial templates applied when a theme
// manifest leaves a component unthemed. Keys follow the component partial
// naming (`widget.viewfinder`).
func WithThemeFallbacks(partials map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = cloneStringMap(partials)
	}
}

// defaultThemeFallbacks maps component partial keys to the embedded
// templates, keeping themed renders complete when a manifest only overrides
// some components.
func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"widget.viewfinder": "templates/components/viewfinder.tpl",
		"widget.plugin":     "templates/components/plugin-embed.tpl",
	}
}

// resolveTheme picks the theme for a request: explicit request values win,
// then the profile's preference, then the provider defaults. No selector or
// no theme name means unthemed output.
func (o *Orchestrator) resolveTheme(req Request, prof profile.Profile) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}

	name := strings.TrimSpace(req.ThemeName)
	variant := strings.TrimSpace(req.ThemeVariant)
	if name == "" && prof.Theme != nil {
		name = strings.TrimSpace(prof.Theme.Name)
		if variant == "" {
			variant = strings.TrimSpace(prof.Theme.Variant)
		}
	}
	if name == "" {
		name = o.themeName
		if variant == "" {
			variant = o.themeVariant
		}
	}
	if name == "" {
		return nil, nil
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	return o.buildThemeConfig(selection), nil
}

// buildThemeConfig flattens a selection into the renderer contract: fallback
// partials under manifest templates under variant templates, tokens merged
// variant-over-base with derived `--token` CSS vars, and asset URLs joined
// from the manifest prefix.
func (o *Orchestrator) buildThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	fallbacks := o.themeFallbacks
	if fallbacks == nil {
		fallbacks = defaultThemeFallbacks()
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: cloneStringMap(fallbacks),
	}
	if cfg.Partials == nil {
		cfg.Partials = make(map[string]string)
	}

	manifest := selection.Manifest
	var variant *theme.Variant
	if manifest != nil && selection.Variant != "" {
		if v, ok := manifest.Variants[selection.Variant]; ok {
			variant = &v
		}
	}

	if manifest != nil {
		for key, tpl := range manifest.Templates {
			cfg.Partials[key] = tpl
		}
	}
	if variant != nil {
		for key, tpl := range variant.Templates {
			cfg.Partials[key] = tpl
		}
	}

	cfg.Tokens = make(map[string]string)
	if manifest != nil {
		for key, value := range manifest.Tokens {
			cfg.Tokens[key] = value
		}
	}
	if variant != nil {
		for key, value := range variant.Tokens {
			cfg.Tokens[key] = value
		}
	}

	cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}

	cfg.AssetURL = assetResolver(manifest, variant)

	return cfg
}

// assetResolver joins manifest asset files onto the asset prefix, letting
// variant files shadow the base set. Unknown keys resolve to the empty
// string so templates can skip missing assets.
func assetResolver(manifest *theme.Manifest, variant *theme.Variant) func(string) string {
	files := make(map[string]string)
	prefix := ""
	if manifest != nil {
		prefix = manifest.Assets.Prefix
		for key, file := range manifest.Assets.Files {
			files[key] = file
		}
	}
	if variant != nil {
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		for key, file := range variant.Assets.Files {
			files[key] = file
		}
	}
	prefix = strings.TrimSuffix(prefix, "/")

	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		if prefix == "" {
			return file
		}
		return prefix + "/" + file
	}
}

func cloneStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
