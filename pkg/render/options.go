package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the widget model pipeline.
type RenderOptions struct {
	// Locale selects the translation target handed to Translator. Renderers
	// pass it through unchanged; they never parse or normalize language tags.
	Locale string
	// Translator resolves the widget's source strings. When nil, the
	// translation chain degrades to the source string itself, so an
	// unconfigured renderer emits the untranslated contract text.
	Translator Translator
	// OnMissing controls what renderers emit when a translation lookup fails.
	// Defaults to the fallback string, then the lookup key.
	OnMissing MissingTranslationHandler
	// Theme carries resolved theme data (partials, tokens, asset URLs) into
	// renderers. Nil means the built-in markup and stylesheets.
	Theme *theme.RendererConfig
	// Values exposes request-scoped signals (feature flags, attempt counts,
	// capture state) to visibility rules and component config.
	Values map[string]any
	// Notices surfaces server-side feedback keyed by element identifier or
	// one of its aliases. Renderers map these into inline chrome next to the
	// matching region or control.
	Notices map[string][]string
	// Hidden lists extra hidden inputs (CSRF tokens, session hints) emitted
	// alongside the widget so the capture submission can carry them.
	Hidden []HiddenField
	// AssetBase prefixes the stylesheet/script URLs referenced by component
	// descriptors. Empty means same-origin relative paths.
	AssetBase string
	// ChromeClasses overrides the semantic CSS classes renderers stamp onto
	// structural markup. Nil or empty fields keep the renderer defaults.
	ChromeClasses *ChromeClasses
}

// ChromeClasses names the CSS classes renderers apply to the structural
// chrome around the widget. Empty fields fall back to renderer defaults.
type ChromeClasses struct {
	Widget   string
	Camera   string
	Controls string
	Notices  string
}

// Clone returns a copy of the options with the map and slice fields
// duplicated so renderers can tweak them per call.
func (o RenderOptions) Clone() RenderOptions {
	out := o
	if len(o.Values) > 0 {
		out.Values = make(map[string]any, len(o.Values))
		for key, value := range o.Values {
			out.Values[key] = value
		}
	}
	if len(o.Notices) > 0 {
		out.Notices = make(map[string][]string, len(o.Notices))
		for key, messages := range o.Notices {
			out.Notices[key] = append([]string(nil), messages...)
		}
	}
	if len(o.Hidden) > 0 {
		out.Hidden = append([]HiddenField(nil), o.Hidden...)
	}
	if o.ChromeClasses != nil {
		chrome := *o.ChromeClasses
		out.ChromeClasses = &chrome
	}
	return out
}
