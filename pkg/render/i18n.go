package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-camgen/pkg/model"
)

// ErrMissingTranslator is handed to OnMissing handlers when a translation is
// requested but no Translator was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a source string into locale-specific text. The key IS
// the source string: widgets pass their literal English text through the
// lookup unmodified, gettext style.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides what renderers emit when a translation
// lookup fails. params carries translator arguments plus a trailing map with
// the "default" fallback string.
type MissingTranslationHandler func(locale, key string, params []any, err error) string

func missingTranslationDefault(_, key string, params []any, _ error) string {
	for _, param := range params {
		values, ok := param.(map[string]any)
		if !ok {
			continue
		}
		if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
			return fallback
		}
	}
	return key
}

// Translate runs key through the options' translation chain. With no
// translator configured the chain degrades to fallback-then-key, which makes
// the nil translator behave as the identity translation.
func Translate(opts RenderOptions, key, fallback string) string {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return translate(opts.Locale, key, fallback, opts.Translator, onMissing)
}

const (
	widgetTitleKeyHint       = "titleKey"
	widgetDescriptionKeyHint = "descriptionKey"
	regionHintKeyHint        = "hintKey"
	controlLabelKeyHint      = "labelKey"
)

// LocalizeWidgetModel mutates the supplied widget model in place, translating
// any configured `*Key` hints into their localized string values.
//
// This is best-effort: translation failures are routed through
// opts.OnMissing. The built-in source strings are not touched here; they run
// through the chain when the renderer emits them.
func LocalizeWidgetModel(widget *model.WidgetModel, opts RenderOptions) {
	if widget == nil {
		return
	}

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	if key := strings.TrimSpace(mapString(widget.UIHints, widgetTitleKeyHint)); key != "" {
		widget.Title = translate(opts.Locale, key, strings.TrimSpace(widget.Title), opts.Translator, onMissing)
	}
	if key := strings.TrimSpace(mapString(widget.UIHints, widgetDescriptionKeyHint)); key != "" {
		widget.Description = translate(opts.Locale, key, strings.TrimSpace(widget.Description), opts.Translator, onMissing)
	}
	if key := strings.TrimSpace(mapString(widget.UIHints, regionHintKeyHint)); key != "" {
		widget.Video.Hint = translate(opts.Locale, key, strings.TrimSpace(widget.Video.Hint), opts.Translator, onMissing)
	}

	for i := range widget.Controls {
		control := &widget.Controls[i]
		if key := strings.TrimSpace(mapString(control.UIHints, controlLabelKeyHint)); key != "" {
			control.Label = translate(opts.Locale, key, strings.TrimSpace(control.Label), opts.Translator, onMissing)
		}
	}
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

func mapString(values map[string]string, key string) string {
	if values == nil || key == "" {
		return ""
	}
	return values[key]
}
