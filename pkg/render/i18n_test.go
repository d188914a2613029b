package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-camgen/pkg/model"
)

type stubTranslator struct {
	entries map[string]string
	err     error
}

func (s stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	value, ok := s.entries[key]
	if !ok {
		return "", errors.New("missing")
	}
	return value, nil
}

func TestTranslate_NilTranslatorIsIdentity(t *testing.T) {
	got := Translate(RenderOptions{}, model.TextTakePhoto, "")
	if got != model.TextTakePhoto {
		t.Fatalf("identity translation broken: %q", got)
	}
}

func TestTranslate_UsesTranslator(t *testing.T) {
	opts := RenderOptions{
		Locale:     "es",
		Translator: stubTranslator{entries: map[string]string{model.TextTakePhoto: "Tomar la foto"}},
	}
	if got := Translate(opts, model.TextTakePhoto, ""); got != "Tomar la foto" {
		t.Fatalf("translation lost: %q", got)
	}
}

func TestTranslate_FallbackChain(t *testing.T) {
	opts := RenderOptions{
		Translator: stubTranslator{err: errors.New("backend down")},
	}
	if got := Translate(opts, "Take Photo", "fallback text"); got != "fallback text" {
		t.Fatalf("fallback lost: %q", got)
	}
	if got := Translate(opts, "Take Photo", ""); got != "Take Photo" {
		t.Fatalf("key fallback lost: %q", got)
	}
}

func TestTranslate_OnMissingHandler(t *testing.T) {
	var gotErr error
	opts := RenderOptions{
		OnMissing: func(_, key string, _ []any, err error) string {
			gotErr = err
			return "[" + key + "]"
		},
	}
	if got := Translate(opts, "Take Photo", ""); got != "[Take Photo]" {
		t.Fatalf("handler output lost: %q", got)
	}
	if !errors.Is(gotErr, ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
}

func TestTranslate_EmptyKeyReturnsFallback(t *testing.T) {
	if got := Translate(RenderOptions{}, "  ", "fallback"); got != "fallback" {
		t.Fatalf("empty key should return fallback, got %q", got)
	}
}

func TestLocalizeWidgetModel_KeyHints(t *testing.T) {
	widget := model.WidgetModel{
		Title: "Photo ID capture",
		Video: model.VideoRegion{Hint: model.TextPermissionHint},
		UIHints: map[string]string{
			"titleKey": "widget.title",
			"hintKey":  "widget.hint",
		},
		Controls: []model.Control{
			{
				Kind:    model.ControlCapture,
				Label:   model.TextTakePhoto,
				UIHints: map[string]string{"labelKey": "controls.capture"},
			},
		},
	}

	opts := RenderOptions{
		Locale: "es",
		Translator: stubTranslator{entries: map[string]string{
			"widget.title":     "Captura de identificación",
			"widget.hint":      "Permite el acceso a la cámara.",
			"controls.capture": "Tomar la foto",
		}},
	}

	LocalizeWidgetModel(&widget, opts)

	if widget.Title != "Captura de identificación" {
		t.Fatalf("title key not applied: %q", widget.Title)
	}
	if widget.Video.Hint != "Permite el acceso a la cámara." {
		t.Fatalf("hint key not applied: %q", widget.Video.Hint)
	}
	if widget.Controls[0].Label != "Tomar la foto" {
		t.Fatalf("control label key not applied: %q", widget.Controls[0].Label)
	}
}

func TestLocalizeWidgetModel_MissingKeyKeepsFallback(t *testing.T) {
	widget := model.WidgetModel{
		Title:   "Photo ID capture",
		UIHints: map[string]string{"titleKey": "widget.title"},
	}

	LocalizeWidgetModel(&widget, RenderOptions{Translator: stubTranslator{}})

	if widget.Title != "Photo ID capture" {
		t.Fatalf("fallback title lost: %q", widget.Title)
	}
}

func TestTemplateI18nFuncs(t *testing.T) {
	funcs := TemplateI18nFuncs(stubTranslator{entries: map[string]string{"Take Photo": "Tomar la foto"}}, TemplateI18nConfig{})

	translateFn, ok := funcs["translate"].(func(any, string, ...any) string)
	if !ok {
		t.Fatalf("translate helper missing: %#v", funcs)
	}
	if got := translateFn("es", "Take Photo"); got != "Tomar la foto" {
		t.Fatalf("template translate mismatch: %q", got)
	}
	if got := translateFn(map[string]any{"locale": "es"}, "Unknown"); got != "Unknown" {
		t.Fatalf("missing key should fall back to key: %q", got)
	}

	localeFn, ok := funcs["current_locale"].(func(any) string)
	if !ok {
		t.Fatalf("current_locale helper missing")
	}
	if got := localeFn(map[string]any{"locale": "fr"}); got != "fr" {
		t.Fatalf("locale resolution mismatch: %q", got)
	}
	if got := localeFn("de"); got != "de" {
		t.Fatalf("string locale mismatch: %q", got)
	}
}

func TestTemplateI18nFuncs_StructLocale(t *testing.T) {
	funcs := TemplateI18nFuncs(nil, TemplateI18nConfig{LocaleKey: "Locale"})

	localeFn, ok := funcs["current_locale"].(func(any) string)
	if !ok {
		t.Fatalf("current_locale helper missing")
	}
	ctx := struct{ Locale string }{Locale: "pt-BR"}
	if got := localeFn(ctx); got != "pt-BR" {
		t.Fatalf("struct locale mismatch: %q", got)
	}
	if got := localeFn(&ctx); got != "pt-BR" {
		t.Fatalf("pointer locale mismatch: %q", got)
	}
}

func TestTemplateI18nFuncs_CustomNames(t *testing.T) {
	funcs := TemplateI18nFuncs(nil, TemplateI18nConfig{
		FuncName:  "t",
		LocaleKey: "lang",
		OnMissing: func(_, key string, _ []any, _ error) string { return strings.ToUpper(key) },
	})

	translateFn, ok := funcs["t"].(func(any, string, ...any) string)
	if !ok {
		t.Fatalf("custom helper name missing: %#v", funcs)
	}
	if got := translateFn(map[string]string{"lang": "es"}, "take photo"); got != "TAKE PHOTO" {
		t.Fatalf("on-missing handler skipped: %q", got)
	}
}
