package html_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/render"
	"github.com/goliatone/go-camgen/pkg/renderers/html"
	"github.com/goliatone/go-camgen/pkg/testsupport"
)

func newContractWidget(backend model.Backend) model.WidgetModel {
	widget := model.WidgetModel{
		Name:     "verify-photo",
		Backend:  backend,
		Controls: model.DefaultControls(),
	}
	switch backend {
	case model.BackendHTML5:
		widget.Video = model.VideoRegion{Hint: model.TextPermissionHint}
		widget.Canvas = model.CanvasRegion{Width: model.CanvasWidth, Height: model.CanvasHeight}
	case model.BackendFlash:
		widget.Flash = model.FlashRegion{
			Resource:     model.DefaultFlashResource,
			Width:        model.FlashWidth,
			Height:       model.FlashHeight,
			Quality:      "high",
			ScriptAccess: "sameDomain",
		}
	}
	return widget
}

func renderContractWidget(t *testing.T, widget model.WidgetModel, options render.RenderOptions) string {
	t.Helper()

	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), widget, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func TestRenderWidget_HTML5EmitsVideoAndCanvasOnly(t *testing.T) {
	got := renderContractWidget(t, newContractWidget(model.BackendHTML5), render.RenderOptions{})

	checks := []struct {
		marker string
		want   int
	}{
		{`id="camera"`, 1},
		{`id="photo_id_video"`, 1},
		{`id="photo_id_canvas"`, 1},
		{`id="flash_video"`, 0},
		{`width="640" height="480"`, 1},
		{`autoplay="autoplay"`, 1},
		{`aria-label="Live view of webcam"`, 1},
	}
	for _, check := range checks {
		if count := strings.Count(got, check.marker); count != check.want {
			t.Errorf("expected %d occurrence(s) of %s, got %d in:\n%s", check.want, check.marker, count, got)
		}
	}
	if !strings.Contains(got, "Don&#39;t see your picture?") {
		t.Errorf("expected permission hint in output:\n%s", got)
	}
}

func TestRenderWidget_FlashEmitsPluginOnly(t *testing.T) {
	got := renderContractWidget(t, newContractWidget(model.BackendFlash), render.RenderOptions{})

	checks := []struct {
		marker string
		want   int
	}{
		{`id="flash_video"`, 1},
		{`id="photo_id_video"`, 0},
		{`id="photo_id_canvas"`, 0},
		{`width="500" height="375"`, 1},
		{model.DefaultFlashResource, 2},
		{`<param name="quality" value="high">`, 1},
		{`<param name="allowScriptAccess" value="sameDomain">`, 1},
	}
	for _, check := range checks {
		if count := strings.Count(got, check.marker); count != check.want {
			t.Errorf("expected %d occurrence(s) of %s, got %d in:\n%s", check.want, check.marker, count, got)
		}
	}
}

func TestRenderWidget_NoneBackendKeepsControls(t *testing.T) {
	got := renderContractWidget(t, newContractWidget(model.BackendNone), render.RenderOptions{})

	for _, absent := range []string{`id="photo_id_video"`, `id="photo_id_canvas"`, `id="flash_video"`, "camgen-camera"} {
		if strings.Contains(got, absent) {
			t.Errorf("expected no %s for none backend, got:\n%s", absent, got)
		}
	}
	if !strings.Contains(got, `data-backend="none"`) {
		t.Errorf("expected none backend marker, got:\n%s", got)
	}
	if !strings.Contains(got, `id="webcam_capture_button"`) {
		t.Errorf("expected capture control to survive none backend, got:\n%s", got)
	}
}

func TestRenderWidget_ControlsStartHidden(t *testing.T) {
	got := renderContractWidget(t, newContractWidget(model.BackendHTML5), render.RenderOptions{})

	checks := []struct {
		marker string
		want   int
	}{
		{`<li class="control control-retake is-hidden">`, 1},
		{`<li class="control control-do is-hidden">`, 1},
		{`id="webcam_reset_button"`, 1},
		{`id="webcam_capture_button"`, 1},
	}
	for _, check := range checks {
		if count := strings.Count(got, check.marker); count != check.want {
			t.Errorf("expected %d occurrence(s) of %s, got %d in:\n%s", check.want, check.marker, count, got)
		}
	}

	if !strings.Contains(got, `<span class="sr">Take Photo</span>`) {
		t.Errorf("expected screen-reader label next to capture icon, got:\n%s", got)
	}
	if !strings.Contains(got, "icon-camera") {
		t.Errorf("expected capture icon markup, got:\n%s", got)
	}
}

func TestRenderWidget_NilTranslatorKeepsSourceStrings(t *testing.T) {
	got := renderContractWidget(t, newContractWidget(model.BackendHTML5), render.RenderOptions{Locale: "es"})

	for _, want := range []string{model.TextRetakePhoto, model.TextTakePhoto, model.TextLiveView} {
		if !strings.Contains(got, want) {
			t.Errorf("expected source string %q with nil translator, got:\n%s", want, got)
		}
	}
}

func TestRenderWidget_TranslatedLabels(t *testing.T) {
	translations := map[string]string{
		model.TextRetakePhoto:    "Volver a tomar la foto",
		model.TextTakePhoto:      "Tomar la foto",
		model.TextLiveView:       "Vista en vivo de la cámara",
		model.TextPermissionHint: "¿No ve su imagen? Permita que el navegador use la cámara.",
	}
	options := render.RenderOptions{
		Locale: "es",
		Translator: render.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
			if locale != "es" {
				return "", fmt.Errorf("unexpected locale %q", locale)
			}
			if translated, ok := translations[key]; ok {
				return translated, nil
			}
			return "", render.ErrMissingTranslator
		}),
	}

	got := renderContractWidget(t, newContractWidget(model.BackendHTML5), options)

	for _, want := range []string{
		"Volver a tomar la foto",
		"Tomar la foto",
		`aria-label="Vista en vivo de la cámara"`,
		"¿No ve su imagen?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected translation %q, got:\n%s", want, got)
		}
	}
	for _, stale := range []string{model.TextRetakePhoto, model.TextTakePhoto} {
		if strings.Contains(got, stale) {
			t.Errorf("expected source string %q to be replaced, got:\n%s", stale, got)
		}
	}
}

func TestRenderWidget_NoticeRouting(t *testing.T) {
	options := render.RenderOptions{
		Notices: map[string][]string{
			"capture":         {"Photo was too dark"},
			"video":           {"We could not start your camera"},
			"signal-strength": {"Connection is unstable"},
		},
	}

	got := renderContractWidget(t, newContractWidget(model.BackendHTML5), options)

	if !strings.Contains(got, `data-notices-for="webcam_capture_button"`) {
		t.Errorf("expected capture notices attached to the control, got:\n%s", got)
	}
	if !strings.Contains(got, "<li>Photo was too dark</li>") {
		t.Errorf("expected capture notice message, got:\n%s", got)
	}
	if !strings.Contains(got, `data-invalid="true"`) {
		t.Errorf("expected invalid marker on the capture action, got:\n%s", got)
	}
	if !strings.Contains(got, `data-notices-for="photo_id_video"`) {
		t.Errorf("expected video notices below the capture surface, got:\n%s", got)
	}
	if !strings.Contains(got, `data-notices-for="camera"`) {
		t.Errorf("expected unknown keys to surface as widget notices, got:\n%s", got)
	}
	if !strings.Contains(got, "<li>Connection is unstable</li>") {
		t.Errorf("expected widget notice message, got:\n%s", got)
	}
}

func TestRenderWidget_HiddenUploadFields(t *testing.T) {
	options := render.RenderOptions{
		Hidden: []render.HiddenField{
			render.VersionField("attempt", 3),
			render.CSRFToken("csrfmiddlewaretoken", "tok-123"),
		},
	}

	got := renderContractWidget(t, newContractWidget(model.BackendHTML5), options)

	csrf := strings.Index(got, `<input type="hidden" name="csrfmiddlewaretoken" value="tok-123">`)
	attempt := strings.Index(got, `<input type="hidden" name="attempt" value="3">`)
	if csrf < 0 || attempt < 0 {
		t.Fatalf("expected hidden upload fields, got:\n%s", got)
	}
	if attempt > csrf {
		t.Errorf("expected hidden fields sorted by name, got:\n%s", got)
	}
}
