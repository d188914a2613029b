package webcam

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/orchestrator"
	"github.com/goliatone/go-camgen/pkg/renderers/html"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type widgetResponse struct {
	Data widgetPayload `json:"data"`
}

type widgetPayload struct {
	Profile string `json:"profile"`
	// Backend echoes the request's backend selection; empty means the
	// profile decided. The fragment's data-backend attribute carries the
	// resolved value.
	Backend     string            `json:"backend,omitempty"`
	Locale      string            `json:"locale,omitempty"`
	HTML        string            `json:"html"`
	Stylesheets []string          `json:"stylesheets"`
	Scripts     []string          `json:"scripts"`
	Elements    map[string]string `json:"elements"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. Callers are expected to pass an Options value produced by NewOptions
// (or equivalent) so defaults/clamps are applied.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })

	generator := opts.Generator
	if generator == nil {
		generator = orchestrator.New()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		query := r.URL.Query()

		profile := strings.TrimSpace(query.Get(opts.ProfileParam))
		if profile == "" {
			profile = opts.DefaultProfile
		}
		if profile == "" {
			writeErrorEnvelope(w, http.StatusBadRequest, "profile parameter required")
			return
		}

		backend := clampBackend(strings.TrimSpace(query.Get(opts.BackendParam)), opts)
		if backend == "" {
			backend = opts.DefaultBackend
		}

		requestLocale := strings.TrimSpace(query.Get(opts.LocaleParam))
		if requestLocale == "" && opts.Catalog != nil {
			requestLocale = opts.Catalog.Negotiate(r.Header.Get("Accept-Language"))
		}

		fragment, err := generator.Generate(r.Context(), orchestrator.Request{
			Profile: profile,
			Backend: backend,
			Locale:  requestLocale,
		})
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, orchestrator.ErrUnknownProfile) {
				status = http.StatusNotFound
			}
			writeErrorEnvelope(w, status, err.Error())
			return
		}

		if strings.EqualFold(query.Get(opts.FormatParam), "html") {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			if r.Method == http.MethodHead {
				return
			}
			_, _ = w.Write(fragment)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(widgetResponse{Data: widgetPayload{
			Profile:     profile,
			Backend:     normalizedBackend(backend),
			Locale:      requestLocale,
			HTML:        string(fragment),
			Stylesheets: defaultStylesheets(),
			Scripts:     defaultScripts(),
			Elements:    elementIDs(),
		}})
	})
}

// normalizedBackend reports the canonical backend name for a non-empty
// request value; empty passes through so the payload can omit it.
func normalizedBackend(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return string(model.ParseBackend(raw))
}

func defaultStylesheets() []string {
	return []string{html.DefaultAssetBase + "/" + html.StylesheetName}
}

func defaultScripts() []string {
	return []string{html.DefaultAssetBase + "/" + html.RuntimeScriptName}
}

// elementIDs maps stable roles to the element identifiers client binders
// look up in rendered fragments.
func elementIDs() map[string]string {
	return map[string]string{
		"widget":  model.ElementCamera,
		"video":   model.ElementVideo,
		"canvas":  model.ElementCanvas,
		"flash":   model.ElementFlashObject,
		"retake":  model.ElementResetControl,
		"capture": model.ElementCaptureControl,
	}
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func writeErrorEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(errorResponse{Error: errorPayload{Status: status, Message: message}})
}
