package html

import (
	"context"
	"fmt"
	"html"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/render"
	rendertemplate "github.com/goliatone/go-camgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-camgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-camgen/pkg/renderers/html/components"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	overrides        map[string]string
	translator       render.Translator
	assetBase        string
	defaultStyles    bool
	stylesheets      []string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponents replaces the component registry used to render widget
// slots. Callers usually start from components.NewDefaultRegistry().Clone().
func WithComponents(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithComponentOverrides remaps slots or controls onto registered component
// names. Keys match a control ID, a control kind, or a slot name such as
// components.NameViewfinder.
func WithComponentOverrides(overrides map[string]string) Option {
	return func(cfg *config) {
		cfg.overrides = overrides
	}
}

// WithTranslator registers a translator on the built-in template engine so
// theme partials can call translate(current_locale, ...) themselves. It does
// not affect engines injected via WithTemplateRenderer.
func WithTranslator(translator render.Translator) Option {
	return func(cfg *config) {
		cfg.translator = translator
	}
}

// WithAssetBase sets the URL prefix under which the embedded stylesheet and
// capture runtime are served when no theme supplies asset locations.
func WithAssetBase(base string) Option {
	return func(cfg *config) {
		cfg.assetBase = base
	}
}

// WithDefaultStyles inlines the embedded stylesheet in a <style> block ahead
// of the widget markup. Fragments stay standalone at the cost of repeating
// the CSS per render.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.defaultStyles = true
	}
}

// WithStylesheet prepends a <link rel="stylesheet"> tag referencing href to
// every render. May be repeated.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// Renderer emits server-side widget markup: the capture region for the
// widget's backend plus the shared control bar, wrapped in addressable
// chrome. The fragment carries no script or stylesheet tags; callers fetch
// those through Assets and serve them alongside.
type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	registry      *components.Registry
	overrides     map[string]string
	assetBase     string
	defaultStyles bool
	stylesheets   []string
}

// New constructs the html renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOptions := []gotemplate.Option{
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		}
		if cfg.translator != nil {
			engineOptions = append(engineOptions,
				gotemplate.WithTemplateFunc(render.TemplateI18nFuncs(cfg.translator, render.TemplateI18nConfig{})))
		}
		engine, err := gotemplate.New(engineOptions...)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:     renderer,
		registry:      cfg.registry,
		overrides:     cloneStringMap(cfg.overrides),
		assetBase:     cfg.assetBase,
		defaultStyles: cfg.defaultStyles,
		stylesheets:   slices.Clone(cfg.stylesheets),
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the widget fragment. The backend must be one of the
// canonical variants; anything else is an error rather than silently empty
// markup.
func (r *Renderer) Render(_ context.Context, widget model.WidgetModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if !widget.Backend.Known() {
		return nil, fmt.Errorf("html renderer: unsupported backend %q", widget.Backend)
	}

	notices := render.MapNoticePayload(widget, options.Notices)
	hidden := render.SortedHiddenFields(render.MergeHiddenFields(nil, options.Hidden...))

	cr := newComponentRenderer(r.templates, r.registry, r.overrides, options)

	region, err := cr.renderRegion(widget)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	uploadFields, err := cr.renderUploadFields(widget, hidden)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	var controlBar string
	if len(widget.Controls) > 0 {
		controlBar, err = cr.renderControlBar(widget, notices)
		if err != nil {
			return nil, fmt.Errorf("html renderer: %w", err)
		}
	}

	markup := buildWidgetMarkup(widget, options, notices, widgetParts{
		region:       region,
		uploadFields: uploadFields,
		controlBar:   controlBar,
		translate: func(key string) string {
			return render.Translate(options, key, "")
		},
	})
	if prefix := r.stylePrefix(); prefix != "" {
		markup = prefix + markup
	}
	return []byte(markup), nil
}

func (r *Renderer) stylePrefix() string {
	if !r.defaultStyles && len(r.stylesheets) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, href := range r.stylesheets {
		builder.WriteString(`<link rel="stylesheet" href="`)
		builder.WriteString(html.EscapeString(href))
		builder.WriteString("\">\n")
	}
	if r.defaultStyles {
		if css := defaultStylesheet(); css != "" {
			builder.WriteString("<style>\n")
			builder.WriteString(css)
			if !strings.HasSuffix(css, "\n") {
				builder.WriteByte('\n')
			}
			builder.WriteString("</style>\n")
		}
	}
	return builder.String()
}

// Assets reports the stylesheets and scripts the fragment for widget depends
// on, renderer bundle first. Theme asset locations win over the configured
// asset base.
func (r *Renderer) Assets(widget model.WidgetModel, options render.RenderOptions) (stylesheets []string, scripts []components.Script) {
	names := r.componentNames(widget, options)

	registry := r.registry
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	componentStyles, componentScripts := registry.Assets(names)

	stylesheets = append(stylesheets, r.assetURL(options, themeAssetStylesheet, StylesheetName))
	stylesheets = append(stylesheets, componentStyles...)

	scripts = append(scripts, components.Script{
		Src:   r.assetURL(options, themeAssetRuntime, RuntimeScriptName),
		Defer: true,
	})
	scripts = append(scripts, componentScripts...)
	return stylesheets, scripts
}

// componentNames resolves which components a render of widget would execute,
// mirroring the dispatch in Render without producing markup.
func (r *Renderer) componentNames(widget model.WidgetModel, options render.RenderOptions) []string {
	resolve := func(primary, secondary, fallback string) string {
		if value := r.overrides[primary]; value != "" {
			return value
		}
		if secondary != "" {
			if value := r.overrides[secondary]; value != "" {
				return value
			}
		}
		return fallback
	}

	var names []string
	switch widget.Backend {
	case model.BackendHTML5:
		names = append(names, resolve(components.NameViewfinder, "", components.NameViewfinder))
	case model.BackendFlash:
		names = append(names, resolve(components.NamePluginEmbed, "", components.NamePluginEmbed))
	}

	if len(options.Hidden) > 0 {
		names = append(names, resolve(components.NameUploadFields, "", components.NameUploadFields))
	}

	if len(widget.Controls) > 0 {
		names = append(names, resolve(components.NameControlBar, "", components.NameControlBar))
		for _, control := range widget.Controls {
			fallback := control.Component
			if fallback == "" {
				fallback = components.NameControl
			}
			names = append(names, resolve(control.ID, string(control.Kind), fallback))
		}
	}

	slices.Sort(names)
	return slices.Compact(names)
}

const (
	themeAssetStylesheet = "html.stylesheet"
	themeAssetRuntime    = "html.runtime"
)

// assetURL resolves a renderer asset location: theme asset key first, then
// the configured asset base, then the default serving prefix.
func (r *Renderer) assetURL(options render.RenderOptions, themeKey, fileName string) string {
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if resolved := options.Theme.AssetURL(themeKey); resolved != "" {
			return resolved
		}
	}
	base := options.AssetBase
	if base == "" {
		base = r.assetBase
	}
	if base == "" {
		base = DefaultAssetBase
	}
	return joinAssetPath(base, fileName)
}
