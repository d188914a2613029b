package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-camgen/pkg/locale"
	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/profile"
	"github.com/goliatone/go-camgen/pkg/render"
	"github.com/goliatone/go-camgen/pkg/renderers/html"
	"github.com/goliatone/go-camgen/pkg/visibility"
	visibilityexpr "github.com/goliatone/go-camgen/pkg/visibility/expr"
	"github.com/goliatone/go-camgen/pkg/widgets"
)

const defaultRendererName = "html"

// ErrUnknownProfile reports a Generate request naming a profile the store
// does not carry.
var ErrUnknownProfile = errors.New("orchestrator: unknown profile")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithProfiles injects a pre-built profile store. Profiles loaded through
// WithProfilesFS are merged on top.
func WithProfiles(store *profile.Store) Option {
	return func(o *Orchestrator) {
		o.profiles = store
		o.profilesSpecified = true
	}
}

// WithProfilesFS supplies a filesystem holding capture profile documents.
// Pass nil to disable the embedded defaults.
func WithProfilesFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.profilesFS = fsys
		o.profilesSpecified = true
	}
}

// WithBuilder injects a custom widget model builder.
func WithBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithUploadResolver wires OpenAPI-backed upload resolution into the default
// builder. Ignored when WithBuilder supplies a builder directly.
func WithUploadResolver(resolver model.UploadResolver) Option {
	return func(o *Orchestrator) {
		o.uploadResolver = resolver
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithRenderer registers an additional renderer alongside the defaults.
func WithRenderer(renderer render.Renderer) Option {
	return func(o *Orchestrator) {
		if renderer == nil {
			return
		}
		o.extraRenderers = append(o.extraRenderers, renderer)
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that can mutate widget models
// after building but before decorators run.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against the widget model
// before rendering, after the component registry decorator.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithComponentRegistry replaces the component-selection registry applied to
// every widget. Pass nil to disable component decoration.
func WithComponentRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.componentRegistry = registry
		o.componentSpecified = true
	}
}

// WithTranslator injects a translator used when a request's RenderOptions
// carry none. Overrides the locale catalog.
func WithTranslator(translator render.Translator) Option {
	return func(o *Orchestrator) {
		o.translator = translator
	}
}

// WithLocales supplies the translation catalog backing the default
// translator. Pass nil to disable the embedded catalogs.
func WithLocales(catalog *locale.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
		o.catalogSpecified = true
	}
}

// WithVisibilityEvaluator replaces the rule evaluator gating widgets and
// controls. Pass nil to disable visibility filtering.
func WithVisibilityEvaluator(evaluator visibility.Evaluator) Option {
	return func(o *Orchestrator) {
		o.visibility = evaluator
		o.visibilitySpecified = true
	}
}

// Orchestrator coordinates the full pipeline from capture profile to rendered
// widget. It applies sensible defaults (embedded profiles and locales, html
// renderer, built-in rule evaluator) while remaining open to dependency
// injection for advanced callers.
type Orchestrator struct {
	profiles            *profile.Store
	profilesFS          fs.FS
	profilesSpecified   bool
	builder             model.Builder
	uploadResolver      model.UploadResolver
	registry            *render.Registry
	extraRenderers      []render.Renderer
	defaultRenderer     string
	transformer         Transformer
	decorators          []model.Decorator
	componentRegistry   *widgets.Registry
	componentSpecified  bool
	translator          render.Translator
	catalog             *locale.Catalog
	catalogSpecified    bool
	visibility          visibility.Evaluator
	visibilitySpecified bool
	themeSelector       ThemeSelector
	themeName           string
	themeVariant        string
	themeFallbacks      map[string]string
	uploadOverrides     map[string]model.UploadTarget
	initialiseErr       error
	defaultsApplied     bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a capture widget.
type Request struct {
	// Profile names the capture profile to render.
	Profile string

	// Backend overrides the profile's default backend ("html5", "flash",
	// "none"). Unrecognized names normalize to none.
	Backend string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// Locale selects the translation target. Empty means the source strings.
	Locale string

	// ThemeName / ThemeVariant select a theme for this request, overriding
	// the profile's preference and the configured provider defaults.
	ThemeName    string
	ThemeVariant string

	// Values exposes request-scoped signals (feature flags, attempt counts,
	// capture-session state) to visibility rules and component config.
	Values map[string]any

	// RenderOptions carries per-request instructions such as notices, hidden
	// fields, or a pre-resolved theme. When omitted, renderers receive the
	// orchestrator-derived options.
	RenderOptions render.RenderOptions
}

// Generate executes the profile → builder → decorators → renderer sequence
// and returns the rendered bytes (an HTML fragment for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	name := strings.TrimSpace(req.Profile)
	if name == "" {
		return nil, errors.New("orchestrator: profile name is required")
	}

	prof, ok := o.profiles.Profile(name)
	if !ok {
		return nil, fmt.Errorf("orchestrator: profile %q not found: %w", name, ErrUnknownProfile)
	}

	backend := o.resolveBackend(req, prof)

	widget, err := o.builder.Build(ctx, prof, backend)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build widget model: %w", err)
	}

	o.applyUploadOverrides(name, &widget)
	if err := o.applyTransformer(ctx, &widget); err != nil {
		return nil, err
	}
	if err := o.applyVisibility(&widget, req); err != nil {
		return nil, err
	}
	if err := o.applyDecorators(&widget); err != nil {
		return nil, err
	}

	opts, err := o.renderOptions(req, prof)
	if err != nil {
		return nil, err
	}

	render.LocalizeWidgetModel(&widget, opts)

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, widget, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return output, nil
}

// Profiles exposes the resolved profile store for callers that enumerate or
// validate profiles (CLIs, HTTP components).
func (o *Orchestrator) Profiles() *profile.Store {
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.profiles
}

// Locales exposes the configured translation catalog. Nil when translations
// were disabled or replaced by a bare translator.
func (o *Orchestrator) Locales() *locale.Catalog {
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.catalog
}

// ComponentRegistry exposes the component-selection registry so callers can
// add matchers at runtime. Nil when component decoration was disabled.
func (o *Orchestrator) ComponentRegistry() *widgets.Registry {
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.componentRegistry
}

// RegisterComponent adds a component matcher to the active registry.
func (o *Orchestrator) RegisterComponent(name string, priority int, matcher widgets.Matcher) {
	registry := o.ComponentRegistry()
	if registry == nil {
		return
	}
	registry.Register(name, priority, matcher)
}

func (o *Orchestrator) resolveBackend(req Request, prof profile.Profile) model.Backend {
	if raw := strings.TrimSpace(req.Backend); raw != "" {
		return model.ParseBackend(raw)
	}
	return model.ParseBackend(prof.Backend)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderer registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(widget *model.WidgetModel) error {
	if widget == nil {
		return nil
	}
	if o.componentRegistry != nil {
		if err := o.componentRegistry.Decorate(widget); err != nil {
			return fmt.Errorf("orchestrator: decorate widget: %w", err)
		}
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(widget); err != nil {
			return fmt.Errorf("orchestrator: decorate widget: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, widget *model.WidgetModel) error {
	if o.transformer == nil || widget == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, widget); err != nil {
		return fmt.Errorf("orchestrator: transform widget: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyVisibility(widget *model.WidgetModel, req Request) error {
	if o.visibility == nil || widget == nil {
		return nil
	}
	return applyVisibility(widget, o.visibility, visibilityContext(req))
}

// renderOptions derives the per-request options: request values, negotiated
// translator, and resolved theme layered onto whatever the caller supplied.
func (o *Orchestrator) renderOptions(req Request, prof profile.Profile) (render.RenderOptions, error) {
	opts := req.RenderOptions

	if opts.Locale == "" {
		opts.Locale = strings.TrimSpace(req.Locale)
	}
	if opts.Values == nil && len(req.Values) > 0 {
		opts.Values = req.Values
	}
	if opts.Translator == nil {
		switch {
		case o.translator != nil:
			opts.Translator = o.translator
		case o.catalog != nil && !o.catalog.Empty():
			opts.Translator = o.catalog
		}
	}

	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req, prof)
		if err != nil {
			return render.RenderOptions{}, err
		}
		opts.Theme = cfg
	}

	return opts, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	o.loadProfiles()

	if o.builder == nil {
		var builderOptions []model.BuilderOption
		if o.uploadResolver != nil {
			builderOptions = append(builderOptions, model.WithUploadResolver(o.uploadResolver))
		}
		o.builder = model.NewBuilder(builderOptions...)
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = appendInitialiseError(o.initialiseErr, fmt.Errorf("orchestrator: default renderer: %w", err))
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	for _, renderer := range o.extraRenderers {
		if err := o.registry.Register(renderer); err != nil {
			o.initialiseErr = appendInitialiseError(o.initialiseErr, err)
		}
	}
	o.extraRenderers = nil

	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if !o.catalogSpecified && o.catalog == nil && o.translator == nil {
		o.catalog = locale.Default()
	}

	if !o.componentSpecified && o.componentRegistry == nil {
		o.componentRegistry = widgets.NewRegistry()
	}

	if !o.visibilitySpecified && o.visibility == nil {
		o.visibility = visibilityexpr.New()
	}

	o.defaultsApplied = true
}

// loadProfiles resolves the profile store from the configured sources. The
// embedded profiles are the default; an explicit store and a profile
// filesystem layer in that order.
func (o *Orchestrator) loadProfiles() {
	store := o.profiles
	if store == nil {
		store = &profile.Store{}
	}

	if !o.profilesSpecified {
		embedded, err := profile.LoadFS(profile.EmbeddedFS())
		if err != nil {
			o.initialiseErr = appendInitialiseError(o.initialiseErr, fmt.Errorf("orchestrator: load embedded profiles: %w", err))
		} else {
			store.Merge(embedded)
		}
	}

	if o.profilesFS != nil {
		loaded, err := profile.LoadFS(o.profilesFS)
		if err != nil {
			o.initialiseErr = appendInitialiseError(o.initialiseErr, fmt.Errorf("orchestrator: load profiles: %w", err))
		} else {
			store.Merge(loaded)
		}
	}

	o.profiles = store
}

func appendInitialiseError(existing, next error) error {
	if existing == nil {
		return next
	}
	return fmt.Errorf("%v; %w", existing, next)
}
