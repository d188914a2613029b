package island

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/render"
	rendertemplate "github.com/goliatone/go-camgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-camgen/pkg/render/template/gotemplate"
)

const (
	templateName = "templates/page.tpl"

	defaultMountPrefix = "camgen-island"

	themeAssetRuntime    = "island.runtime"
	themeAssetStylesheet = "island.stylesheet"
)

// Embedded asset names, relative to AssetsFS.
const (
	RuntimeScriptName = "camgen-island.js"
	StylesheetName    = "camgen-island.css"
)

var defaultAssetPaths = assetPaths{
	runtimeScript: "assets/" + RuntimeScriptName,
	stylesheet:    "assets/" + StylesheetName,
}

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetsFS         fs.FS
	assetPaths       assetPaths
	assetURLPrefix   string
}

type assetPaths struct {
	runtimeScript string
	stylesheet    string
}

// AssetPaths describes the URLs emitted into the rendered fragment. Custom
// bundles should set all fields even when overriding a single path.
type AssetPaths struct {
	RuntimeScript string
	Stylesheet    string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
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

// WithAssetsFS overrides the embedded asset bundle (script, stylesheet).
func WithAssetsFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.assetsFS = files
		}
	}
}

// WithAssetsDir loads assets from a directory on disk.
func WithAssetsDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.assetsFS = os.DirFS(path)
	}
}

// WithAssetPaths customises the relative paths injected into the fragment.
func WithAssetPaths(paths AssetPaths) Option {
	return func(cfg *config) {
		cfg.assetPaths = normalizeAssetPaths(paths)
	}
}

// WithAssetURLPrefix prefixes emitted asset paths (e.g. "/static/camgen").
func WithAssetURLPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetURLPrefix = prefix
	}
}

// Renderer emits a client-island fragment: a mount-point div plus a JSON
// props payload carrying the widget contract (element identifiers, backend,
// translated strings, upload target, theme context) for the bundled runtime
// to hydrate. The server ships data, the client builds the capture DOM.
type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	assetsFS       fs.FS
	assetPaths     assetPaths
	assetURLPrefix string
}

// New constructs an island renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		assetsFS:   AssetsFS(),
		assetPaths: defaultAssetPaths,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if err := ensureTemplate(cfg.templateFS, templateName); err != nil {
		return nil, err
	}
	if cfg.assetsFS == nil {
		cfg.assetsFS = AssetsFS()
	}

	if err := ensureAssetPaths(cfg.assetPaths); err != nil {
		return nil, err
	}
	if err := ensureAssets(cfg.assetsFS, cfg.assetPaths); err != nil {
		return nil, err
	}

	templateRenderer := cfg.templateRenderer
	if templateRenderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("island renderer: configure template renderer: %w", err)
		}
		templateRenderer = engine
	}

	return &Renderer{
		templates:      templateRenderer,
		assetsFS:       cfg.assetsFS,
		assetPaths:     cfg.assetPaths,
		assetURLPrefix: cfg.assetURLPrefix,
	}, nil
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return "island"
}

// ContentType returns the MIME type for generated fragments.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the mount-point fragment. Props are marshaled with
// HTML-safe escaping so the payload can sit inside an inline script element.
func (r *Renderer) Render(_ context.Context, widget model.WidgetModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("island renderer: template renderer is nil")
	}
	if !widget.Backend.Known() {
		return nil, fmt.Errorf("island renderer: unsupported backend %q", widget.Backend)
	}

	props := buildWidgetProps(widget, options)
	payload, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("island renderer: marshal widget props: %w", err)
	}

	themeCtx := buildThemeContext(options.Theme)
	urls := r.assetURLs(options)

	data := map[string]any{
		"widget":      widget,
		"widget_json": string(payload),
		"mount_id":    mountID(widget),
		"assets": map[string]string{
			"runtimeScript": urls.RuntimeScript,
			"stylesheet":    urls.Stylesheet,
		},
		"theme": themeCtx,
	}

	rendered, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("island renderer: render template: %w", err)
	}

	return []byte(rendered), nil
}

// mountID derives the stable mount element identifier for a widget.
func mountID(widget model.WidgetModel) string {
	name := strings.TrimSpace(widget.Name)
	if name == "" {
		return defaultMountPrefix
	}
	return defaultMountPrefix + "-" + name
}

// widgetProps is the hydration contract serialized into the fragment. Only
// the active backend's capture regions are included so the client component
// cannot render both surfaces at once.
type widgetProps struct {
	Name        string              `json:"name"`
	Backend     string              `json:"backend"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Elements    propsElements       `json:"elements"`
	Video       *model.VideoRegion  `json:"video,omitempty"`
	Canvas      *model.CanvasRegion `json:"canvas,omitempty"`
	Flash       *model.FlashRegion  `json:"flash,omitempty"`
	Controls    []propsControl      `json:"controls"`
	Upload      *model.UploadTarget `json:"upload,omitempty"`
	Text        propsText           `json:"text"`
	Theme       *propsTheme         `json:"theme,omitempty"`
	Classes     []string            `json:"classes,omitempty"`
	Metadata    orderedMap          `json:"metadata,omitempty"`
	UIHints     orderedMap          `json:"uiHints,omitempty"`
}

type propsElements struct {
	Widget  string `json:"widget"`
	Video   string `json:"video"`
	Canvas  string `json:"canvas"`
	Flash   string `json:"flash"`
	Retake  string `json:"retake"`
	Capture string `json:"capture"`
}

type propsControl struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Label     string     `json:"label"`
	Icon      string     `json:"icon,omitempty"`
	Hidden    bool       `json:"hidden"`
	Component string     `json:"component,omitempty"`
	Classes   []string   `json:"classes,omitempty"`
	Metadata  orderedMap `json:"metadata,omitempty"`
	UIHints   orderedMap `json:"uiHints,omitempty"`
}

type propsText struct {
	LiveView       string `json:"liveView"`
	PermissionHint string `json:"permissionHint"`
}

type propsTheme struct {
	Name    string            `json:"name"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty"`
	CSSVars map[string]string `json:"cssVars,omitempty"`
}

func buildWidgetProps(widget model.WidgetModel, options render.RenderOptions) widgetProps {
	translate := func(key string) string {
		return render.Translate(options, key, "")
	}

	hint := strings.TrimSpace(widget.Video.Hint)
	if hint == "" {
		hint = model.TextPermissionHint
	}

	props := widgetProps{
		Name:        widget.Name,
		Backend:     string(widget.Backend),
		Title:       translate(strings.TrimSpace(widget.Title)),
		Description: translate(strings.TrimSpace(widget.Description)),
		Elements: propsElements{
			Widget:  model.ElementCamera,
			Video:   model.ElementVideo,
			Canvas:  model.ElementCanvas,
			Flash:   model.ElementFlashObject,
			Retake:  model.ElementResetControl,
			Capture: model.ElementCaptureControl,
		},
		Controls: make([]propsControl, 0, len(widget.Controls)),
		Upload:   widget.Upload,
		Text: propsText{
			LiveView:       translate(model.TextLiveView),
			PermissionHint: translate(hint),
		},
		Classes:  widget.Classes,
		Metadata: newOrderedMap(widget.Metadata),
		UIHints:  newOrderedMap(widget.UIHints),
	}

	switch widget.Backend {
	case model.BackendHTML5:
		video := widget.Video
		video.Hint = props.Text.PermissionHint
		canvas := widget.Canvas
		props.Video = &video
		props.Canvas = &canvas
	case model.BackendFlash:
		flash := widget.Flash
		props.Flash = &flash
	}

	for _, control := range widget.Controls {
		props.Controls = append(props.Controls, propsControl{
			ID:        control.ID,
			Kind:      string(control.Kind),
			Label:     translate(control.Label),
			Icon:      control.Icon,
			Hidden:    control.Hidden,
			Component: control.Component,
			Classes:   control.Classes,
			Metadata:  newOrderedMap(control.Metadata),
			UIHints:   newOrderedMap(control.UIHints),
		})
	}

	if cfg := options.Theme; cfg != nil {
		props.Theme = &propsTheme{
			Name:    cfg.Theme,
			Variant: cfg.Variant,
			Tokens:  copyStringMap(cfg.Tokens),
			CSSVars: copyStringMap(cfg.CSSVars),
		}
	}

	return props
}

// rendererTheme is the template-facing theme context.
type rendererTheme struct {
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	ctx := rendererTheme{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  copyStringMap(cfg.Tokens),
		CSSVars: copyStringMap(cfg.CSSVars),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	return ctx
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

// cssVarsStyle renders theme custom properties as a :root block, sorted by
// property name so renders stay byte-identical.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root { ")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	b.WriteString("}")
	return b.String()
}

// orderedMap marshals string maps with deterministic key order: admin-scoped
// keys first, then the component-selection hints, then lexicographic.
type orderedMap map[string]string

func newOrderedMap(values map[string]string) orderedMap {
	if len(values) == 0 {
		return nil
	}
	result := make(map[string]string, len(values))
	for key, value := range values {
		result[key] = value
	}
	return orderedMap(result)
}

func (m orderedMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return metadataLess(keys[i], keys[j])
	})

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyPayload, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valuePayload, err := json.Marshal(m[key])
		if err != nil {
			return nil, err
		}
		buf.Write(keyPayload)
		buf.WriteByte(':')
		buf.Write(valuePayload)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var metadataSpecialOrder = map[string]int{
	"widget":    0,
	"hideLabel": 1,
	"label":     2,
}

func metadataLess(a, b string) bool {
	aAdmin := strings.HasPrefix(a, "admin.")
	bAdmin := strings.HasPrefix(b, "admin.")
	if aAdmin != bAdmin {
		return aAdmin
	}

	aRank, aSpecial := metadataSpecialOrder[a]
	bRank, bSpecial := metadataSpecialOrder[b]
	if aSpecial && bSpecial && aRank != bRank {
		return aRank < bRank
	}
	return a < b
}

func ensureAssets(store fs.FS, paths assetPaths) error {
	required := []struct {
		label string
		path  string
	}{
		{label: "runtime script", path: paths.runtimeScript},
		{label: "stylesheet", path: paths.stylesheet},
	}
	for _, item := range required {
		if _, err := fs.Stat(store, item.path); err != nil {
			return fmt.Errorf("island renderer: %s %q not found: %w", item.label, item.path, err)
		}
	}
	return nil
}

func ensureTemplate(store fs.FS, name string) error {
	if store == nil {
		return fmt.Errorf("island renderer: template file system is nil")
	}
	if name == "" {
		return fmt.Errorf("island renderer: template name required")
	}
	if _, err := fs.Stat(store, name); err != nil {
		return fmt.Errorf("island renderer: template %q not found: %w", name, err)
	}
	return nil
}

func ensureAssetPaths(paths assetPaths) error {
	if paths.runtimeScript == "" {
		return fmt.Errorf("island renderer: runtime script path required")
	}
	if paths.stylesheet == "" {
		return fmt.Errorf("island renderer: stylesheet path required")
	}
	return nil
}

func normalizeAssetPaths(paths AssetPaths) assetPaths {
	result := defaultAssetPaths
	if paths.RuntimeScript != "" {
		result.runtimeScript = paths.RuntimeScript
	}
	if paths.Stylesheet != "" {
		result.stylesheet = paths.Stylesheet
	}
	return result
}

type assetURLs struct {
	RuntimeScript string
	Stylesheet    string
}

// assetURLs resolves asset locations: theme asset keys win, then the
// configured prefix is applied to the bundled paths.
func (r *Renderer) assetURLs(options render.RenderOptions) assetURLs {
	script := r.assetPaths.runtimeScript
	css := r.assetPaths.stylesheet

	if cfg := options.Theme; cfg != nil && cfg.AssetURL != nil {
		if resolved := cfg.AssetURL(themeAssetRuntime); strings.TrimSpace(resolved) != "" {
			script = resolved
		}
		if resolved := cfg.AssetURL(themeAssetStylesheet); strings.TrimSpace(resolved) != "" {
			css = resolved
		}
	}

	return assetURLs{
		RuntimeScript: expandAssetURL(r.assetURLPrefix, script),
		Stylesheet:    expandAssetURL(r.assetURLPrefix, css),
	}
}

func expandAssetURL(prefix, name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "http://") ||
		strings.HasPrefix(name, "https://") ||
		strings.HasPrefix(name, "//") ||
		strings.HasPrefix(name, "/") {
		return name
	}
	if prefix == "" {
		return name
	}
	p := strings.TrimRight(prefix, "/")
	n := strings.TrimLeft(name, "/")
	if p == "" {
		return n
	}
	return p + "/" + n
}
