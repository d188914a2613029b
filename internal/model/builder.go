package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-camgen/pkg/profile"
)

var (
	errProfileNameMissing = errors.New("model builder: profile name is required")
	errNilContext         = errors.New("model builder: context is required")
)

// UploadResolver resolves profile upload references that name an OpenAPI
// operation instead of a literal endpoint.
type UploadResolver interface {
	ResolveUpload(ctx context.Context, cfg profile.UploadConfig) (UploadTarget, error)
}

// Builder converts capture profiles into widget models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	opts.Resolver = options.Resolver
	return &Builder{opts: opts}
}

// Build transforms a capture profile into a WidgetModel for the requested
// backend. Profile settings layer over the widget's fixed contract: element
// identifiers and the control-bar shape never change, while sizes, labels,
// icons, and the upload target follow the profile.
func (b *Builder) Build(ctx context.Context, prof profile.Profile, backend Backend) (WidgetModel, error) {
	if ctx == nil {
		return WidgetModel{}, errNilContext
	}
	if strings.TrimSpace(prof.Name) == "" {
		return WidgetModel{}, errProfileNameMissing
	}
	if !backend.Known() {
		return WidgetModel{}, fmt.Errorf("model builder: unrecognized backend %q", string(backend))
	}

	widget := WidgetModel{
		Name:        prof.Name,
		Title:       prof.Title,
		Description: prof.Description,
		Backend:     backend,
		Classes:     append([]string(nil), prof.Classes...),
	}
	if widget.Title == "" {
		widget.Title = b.opts.Labeler(prof.Name)
	}

	widget.Video = buildVideoRegion(prof)
	canvas, err := buildCanvasRegion(prof)
	if err != nil {
		return WidgetModel{}, err
	}
	widget.Canvas = canvas
	widget.Flash = buildFlashRegion(prof)

	controls, err := buildControls(prof)
	if err != nil {
		return WidgetModel{}, err
	}
	widget.Controls = controls

	upload, err := b.resolveUpload(ctx, prof)
	if err != nil {
		return WidgetModel{}, err
	}
	widget.Upload = upload

	meta := widget.ensureMetadata()
	if prof.Title != "" {
		meta["title"] = prof.Title
	}
	if prof.Description != "" {
		meta["description"] = prof.Description
	}
	mergeMetadata(meta, prof.Metadata)
	if prof.EnabledWhen != "" {
		meta["visibilityRule"] = prof.EnabledWhen
	}
	widget.UIHints = mergeUIHints(widget.UIHints, filterUIHints(prof.Metadata))
	if prof.Theme != nil {
		meta["theme"] = prof.Theme.Name
		if prof.Theme.Variant != "" {
			meta["theme.variant"] = prof.Theme.Variant
		}
	}

	widget.normalize()
	return widget, nil
}

func buildVideoRegion(prof profile.Profile) VideoRegion {
	region := VideoRegion{Hint: TextPermissionHint}
	if prof.Video != nil {
		region.Width = prof.Video.Width
		region.Height = prof.Video.Height
	}
	if hint := strings.TrimSpace(prof.Labels["hint"]); hint != "" {
		region.Hint = hint
	}
	return region
}

func buildCanvasRegion(prof profile.Profile) (CanvasRegion, error) {
	region := CanvasRegion{Width: CanvasWidth, Height: CanvasHeight}
	if prof.Canvas == nil {
		return region, nil
	}
	if prof.Canvas.Width <= 0 || prof.Canvas.Height <= 0 {
		return CanvasRegion{}, fmt.Errorf("model builder: canvas dimensions must be positive (got %dx%d)", prof.Canvas.Width, prof.Canvas.Height)
	}
	region.Width = prof.Canvas.Width
	region.Height = prof.Canvas.Height
	return region, nil
}

func buildFlashRegion(prof profile.Profile) FlashRegion {
	region := FlashRegion{
		Resource:     DefaultFlashResource,
		Width:        FlashWidth,
		Height:       FlashHeight,
		Quality:      DefaultFlashQuality,
		ScriptAccess: DefaultScriptAccess,
	}
	if prof.Flash == nil {
		return region
	}
	if resource := strings.TrimSpace(prof.Flash.Resource); resource != "" {
		region.Resource = resource
	}
	if prof.Flash.Width > 0 {
		region.Width = prof.Flash.Width
	}
	if prof.Flash.Height > 0 {
		region.Height = prof.Flash.Height
	}
	if quality := strings.TrimSpace(prof.Flash.Quality); quality != "" {
		region.Quality = quality
	}
	if access := strings.TrimSpace(prof.Flash.ScriptAccess); access != "" {
		region.ScriptAccess = access
	}
	return region
}

func buildControls(prof profile.Profile) ([]Control, error) {
	controls := DefaultControls()
	index := make(map[ControlKind]int, len(controls))
	for i, control := range controls {
		index[control.Kind] = i
	}

	if label := strings.TrimSpace(prof.Labels[string(ControlRetake)]); label != "" {
		controls[index[ControlRetake]].Label = label
	}
	if label := strings.TrimSpace(prof.Labels[string(ControlCapture)]); label != "" {
		controls[index[ControlCapture]].Label = label
	}

	seen := make(map[ControlKind]struct{}, len(prof.Controls))
	for _, cfg := range prof.Controls {
		kind := ControlKind(strings.ToLower(strings.TrimSpace(cfg.Kind)))
		i, ok := index[kind]
		if !ok {
			return nil, fmt.Errorf("model builder: unknown control kind %q", cfg.Kind)
		}
		if _, dup := seen[kind]; dup {
			return nil, fmt.Errorf("model builder: control kind %q defined twice", kind)
		}
		seen[kind] = struct{}{}
		applyControlConfig(&controls[i], cfg)
	}

	return controls, nil
}

func applyControlConfig(control *Control, cfg profile.ControlConfig) {
	if cfg.Label != "" {
		control.Label = cfg.Label
	}
	if icon := profile.SanitizeIcon(cfg.Icon); icon != "" {
		control.Icon = icon
	}
	if len(cfg.Classes) > 0 {
		control.Classes = append([]string(nil), cfg.Classes...)
	}
	if cfg.Component != "" {
		control.Component = cfg.Component
	}
	if cfg.Hidden != nil {
		control.Hidden = *cfg.Hidden
	}
	if len(cfg.Metadata) > 0 {
		mergeMetadata(control.ensureMetadata(), cfg.Metadata)
		control.UIHints = mergeUIHints(control.UIHints, filterUIHints(cfg.Metadata))
	}
	if cfg.EnabledWhen != "" {
		control.ensureMetadata()["visibilityRule"] = cfg.EnabledWhen
	}
}

func (b *Builder) resolveUpload(ctx context.Context, prof profile.Profile) (*UploadTarget, error) {
	cfg := prof.Upload
	if cfg == nil {
		return nil, nil
	}

	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		target := UploadTarget{
			Endpoint: endpoint,
			Method:   strings.ToUpper(strings.TrimSpace(cfg.Method)),
			Field:    strings.TrimSpace(cfg.Field),
		}
		if target.Method == "" {
			target.Method = "POST"
		}
		if target.Field == "" {
			target.Field = "photo"
		}
		return &target, nil
	}

	operation := strings.TrimSpace(cfg.Operation)
	if operation == "" {
		return nil, nil
	}
	if b.opts.Resolver == nil {
		return nil, fmt.Errorf("model builder: upload operation %q needs a resolver", operation)
	}
	target, err := b.opts.Resolver.ResolveUpload(ctx, *cfg)
	if err != nil {
		return nil, fmt.Errorf("model builder: resolve upload %q: %w", operation, err)
	}
	if field := strings.TrimSpace(cfg.Field); field != "" {
		target.Field = field
	}
	if target.Field == "" {
		target.Field = "photo"
	}
	if target.Method != "" {
		target.Method = strings.ToUpper(target.Method)
	}
	return &target, nil
}
