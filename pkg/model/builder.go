package model

import (
	"context"

	"github.com/goliatone/go-camgen/internal/model"
	"github.com/goliatone/go-camgen/pkg/profile"
)

// Builder converts capture profiles into widget models.
type Builder interface {
	Build(ctx context.Context, prof profile.Profile, backend Backend) (WidgetModel, error)
}

// UploadResolver re-exports the internal resolver seam so callers can plug
// OpenAPI-backed upload resolution into the builder.
type UploadResolver = model.UploadResolver

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler  func(string) string
	resolver UploadResolver
}

// WithLabeler overrides the default title generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithUploadResolver wires the resolver used for profile upload references
// that name an OpenAPI operation.
func WithUploadResolver(resolver UploadResolver) BuilderOption {
	return func(opts *builderOptions) {
		opts.resolver = resolver
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{Resolver: cfg.resolver}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}

	return model.New(internalOpts)
}
