package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	pkgmodel "github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/profile"
)

// DefaultUploadField names the multipart field the captured frame is posted
// under when neither the profile nor the OpenAPI document picks one.
const DefaultUploadField = "photo"

// Resolver turns profile upload references (document source + operationId)
// into concrete upload targets. Documents are loaded and parsed once per
// source and the operation maps cached for the resolver's lifetime, so a
// store of profiles sharing one document costs a single parse.
type Resolver struct {
	loader        Loader
	parser        Parser
	defaultSource Source

	mu    sync.Mutex
	cache map[string]map[string]Operation
}

// Compile-time check that the resolver satisfies the builder seam.
var _ pkgmodel.UploadResolver = (*Resolver)(nil)

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithDefaultSource sets the document consulted when a profile's upload block
// names an operation without naming a source.
func WithDefaultSource(src Source) ResolverOption {
	return func(r *Resolver) {
		r.defaultSource = src
	}
}

// NewResolver wires a loader and parser into an upload resolver.
func NewResolver(loader Loader, parser Parser, options ...ResolverOption) (*Resolver, error) {
	if loader == nil {
		return nil, errors.New("openapi: resolver requires a loader")
	}
	if parser == nil {
		return nil, errors.New("openapi: resolver requires a parser")
	}
	r := &Resolver{
		loader: loader,
		parser: parser,
		cache:  make(map[string]map[string]Operation),
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// MustNewResolver panics when construction fails. Useful for wiring done at
// program start.
func MustNewResolver(loader Loader, parser Parser, options ...ResolverOption) *Resolver {
	r, err := NewResolver(loader, parser, options...)
	if err != nil {
		panic(err)
	}
	return r
}

// ResolveUpload maps an upload configuration onto the endpoint its operation
// describes. The profile's explicit field name wins over the document's; when
// both are silent the field falls back to DefaultUploadField.
func (r *Resolver) ResolveUpload(ctx context.Context, cfg profile.UploadConfig) (pkgmodel.UploadTarget, error) {
	operation := strings.TrimSpace(cfg.Operation)
	if operation == "" {
		return pkgmodel.UploadTarget{}, errors.New("openapi: upload config names no operation")
	}

	src, err := r.sourceFor(cfg)
	if err != nil {
		return pkgmodel.UploadTarget{}, err
	}

	op, err := r.Operation(ctx, src, operation)
	if err != nil {
		return pkgmodel.UploadTarget{}, err
	}

	target := pkgmodel.UploadTarget{
		Endpoint: op.Path,
		Method:   op.Method,
		Field:    op.UploadField,
	}
	if field := strings.TrimSpace(cfg.Field); field != "" {
		target.Field = field
	}
	if target.Field == "" {
		target.Field = DefaultUploadField
	}
	return target, nil
}

// Operation returns the named operation from the document at src, loading and
// parsing the document on first use.
func (r *Resolver) Operation(ctx context.Context, src Source, id string) (Operation, error) {
	ops, err := r.operations(ctx, src)
	if err != nil {
		return Operation{}, err
	}
	op, ok := ops[id]
	if !ok {
		return Operation{}, fmt.Errorf("openapi: operation %q not found in %s", id, src.Location())
	}
	return op, nil
}

func (r *Resolver) sourceFor(cfg profile.UploadConfig) (Source, error) {
	if ref := strings.TrimSpace(cfg.Source); ref != "" {
		return SourceFromReference(ref)
	}
	if r.defaultSource != nil {
		return r.defaultSource, nil
	}
	return nil, fmt.Errorf("openapi: upload operation %q has no document source", cfg.Operation)
}

func (r *Resolver) operations(ctx context.Context, src Source) (map[string]Operation, error) {
	key := string(src.Kind()) + "|" + src.Location()

	r.mu.Lock()
	cached, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	doc, err := r.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	if !DetectDocument(doc.Raw()) {
		return nil, fmt.Errorf("openapi: %s does not look like an OpenAPI document", src.Location())
	}

	ops, err := r.parser.Operations(ctx, doc)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = ops
	r.mu.Unlock()
	return ops, nil
}
