package webcam

import (
	"context"
	"net/http"

	"github.com/goliatone/go-camgen/pkg/locale"
	"github.com/goliatone/go-camgen/pkg/orchestrator"
)

// Generator produces rendered widget fragments. *orchestrator.Orchestrator
// satisfies it; tests and embedders can substitute their own.
type Generator interface {
	Generate(ctx context.Context, req orchestrator.Request) ([]byte, error)
}

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath    string
	ProfileParam string
	BackendParam string
	LocaleParam  string
	FormatParam  string

	// DefaultProfile is rendered when the request names none. DefaultBackend
	// is passed through when the request names none; empty lets the profile
	// decide.
	DefaultProfile string
	DefaultBackend string

	// MaxBackendLen truncates the raw backend parameter before it reaches
	// backend normalization.
	MaxBackendLen int

	Guard     GuardFunc
	Generator Generator
	Catalog   *locale.Catalog
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:      "/api/webcam",
		ProfileParam:   "profile",
		BackendParam:   "backend",
		LocaleParam:    "locale",
		FormatParam:    "format",
		DefaultProfile: "face",
		MaxBackendLen:  16,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/webcam"
	}
	if opts.ProfileParam == "" {
		opts.ProfileParam = "profile"
	}
	if opts.BackendParam == "" {
		opts.BackendParam = "backend"
	}
	if opts.LocaleParam == "" {
		opts.LocaleParam = "locale"
	}
	if opts.FormatParam == "" {
		opts.FormatParam = "format"
	}
	if opts.MaxBackendLen <= 0 {
		opts.MaxBackendLen = 16
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithProfileParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ProfileParam = name
	}
}

func WithBackendParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BackendParam = name
	}
}

func WithLocaleParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LocaleParam = name
	}
}

func WithFormatParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FormatParam = name
	}
}

func WithDefaultProfile(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultProfile = name
	}
}

func WithDefaultBackend(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultBackend = name
	}
}

func WithMaxBackendLen(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBackendLen = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithGenerator(gen Generator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Generator = gen
	}
}

func WithCatalog(catalog *locale.Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = catalog
	}
}

func clampBackend(raw string, opts Options) string {
	if opts.MaxBackendLen > 0 && len(raw) > opts.MaxBackendLen {
		return raw[:opts.MaxBackendLen]
	}
	return raw
}
