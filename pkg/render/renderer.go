package render

import (
	"context"

	"github.com/goliatone/go-camgen/pkg/model"
)

// Renderer converts a WidgetModel into a byte representation (an HTML
// fragment, a client-island payload, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, widget model.WidgetModel, options RenderOptions) ([]byte, error)
}
