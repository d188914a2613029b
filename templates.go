package camgen

import (
	"io/fs"

	"github.com/goliatone/go-camgen/pkg/renderers/html"
	"github.com/goliatone/go-camgen/pkg/renderers/island"
)

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// IslandTemplates exposes the island renderer's page template for callers
// that host their own hydration shell.
func IslandTemplates() fs.FS {
	return island.TemplatesFS()
}
