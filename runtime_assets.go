package camgen

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/goliatone/go-camgen/pkg/renderers/html"
	"github.com/goliatone/go-camgen/pkg/renderers/island"
)

// RuntimeAssetsFS exposes the capture runtime bundle (stylesheet plus
// camera script) embedded in the html renderer so Go applications can serve
// it without an asset build step.
//
// Typical mount:
//
//	mux.Handle("/assets/camgen/",
//	  http.StripPrefix("/assets/camgen/",
//	    http.FileServerFS(camgen.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return html.AssetsFS()
}

// IslandRuntimeAssetsFS exposes the island renderer's hydration bundle with
// paths relative to the asset root.
func IslandRuntimeAssetsFS() fs.FS {
	sub, err := fs.Sub(island.AssetsFS(), "assets")
	if err != nil {
		return island.AssetsFS()
	}
	return sub
}

// AssetsHandler returns the mux pattern and handler serving the embedded
// capture runtime under prefix. An empty prefix serves at
// html.DefaultAssetBase, matching the URLs rendered fragments reference out
// of the box:
//
//	mux.Handle(camgen.AssetsHandler(""))
func AssetsHandler(prefix string) (string, http.Handler) {
	if strings.TrimSpace(prefix) == "" {
		prefix = html.DefaultAssetBase
	}
	pattern := "/" + strings.Trim(prefix, "/") + "/"
	return pattern, http.StripPrefix(pattern, http.FileServerFS(RuntimeAssetsFS()))
}
