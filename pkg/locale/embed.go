package locale

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed locales/*
var embeddedLocales embed.FS

// EmbeddedFS returns the bundled translation catalogs.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		// The embed directive guarantees the subpath exists, so panic is
		// acceptable here.
		panic(err)
	}
	return sub
}

// Default loads the embedded catalogs. The bundle is validated at build time
// by the embed directive, so a parse failure here is a packaging bug.
func Default() *Catalog {
	catalog, err := LoadFS(EmbeddedFS())
	if err != nil {
		panic(fmt.Sprintf("locale: embedded catalogs: %v", err))
	}
	return catalog
}
