package profile

import (
	"embed"
	"io/fs"
)

//go:embed profiles/*
var embeddedProfiles embed.FS

// EmbeddedFS returns the bundled capture profiles. Callers may pass this
// filesystem to LoadFS to use the default configuration.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedProfiles, "profiles")
	if err != nil {
		// The embed directive guarantees the subpath exists, so panic is
		// acceptable here.
		panic(err)
	}
	return sub
}
