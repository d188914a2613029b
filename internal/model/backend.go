package model

import "strings"

// Backend identifies which capture implementation the widget markup targets.
// Use ParseBackend to normalize caller input into one of the three canonical
// variants; renderers reject anything else.
type Backend string

const (
	// BackendHTML5 selects the getUserMedia video/canvas pair.
	BackendHTML5 Backend = "html5"
	// BackendFlash selects the legacy plugin embed.
	BackendFlash Backend = "flash"
	// BackendNone renders an empty capture region. Unknown backend names
	// normalize here so a misspelled caller never receives capture markup
	// it did not ask for.
	BackendNone Backend = "none"
)

// ParseBackend maps raw caller input onto a canonical Backend. Matching is
// case-insensitive and ignores surrounding whitespace; anything that is not a
// recognized backend name becomes BackendNone.
func ParseBackend(raw string) Backend {
	backend, _ := LookupBackend(raw)
	return backend
}

// LookupBackend behaves like ParseBackend and additionally reports whether
// the input named a recognized backend. The empty string counts as a
// deliberate BackendNone; everything unrecognized also maps to BackendNone
// but reports false so callers can surface the typo.
func LookupBackend(raw string) (Backend, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(BackendHTML5):
		return BackendHTML5, true
	case string(BackendFlash):
		return BackendFlash, true
	case "", string(BackendNone):
		return BackendNone, true
	default:
		return BackendNone, false
	}
}

// Known reports whether b is one of the canonical variants.
func (b Backend) Known() bool {
	switch b {
	case BackendHTML5, BackendFlash, BackendNone:
		return true
	default:
		return false
	}
}

// Backends returns the canonical variants in presentation order.
func Backends() []Backend {
	return []Backend{BackendHTML5, BackendFlash, BackendNone}
}
