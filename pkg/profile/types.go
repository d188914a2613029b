package profile

import (
	"sort"
	"strings"
)

// Store keeps the parsed profiles from capture documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	profiles map[string]Profile
}

// Profile describes one named capture widget configuration.
type Profile struct {
	Name        string
	Source      string
	Title       string
	Description string
	Backend     string
	Video       *VideoConfig
	Canvas      *CanvasConfig
	Flash       *FlashConfig
	Controls    []ControlConfig
	Labels      map[string]string
	Classes     []string
	EnabledWhen string
	Upload      *UploadConfig
	Theme       *ThemePrefs
	Metadata    map[string]string
}

// VideoConfig sizes the live-preview region.
type VideoConfig struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// CanvasConfig sizes the capture buffer.
type CanvasConfig struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// FlashConfig points the plugin embed at its movie resource.
type FlashConfig struct {
	Resource     string `json:"resource,omitempty" yaml:"resource,omitempty"`
	Width        int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height       int    `json:"height,omitempty" yaml:"height,omitempty"`
	Quality      string `json:"quality,omitempty" yaml:"quality,omitempty"`
	ScriptAccess string `json:"scriptAccess,omitempty" yaml:"scriptAccess,omitempty"`
}

// ControlConfig customises one entry in the widget control bar. Kind selects
// the built-in control slot ("retake", "capture"); unspecified labels keep the
// slot defaults. Icon accepts inline SVG markup and is sanitized on load.
type ControlConfig struct {
	Kind        string            `json:"kind" yaml:"kind"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Icon        string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Classes     []string          `json:"classes,omitempty" yaml:"classes,omitempty"`
	Component   string            `json:"component,omitempty" yaml:"component,omitempty"`
	Hidden      *bool             `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	EnabledWhen string            `json:"enabledWhen,omitempty" yaml:"enabledWhen,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// UploadConfig names where captured frames are submitted. Endpoint/Method
// configure the target directly; Source/Operation defer resolution to an
// OpenAPI document so deployments can keep the capture API in one contract.
type UploadConfig struct {
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method    string `json:"method,omitempty" yaml:"method,omitempty"`
	Field     string `json:"field,omitempty" yaml:"field,omitempty"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
	Operation string `json:"operation,omitempty" yaml:"operation,omitempty"`
}

// ThemePrefs records the theme the profile prefers when the caller does not
// request one explicitly.
type ThemePrefs struct {
	Name    string `json:"name" yaml:"name"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty"`
}

// Profile returns the configuration registered under name.
func (s *Store) Profile(name string) (Profile, bool) {
	if s == nil {
		return Profile{}, false
	}
	p, ok := s.profiles[strings.TrimSpace(name)]
	return p, ok
}

// Names returns the sorted profile names held by the store.
func (s *Store) Names() []string {
	if s == nil || len(s.profiles) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any profiles.
func (s *Store) Empty() bool {
	return s == nil || len(s.profiles) == 0
}

// Merge overlays the profiles from other onto s, overwriting entries that
// share a name. A nil other is a no-op.
func (s *Store) Merge(other *Store) {
	if s == nil || other == nil {
		return
	}
	if s.profiles == nil {
		s.profiles = make(map[string]Profile, len(other.profiles))
	}
	for name, p := range other.profiles {
		s.profiles[name] = p
	}
}
