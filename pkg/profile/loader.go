package profile

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML profile files.
// When fsys is nil or no profile files are present, the returned store is
// empty. Control icons are sanitized during normalization so downstream
// renderers can emit them verbatim.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{profiles: make(map[string]Profile)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isProfileFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("profile: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawName, raw := range doc.Profiles {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("profile: file %s defines an empty profile name", path)
			}
			if _, exists := store.profiles[name]; exists {
				return fmt.Errorf("profile: duplicate profile %q (file %s)", name, path)
			}
			store.profiles[name] = normalizeProfile(raw, name, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Parse reads a single profile document from raw bytes. Source labels parse
// errors and the Source field of the resulting profiles.
func Parse(data []byte, source string) (*Store, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}

	store := &Store{profiles: make(map[string]Profile, len(doc.Profiles))}
	for rawName, raw := range doc.Profiles {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return nil, fmt.Errorf("profile: file %s defines an empty profile name", source)
		}
		store.profiles[name] = normalizeProfile(raw, name, source)
	}

	return store, nil
}

type documentFile struct {
	Profiles map[string]profileFile `json:"profiles" yaml:"profiles"`
}

type profileFile struct {
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Backend     string            `json:"backend" yaml:"backend"`
	Video       *VideoConfig      `json:"video,omitempty" yaml:"video,omitempty"`
	Canvas      *CanvasConfig     `json:"canvas,omitempty" yaml:"canvas,omitempty"`
	Flash       *FlashConfig      `json:"flash,omitempty" yaml:"flash,omitempty"`
	Controls    []ControlConfig   `json:"controls,omitempty" yaml:"controls,omitempty"`
	Labels      map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Classes     []string          `json:"classes,omitempty" yaml:"classes,omitempty"`
	EnabledWhen string            `json:"enabledWhen,omitempty" yaml:"enabledWhen,omitempty"`
	Upload      *UploadConfig     `json:"upload,omitempty" yaml:"upload,omitempty"`
	Theme       *ThemePrefs       `json:"theme,omitempty" yaml:"theme,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("profile: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("profile: parse %s: invalid JSON or YAML", source)
}

func normalizeProfile(raw profileFile, name, source string) Profile {
	p := Profile{
		Name:        name,
		Source:      source,
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Backend:     strings.TrimSpace(raw.Backend),
		Video:       cloneVideo(raw.Video),
		Canvas:      cloneCanvas(raw.Canvas),
		Flash:       cloneFlash(raw.Flash),
		Labels:      cloneStringMap(raw.Labels),
		Classes:     cloneStrings(raw.Classes),
		EnabledWhen: strings.TrimSpace(raw.EnabledWhen),
		Upload:      cloneUpload(raw.Upload),
		Theme:       cloneTheme(raw.Theme),
		Metadata:    cloneStringMap(raw.Metadata),
	}

	if len(raw.Controls) > 0 {
		p.Controls = make([]ControlConfig, 0, len(raw.Controls))
		for _, control := range raw.Controls {
			p.Controls = append(p.Controls, normalizeControl(control))
		}
	}

	return p
}

func normalizeControl(cfg ControlConfig) ControlConfig {
	out := cfg
	out.Kind = strings.ToLower(strings.TrimSpace(cfg.Kind))
	out.Label = strings.TrimSpace(cfg.Label)
	out.Icon = SanitizeIcon(cfg.Icon)
	out.Component = strings.TrimSpace(cfg.Component)
	out.EnabledWhen = strings.TrimSpace(cfg.EnabledWhen)
	out.Classes = cloneStrings(cfg.Classes)
	out.Metadata = cloneStringMap(cfg.Metadata)
	if cfg.Hidden != nil {
		hidden := *cfg.Hidden
		out.Hidden = &hidden
	}
	return out
}

func cloneVideo(in *VideoConfig) *VideoConfig {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

func cloneCanvas(in *CanvasConfig) *CanvasConfig {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

func cloneFlash(in *FlashConfig) *FlashConfig {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

func cloneUpload(in *UploadConfig) *UploadConfig {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

func cloneTheme(in *ThemePrefs) *ThemePrefs {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

func cloneStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func isProfileFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
