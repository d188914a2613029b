package locale

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is the language of the widget's source strings. Requests that
// negotiate to it should skip translation entirely.
const DefaultLocale = "en"

// ErrNotFound reports a failed translation lookup. The render chain treats it
// like any translator error and falls back to the source string.
var ErrNotFound = errors.New("locale: translation not found")

// Catalog maps source strings to their translations per locale. It satisfies
// the render translator seam and is safe for concurrent readers when treated
// as immutable after construction.
type Catalog struct {
	messages map[string]map[string]string
	names    []string
	matcher  language.Matcher
}

// New returns an empty catalog. Use Merge or LoadFS to populate it.
func New() *Catalog {
	c := &Catalog{messages: make(map[string]map[string]string)}
	c.rebuildMatcher()
	return c
}

// LoadFS walks the provided filesystem and parses one JSON/YAML document per
// locale file. The locale defaults to the file's base name (`es.yaml` → `es`)
// unless the document names one explicitly. A nil filesystem yields an empty
// catalog.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{messages: make(map[string]map[string]string)}
	if fsys == nil {
		catalog.rebuildMatcher()
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("locale: read %s: %w", path, err)
		}

		doc, err := parseCatalog(data, path)
		if err != nil {
			return err
		}

		name := normalizeLocale(doc.Locale)
		if name == "" {
			name = localeFromPath(path)
		}
		if name == "" {
			return fmt.Errorf("locale: file %s does not name a locale", path)
		}
		if _, exists := catalog.messages[name]; exists {
			return fmt.Errorf("locale: duplicate locale %q (file %s)", name, path)
		}
		if len(doc.Messages) == 0 {
			return fmt.Errorf("locale: file %s has no messages", path)
		}

		catalog.messages[name] = cloneMessages(doc.Messages)
		return nil
	})
	if err != nil {
		return nil, err
	}

	catalog.rebuildMatcher()
	return catalog, nil
}

type catalogFile struct {
	Locale   string            `json:"locale" yaml:"locale"`
	Messages map[string]string `json:"messages" yaml:"messages"`
}

func parseCatalog(data []byte, source string) (catalogFile, error) {
	var doc catalogFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return catalogFile{}, fmt.Errorf("locale: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return catalogFile{}, fmt.Errorf("locale: parse %s: invalid JSON or YAML", source)
}

// Translate resolves key for the requested locale. The key IS the source
// string, gettext style. Unknown locales and untranslated keys return
// ErrNotFound so the caller's fallback chain runs.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", fmt.Errorf("locale %q: %w", locale, ErrNotFound)
	}
	messages, ok := c.lookupLocale(locale)
	if !ok {
		return "", fmt.Errorf("locale %q: %w", locale, ErrNotFound)
	}
	translated, ok := messages[key]
	if !ok || strings.TrimSpace(translated) == "" {
		return "", fmt.Errorf("locale %q key %q: %w", locale, key, ErrNotFound)
	}
	return translated, nil
}

// MustTranslate resolves key for the locale, falling back to the key itself.
func (c *Catalog) MustTranslate(locale, key string) string {
	translated, err := c.Translate(locale, key)
	if err != nil {
		return key
	}
	return translated
}

// Negotiate picks the best catalog locale for an Accept-Language header.
// Empty or unparseable input falls back to DefaultLocale, as does a header
// preferring languages the catalog does not carry.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	if c == nil || c.matcher == nil {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, _ := c.matcher.Match(tags...)
	if index < 0 || index >= len(c.names) {
		return DefaultLocale
	}
	return c.names[index]
}

// Locales returns the sorted locale names held by the catalog.
func (c *Catalog) Locales() []string {
	if c == nil || len(c.messages) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.messages))
	for name := range c.messages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the catalog carries translations for locale. The
// lookup accepts region-qualified tags when the base language is present.
func (c *Catalog) Has(locale string) bool {
	if c == nil {
		return false
	}
	_, ok := c.lookupLocale(locale)
	return ok
}

// Empty reports whether the catalog holds any locales.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.messages) == 0
}

// Merge overlays the locales from other onto c, overwriting entries that
// share a name. A nil other is a no-op.
func (c *Catalog) Merge(other *Catalog) {
	if c == nil || other == nil {
		return
	}
	if c.messages == nil {
		c.messages = make(map[string]map[string]string, len(other.messages))
	}
	for name, messages := range other.messages {
		c.messages[name] = cloneMessages(messages)
	}
	c.rebuildMatcher()
}

func (c *Catalog) lookupLocale(locale string) (map[string]string, bool) {
	name := normalizeLocale(locale)
	if name == "" {
		return nil, false
	}
	if messages, ok := c.messages[name]; ok {
		return messages, true
	}
	// Region-qualified tags fall back to the base language (es-MX → es).
	if base, _, found := strings.Cut(name, "-"); found {
		if messages, ok := c.messages[base]; ok {
			return messages, true
		}
	}
	return nil, false
}

// rebuildMatcher recomputes the negotiation tables. DefaultLocale is always
// the first supported tag so the matcher falls back to it.
func (c *Catalog) rebuildMatcher() {
	names := []string{DefaultLocale}
	tags := []language.Tag{language.Make(DefaultLocale)}
	for _, name := range c.Locales() {
		if name == DefaultLocale {
			continue
		}
		tag := language.Make(name)
		if tag == language.Und {
			continue
		}
		names = append(names, name)
		tags = append(tags, tag)
	}
	c.names = names
	c.matcher = language.NewMatcher(tags)
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	return strings.ReplaceAll(locale, "_", "-")
}

func localeFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return normalizeLocale(name)
}

func cloneMessages(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
