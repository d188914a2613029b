package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-camgen/pkg/model"
)

// Built-in component identifiers exposed by the registry. They line up with
// the component names the bundled renderers register.
const (
	WidgetViewfinder   = "viewfinder"
	WidgetPluginEmbed  = "plugin-embed"
	WidgetControlBar   = "control-bar"
	WidgetControl      = "control"
	WidgetUploadFields = "upload-fields"
)

// Matcher decides whether a component should render the supplied control. The
// widget is passed alongside so matchers can branch on backend or
// widget-level metadata.
type Matcher func(widget model.WidgetModel, control model.Control) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects rendering components for widget controls based on explicit
// hints or registered matchers. Higher priority wins; ties fall back to
// registration order. An empty registry never resolves a component.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in component matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a component matcher with the provided name and priority.
// Higher priority values take precedence. Callers should avoid duplicate
// names; the latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the component name for a control. Explicit hints
// (admin.widget/widget metadata or UI hints) are honoured before matcher
// evaluation.
func (r *Registry) Resolve(widget model.WidgetModel, control model.Control) (string, bool) {
	if explicit := explicitComponent(control.Metadata, control.UIHints); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(widget, control) {
			return entry.name, true
		}
	}
	return "", false
}

// ResolveRegion returns the component that renders the widget's capture
// surface. BackendNone has no capture surface and never resolves, hint or
// not. For the other backends an explicit widget-level hint re-routes the
// surface to a custom component.
func (r *Registry) ResolveRegion(widget model.WidgetModel) (string, bool) {
	var slot string
	switch widget.Backend {
	case model.BackendHTML5:
		slot = WidgetViewfinder
	case model.BackendFlash:
		slot = WidgetPluginEmbed
	default:
		return "", false
	}
	if explicit := explicitComponent(widget.Metadata, widget.UIHints); explicit != "" {
		return explicit, true
	}
	return slot, true
}

// Decorate implements model.Decorator, applying registry resolution to every
// control in the widget. When a component is resolved, both Control.Component
// and UIHints["widget"] are set to the chosen name, preserving existing
// values when present.
func (r *Registry) Decorate(widget *model.WidgetModel) error {
	if r == nil || widget == nil {
		return nil
	}
	for idx := range widget.Controls {
		widget.Controls[idx] = r.decorateControl(*widget, widget.Controls[idx])
	}
	return nil
}

func (r *Registry) decorateControl(widget model.WidgetModel, control model.Control) model.Control {
	component := strings.TrimSpace(control.Component)
	if component == "" {
		resolved, ok := r.Resolve(widget, control)
		if !ok || resolved == "" {
			return control
		}
		component = resolved
		control.Component = component
	}
	if control.UIHints == nil {
		control.UIHints = make(map[string]string)
	}
	if control.UIHints["widget"] == "" {
		control.UIHints["widget"] = component
	}
	return control
}

func explicitComponent(metadata, uiHints map[string]string) string {
	if metadata != nil {
		if component := strings.TrimSpace(metadata["admin.widget"]); component != "" {
			return component
		}
		if component := strings.TrimSpace(metadata["widget"]); component != "" {
			return component
		}
	}
	if uiHints != nil {
		if component := strings.TrimSpace(uiHints["widget"]); component != "" {
			return component
		}
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	// Every control renders through the base control component unless a
	// higher-priority matcher claims it.
	r.Register(WidgetControl, 10, func(_ model.WidgetModel, _ model.Control) bool {
		return true
	})
}
