package components

import (
	"bytes"
	"testing"

	"github.com/goliatone/go-camgen/pkg/model"
)

func TestRegistryDescriptorClone(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, widget model.WidgetModel, data ComponentData) error { return nil }

	if err := reg.Register("test", Descriptor{Renderer: renderer, Stylesheets: []string{"/a.css"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor("test")
	if !ok {
		t.Fatalf("descriptor not found")
	}

	desc.Stylesheets = append(desc.Stylesheets, "/mutated.css")

	original, _ := reg.Descriptor("test")
	if len(original.Stylesheets) != 1 || original.Stylesheets[0] != "/a.css" {
		t.Fatalf("registry descriptor mutated: %#v", original.Stylesheets)
	}
}

func TestRegistryAssetsDeduplicates(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, widget model.WidgetModel, data ComponentData) error { return nil }

	reg.MustRegister("viewfinder", Descriptor{
		Renderer:    renderer,
		Stylesheets: []string{"/shared.css", "/viewfinder.css"},
		Scripts: []Script{
			{Src: "/shared.js"},
		},
	})
	reg.MustRegister("control", Descriptor{
		Renderer:    renderer,
		Stylesheets: []string{"/shared.css", "/control.css"},
		Scripts: []Script{
			{Src: "/shared.js"},
			{Src: "/control.js"},
		},
	})

	styles, scripts := reg.Assets([]string{"viewfinder", "control"})
	if len(styles) != 3 {
		t.Fatalf("expected 3 unique stylesheets, got %d: %v", len(styles), styles)
	}
	if len(scripts) != 2 {
		t.Fatalf("expected 2 unique scripts, got %d: %v", len(scripts), scripts)
	}
}

func TestRegistryRejectsNilRenderer(t *testing.T) {
	reg := New()
	if err := reg.Register("broken", Descriptor{}); err == nil {
		t.Fatal("expected error for nil renderer")
	}
	if err := reg.Register("", Descriptor{}); err == nil {
		t.Fatal("expected error for empty component name")
	}
}

func TestDefaultRegistryKnowsContractComponents(t *testing.T) {
	reg := NewDefaultRegistry()
	for _, name := range []string{NameViewfinder, NamePluginEmbed, NameControlBar, NameControl, NameUploadFields} {
		if _, ok := reg.Descriptor(name); !ok {
			t.Fatalf("expected built-in component %q", name)
		}
	}
}
