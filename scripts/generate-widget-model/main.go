package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/orchestrator"
	"github.com/goliatone/go-camgen/pkg/profile"
	"github.com/goliatone/go-camgen/pkg/render"
)

const snapshotRendererName = "widget-model-snapshot"

type snapshotRenderer struct {
	path string
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, widget model.WidgetModel, _ render.RenderOptions) ([]byte, error) {
	// Control icons carry inline SVG; keep it readable in the fixture.
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(widget); err != nil {
		return nil, err
	}
	if err := os.WriteFile(r.path, buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func main() {
	var (
		profilesPath = flag.String("profiles", "pkg/renderers/html/testdata/profiles.yaml", "profile document the widget is built from")
		profileName  = flag.String("profile", "kiosk-checkin", "profile to snapshot")
		backend      = flag.String("backend", "", "backend override (html5, flash, none); empty keeps the profile default")
		outputPath   = flag.String("output", "pkg/renderers/html/testdata/widget_model.json", "output path for the serialized widget model")
	)
	flag.Parse()

	ctx := context.Background()

	store, err := loadProfiles(*profilesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load profiles: %v\n", err)
		os.Exit(1)
	}

	registry := render.NewRegistry()
	registry.MustRegister(&snapshotRenderer{path: *outputPath})

	orch := orchestrator.New(
		orchestrator.WithProfiles(store),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
	)

	_, err = orch.Generate(ctx, orchestrator.Request{
		Profile:  *profileName,
		Backend:  *backend,
		Renderer: snapshotRendererName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to snapshot widget model: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote widget model snapshot to %s\n", *outputPath)
}

func loadProfiles(path string) (*profile.Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile document: %w", err)
	}
	return profile.Parse(raw, path)
}
