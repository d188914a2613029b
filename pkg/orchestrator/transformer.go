package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-camgen/pkg/model"
)

// Transformer mutates a WidgetModel before decorators run. Implementations
// can relabel controls, inject metadata, or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, widget *model.WidgetModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, widget *model.WidgetModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, widget *model.WidgetModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, widget)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON
// document. The shape supports widget-level fields and per-control patches
// addressed by element identifier:
//
//	{
//	  "title": "Verification Photo",
//	  "metadata": {"flowStep": "face"},
//	  "uiHints": {"hideLabel": "true"},
//	  "controls": {
//	    "webcam_capture_button": {"label": "Take Verification Photo"}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	Metadata    map[string]string           `json:"metadata"`
	UIHints     map[string]string           `json:"uiHints"`
	Classes     []string                    `json:"classes"`
	Controls    map[string]jsonControlPatch `json:"controls"`
}

type jsonControlPatch struct {
	Label     string            `json:"label"`
	Icon      string            `json:"icon"`
	Component string            `json:"component"`
	Hidden    *bool             `json:"hidden"`
	Classes   []string          `json:"classes"`
	Metadata  map[string]string `json:"metadata"`
	UIHints   map[string]string `json:"uiHints"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied widget.
func (t *JSONPresetTransformer) Transform(ctx context.Context, widget *model.WidgetModel) error {
	if widget == nil {
		return errors.New("json preset transformer: widget model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if title := strings.TrimSpace(t.document.Title); title != "" {
		widget.Title = title
	}
	if description := strings.TrimSpace(t.document.Description); description != "" {
		widget.Description = description
	}
	if len(t.document.Metadata) > 0 {
		widget.Metadata = mergeStringMap(widget.Metadata, t.document.Metadata)
	}
	if len(t.document.UIHints) > 0 {
		widget.UIHints = mergeStringMap(widget.UIHints, t.document.UIHints)
	}
	if len(t.document.Classes) > 0 {
		widget.Classes = append(widget.Classes, t.document.Classes...)
	}

	for id, patch := range t.document.Controls {
		if err := ctx.Err(); err != nil {
			return err
		}
		control := findControlByID(widget.Controls, id)
		if control == nil {
			return fmt.Errorf("json preset transformer: control %q not found", id)
		}
		applyControlPatch(control, patch)
	}
	return nil
}

func applyControlPatch(control *model.Control, patch jsonControlPatch) {
	if control == nil {
		return
	}
	if patch.Label != "" {
		control.Label = patch.Label
	}
	if patch.Icon != "" {
		control.Icon = patch.Icon
	}
	if patch.Component != "" {
		control.Component = patch.Component
	}
	if patch.Hidden != nil {
		control.Hidden = *patch.Hidden
	}
	if len(patch.Classes) > 0 {
		control.Classes = append(control.Classes, patch.Classes...)
	}
	if len(patch.Metadata) > 0 {
		control.Metadata = mergeStringMap(control.Metadata, patch.Metadata)
	}
	if len(patch.UIHints) > 0 {
		control.UIHints = mergeStringMap(control.UIHints, patch.UIHints)
	}
}

func findControlByID(controls []model.Control, id string) *model.Control {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	for idx := range controls {
		if controls[idx].ID == id {
			return &controls[idx]
		}
	}
	return nil
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
