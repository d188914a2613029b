package orchestrator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/visibility"
)

// applyVisibility gates the widget against its rules. A failing widget-level
// rule drops the capture surface (backend forced to none) while the chrome
// and controls stay addressable; a failing control rule removes the control.
func applyVisibility(widget *model.WidgetModel, evaluator visibility.Evaluator, ctx visibility.Context) error {
	if widget == nil || evaluator == nil {
		return nil
	}

	if rule := visibilityRule(widget.Metadata, widget.UIHints); rule != "" {
		ok, err := evaluator.Eval(widget.Name, rule, ctx)
		if err != nil {
			return fmt.Errorf("orchestrator: apply visibility: %w", err)
		}
		if !ok {
			widget.Backend = model.BackendNone
		}
	}

	controls, err := filterVisibleControls(widget.Controls, evaluator, ctx)
	if err != nil {
		return fmt.Errorf("orchestrator: apply visibility: %w", err)
	}
	widget.Controls = controls
	return nil
}

func filterVisibleControls(controls []model.Control, evaluator visibility.Evaluator, ctx visibility.Context) ([]model.Control, error) {
	if len(controls) == 0 {
		return controls, nil
	}

	result := make([]model.Control, 0, len(controls))
	for _, control := range controls {
		rule := visibilityRule(control.Metadata, control.UIHints)
		if rule != "" {
			ok, err := evaluator.Eval(control.ID, rule, ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		result = append(result, control)
	}

	return result, nil
}

func visibilityRule(metadata, uiHints map[string]string) string {
	candidates := []string{
		metadata["visibilityRule"],
		metadata["admin.visibilityRule"],
		uiHints["visibilityRule"],
	}
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

// visibilityContext derives the evaluation inputs from the request. Request
// values win; the render options' values back them up so callers that only
// populate RenderOptions keep working.
func visibilityContext(req Request) visibility.Context {
	ctx := visibility.Context{}
	if len(req.Values) > 0 {
		ctx.Values = req.Values
	} else if len(req.RenderOptions.Values) > 0 {
		ctx.Values = req.RenderOptions.Values
	}
	return ctx
}
