package expr

import (
	"testing"

	"github.com/goliatone/go-camgen/pkg/visibility"
)

func TestEvaluatorBooleanComparison(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("camera", "camera_ready == true", visibility.Context{
		Values: map[string]any{"camera_ready": true},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true")
	}

	ok, err = eval.Eval("camera", "camera_ready == true", visibility.Context{
		Values: map[string]any{"camera_ready": "true"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for string true")
	}
}

func TestEvaluatorTruthyAndNot(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("camera", "camera_ready", visibility.Context{
		Values: map[string]any{"camera_ready": true},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true")
	}

	ok, err = eval.Eval("camera", "!camera_ready", visibility.Context{
		Values: map[string]any{"camera_ready": false},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for !false")
	}
}

func TestEvaluatorRelationalComparison(t *testing.T) {
	t.Parallel()

	eval := New()

	cases := []struct {
		name   string
		rule   string
		values map[string]any
		want   bool
	}{
		{"below limit", "attempts < 3", map[string]any{"attempts": 2}, true},
		{"at limit", "attempts < 3", map[string]any{"attempts": 3}, false},
		{"lte at limit", "attempts <= 3", map[string]any{"attempts": 3}, true},
		{"gt", "attempts > 0", map[string]any{"attempts": 1}, true},
		{"gte miss", "attempts >= 1", map[string]any{"attempts": 0}, false},
		{"missing compares as zero", "attempts < 3", map[string]any{}, true},
		{"string number coerces", "attempts < 3", map[string]any{"attempts": "2"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := eval.Eval("webcam_reset_button", tc.rule, visibility.Context{Values: tc.values})
			if err != nil {
				t.Fatalf("Eval returned error: %v", err)
			}
			if ok != tc.want {
				t.Fatalf("Eval(%q) = %v, want %v", tc.rule, ok, tc.want)
			}
		})
	}
}

func TestEvaluatorRelationalRequiresNumberLiteral(t *testing.T) {
	t.Parallel()

	eval := New()

	if _, err := eval.Eval("camera", `role < "admin"`, visibility.Context{
		Values: map[string]any{"role": "kiosk"},
	}); err == nil {
		t.Fatalf("expected error for relational string comparison")
	}
}

func TestEvaluatorValuesPrefix(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("webcam_reset_button", "values.attempts < 3", visibility.Context{
		Values: map[string]any{"attempts": 2},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for prefixed lookup")
	}

	ok, err = eval.Eval("camera", "values.avatars_enabled", visibility.Context{
		Values: map[string]any{"avatars_enabled": true},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for prefixed truthy lookup")
	}
}

func TestEvaluatorExtrasPrefix(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("camera", `extras.role == "proctor"`, visibility.Context{
		Extras: map[string]any{"role": "proctor"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for extras lookup")
	}
}

func TestEvaluatorDotLookup(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("session.step", `session.step != ""`, visibility.Context{
		Values: map[string]any{"session.step": "face"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for flattened dotted key")
	}

	ok, err = eval.Eval("session.step", `session.step == "face"`, visibility.Context{
		Values: map[string]any{
			"session": map[string]any{
				"step": "face",
			},
		},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for nested map lookup")
	}
}

func TestEvaluatorNullLiteral(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("camera", "missing == null", visibility.Context{
		Values: map[string]any{},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for missing == null")
	}

	ok, err = eval.Eval("camera", "camera_ready != null", visibility.Context{
		Values: map[string]any{"camera_ready": false},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for present != null")
	}
}

func TestEvaluatorBooleanComposition(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("camera", `camera_ready == true && extras.role == "proctor"`, visibility.Context{
		Values: map[string]any{"camera_ready": true},
		Extras: map[string]any{"role": "proctor"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for conjunction")
	}

	ok, err = eval.Eval("camera", `camera_ready == true && extras.role == "proctor"`, visibility.Context{
		Values: map[string]any{"camera_ready": true},
		Extras: map[string]any{"role": "kiosk"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected false for conjunction mismatch")
	}

	ok, err = eval.Eval("camera", `camera_ready == true || attempts < 3`, visibility.Context{
		Values: map[string]any{
			"camera_ready": false,
			"attempts":     1,
		},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for disjunction")
	}
}
