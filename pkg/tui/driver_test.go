package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

func TestTranslateSurveyErr(t *testing.T) {
	t.Parallel()

	if got := translateSurveyErr(terminal.InterruptErr); !errors.Is(got, ErrAborted) {
		t.Errorf("expected interrupt to map to ErrAborted, got %v", got)
	}

	passthrough := errors.New("terminal too small")
	if got := translateSurveyErr(passthrough); !errors.Is(got, passthrough) {
		t.Errorf("expected unrelated error to pass through, got %v", got)
	}

	if got := translateSurveyErr(nil); got != nil {
		t.Errorf("expected nil to pass through, got %v", got)
	}
}

func TestDriverHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	driver, err := NewDriver()
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := driver.Input(ctx, InputConfig{Message: "profile"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Input: expected context error, got %v", err)
	}
	if _, err := driver.Password(ctx, InputConfig{Message: "secret"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Password: expected context error, got %v", err)
	}
	if _, err := driver.Confirm(ctx, ConfirmConfig{Message: "overwrite?"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Confirm: expected context error, got %v", err)
	}
	if _, err := driver.Select(ctx, SelectConfig{Message: "backend", Options: []string{"html5"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("Select: expected context error, got %v", err)
	}
	if _, err := driver.MultiSelect(ctx, SelectConfig{Message: "locales", Options: []string{"es"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("MultiSelect: expected context error, got %v", err)
	}
	if _, err := driver.TextArea(ctx, TextAreaConfig{Message: "notes"}); !errors.Is(err, context.Canceled) {
		t.Errorf("TextArea: expected context error, got %v", err)
	}
	if err := driver.Info(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Errorf("Info: expected context error, got %v", err)
	}
}

func TestStringValidatorAdaptsAnswer(t *testing.T) {
	t.Parallel()

	validate := stringValidator(func(value string) error {
		if value == "" {
			return errors.New("required")
		}
		return nil
	})

	if err := validate("face"); err != nil {
		t.Errorf("expected valid answer to pass, got %v", err)
	}
	if err := validate(""); err == nil {
		t.Error("expected empty answer to fail")
	}
	if err := validate(42); err == nil {
		t.Error("expected non-string answer to fail the string rule")
	}
}

func TestSelectIndexHelpers(t *testing.T) {
	t.Parallel()

	options := []string{"html5", "flash", "none"}

	if got := indexOf(options, "flash"); got != 1 {
		t.Errorf("indexOf = %d, want 1", got)
	}
	if got := indexOf(options, "webgl"); got != -1 {
		t.Errorf("indexOf missing = %d, want -1", got)
	}

	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"none", "html5"})); diff != "" {
		t.Errorf("indicesOf mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"flash", "none"}, defaultsFromIndices(options, []int{1, 2, 99})); diff != "" {
		t.Errorf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
}
