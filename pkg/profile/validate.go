package profile

import (
	"fmt"
	"strings"
)

// Problem describes a single structural issue found in a profile. Path points
// at the offending document location using dot notation.
type Problem struct {
	Path    string
	Message string
}

var knownBackends = map[string]struct{}{
	"":      {},
	"html5": {},
	"flash": {},
	"none":  {},
}

var knownControlKinds = map[string]struct{}{
	"retake":  {},
	"capture": {},
}

// Validate runs structural checks over a profile and returns every problem
// found. Expression rules are only checked for presence; callers that want
// full rule parsing should hand EnabledWhen values to a visibility evaluator.
func Validate(p Profile) []Problem {
	var problems []Problem
	add := func(path, format string, args ...any) {
		problems = append(problems, Problem{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(p.Name) == "" {
		add("name", "profile name is required")
	}
	if _, ok := knownBackends[strings.ToLower(strings.TrimSpace(p.Backend))]; !ok {
		add("backend", "unknown backend %q (expected html5, flash, or none)", p.Backend)
	}

	if p.Video != nil {
		if p.Video.Width < 0 || p.Video.Height < 0 {
			add("video", "dimensions must not be negative (got %dx%d)", p.Video.Width, p.Video.Height)
		}
	}
	if p.Canvas != nil {
		if p.Canvas.Width <= 0 || p.Canvas.Height <= 0 {
			add("canvas", "dimensions must be positive (got %dx%d)", p.Canvas.Width, p.Canvas.Height)
		}
	}
	if p.Flash != nil {
		if p.Flash.Width < 0 || p.Flash.Height < 0 {
			add("flash", "dimensions must not be negative (got %dx%d)", p.Flash.Width, p.Flash.Height)
		}
	}

	seenKinds := make(map[string]string, len(p.Controls))
	for i, control := range p.Controls {
		path := fmt.Sprintf("controls[%d]", i)
		kind := strings.ToLower(strings.TrimSpace(control.Kind))
		if kind == "" {
			add(path+".kind", "control kind is required")
			continue
		}
		if _, ok := knownControlKinds[kind]; !ok {
			add(path+".kind", "unknown control kind %q (expected retake or capture)", control.Kind)
			continue
		}
		if prev, dup := seenKinds[kind]; dup {
			add(path+".kind", "control kind %q already defined at %s", kind, prev)
			continue
		}
		seenKinds[kind] = path
	}

	if p.Upload != nil {
		hasDirect := strings.TrimSpace(p.Upload.Endpoint) != ""
		hasResolved := strings.TrimSpace(p.Upload.Operation) != ""
		switch {
		case !hasDirect && !hasResolved:
			add("upload", "either endpoint or operation is required")
		case hasDirect && hasResolved:
			add("upload", "endpoint and operation are mutually exclusive")
		case hasResolved && strings.TrimSpace(p.Upload.Source) == "":
			add("upload.source", "operation %q needs a source document", p.Upload.Operation)
		}
	}

	if p.Theme != nil && strings.TrimSpace(p.Theme.Name) == "" {
		add("theme.name", "theme name is required when a theme block is present")
	}

	return problems
}
