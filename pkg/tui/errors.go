package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNotImplemented is returned by drivers that do not support a given
	// prompt kind.
	ErrNotImplemented = errors.New("tui: prompt not implemented")
)
