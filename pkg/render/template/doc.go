// Package template defines the engine-agnostic contract widget renderers use
// to execute theme partials and markup overrides, plus adapters binding that
// contract to concrete template engines.
package template
