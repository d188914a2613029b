// Package model defines the typed capture-widget model consumed by
// renderers. Builders reside in internal/model but return the types defined
// here. The model pins the widget's public contract (element identifiers,
// the backend variants, the control-bar shape, the translator source
// strings) while leaving presentation concerns to profiles and renderers.
// The curated UIHints map surfaces renderer-facing directives such as
// `widget`, `class`, `hideLabel`, and `visibilityRule` so renderers can
// adjust markup without parsing raw profile metadata.
package model
