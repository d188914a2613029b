// Package orchestrator wires the profile, builder, decorator, and renderer
// stages behind a single constructor, with dependency-injection friendly
// options for consumers that bring their own stores, renderers, or theme
// providers.
package orchestrator
