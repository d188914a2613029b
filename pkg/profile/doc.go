// Package profile loads named capture-widget configurations from JSON/YAML
// documents. A profile bundles the backend preference, region sizing, control
// definitions, label overrides, and upload target for one widget flavour so
// callers can ship several capture flows (identity photo, face photo, avatar)
// from a single binary. The package keeps the model builder unaware of file
// formats: it parses, sanitizes, and normalizes documents into Profile values
// and leaves interpretation to the builder.
package profile
