package components

// Canonical component names used by the html renderer and default registry.
const (
	NameViewfinder   = "viewfinder"
	NamePluginEmbed  = "plugin-embed"
	NameControlBar   = "control-bar"
	NameControl      = "control"
	NameUploadFields = "upload-fields"
)
