package model

// Stable element identifiers shared with client behavior code. They are part
// of the widget's public contract and never vary per profile.
const (
	ElementCamera         = "camera"
	ElementVideo          = "photo_id_video"
	ElementCanvas         = "photo_id_canvas"
	ElementFlashObject    = "flash_video"
	ElementResetControl   = "webcam_reset_button"
	ElementCaptureControl = "webcam_capture_button"
)

// Intrinsic region sizes and legacy plugin parameters.
const (
	CanvasWidth  = 640
	CanvasHeight = 480
	FlashWidth   = 500
	FlashHeight  = 375

	DefaultFlashResource = "/static/js/verify_student/CameraCapture.swf"
	DefaultFlashQuality  = "high"
	DefaultScriptAccess  = "sameDomain"
)

// Source strings handed to translators as literal lookup keys.
const (
	TextLiveView       = "Live view of webcam"
	TextPermissionHint = "Don't see your picture? Make sure to allow your browser to use your camera when it asks for permission."
	TextRetakePhoto    = "Retake Photo"
	TextTakePhoto      = "Take Photo"
)

// ControlKind selects one of the built-in control-bar slots.
type ControlKind string

const (
	ControlRetake  ControlKind = "retake"
	ControlCapture ControlKind = "capture"
)

const cameraIconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="16" height="16" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true" focusable="false" class="icon icon-camera"><path d="M23 19a2 2 0 0 1-2 2H3a2 2 0 0 1-2-2V8a2 2 0 0 1 2-2h4l2-3h6l2 3h4a2 2 0 0 1 2 2z"/><circle cx="12" cy="13" r="4"/></svg>`

// Control models one entry in the widget control bar. Label holds the source
// string handed to translators; Icon holds sanitized inline SVG that
// renderers emit verbatim.
type Control struct {
	ID        string            `json:"id"`
	Kind      ControlKind       `json:"kind"`
	Label     string            `json:"label"`
	Icon      string            `json:"icon,omitempty"`
	Hidden    bool              `json:"hidden"`
	Component string            `json:"component,omitempty"`
	Classes   []string          `json:"classes,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	UIHints   map[string]string `json:"uiHints,omitempty"`
}

// VideoRegion describes the html5 live preview. Zero dimensions mean the
// element is emitted unsized and left to CSS.
type VideoRegion struct {
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Hint   string `json:"hint"`
}

// CanvasRegion describes the hidden capture buffer.
type CanvasRegion struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FlashRegion describes the legacy plugin embed.
type FlashRegion struct {
	Resource     string `json:"resource"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Quality      string `json:"quality"`
	ScriptAccess string `json:"scriptAccess"`
}

// UploadTarget names where client behavior code submits captured frames.
type UploadTarget struct {
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`
	Field    string `json:"field"`
}

// WidgetModel is the renderer-agnostic description of one capture widget.
// Struct fields are annotated so renderers can serialize the model directly
// when needed.
type WidgetModel struct {
	Name        string            `json:"name"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Backend     Backend           `json:"backend"`
	Video       VideoRegion       `json:"video"`
	Canvas      CanvasRegion      `json:"canvas"`
	Flash       FlashRegion       `json:"flash"`
	Controls    []Control         `json:"controls"`
	Upload      *UploadTarget     `json:"upload,omitempty"`
	Classes     []string          `json:"classes,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// DefaultControls returns the two contract controls in platform order, both
// hidden until client behavior code reveals them.
func DefaultControls() []Control {
	return []Control{
		{
			ID:     ElementResetControl,
			Kind:   ControlRetake,
			Label:  TextRetakePhoto,
			Hidden: true,
		},
		{
			ID:     ElementCaptureControl,
			Kind:   ControlCapture,
			Label:  TextTakePhoto,
			Icon:   cameraIconSVG,
			Hidden: true,
		},
	}
}

// Control returns the control registered under kind.
func (m WidgetModel) Control(kind ControlKind) (Control, bool) {
	for _, control := range m.Controls {
		if control.Kind == kind {
			return control, true
		}
	}
	return Control{}, false
}

// Clone returns a deep copy so decorators and renderers cannot alias caller
// state.
func (m WidgetModel) Clone() WidgetModel {
	out := m
	if len(m.Controls) > 0 {
		out.Controls = make([]Control, len(m.Controls))
		for i, control := range m.Controls {
			out.Controls[i] = control.Clone()
		}
	}
	if m.Upload != nil {
		upload := *m.Upload
		out.Upload = &upload
	}
	out.Classes = cloneStrings(m.Classes)
	out.Metadata = cloneStringMap(m.Metadata)
	out.UIHints = cloneStringMap(m.UIHints)
	return out
}

// Clone returns a deep copy of the control.
func (c Control) Clone() Control {
	out := c
	out.Classes = cloneStrings(c.Classes)
	out.Metadata = cloneStringMap(c.Metadata)
	out.UIHints = cloneStringMap(c.UIHints)
	return out
}

func (c *Control) ensureMetadata() map[string]string {
	if c.Metadata == nil {
		c.Metadata = make(map[string]string)
	}
	return c.Metadata
}

func (c *Control) normalize() {
	if c.Metadata != nil && len(c.Metadata) == 0 {
		c.Metadata = nil
	}
	if c.UIHints != nil && len(c.UIHints) == 0 {
		c.UIHints = nil
	}
}

func (m *WidgetModel) ensureMetadata() map[string]string {
	if m.Metadata == nil {
		m.Metadata = make(map[string]string)
	}
	return m.Metadata
}

func (m *WidgetModel) normalize() {
	if m.Metadata != nil && len(m.Metadata) == 0 {
		m.Metadata = nil
	}
	if m.UIHints != nil && len(m.UIHints) == 0 {
		m.UIHints = nil
	}
	for i := range m.Controls {
		m.Controls[i].normalize()
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
