package model

import internalmodel "github.com/goliatone/go-camgen/internal/model"

// Backend re-exports the internal backend enumeration.
type Backend = internalmodel.Backend

const (
	BackendHTML5 = internalmodel.BackendHTML5
	BackendFlash = internalmodel.BackendFlash
	BackendNone  = internalmodel.BackendNone
)

// ParseBackend normalizes caller input into a canonical Backend.
var ParseBackend = internalmodel.ParseBackend

// LookupBackend normalizes caller input and reports whether it named a
// recognized backend.
var LookupBackend = internalmodel.LookupBackend

// Backends returns the canonical backend variants.
var Backends = internalmodel.Backends

// Stable element identifiers shared with client behavior code.
const (
	ElementCamera         = internalmodel.ElementCamera
	ElementVideo          = internalmodel.ElementVideo
	ElementCanvas         = internalmodel.ElementCanvas
	ElementFlashObject    = internalmodel.ElementFlashObject
	ElementResetControl   = internalmodel.ElementResetControl
	ElementCaptureControl = internalmodel.ElementCaptureControl
)

// Intrinsic region sizes and legacy plugin parameters.
const (
	CanvasWidth  = internalmodel.CanvasWidth
	CanvasHeight = internalmodel.CanvasHeight
	FlashWidth   = internalmodel.FlashWidth
	FlashHeight  = internalmodel.FlashHeight

	DefaultFlashResource = internalmodel.DefaultFlashResource
)

// Source strings handed to translators as literal lookup keys.
const (
	TextLiveView       = internalmodel.TextLiveView
	TextPermissionHint = internalmodel.TextPermissionHint
	TextRetakePhoto    = internalmodel.TextRetakePhoto
	TextTakePhoto      = internalmodel.TextTakePhoto
)

// ControlKind re-exports the control slot enumeration.
type ControlKind = internalmodel.ControlKind

const (
	ControlRetake  = internalmodel.ControlRetake
	ControlCapture = internalmodel.ControlCapture
)

type Control = internalmodel.Control
type VideoRegion = internalmodel.VideoRegion
type CanvasRegion = internalmodel.CanvasRegion
type FlashRegion = internalmodel.FlashRegion
type UploadTarget = internalmodel.UploadTarget
type WidgetModel = internalmodel.WidgetModel

// DefaultControls returns the two contract controls, hidden.
var DefaultControls = internalmodel.DefaultControls

// AllowedUIHintKeys returns the curated UI hint keys.
var AllowedUIHintKeys = internalmodel.AllowedUIHintKeys

// IsAllowedUIHintKey reports whether key participates in the UI hint
// contract.
var IsAllowedUIHintKey = internalmodel.IsAllowedUIHintKey
