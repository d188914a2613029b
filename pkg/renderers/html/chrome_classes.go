package html

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassWidget   ChromeClass = "camgen-widget"
	ClassCamera   ChromeClass = "camgen-camera"
	ClassControls ChromeClass = "camgen-controls"
	ClassNotices  ChromeClass = "camgen-notices"
	ClassControl  ChromeClass = "control"
	ClassAction   ChromeClass = "action"
	ClassSrOnly   ChromeClass = "sr"
	ClassHidden   ChromeClass = "is-hidden"
)

// Default*Class values are applied when RenderOptions.ChromeClasses overrides
// are empty.
const (
	DefaultWidgetClass   = string(ClassWidget)
	DefaultCameraClass   = string(ClassCamera)
	DefaultControlsClass = string(ClassControls)
	DefaultNoticesClass  = string(ClassNotices)
)
