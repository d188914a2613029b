package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-camgen/pkg/model"
)

// NoticeMapping splits caller feedback into element-level and widget-level
// messages keyed by the widget's stable element identifiers.
type NoticeMapping struct {
	Elements map[string][]string
	Widget   []string
}

// MergeWidgetNotices concatenates and normalises widget-level notice slices,
// trimming whitespace and removing duplicates while preserving order.
func MergeWidgetNotices(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapNoticePayload normalises caller payloads onto the widget's element
// identifiers. Friendly aliases ("video", "retake") resolve onto the stable
// IDs; keys that name elements absent from the rendered backend, along with
// unknown keys, become widget-level notices so messages are never lost.
func MapNoticePayload(widget model.WidgetModel, payload map[string][]string) NoticeMapping {
	mapping := NoticeMapping{
		Elements: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Elements = nil
		return mapping
	}

	present := presentElements(widget)

	// Sorted key order keeps aggregation deterministic when several payload
	// keys land on the same element or on the widget level.
	keys := make([]string, 0, len(payload))
	for rawKey := range payload {
		keys = append(keys, rawKey)
	}
	sort.Strings(keys)

	for _, rawKey := range keys {
		normalized := normalizeMessages(payload[rawKey])
		if len(normalized) == 0 {
			continue
		}

		id, widgetLevel := resolveNoticeKey(rawKey)
		if widgetLevel {
			mapping.Widget = append(mapping.Widget, normalized...)
			continue
		}
		if _, ok := present[id]; !ok {
			mapping.Widget = append(mapping.Widget, normalized...)
			continue
		}
		mapping.Elements[id] = append(mapping.Elements[id], normalized...)
	}

	if len(mapping.Elements) == 0 {
		mapping.Elements = nil
	}
	mapping.Widget = normalizeMessages(mapping.Widget)
	return mapping
}

func presentElements(widget model.WidgetModel) map[string]struct{} {
	present := map[string]struct{}{
		model.ElementCamera: {},
	}
	switch widget.Backend {
	case model.BackendHTML5:
		present[model.ElementVideo] = struct{}{}
		present[model.ElementCanvas] = struct{}{}
	case model.BackendFlash:
		present[model.ElementFlashObject] = struct{}{}
	}
	for _, control := range widget.Controls {
		if control.ID != "" {
			present[control.ID] = struct{}{}
		}
	}
	return present
}

func resolveNoticeKey(raw string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	switch key {
	case "", "widget", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return "", true
	case "container", model.ElementCamera:
		return model.ElementCamera, false
	case "video", "preview", model.ElementVideo:
		return model.ElementVideo, false
	case "canvas", model.ElementCanvas:
		return model.ElementCanvas, false
	case "flash", "plugin", model.ElementFlashObject:
		return model.ElementFlashObject, false
	case "retake", "reset", model.ElementResetControl:
		return model.ElementResetControl, false
	case "capture", model.ElementCaptureControl:
		return model.ElementCaptureControl, false
	default:
		return "", true
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
