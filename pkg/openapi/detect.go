package openapi

import (
	"bytes"
	"encoding/json"
	"strings"
)

// DetectDocument reports whether the raw payload appears to be an OpenAPI or
// Swagger document. The resolver uses it to fail with a clear message when a
// profile points its upload source at the wrong file.
func DetectDocument(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if _, ok := payload["openapi"]; ok {
				return true
			}
			if _, ok := payload["swagger"]; ok {
				return true
			}
		}
	}
	lower := strings.ToLower(string(trimmed))
	return strings.Contains(lower, "openapi:") || strings.Contains(lower, "swagger:")
}
