package parser

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// mediaTypePreference orders request content when looking for the upload
// field. Multipart bodies are the natural carrier for a captured frame; the
// others cover APIs that accept base64 payloads.
var mediaTypePreference = []string{
	"multipart/form-data",
	"application/x-www-form-urlencoded",
	"application/json",
}

// requestContentTypes lists the media types the operation's request body
// accepts, sorted for stable output.
func requestContentTypes(ref *openapi3.RequestBodyRef) []string {
	if ref == nil || ref.Value == nil || len(ref.Value.Content) == 0 {
		return nil
	}
	types := make([]string, 0, len(ref.Value.Content))
	for mediaType := range ref.Value.Content {
		types = append(types, mediaType)
	}
	sort.Strings(types)
	return types
}

// uploadField extracts the name of the request-body property that carries the
// photo bytes. Preferred media types are consulted first, then the rest in
// sorted order; within a schema a required binary property wins over an
// optional one and ties break alphabetically. Returns "" when the document
// does not name a field.
func uploadField(ref *openapi3.RequestBodyRef) string {
	if ref == nil || ref.Value == nil || len(ref.Value.Content) == 0 {
		return ""
	}
	content := ref.Value.Content

	for _, mediaType := range mediaTypePreference {
		if mt, ok := content[mediaType]; ok {
			if field := binaryProperty(mt.Schema); field != "" {
				return field
			}
		}
	}

	remaining := make([]string, 0, len(content))
	for mediaType := range content {
		remaining = append(remaining, mediaType)
	}
	sort.Strings(remaining)
	for _, mediaType := range remaining {
		if field := binaryProperty(content[mediaType].Schema); field != "" {
			return field
		}
	}
	return ""
}

// binaryProperty scans the schema's top-level properties for binary content.
// Multipart form fields are flat, so nested objects are not walked.
func binaryProperty(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil || len(ref.Value.Properties) == 0 {
		return ""
	}
	schema := ref.Value

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	candidates := make([]string, 0, len(schema.Properties))
	for name, property := range schema.Properties {
		if isBinarySchema(property) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Strings(candidates)

	for _, name := range candidates {
		if required[name] {
			return name
		}
	}
	return candidates[0]
}

func isBinarySchema(ref *openapi3.SchemaRef) bool {
	if ref == nil || ref.Value == nil {
		return false
	}
	schema := ref.Value
	if !typeIncludes(schema.Type, "string") {
		return false
	}
	return schema.Format == "binary" || schema.Format == "byte"
}

func typeIncludes(types *openapi3.Types, want string) bool {
	if types == nil {
		// Schemas without an explicit type still qualify when the format
		// marks them as binary.
		return true
	}
	for _, value := range types.Slice() {
		if value == want {
			return true
		}
	}
	return false
}
