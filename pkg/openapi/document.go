package openapi

import (
	"errors"
	"fmt"
	"strings"
)

// Source identifies where an OpenAPI document originated so loaders can
// operate on files, fs.FS entries, or URLs without leaking implementation
// details into callers.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Document wraps the raw OpenAPI payload and its origin. Exposing this type
// instead of kin-openapi structs keeps the public API decoupled from the
// parsing library.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the OpenAPI payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation records the endpoint metadata a capture profile needs when its
// upload block names an operationId instead of a literal endpoint. The parser
// fills UploadField from the first binary property of the request body so
// widgets know which multipart field carries the captured frame.
type Operation struct {
	ID           string   `json:"id"`
	Method       string   `json:"method"`
	Path         string   `json:"path"`
	Summary      string   `json:"summary,omitempty"`
	Description  string   `json:"description,omitempty"`
	ContentTypes []string `json:"contentTypes,omitempty"`
	UploadField  string   `json:"uploadField,omitempty"`
}

// NewOperation validates core fields and canonicalises the HTTP method.
func NewOperation(id, method, path string) (Operation, error) {
	if id == "" {
		return Operation{}, errors.New("openapi: operation id is required")
	}
	if method == "" {
		return Operation{}, errors.New("openapi: operation method is required")
	}
	if path == "" {
		return Operation{}, errors.New("openapi: operation path is required")
	}

	return Operation{
		ID:     id,
		Method: strings.ToUpper(method),
		Path:   path,
	}, nil
}

// MustNewOperation panics when construction fails, assisting fixtures/tests.
func MustNewOperation(id, method, path string) Operation {
	op, err := NewOperation(id, method, path)
	if err != nil {
		panic(err)
	}
	return op
}

// Accepts reports whether the operation's request body takes the supplied
// media type.
func (op Operation) Accepts(mediaType string) bool {
	want := strings.ToLower(strings.TrimSpace(mediaType))
	for _, ct := range op.ContentTypes {
		if strings.ToLower(ct) == want {
			return true
		}
	}
	return false
}

// Validate performs the sanity checks callers need before handing an
// operation to the widget builder.
func (op Operation) Validate() error {
	if op.ID == "" {
		return errors.New("openapi: operation id is required")
	}
	if op.Method == "" {
		return fmt.Errorf("openapi: operation %q has no method", op.ID)
	}
	if op.Path == "" {
		return fmt.Errorf("openapi: operation %q has no path", op.ID)
	}
	return nil
}

// DebugString renders the operation for logging without dumping the whole
// request body schema.
func (op Operation) DebugString() string {
	summary := fmt.Sprintf("id=%s,method=%s,path=%s", op.ID, op.Method, op.Path)
	if op.UploadField != "" {
		summary += fmt.Sprintf(",uploadField=%s", op.UploadField)
	}
	if len(op.ContentTypes) > 0 {
		summary += fmt.Sprintf(",contentTypes=%d", len(op.ContentTypes))
	}
	return summary
}
