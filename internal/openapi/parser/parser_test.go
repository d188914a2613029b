package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-camgen/pkg/openapi"
)

func binarySchema() *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("", &openapi3.Schema{
		Type:   &openapi3.Types{"string"},
		Format: "binary",
	})
}

func textSchema() *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("", &openapi3.Schema{
		Type: &openapi3.Types{"string"},
	})
}

func multipartBody(schema *openapi3.Schema) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Content: openapi3.Content{
				"multipart/form-data": &openapi3.MediaType{
					Schema: openapi3.NewSchemaRef("", schema),
				},
			},
		},
	}
}

func TestUploadFieldPrefersRequiredBinaryProperty(t *testing.T) {
	body := multipartBody(&openapi3.Schema{
		Type:     &openapi3.Types{"object"},
		Required: []string{"face_image", "note"},
		Properties: openapi3.Schemas{
			"audit_trail": binarySchema(),
			"face_image":  binarySchema(),
			"note":        textSchema(),
		},
	})

	if got := uploadField(body); got != "face_image" {
		t.Fatalf("uploadField = %q, want %q", got, "face_image")
	}
}

func TestUploadFieldFallsBackAlphabetically(t *testing.T) {
	body := multipartBody(&openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"zz_frame":   binarySchema(),
			"attachment": binarySchema(),
		},
	})

	if got := uploadField(body); got != "attachment" {
		t.Fatalf("uploadField = %q, want %q", got, "attachment")
	}
}

func TestUploadFieldPrefersMultipartContent(t *testing.T) {
	body := &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Content: openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: openapi3.NewSchemaRef("", &openapi3.Schema{
						Type: &openapi3.Types{"object"},
						Properties: openapi3.Schemas{
							"encoded_frame": openapi3.NewSchemaRef("", &openapi3.Schema{
								Type:   &openapi3.Types{"string"},
								Format: "byte",
							}),
						},
					}),
				},
				"multipart/form-data": &openapi3.MediaType{
					Schema: openapi3.NewSchemaRef("", &openapi3.Schema{
						Type: &openapi3.Types{"object"},
						Properties: openapi3.Schemas{
							"photo_file": binarySchema(),
						},
					}),
				},
			},
		},
	}

	if got := uploadField(body); got != "photo_file" {
		t.Fatalf("uploadField = %q, want %q", got, "photo_file")
	}
}

func TestUploadFieldEmptyWithoutBinaryProperties(t *testing.T) {
	body := multipartBody(&openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"name": textSchema(),
		},
	})

	if got := uploadField(body); got != "" {
		t.Fatalf("uploadField = %q, want empty", got)
	}
}

func TestRequestContentTypesSorted(t *testing.T) {
	body := &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Content: openapi3.Content{
				"multipart/form-data": &openapi3.MediaType{},
				"application/json":    &openapi3.MediaType{},
				"image/png":           &openapi3.MediaType{},
			},
		},
	}

	got := requestContentTypes(body)
	want := []string{"application/json", "image/png", "multipart/form-data"}
	if len(got) != len(want) {
		t.Fatalf("content types = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("content types = %v, want %v", got, want)
		}
	}
}

const kioskDocument = `{
  "openapi": "3.0.3",
  "info": { "title": "Kiosk Check-In", "version": "1.0.0" },
  "paths": {
    "/api/v1/checkin/photo": {
      "post": {
        "operationId": "submitKioskPhoto",
        "summary": "Submit a captured check-in photo",
        "requestBody": {
          "required": true,
          "content": {
            "multipart/form-data": {
              "schema": {
                "type": "object",
                "required": ["face_image"],
                "properties": {
                  "face_image": { "type": "string", "format": "binary" },
                  "attempt": { "type": "integer" }
                }
              }
            }
          }
        },
        "responses": {
          "204": { "description": "Photo accepted" }
        }
      }
    },
    "/health": {
      "get": {
        "responses": {
          "200": { "description": "OK" }
        }
      }
    }
  }
}`

func TestParserExtractsKioskOperations(t *testing.T) {
	ctx := context.Background()
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("kiosk.json"), []byte(kioskDocument))

	parser := New(pkgopenapi.NewParserOptions())
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	submit, ok := operations["submitKioskPhoto"]
	if !ok {
		t.Fatalf("submitKioskPhoto missing, got %v", operationIDs(operations))
	}
	if submit.Method != "POST" {
		t.Fatalf("method = %q, want POST", submit.Method)
	}
	if submit.Path != "/api/v1/checkin/photo" {
		t.Fatalf("path = %q", submit.Path)
	}
	if submit.UploadField != "face_image" {
		t.Fatalf("upload field = %q, want face_image", submit.UploadField)
	}
	if len(submit.ContentTypes) != 1 || submit.ContentTypes[0] != "multipart/form-data" {
		t.Fatalf("content types = %v", submit.ContentTypes)
	}

	// Operations without an operationId fall back to method:path identifiers.
	if _, ok := operations["get:/health"]; !ok {
		t.Fatalf("fallback id missing, got %v", operationIDs(operations))
	}
}

func TestParserRejectsDocumentsWithoutPaths(t *testing.T) {
	ctx := context.Background()
	const empty = `{"openapi":"3.0.3","info":{"title":"Empty","version":"1.0.0"},"paths":{}}`
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("empty.json"), []byte(empty))

	parser := New(pkgopenapi.NewParserOptions())
	if _, err := parser.Operations(ctx, doc); err == nil {
		t.Fatal("expected error for document without paths")
	} else if !strings.Contains(err.Error(), "does not contain any paths") {
		t.Fatalf("unexpected error: %v", err)
	}

	partial := New(pkgopenapi.NewParserOptions(pkgopenapi.WithPartialDocuments(true)))
	operations, err := partial.Operations(ctx, doc)
	if err != nil {
		t.Fatalf("partial documents: %v", err)
	}
	if len(operations) != 0 {
		t.Fatalf("expected no operations, got %v", operationIDs(operations))
	}
}

func operationIDs(operations map[string]pkgopenapi.Operation) []string {
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	return ids
}
