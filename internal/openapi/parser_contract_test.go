package openapi_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-camgen/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-camgen/pkg/openapi"
	"github.com/goliatone/go-camgen/pkg/testsupport"
)

func TestParser_Operations_CaptureDocument(t *testing.T) {
	ctx := context.Background()
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "capture.yaml"))
	parse := parser.New(pkgopenapi.NewParserOptions())

	got, err := parse.Operations(ctx, doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	goldenPath := filepath.Join("testdata", "capture_operations.golden.json")
	testsupport.WriteGolden(t, goldenPath, got)
	want := testsupport.MustLoadOperations(t, goldenPath)

	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
