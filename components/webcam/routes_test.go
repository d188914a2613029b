package webcam

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPath(t *testing.T) {
	cases := []struct {
		name     string
		basePath string
		fns      []OptionFn
		want     string
	}{
		{name: "empty base", basePath: "", want: "/api/webcam"},
		{name: "root base", basePath: "/", want: "/api/webcam"},
		{name: "admin base", basePath: "/admin", want: "/admin/api/webcam"},
		{name: "missing leading slash", basePath: "admin", want: "/admin/api/webcam"},
		{name: "trailing slash trimmed", basePath: "/admin/", want: "/admin/api/webcam"},
		{
			name:     "custom route path",
			basePath: "/admin",
			fns:      []OptionFn{WithRoutePath("/capture/widget")},
			want:     "/admin/capture/widget",
		},
		{
			name:     "route path without slash",
			basePath: "",
			fns:      []OptionFn{WithRoutePath("widget")},
			want:     "/widget",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MountPath(tc.basePath, tc.fns...); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	gen := &stubGenerator{fragment: []byte(`<div data-camgen-widget></div>`)}

	pattern, err := RegisterRoutes(mux, "/admin", WithGenerator(gen))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pattern != "/admin/api/webcam" {
		t.Fatalf("expected pattern /admin/api/webcam, got %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, pattern, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload widgetResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Data.HTML != `<div data-camgen-widget></div>` {
		t.Fatalf("unexpected fragment: %q", payload.Data.HTML)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/admin"); err == nil {
		t.Fatal("expected error for nil mux")
	}
}

func TestComponent_RegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	gen := &stubGenerator{fragment: []byte(`<div></div>`)}

	component := New(WithGenerator(gen), WithRoutePath("/widgets/webcam"))
	pattern, err := component.RegisterRoutes(mux, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pattern != "/widgets/webcam" {
		t.Fatalf("expected pattern /widgets/webcam, got %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, pattern, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(gen.requests) != 1 {
		t.Fatalf("expected one generate call, got %d", len(gen.requests))
	}
}

func TestComponent_OptionsReturnsCopy(t *testing.T) {
	component := New(WithDefaultProfile("photo_id"))

	opts := component.Options()
	if opts.DefaultProfile != "photo_id" {
		t.Fatalf("expected configured default profile, got %q", opts.DefaultProfile)
	}

	opts.DefaultProfile = "mutated"
	if component.Options().DefaultProfile != "photo_id" {
		t.Fatal("expected component options to be insulated from caller mutation")
	}
}
