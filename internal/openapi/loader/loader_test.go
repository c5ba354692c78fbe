package loader

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
)

func TestLoadFromFS(t *testing.T) {
	files := fstest.MapFS{
		"api/openapi.yaml": &fstest.MapFile{Data: []byte("openapi: 3.0.0")},
	}

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))
	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("api/openapi.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != "openapi: 3.0.0" {
		t.Fatalf("payload mismatch: %s", doc.Raw())
	}
	if doc.Source().Kind() != pkgopenapi.SourceKindFS {
		t.Fatalf("kind %q", doc.Source().Kind())
	}
}

func TestLoadFSRequiresFilesystem(t *testing.T) {
	l := New(pkgopenapi.NewLoaderOptions())
	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("missing.yaml")); err == nil {
		t.Fatalf("expected error without a configured filesystem")
	}
}

func TestLoadHTTPDisabledByDefault(t *testing.T) {
	l := New(pkgopenapi.NewLoaderOptions())
	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromURL("http://localhost/openapi.json")); err == nil {
		t.Fatalf("http sources must be rejected unless enabled")
	}
}

func TestLoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"openapi":"3.0.0"}`))
	}))
	defer server.Close()

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPFallback(0)))
	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"openapi":"3.0.0"}` {
		t.Fatalf("payload mismatch: %s", doc.Raw())
	}
}

func TestLoadRejectsOversizedDocuments(t *testing.T) {
	files := fstest.MapFS{
		"big.yaml": &fstest.MapFile{Data: bytes.Repeat([]byte("a"), maxDocumentSize+1)},
	}

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))
	_, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("big.yaml"))
	if err == nil {
		t.Fatalf("expected error for oversized document")
	}
	if !strings.Contains(err.Error(), "document limit") {
		t.Fatalf("error should name the limit, got %v", err)
	}
}

func TestLoadHTTPRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPFallback(0)))
	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL)); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
}
