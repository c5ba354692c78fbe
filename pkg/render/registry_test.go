package render

import (
	"context"
	"testing"

	"github.com/goliatone/go-formstate/pkg/form"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, *form.Group, Options) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "html"})

	if !registry.Has("html") {
		t.Fatalf("renderer should be registered")
	}
	r, err := registry.Get("html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if r.Name() != "html" {
		t.Fatalf("name %q", r.Name())
	}
	if _, err := registry.Get("tui"); err == nil {
		t.Fatalf("missing renderer must error")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "html"})
	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("duplicate registration must fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("nil renderer must fail")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("unnamed renderer must fail")
	}
}

func TestRegistryListIsSorted(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "tui"})
	registry.MustRegister(stubRenderer{name: "html"})

	names := registry.List()
	if len(names) != 2 || names[0] != "html" || names[1] != "tui" {
		t.Fatalf("list %v", names)
	}
}
