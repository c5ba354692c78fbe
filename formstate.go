// Package formstate turns OpenAPI operations into accessible forms with a
// shared error-visibility engine: the same strategy evaluation, message
// resolution, and ARIA derivation back every renderer, so a form behaves
// identically whether it is served as HTML or driven from a terminal.
package formstate

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/render"
)

// Request describes one generate call: where the document lives, which
// operation to render, and with which renderer.
type Request = orchestrator.Request

// Session is the runtime product of one operation: model, field tree, and
// submit lifecycle helper.
type Session = orchestrator.Session

// Options carries per-request render instructions.
type Options = render.Options

// Strategy controls when validation feedback becomes visible.
type Strategy = feedback.Strategy

// New exposes the orchestrator constructor from the top-level module.
func New(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the OpenAPI source, builds a form for the requested
// operation, and renders it using the named renderer. It is the simplest
// entry point for callers that just want output bytes.
func Generate(ctx context.Context, source pkgopenapi.Source, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// GenerateFromDocument renders a form using a pre-loaded document, bypassing
// the loader stage while still delegating to the orchestrator.
func GenerateFromDocument(ctx context.Context, doc pkgopenapi.Document, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:    &doc,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// NewSession compiles the requested operation into a runtime form tree with
// its submit helper, for hosts that drive the state themselves.
func NewSession(ctx context.Context, source pkgopenapi.Source, operationID string, options ...orchestrator.Option) (*Session, error) {
	gen := orchestrator.New(options...)
	return gen.Session(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
	})
}

// WithMessages forwards a feedback configuration (message registry, default
// strategy) to the orchestrator.
func WithMessages(cfg *feedback.Config) orchestrator.Option {
	return orchestrator.WithMessages(cfg)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name, variant)
}

// WithRegistry forwards a renderer registry, letting callers add the TUI
// renderer or their own implementations.
func WithRegistry(registry *render.Registry) orchestrator.Option {
	return orchestrator.WithRegistry(registry)
}
