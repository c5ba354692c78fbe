// Package orchestrator coordinates the full pipeline from OpenAPI document to
// rendered form: load, parse, build the declarative model, compile the
// runtime tree, and hand it to a renderer. Every stage is injectable; the
// defaults cover the common path with a single constructor call.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/internal/builder"
	internalLoader "github.com/goliatone/go-formstate/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formstate/internal/openapi/parser"
	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
)

const defaultRendererName = html.RendererName

// ModelBuilder turns a parsed OpenAPI operation into a declarative form
// model.
type ModelBuilder interface {
	Build(op pkgopenapi.Operation) (model.FormModel, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) { o.loader = loader }
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) { o.parser = parser }
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(b ModelBuilder) Option {
	return func(o *Orchestrator) { o.builder = b }
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) { o.registry = registry }
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) { o.defaultRenderer = name }
}

// WithMessages installs the feedback configuration (message registry,
// default strategy) every render request inherits.
func WithMessages(cfg *feedback.Config) Option {
	return func(o *Orchestrator) { o.messages = cfg }
}

// WithThemeSelector resolves the named theme/variant ahead of rendering so
// renderers receive partials, tokens, and asset URLs.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithThemeFallbacks overrides the fallback partials used when deriving
// renderer configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) { o.themeFallbacks = fallbacks }
}

// WithLogger installs the pipeline logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// Orchestrator coordinates loader, parser, builder, runtime compilation, and
// rendering. Missing dependencies are initialised with the built-in
// implementations.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	parser          pkgopenapi.Parser
	builder         ModelBuilder
	registry        *render.Registry
	defaultRenderer string
	messages        *feedback.Config

	themeSelector  theme.ThemeSelector
	themeName      string
	themeVariant   string
	themeFallbacks map[string]string

	logger          zerolog.Logger
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form from an OpenAPI
// operation.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader when they already hold a
	// loaded payload.
	Document *pkgopenapi.Document

	// OperationID selects which OpenAPI operation becomes a form.
	OperationID string

	// Renderer names the renderer to use; empty falls back to the configured
	// default.
	Renderer string

	// Options carries per-request render instructions: prefilled values,
	// submit status, strategy overrides. Fields left zero are filled from the
	// form model's metadata and the orchestrator configuration.
	Options render.Options
}

// Session is the runtime product of one operation: the declarative model,
// the compiled field tree, and the submit lifecycle helper bound to it.
type Session struct {
	Model    model.FormModel
	Root     *form.Group
	Helper   *form.SubmitHelper
	Strategy feedback.Strategy
}

// Session loads, parses, and compiles the requested operation without
// rendering, for host applications that drive the form state themselves.
func (o *Orchestrator) Session(ctx context.Context, req Request) (*Session, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.OperationID == "" {
		return nil, errors.New("orchestrator: operation id is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse operations: %w", err)
	}

	op, ok := operations[req.OperationID]
	if !ok {
		return nil, fmt.Errorf("orchestrator: operation %q not found", req.OperationID)
	}

	formModel, err := o.builder.Build(op)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form model: %w", err)
	}

	root, err := form.Build(formModel)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: compile form tree: %w", err)
	}

	strategy, err := formStrategy(formModel)
	if err != nil {
		return nil, err
	}

	return &Session{
		Model:    formModel,
		Root:     root,
		Helper:   form.NewSubmitHelper(root),
		Strategy: strategy,
	}, nil
}

// Generate executes the full pipeline and returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	session, err := o.Session(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options, err := o.renderOptions(session, req.Options)
	if err != nil {
		return nil, err
	}

	o.logger.Debug().
		Str("operation", req.OperationID).
		Str("renderer", renderer.Name()).
		Msg("orchestrator: rendering form")

	output, err := renderer.Render(ctx, session.Root, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// renderOptions fills request options from the session: title, action, and
// method come from the form model unless the caller set them, the resolved
// form strategy applies when the request carries none, and the theme is
// resolved through the selector when configured.
func (o *Orchestrator) renderOptions(session *Session, options render.Options) (render.Options, error) {
	if options.Title == "" {
		options.Title = session.Model.Title
	}
	if options.Action == "" {
		options.Action = session.Model.Metadata["path"]
	}
	if options.Method == "" {
		options.Method = session.Model.Metadata["method"]
	}
	if options.Strategy == "" || options.Strategy == feedback.StrategyInherit {
		options.Strategy = session.Strategy
	}
	if options.Config == nil {
		options.Config = o.messages
	}
	if options.Theme == nil && o.themeSelector != nil {
		resolved, err := render.ResolveTheme(o.themeSelector, o.themeName, o.themeVariant, o.themeFallbacks)
		if err != nil {
			return options, fmt.Errorf("orchestrator: resolve theme: %w", err)
		}
		options.Theme = resolved
	}
	return options, nil
}

func formStrategy(formModel model.FormModel) (feedback.Strategy, error) {
	raw, ok := formModel.Metadata["strategy"]
	if !ok || raw == "" {
		return feedback.StrategyInherit, nil
	}
	strategy, err := feedback.ParseStrategy(raw)
	if err != nil {
		return "", fmt.Errorf("orchestrator: form strategy: %w", err)
	}
	return strategy, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = builder.New(builder.Options{})
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.messages == nil {
		o.messages = feedback.Default()
	}

	o.defaultsApplied = true
}
