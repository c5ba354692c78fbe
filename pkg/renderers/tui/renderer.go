// Package tui renders a form tree as an interactive terminal session. Each
// leaf becomes a prompt, and the feedback engine decides when validation
// messages surface: an on-submit field stays quiet while values are entered
// and is revisited once the submit pass reveals it.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
)

// RendererName is the registry key for this renderer.
const RendererName = "tui"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithLogger installs the session logger. Focus diagnostics go through it.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	logger       zerolog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		logger:       zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		driver, err := newSurveyDriver()
		if err != nil {
			return nil, err
		}
		r.driver = driver
	}
	return r, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return RendererName }

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render walks the tree prompting for every visible leaf, runs the submit
// pass, and serializes the collected values. Pre-supplied options.Values
// become prompt defaults.
func (r *Renderer) Render(ctx context.Context, root *form.Group, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errors.New("tui: form tree is nil")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	for path, value := range options.Values {
		if field := root.FieldAt(path); field != nil {
			field.SetValue(value)
		}
	}

	if options.Title != "" {
		_ = r.driver.Info(ctx, options.Title)
	}

	for _, field := range root.Fields() {
		if err := r.promptField(ctx, field, options, options.Status); err != nil {
			return nil, err
		}
	}

	if err := r.submitPass(ctx, root, options); err != nil {
		return nil, err
	}

	return r.serialize(root.Values())
}

// promptField asks for one leaf and repeats while the answer leaves visible
// blocking errors. Errors the current strategy hides are accepted silently;
// the submit pass revisits them. Warnings are announced but never re-ask.
func (r *Renderer) promptField(ctx context.Context, field *form.Field, options render.Options, status feedback.SubmittedStatus) error {
	if field.Hidden() || field.Disabled() {
		return nil
	}

	for {
		if err := r.ask(ctx, field); err != nil {
			return err
		}
		field.MarkTouched()

		fb := feedback.For(field,
			feedback.WithStrategy(field.Strategy()),
			feedback.WithFormStrategy(options.Strategy),
			feedback.WithStatus(status),
			feedback.WithConfig(options.Config),
		)
		if fb.ShowWarnings {
			for _, message := range fb.Warnings {
				_ = r.driver.Info(ctx, fmt.Sprintf("Warning %s: %s", field.Path(), message))
			}
		}
		if fb.ShowErrors {
			for _, message := range fb.Errors {
				_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", field.Path(), message))
			}
			continue
		}
		return nil
	}
}

func (r *Renderer) ask(ctx context.Context, field *form.Field) error {
	def := field.Def
	label := displayLabel(field)
	help := def.Description

	switch def.Type {
	case model.FieldTypeBoolean:
		current, _ := field.Value().(bool)
		resp, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: current,
			Help:    help,
		})
		if err != nil {
			return err
		}
		field.SetValue(resp)
		return nil
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return r.askNumber(ctx, field, label, help)
	}

	if len(def.Enum) > 0 {
		return r.askEnum(ctx, field, label, help)
	}

	cfg := InputConfig{
		Message:     label,
		Default:     stringValue(field.Value()),
		Help:        help,
		Placeholder: def.Placeholder,
	}
	var response string
	var err error
	if strings.EqualFold(def.Format, "password") {
		response, err = r.driver.Password(ctx, cfg)
	} else {
		response, err = r.driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}
	field.SetValue(response)
	return nil
}

// askNumber keeps re-asking until the input parses; emptiness clears the
// value so a required rule can catch it.
func (r *Renderer) askNumber(ctx context.Context, field *form.Field, label, help string) error {
	integer := field.Def.Type == model.FieldTypeInteger
	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: stringValue(field.Value()),
			Help:    help,
		})
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			field.SetValue(nil)
			return nil
		}
		if integer {
			if parsed, err := strconv.ParseInt(input, 10, 64); err == nil {
				field.SetValue(parsed)
				return nil
			}
		} else {
			if parsed, err := strconv.ParseFloat(input, 64); err == nil {
				field.SetValue(parsed)
				return nil
			}
		}
		_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: not a number", field.Path()))
	}
}

func (r *Renderer) askEnum(ctx context.Context, field *form.Field, label, help string) error {
	options := stringifyEnum(field.Def.Enum)
	defaultIdx := -1
	if current, ok := field.Value().(string); ok {
		defaultIdx = indexOf(options, current)
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         help,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", field.Path()))
			continue
		}
		field.SetValue(options[idx])
		return nil
	}
}

// submitPass revisits the fields a submitted status reveals as blocking, one
// at a time, until the tree is clean. Focus routing goes through the error
// summary so terminal and DOM hosts agree on which field comes first.
func (r *Renderer) submitPass(ctx context.Context, root *form.Group, options render.Options) error {
	var focused *form.Field
	for _, field := range root.Fields() {
		if field.FocusHook() != nil {
			continue
		}
		field := field
		field.AttachFocus(func() { focused = field })
	}

	for {
		focused = nil
		if !feedback.FocusFirstInvalid(root, r.logger) {
			return nil
		}
		if focused == nil {
			// a caller-installed hook consumed the focus action
			focused = firstBlocking(root)
			if focused == nil {
				return nil
			}
		}

		fb := feedback.For(focused,
			feedback.WithStrategy(focused.Strategy()),
			feedback.WithFormStrategy(options.Strategy),
			feedback.WithStatus(feedback.StatusSubmitted),
			feedback.WithConfig(options.Config),
		)
		if fb.ShowErrors {
			for _, message := range fb.Errors {
				_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", focused.Path(), message))
			}
		}
		if err := r.promptField(ctx, focused, options, feedback.StatusSubmitted); err != nil {
			return err
		}
	}
}

func firstBlocking(root *form.Group) *form.Field {
	for _, field := range root.Fields() {
		for _, err := range field.Errors() {
			if feedback.IsBlockingKind(err.Kind) {
				return field
			}
		}
	}
	return nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(field *form.Field) string {
	if field.Def.Label != "" {
		return field.Def.Label
	}
	return model.DefaultLabeler(field.Name())
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for path, value := range values {
		if value == nil {
			continue
		}
		flattened.Set(path, fmt.Sprint(value))
	}
	return flattened.Encode()
}

func prettyPrint(values map[string]any) string {
	paths := make([]string, 0, len(values))
	for path := range values {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, path := range paths {
		if values[path] == nil {
			continue
		}
		fmt.Fprintf(&b, "%s=%v\n", path, values[path])
	}
	return b.String()
}
