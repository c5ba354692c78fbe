// Package html renders a runtime form tree as server-side HTML. Every field
// row is derived through the feedback engine, so error visibility, message
// resolution, and ARIA wiring match what a client runtime would compute for
// the same state.
package html

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/aria"
	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/render/template"
	"github.com/goliatone/go-formstate/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	// RendererName is the registry key for this renderer.
	RendererName = "html"

	defaultFormTemplate = "form"
	defaultSubmitLabel  = "Submit"
)

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// sanitizeMessage strips markup from resolved feedback messages before they
// reach the |safe templates. Registry templates are caller-supplied strings,
// so they get the same treatment as everything else.
func sanitizeMessage(raw string) string {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(messagePolicy.Sanitize(raw))
}

// Option configures the renderer.
type Option func(*Renderer)

// WithEngine replaces the template engine, e.g. to load templates from disk
// instead of the embedded set.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Renderer) { r.engine = engine }
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(r *Renderer) { r.submitLabel = label }
}

// Renderer implements render.Renderer for HTML output.
type Renderer struct {
	engine      template.TemplateRenderer
	submitLabel string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer. Without options it renders from the
// embedded template set.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{submitLabel: defaultSubmitLabel}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		templates, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("html renderer: embedded templates: %w", err)
		}
		engine, err := gotemplate.New(gotemplate.WithFS(templates))
		if err != nil {
			return nil, fmt.Errorf("html renderer: template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return RendererName }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render walks the form tree and produces the full form document fragment.
func (r *Renderer) Render(ctx context.Context, root *form.Group, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("html renderer: form tree is nil")
	}

	for path, value := range options.Values {
		if field := root.FieldAt(path); field != nil {
			field.SetValue(value)
		}
	}

	view := r.buildView(root, options)

	templateName := defaultFormTemplate
	if options.Theme != nil {
		if partial := options.Theme.Partials["forms.form"]; partial != "" {
			templateName = partial
		}
	}

	rendered, err := r.engine.RenderTemplate(templateName, view)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	return []byte(rendered), nil
}

func (r *Renderer) buildView(root *form.Group, options render.Options) map[string]any {
	cfg := options.Config

	var fieldViews []map[string]any
	var summaryItems []map[string]any

	for _, field := range root.Fields() {
		fb := feedback.For(field,
			feedback.WithStrategy(field.Strategy()),
			feedback.WithFormStrategy(options.Strategy),
			feedback.WithStatus(options.Status),
			feedback.WithConfig(cfg),
			feedback.WithDescribedBy(hintDescribedBy(field)),
		)
		fieldViews = append(fieldViews, fieldView(field, fb))

		if fb.ShowErrors {
			for _, message := range fb.Errors {
				summaryItems = append(summaryItems, map[string]any{
					"path":       field.Path(),
					"control_id": aria.ControlID(field.Path()),
					"message":    sanitizeMessage(message),
				})
			}
		}
	}

	method := strings.ToUpper(options.Method)
	if method == "" {
		method = "POST"
	}
	browserMethod := method
	methodOverride := ""
	if method != "GET" && method != "POST" {
		browserMethod = "POST"
		methodOverride = method
	}

	view := map[string]any{
		"form": map[string]any{
			"id":              "fs-form",
			"title":           options.Title,
			"description":     "",
			"action":          options.Action,
			"method":          browserMethod,
			"method_override": methodOverride,
			"submit_label":    r.submitLabel,
		},
		"summary": map[string]any{
			"show":    len(summaryItems) > 0,
			"heading": summaryHeading(len(summaryItems)),
			"items":   summaryItems,
		},
		"fields":  fieldViews,
		"classes": chromeClasses(options),
		"theme":   themeView(options),
	}
	return view
}

func fieldView(field *form.Field, fb feedback.FieldFeedback) map[string]any {
	def := field.Def
	label := def.Label
	if label == "" {
		label = model.DefaultLabeler(field.Name())
	}

	errors := make([]string, 0, len(fb.Errors))
	for _, message := range fb.Errors {
		errors = append(errors, sanitizeMessage(message))
	}
	warnings := make([]string, 0, len(fb.Warnings))
	for _, message := range fb.Warnings {
		warnings = append(warnings, sanitizeMessage(message))
	}

	return map[string]any{
		"path":          field.Path(),
		"control_id":    aria.ControlID(field.Path()),
		"label":         label,
		"placeholder":   def.Placeholder,
		"hint":          def.Description,
		"hint_id":       hintIDFor(field),
		"input_type":    inputType(def),
		"value":         stringValue(field.Value()),
		"required":      field.Required(),
		"required_attr": fb.Attrs.Required,
		"invalid_attr":  fb.Attrs.Invalid,
		"described_by":  fb.Attrs.DescribedBy,
		"show_errors":   fb.ShowErrors,
		"show_warnings": fb.ShowWarnings,
		"errors":        errors,
		"warnings":      warnings,
		"error_id":      fb.ErrorID,
		"warning_id":    fb.WarningID,
	}
}

func hintDescribedBy(field *form.Field) string {
	if field.Def.Description == "" {
		return ""
	}
	return hintIDFor(field)
}

func hintIDFor(field *form.Field) string {
	return aria.HintID(field.Path())
}

// inputType maps declarative field types and formats onto HTML input types.
func inputType(def model.Field) string {
	switch def.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return "number"
	case model.FieldTypeBoolean:
		return "checkbox"
	}
	switch strings.ToLower(def.Format) {
	case "email":
		return "email"
	case "password":
		return "password"
	case "date":
		return "date"
	case "time":
		return "time"
	case "date-time", "datetime", "datetime-local":
		return "datetime-local"
	case "uri", "url":
		return "url"
	case "tel", "phone":
		return "tel"
	}
	return "text"
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func summaryHeading(count int) string {
	if count == 1 {
		return "There is 1 problem with this form"
	}
	return fmt.Sprintf("There are %d problems with this form", count)
}

// chromeClasses resolves the CSS class per chrome slot: theme tokens named
// "class.<slot>" win, the formstate-* defaults apply otherwise.
func chromeClasses(options render.Options) map[string]any {
	defaults := map[string]string{
		"form":          "formstate-form",
		"title":         "formstate-title",
		"description":   "formstate-description",
		"summary":       "formstate-summary",
		"field":         "formstate-field",
		"field_invalid": "formstate-field--invalid",
		"field_warned":  "formstate-field--warned",
		"label":         "formstate-label",
		"required":      "formstate-required",
		"input":         "formstate-input",
		"hint":          "formstate-hint",
		"errors":        "formstate-errors",
		"warnings":      "formstate-warnings",
		"submit":        "formstate-submit",
	}

	out := make(map[string]any, len(defaults))
	for slot, class := range defaults {
		if options.Theme != nil {
			if themed := options.Theme.Tokens["class."+slot]; themed != "" {
				out[slot] = themed
				continue
			}
		}
		out[slot] = class
	}
	return out
}

func themeView(options render.Options) map[string]any {
	if options.Theme == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":           options.Theme.Theme,
		"variant":        options.Theme.Variant,
		"css_vars_style": cssVarsStyle(options.Theme.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
