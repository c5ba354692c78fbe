package feedback

import (
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Built-in default messages keyed by canonical kind. Placeholders of the form
// {param} are interpolated from the error's Params.
var defaultMessages = map[string]string{
	model.RuleRequired:  "This field is required",
	model.RuleEmail:     "Please enter a valid email address",
	model.RuleMinLength: "Minimum {minLength} characters required",
	model.RuleMaxLength: "Maximum {maxLength} characters allowed",
	model.RuleMin:       "Minimum value is {min}",
	model.RuleMax:       "Maximum value is {max}",
	model.RulePattern:   "Invalid format",
}

// Resolver turns validation errors into display strings using a three-tier
// priority: validator-supplied message, registry override, built-in default.
// Unknown kinds fall back to a humanized form of the kind itself.
type Resolver struct {
	// Registry holds per-kind overrides; nil means built-ins only.
	Registry *Registry
	// Labeler humanizes unknown kinds. Nil uses a plain
	// underscores-to-spaces replacement.
	Labeler func(string) string
}

// Resolve returns the display string for one error. It never returns an
// empty string and never fails for malformed error data; a registry function
// that panics is the registrant's responsibility.
func (r Resolver) Resolve(err model.ValidationError) string {
	// Tier 1: the validator-supplied message always wins.
	if msg := strings.TrimSpace(err.Message); msg != "" {
		return msg
	}

	// Tier 2: registry override, by exact kind.
	if r.Registry != nil {
		if msg, ok := r.Registry.resolve(err); ok {
			return msg
		}
	}

	// Tier 3: built-in defaults. Warnings resolve through the unprefixed
	// kind so "warn:minLength" picks up the minLength default.
	kind := strings.TrimPrefix(err.Kind, model.WarnPrefix)
	if tmpl, ok := defaultMessages[kind]; ok {
		return interpolate(tmpl, err.Params)
	}

	return r.humanize(kind)
}

// ResolveAll maps a slice of errors to display strings, preserving order.
func (r Resolver) ResolveAll(errs []model.ValidationError) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, r.Resolve(err))
	}
	return out
}

func (r Resolver) humanize(kind string) string {
	if kind == "" {
		return "Invalid value"
	}
	if r.Labeler != nil {
		if label := strings.TrimSpace(r.Labeler(kind)); label != "" {
			return label
		}
	}
	return strings.ReplaceAll(kind, "_", " ")
}

// interpolate substitutes {param} placeholders from the error params. Unknown
// placeholders are left verbatim so a malformed error still yields a
// readable message.
func interpolate(tmpl string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	out := tmpl
	for key, value := range params {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}
