package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/feedback"
)

// Options describe per-request data renderers use to customise output without
// mutating the form tree.
type Options struct {
	// Title is the heading rendered above the form. Falls back to the form
	// model's title when empty.
	Title string

	// Action and Method drive the HTML form element. Renderers translate
	// non-browser verbs (PATCH/PUT/DELETE) into POST plus a hidden _method
	// input.
	Action string
	Method string

	// Strategy is the form-level display strategy fields inherit when they
	// carry no override of their own.
	Strategy feedback.Strategy

	// Status is the submit lifecycle state at render time. The renderer
	// evaluates visibility against this value, so server-side renders after a
	// failed submit reveal on-submit feedback.
	Status feedback.SubmittedStatus

	// Config supplies the message registry, labeler, and related engine
	// settings. Nil falls back to the package defaults.
	Config *feedback.Config

	// Values pre-populates controls by dotted field path before rendering.
	Values map[string]any

	// Theme carries resolved theme partials, tokens, and asset resolution.
	// Nil renders with the built-in formstate-* classes.
	Theme *theme.RendererConfig
}
