package feedback

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrorRef is one entry of a form's flattened error summary: the error, the
// dotted path of its originating field, and that field's focus hook. Focus is
// nil when the control has no focus capability.
type ErrorRef struct {
	Path  string
	Err   model.ValidationError
	Focus func()
}

// ErrorSummary is the host contract this engine relies on instead of
// re-implementing tree traversal: the form framework returns all current
// validation errors across the whole (possibly nested/array) structure in
// its own stable traversal order, each annotated with a back-reference to
// the originating field.
type ErrorSummary interface {
	ErrorRefs() []ErrorRef
}

// FocusFirstInvalid focuses the control behind the first blocking error in
// the form's summary. It returns true iff a focus action was actually issued;
// false when the form has no blocking errors, the first blocking entry has no
// resolvable field, or the field lacks a focus hook (logged as a diagnostic,
// never fatal). Callers must invoke this only in direct response to a user
// action such as a submit attempt, never on render, to avoid stealing
// keyboard focus.
func FocusFirstInvalid(form ErrorSummary, logger zerolog.Logger) bool {
	if form == nil {
		return false
	}

	for _, ref := range form.ErrorRefs() {
		if IsWarningKind(ref.Err.Kind) {
			continue
		}
		if ref.Focus == nil {
			logger.Warn().
				Str("field", ref.Path).
				Str("kind", ref.Err.Kind).
				Msg("feedback: first invalid field has no focus hook")
			return false
		}
		ref.Focus()
		return true
	}
	return false
}
