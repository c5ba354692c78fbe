package form

import (
	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/signal"
)

// Field is one runtime leaf of the form tree. Value and touched state live in
// versioned cells; validators re-run when the value changes and the resulting
// error list is memoized against the value version, so repeated reads within
// one evaluation are cheap and consistent.
type Field struct {
	name string
	path string

	// Def carries the declarative definition the field was built from, for
	// renderers that need labels, placeholders, or types. Zero for fields
	// constructed directly.
	Def model.Field

	value      *signal.Cell[any]
	touched    *signal.Cell[bool]
	validators []Validator
	errs       *signal.Memo[[]model.ValidationError]

	focus    func()
	disabled bool
	hidden   bool
	strategy feedback.Strategy
}

// NewField creates a field with the given leaf name and validators.
func NewField(name string, validators ...Validator) *Field {
	f := &Field{
		name:       name,
		path:       name,
		value:      signal.NewCell[any](nil),
		touched:    signal.NewCell(false),
		validators: validators,
		strategy:   feedback.StrategyInherit,
	}
	f.errs = signal.NewMemo(f.runValidators, f.value)
	return f
}

// Name returns the leaf name.
func (f *Field) Name() string { return f.name }

// Path returns the full dotted path, e.g. "address.city". Implements the
// feedback engine's Named contract.
func (f *Field) Path() string { return f.path }

func (f *Field) setPrefix(prefix string) {
	f.path = model.JoinPath(prefix, f.name)
}

// Value returns the current value.
func (f *Field) Value() any { return f.value.Get() }

// SetValue replaces the value, triggering revalidation on the next read.
func (f *Field) SetValue(value any) { f.value.Set(value) }

// Touched reports whether the field has been interacted with.
func (f *Field) Touched() bool { return f.touched.Get() }

// MarkTouched flags the field as interacted-with, typically on blur.
func (f *Field) MarkTouched() { f.touched.Set(true) }

// ResetTouched clears the touched flag, e.g. after a form reset.
func (f *Field) ResetTouched() { f.touched.Set(false) }

// Attach appends validators. Evaluation order is attachment order.
func (f *Field) Attach(validators ...Validator) {
	f.validators = append(f.validators, validators...)
	f.errs = signal.NewMemo(f.runValidators, f.value)
}

// Errors runs the attached validators against the current value, in
// attachment order. The result is memoized per value version.
func (f *Field) Errors() []model.ValidationError { return f.errs.Get() }

// Invalid reports whether any validation error is attached.
func (f *Field) Invalid() bool { return len(f.Errors()) > 0 }

// Required reports whether a blocking required rule is attached.
func (f *Field) Required() bool {
	for _, v := range f.validators {
		if v.Kind == model.RuleRequired {
			return true
		}
	}
	return false
}

// Disabled reports the disabled flag.
func (f *Field) Disabled() bool { return f.disabled }

// SetDisabled toggles the disabled flag.
func (f *Field) SetDisabled(disabled bool) { f.disabled = disabled }

// Hidden reports the hidden flag.
func (f *Field) Hidden() bool { return f.hidden }

// SetHidden toggles the hidden flag.
func (f *Field) SetHidden(hidden bool) { f.hidden = hidden }

// Strategy returns the per-field display strategy; StrategyInherit defers to
// the form level.
func (f *Field) Strategy() feedback.Strategy { return f.strategy }

// SetStrategy overrides the display strategy for this field alone.
func (f *Field) SetStrategy(strategy feedback.Strategy) { f.strategy = strategy }

// AttachFocus installs the control's native focus hook.
func (f *Field) AttachFocus(fn func()) { f.focus = fn }

// FocusHook returns the installed focus hook, nil when absent.
func (f *Field) FocusHook() func() { return f.focus }

// Focus invokes the focus hook, reporting whether one was installed.
func (f *Field) Focus() bool {
	if f.focus == nil {
		return false
	}
	f.focus()
	return true
}

// Snapshot produces the consistent read-only view the feedback engine
// consumes. Value and touched state are read once each; the error list comes
// from the same value version.
func (f *Field) Snapshot() feedback.Snapshot {
	errs := f.Errors()
	return feedback.Snapshot{
		Invalid:  len(errs) > 0,
		Touched:  f.Touched(),
		Required: f.Required(),
		Errors:   errs,
		Readable: true,
	}
}

func (f *Field) runValidators() []model.ValidationError {
	value := f.value.Get()
	var out []model.ValidationError
	for _, v := range f.validators {
		if v.Check == nil {
			continue
		}
		if err := v.Check(value); err != nil {
			out = append(out, *err)
		}
	}
	return out
}
