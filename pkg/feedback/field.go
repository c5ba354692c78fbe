package feedback

import (
	"github.com/goliatone/go-formstate/pkg/aria"
)

// FieldFeedback is the one-stop per-field computation: visibility decisions,
// resolved message lists, generated ids, and the ARIA attribute triple, all
// derived from a single state snapshot taken at construction.
type FieldFeedback struct {
	Name      string
	Snapshot  Snapshot
	Partition Partition

	// ShowErrors/ShowWarnings carry the strategy evaluator's decision.
	// Warnings reuse the identical timing as blocking errors.
	ShowErrors   bool
	ShowWarnings bool

	// Errors and Warnings hold resolved display strings for each bucket,
	// in validator order. They are populated regardless of visibility;
	// the Show flags decide rendering.
	Errors   []string
	Warnings []string

	ErrorID   string
	WarningID string
	Attrs     aria.Attributes
}

type forConfig struct {
	name         string
	strategy     Strategy
	formStrategy Strategy
	status       SubmittedStatus
	cfg          *Config
	describedBy  string
}

// ForOption customises a For computation.
type ForOption func(*forConfig)

// WithName sets the field's resolved logical name.
func WithName(name string) ForOption {
	return func(fc *forConfig) { fc.name = name }
}

// WithStrategy sets the per-field strategy; StrategyInherit defers to the
// form-level strategy.
func WithStrategy(strategy Strategy) ForOption {
	return func(fc *forConfig) { fc.strategy = strategy }
}

// WithFormStrategy sets the form-level strategy consulted when the field
// strategy is absent or inherit.
func WithFormStrategy(strategy Strategy) ForOption {
	return func(fc *forConfig) { fc.formStrategy = strategy }
}

// WithStatus supplies the form's submitted status.
func WithStatus(status SubmittedStatus) ForOption {
	return func(fc *forConfig) { fc.status = status }
}

// WithConfig injects the process configuration; nil falls back to Default().
func WithConfig(cfg *Config) ForOption {
	return func(fc *forConfig) { fc.cfg = cfg }
}

// WithDescribedBy preserves a describedby value already present on the
// control (e.g. a hint id); generated ids are appended to it, never replace
// it.
func WithDescribedBy(existing string) ForOption {
	return func(fc *forConfig) { fc.describedBy = existing }
}

// Named is implemented by runtime fields that know their own dotted path.
type Named interface {
	Path() string
}

// For computes the complete feedback view for one field. The field input
// accepts anything Adapt understands. The snapshot is taken exactly once,
// so classification, visibility, messages, and ARIA derivation observe
// consistent state.
func For(field any, options ...ForOption) FieldFeedback {
	fc := forConfig{strategy: StrategyInherit}
	for _, opt := range options {
		if opt != nil {
			opt(&fc)
		}
	}
	cfg := orDefault(fc.cfg)

	if fc.name == "" {
		if named, ok := field.(Named); ok {
			fc.name = named.Path()
		}
	}

	formStrategy := fc.formStrategy
	if formStrategy == "" {
		formStrategy = cfg.DefaultStrategyValue()
	}
	strategy := ResolveStrategy(fc.strategy, formStrategy)

	snap := Adapt(field)
	partition := Classify(snap.Errors)
	show := ShouldShow(snap, strategy, fc.status)
	resolver := cfg.Resolver()

	fb := FieldFeedback{
		Name:         fc.name,
		Snapshot:     snap,
		Partition:    partition,
		ShowErrors:   show && partition.HasBlocking(),
		ShowWarnings: show && partition.HasWarnings(),
		Errors:       resolver.ResolveAll(partition.Blocking),
		Warnings:     resolver.ResolveAll(partition.Warnings),
		ErrorID:      aria.ErrorID(fc.name),
		WarningID:    aria.WarningID(fc.name),
	}

	fb.Attrs = aria.Compute(aria.State{
		Readable:     snap.Readable,
		Touched:      snap.Touched,
		HasBlocking:  partition.HasBlocking(),
		Required:     snap.Required,
		ShowErrors:   fb.ShowErrors,
		ShowWarnings: fb.ShowWarnings,
		Name:         fc.name,
		DescribedBy:  fc.describedBy,
	})
	return fb
}
