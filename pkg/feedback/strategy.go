package feedback

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/signal"
)

// Strategy is the policy governing when (not whether) a field's feedback
// becomes visible. Validity gates whether; strategy only gates timing.
type Strategy string

const (
	// StrategyInherit is a sentinel: defer to the form-level strategy.
	StrategyInherit Strategy = "inherit"
	// StrategyImmediate shows feedback as soon as the field is invalid.
	StrategyImmediate Strategy = "immediate"
	// StrategyOnTouch shows feedback once the field has been touched (or the
	// form submitted). The default.
	StrategyOnTouch Strategy = "on-touch"
	// StrategyOnSubmit shows feedback only after a submit attempt started.
	StrategyOnSubmit Strategy = "on-submit"
	// StrategyManual suppresses automatic visibility entirely; callers render
	// feedback themselves via direct error access.
	StrategyManual Strategy = "manual"
)

// DefaultStrategy is used when neither the field nor the form specifies one.
const DefaultStrategy = StrategyOnTouch

// SubmittedStatus is the form-level lifecycle of the most recent submit
// attempt.
type SubmittedStatus string

const (
	StatusUnsubmitted SubmittedStatus = "unsubmitted"
	StatusSubmitting  SubmittedStatus = "submitting"
	StatusSubmitted   SubmittedStatus = "submitted"
)

// ParseStrategy converts a configuration string into a Strategy.
func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(raw) {
	case StrategyInherit, StrategyImmediate, StrategyOnTouch, StrategyOnSubmit, StrategyManual:
		return Strategy(raw), nil
	case "":
		return DefaultStrategy, nil
	default:
		return "", fmt.Errorf("feedback: unknown strategy %q", raw)
	}
}

// ResolveStrategy applies the field/form/default hierarchy: an explicit
// per-field strategy wins, the inherit sentinel (or absence) defers to the
// form-level strategy, and when both are absent the default applies.
func ResolveStrategy(field, form Strategy) Strategy {
	if field != "" && field != StrategyInherit {
		return field
	}
	if form != "" && form != StrategyInherit {
		return form
	}
	return DefaultStrategy
}

// ShouldShow is the central decision function: given a consistent field
// snapshot, a resolved strategy, and the submitted status, it reports whether
// validation feedback should currently be visible.
//
// on-touch consults the submitted status in addition to the touched flag.
// The submit helper marks every field touched when an attempt begins, which
// makes the extra check redundant in-process, but the evaluator stays correct
// for detached snapshots that never saw that side effect. With
// StatusUnsubmitted (or a zero status) the check degrades to invalid AND
// touched.
func ShouldShow(snap Snapshot, strategy Strategy, status SubmittedStatus) bool {
	if !snap.Invalid {
		return false
	}

	submitted := status != "" && status != StatusUnsubmitted

	switch strategy {
	case StrategyImmediate:
		return true
	case StrategyOnSubmit:
		return submitted
	case StrategyManual:
		return false
	case StrategyOnTouch:
		return snap.Touched || submitted
	default:
		// Unrecognized strategies fall back to on-touch semantics.
		return snap.Touched || submitted
	}
}

// Visibility wraps ShouldShow into a reactive boolean. The field input
// accepts anything Adapt understands; strategy and status may be nil, which
// resolve to the defaults. Each evaluation adapts the field exactly once so
// the decision sees one consistent snapshot.
func Visibility(field any, strategy signal.Source[Strategy], status signal.Source[SubmittedStatus]) signal.Source[bool] {
	return func() bool {
		snap := Adapt(field)
		st := signal.Resolve(strategy)
		if st == "" {
			st = DefaultStrategy
		}
		return ShouldShow(snap, st, signal.Resolve(status))
	}
}
