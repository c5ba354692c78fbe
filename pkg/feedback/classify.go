// Package feedback is the error-visibility decision engine: it adapts raw
// field state, splits errors into blocking and warning buckets, decides per
// strategy whether feedback is currently visible, and resolves display
// messages. The package is pure; the one imperative helper is
// FocusFirstInvalid.
package feedback

import (
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Severity is the first-class distinction the warn: kind prefix encodes. It
// is computed once at classification time and carried alongside the raw
// error so downstream code never re-parses the kind string.
type Severity int

const (
	SeverityBlocking Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "blocking"
}

// IsWarningKind reports whether a kind denotes a non-blocking warning. Only a
// non-empty kind strictly longer than the prefix qualifies; a bare "warn:" or
// empty kind is treated as blocking.
func IsWarningKind(kind string) bool {
	return len(kind) > len(model.WarnPrefix) && strings.HasPrefix(kind, model.WarnPrefix)
}

// IsBlockingKind is the complement of IsWarningKind.
func IsBlockingKind(kind string) bool {
	return !IsWarningKind(kind)
}

// Partition holds a field's errors split by severity, each bucket preserving
// the original relative order.
type Partition struct {
	Blocking []model.ValidationError
	Warnings []model.ValidationError
}

// HasBlocking reports whether any blocking error is present.
func (p Partition) HasBlocking() bool { return len(p.Blocking) > 0 }

// HasWarnings reports whether any warning is present.
func (p Partition) HasWarnings() bool { return len(p.Warnings) > 0 }

// Classify partitions errors by severity. Pure, order-preserving, O(n).
func Classify(errs []model.ValidationError) Partition {
	var out Partition
	for _, err := range errs {
		if IsWarningKind(err.Kind) {
			out.Warnings = append(out.Warnings, err)
		} else {
			out.Blocking = append(out.Blocking, err)
		}
	}
	return out
}

// ClassifiedError pairs an error with its computed severity.
type ClassifiedError struct {
	Severity Severity
	Err      model.ValidationError
}

// ClassifyTagged tags each error with its severity while keeping the original
// ordering intact, for consumers that need the interleaved sequence.
func ClassifyTagged(errs []model.ValidationError) []ClassifiedError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]ClassifiedError, 0, len(errs))
	for _, err := range errs {
		severity := SeverityBlocking
		if IsWarningKind(err.Kind) {
			severity = SeverityWarning
		}
		out = append(out, ClassifiedError{Severity: severity, Err: err})
	}
	return out
}
