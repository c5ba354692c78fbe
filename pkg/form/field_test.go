package form

import (
	"testing"

	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/model"
)

func countingValidator(runs *int) Validator {
	return Validator{
		Kind: "counting",
		Check: func(value any) *model.ValidationError {
			*runs++
			return nil
		},
	}
}

func TestFieldErrorsMemoizedPerValueVersion(t *testing.T) {
	runs := 0
	field := NewField("email", Required(), countingValidator(&runs))

	field.Errors()
	field.Errors()
	if runs != 1 {
		t.Fatalf("validators should run once per value version, ran %d times", runs)
	}

	field.SetValue("dev@example.com")
	field.Errors()
	if runs != 2 {
		t.Fatalf("value change should trigger revalidation, ran %d times", runs)
	}
}

func TestFieldSnapshotIsConsistent(t *testing.T) {
	field := NewField("email", Required())
	snap := field.Snapshot()
	if !snap.Readable {
		t.Fatalf("runtime field snapshots are always readable")
	}
	if !snap.Invalid || snap.Touched {
		t.Fatalf("empty required field: %+v", snap)
	}
	if !snap.Required {
		t.Fatalf("required flag should surface in the snapshot")
	}

	field.SetValue("dev@example.com")
	field.MarkTouched()
	snap = field.Snapshot()
	if snap.Invalid || !snap.Touched {
		t.Fatalf("after fill+blur: %+v", snap)
	}
}

func TestNilFieldAdaptsWithoutPanic(t *testing.T) {
	snap := feedback.Adapt((*Field)(nil))
	if snap.Readable || snap.Invalid || snap.Touched {
		t.Fatalf("nil field must adapt to the unreadable zero snapshot, got %+v", snap)
	}
}

func TestFieldFeedsStrategyEvaluator(t *testing.T) {
	field := NewField("email", Required())

	if feedback.ShouldShow(field.Snapshot(), feedback.StrategyOnTouch, feedback.StatusUnsubmitted) {
		t.Fatalf("untouched field must stay hidden")
	}
	field.MarkTouched()
	if !feedback.ShouldShow(field.Snapshot(), feedback.StrategyOnTouch, feedback.StatusUnsubmitted) {
		t.Fatalf("touched invalid field must show")
	}
}

func TestFieldFocus(t *testing.T) {
	field := NewField("email")
	if field.Focus() {
		t.Fatalf("focus without a hook must report false")
	}
	called := false
	field.AttachFocus(func() { called = true })
	if !field.Focus() || !called {
		t.Fatalf("focus hook not invoked")
	}
}

func TestFieldRequiredDetection(t *testing.T) {
	if NewField("a", Email()).Required() {
		t.Fatalf("email-only field is not required")
	}
	if !NewField("b", Required()).Required() {
		t.Fatalf("required validator should be detected")
	}
	// A warn-downgraded required rule is not a blocking required flag.
	if NewField("c", Warn(Required())).Required() {
		t.Fatalf("warn:required must not count as required")
	}
}

func TestFieldErrorsPreserveAttachmentOrder(t *testing.T) {
	field := NewField("password",
		Required(),
		MinLength(8),
		Warn(MinLength(12)),
	)
	field.SetValue("short")

	errs := field.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected minLength + warn:minLength, got %+v", errs)
	}
	if errs[0].Kind != "minLength" || errs[1].Kind != "warn:minLength" {
		t.Fatalf("order not preserved: %+v", errs)
	}
}
