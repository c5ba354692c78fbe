package form

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/signal"
)

func TestSubmitLifecycle(t *testing.T) {
	root := NewGroup("")
	root.MustAdd(NewField("email", Required()))

	helper := NewSubmitHelper(root)
	if helper.Status() != feedback.StatusUnsubmitted {
		t.Fatalf("initial status %q", helper.Status())
	}

	if err := helper.Begin(context.Background()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if helper.Status() != feedback.StatusSubmitting {
		t.Fatalf("after begin: %q", helper.Status())
	}
	if !root.FieldAt("email").Touched() {
		t.Fatalf("begin must mark every field touched")
	}

	if err := helper.Settle(context.Background()); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if helper.Status() != feedback.StatusSubmitted {
		t.Fatalf("after settle: %q", helper.Status())
	}
}

func TestSubmitRevealsOnSubmitFeedback(t *testing.T) {
	root := NewGroup("")
	root.MustAdd(NewField("email", Required()))
	email := root.FieldAt("email")

	helper := NewSubmitHelper(root)

	show := feedback.Visibility(
		email,
		signal.Static(feedback.StrategyOnSubmit),
		helper.StatusSource(),
	)
	if show() {
		t.Fatalf("on-submit feedback must stay hidden before the first attempt")
	}

	if err := helper.Submit(context.Background(), func(ctx context.Context) error {
		return nil
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !show() {
		t.Fatalf("on-submit feedback must reveal after the attempt")
	}
}

func TestSubmitReturnsHandlerError(t *testing.T) {
	root := NewGroup("")
	helper := NewSubmitHelper(root)

	boom := errors.New("backend rejected")
	got := helper.Submit(context.Background(), func(ctx context.Context) error {
		if helper.Status() != feedback.StatusSubmitting {
			t.Fatalf("handler should run while submitting, got %q", helper.Status())
		}
		return boom
	})
	if !errors.Is(got, boom) {
		t.Fatalf("handler error must surface verbatim, got %v", got)
	}
	// The attempt still settles; the error describes the outcome, not the
	// lifecycle.
	if helper.Status() != feedback.StatusSubmitted {
		t.Fatalf("after failed submit: %q", helper.Status())
	}
}

func TestSubmitReset(t *testing.T) {
	root := NewGroup("")
	root.MustAdd(NewField("email"))

	helper := NewSubmitHelper(root)

	// Reset before any attempt is a no-op.
	if err := helper.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if helper.Status() != feedback.StatusUnsubmitted {
		t.Fatalf("status after idle reset: %q", helper.Status())
	}

	if err := helper.Submit(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := helper.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if helper.Status() != feedback.StatusUnsubmitted {
		t.Fatalf("status after reset: %q", helper.Status())
	}
	if root.FieldAt("email").Touched() {
		t.Fatalf("reset must clear touched flags")
	}
}

func TestSubmitAllowsRepeatAttempts(t *testing.T) {
	root := NewGroup("")
	helper := NewSubmitHelper(root)

	for i := 0; i < 2; i++ {
		if err := helper.Submit(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
	if helper.Status() != feedback.StatusSubmitted {
		t.Fatalf("status after repeat attempts: %q", helper.Status())
	}
}
