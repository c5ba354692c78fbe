package form

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/signal"
)

const (
	eventSubmit = "submit"
	eventSettle = "settle"
	eventReset  = "reset"
)

// SubmitHelper owns the form's submitted status: unsubmitted until an
// attempt begins, submitting while one runs, submitted once it settles
// (success or failure alike). Beginning an attempt marks every field
// touched, which is what lets on-touch strategies reveal feedback across the
// whole form.
type SubmitHelper struct {
	root    *Group
	machine *fsm.FSM
	status  *signal.Cell[feedback.SubmittedStatus]
}

// NewSubmitHelper wires a helper to the form's root group.
func NewSubmitHelper(root *Group) *SubmitHelper {
	helper := &SubmitHelper{
		root:   root,
		status: signal.NewCell(feedback.StatusUnsubmitted),
	}
	helper.machine = fsm.NewFSM(
		string(feedback.StatusUnsubmitted),
		fsm.Events{
			{Name: eventSubmit, Src: []string{string(feedback.StatusUnsubmitted), string(feedback.StatusSubmitted)}, Dst: string(feedback.StatusSubmitting)},
			{Name: eventSettle, Src: []string{string(feedback.StatusSubmitting)}, Dst: string(feedback.StatusSubmitted)},
			{Name: eventReset, Src: []string{string(feedback.StatusSubmitting), string(feedback.StatusSubmitted)}, Dst: string(feedback.StatusUnsubmitted)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				helper.status.Set(feedback.SubmittedStatus(e.Dst))
			},
		},
	)
	return helper
}

// Begin marks all fields touched and transitions to submitting.
func (h *SubmitHelper) Begin(ctx context.Context) error {
	if h.root != nil {
		h.root.MarkAllTouched()
	}
	if err := h.machine.Event(ctx, eventSubmit); err != nil {
		return fmt.Errorf("form: begin submit: %w", err)
	}
	return nil
}

// Settle transitions from submitting to submitted.
func (h *SubmitHelper) Settle(ctx context.Context) error {
	if err := h.machine.Event(ctx, eventSettle); err != nil {
		return fmt.Errorf("form: settle submit: %w", err)
	}
	return nil
}

// Reset returns the lifecycle to unsubmitted and clears touched flags,
// e.g. after a successful save that reuses the form.
func (h *SubmitHelper) Reset(ctx context.Context) error {
	if h.Status() != feedback.StatusUnsubmitted {
		if err := h.machine.Event(ctx, eventReset); err != nil {
			return fmt.Errorf("form: reset submit state: %w", err)
		}
	}
	if h.root != nil {
		h.root.ResetTouched()
	}
	return nil
}

// Submit runs one full attempt: Begin, the caller's handler, Settle. The
// handler's error is returned verbatim; the lifecycle still settles, since
// "submitted" covers failed attempts too.
func (h *SubmitHelper) Submit(ctx context.Context, fn func(context.Context) error) error {
	if err := h.Begin(ctx); err != nil {
		return err
	}
	var handlerErr error
	if fn != nil {
		handlerErr = fn(ctx)
	}
	if err := h.Settle(ctx); err != nil {
		return err
	}
	return handlerErr
}

// Status returns the current lifecycle state.
func (h *SubmitHelper) Status() feedback.SubmittedStatus {
	return h.status.Get()
}

// StatusSource exposes the status as a reactive input for the strategy
// evaluator.
func (h *SubmitHelper) StatusSource() signal.Source[feedback.SubmittedStatus] {
	return h.status.Source()
}
