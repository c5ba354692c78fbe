package feedback

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/model"
)

type stubSummary struct {
	refs []ErrorRef
}

func (s stubSummary) ErrorRefs() []ErrorRef { return s.refs }

func TestFocusFirstInvalidFocusesOnlyFirstBlocking(t *testing.T) {
	var focused []string
	summary := stubSummary{refs: []ErrorRef{
		{Path: "username", Err: model.ValidationError{Kind: "required"}, Focus: func() { focused = append(focused, "username") }},
		{Path: "email", Err: model.ValidationError{Kind: "email"}, Focus: func() { focused = append(focused, "email") }},
	}}

	if !FocusFirstInvalid(summary, zerolog.Nop()) {
		t.Fatalf("expected focus action to be issued")
	}
	if len(focused) != 1 || focused[0] != "username" {
		t.Fatalf("only the first field should receive focus, got %v", focused)
	}
}

func TestFocusFirstInvalidSkipsWarnings(t *testing.T) {
	var focused []string
	summary := stubSummary{refs: []ErrorRef{
		{Path: "password", Err: model.ValidationError{Kind: "warn:weak-password"}, Focus: func() { focused = append(focused, "password") }},
		{Path: "email", Err: model.ValidationError{Kind: "email"}, Focus: func() { focused = append(focused, "email") }},
	}}

	if !FocusFirstInvalid(summary, zerolog.Nop()) {
		t.Fatalf("expected the blocking entry to be focused")
	}
	if len(focused) != 1 || focused[0] != "email" {
		t.Fatalf("warnings must not receive focus, got %v", focused)
	}
}

func TestFocusFirstInvalidEmptyOrNilForm(t *testing.T) {
	if FocusFirstInvalid(stubSummary{}, zerolog.Nop()) {
		t.Fatalf("no errors means no focus action")
	}
	if FocusFirstInvalid(nil, zerolog.Nop()) {
		t.Fatalf("nil form must be tolerated")
	}
}

func TestFocusFirstInvalidMissingFocusHook(t *testing.T) {
	summary := stubSummary{refs: []ErrorRef{
		{Path: "username", Err: model.ValidationError{Kind: "required"}},
	}}
	if FocusFirstInvalid(summary, zerolog.Nop()) {
		t.Fatalf("missing focus hook must report false, not panic")
	}
}
