package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	confirm      []bool
	selectIdx    []int
	infoMessages []string
	inputPos     int
	passPos      int
	confirmPos   int
	selectPos    int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newTestRenderer(t *testing.T, driver PromptDriver, options ...Option) *Renderer {
	t.Helper()
	r, err := New(append([]Option{WithPromptDriver(driver)}, options...)...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func decodeJSON(t *testing.T, out []byte) map[string]any {
	t.Helper()
	var values map[string]any
	if err := json.Unmarshal(out, &values); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return values
}

func TestRenderStringAndEnum(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"hello"},
		selectIdx: []int{1},
	}
	r := newTestRenderer(t, driver)

	root := form.NewGroup("")
	title := form.NewField("title")
	title.Def = model.Field{Name: "title", Type: model.FieldTypeString, Label: "Title"}
	status := form.NewField("status")
	status.Def = model.Field{
		Name: "status",
		Type: model.FieldTypeString,
		Enum: []any{"draft", "published"},
	}
	root.MustAdd(title).MustAdd(status)

	out, err := r.Render(context.Background(), root, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := map[string]any{"title": "hello", "status": "published"}
	if diff := cmp.Diff(want, decodeJSON(t, out)); diff != "" {
		t.Fatalf("collected values mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderReasksOnVisibleError(t *testing.T) {
	driver := &stubDriver{inputs: []string{"not-an-email", "dev@example.com"}}
	r := newTestRenderer(t, driver)

	root := form.NewGroup("")
	email := form.NewField("email", form.Required(), form.Email())
	email.Def = model.Field{Name: "email", Type: model.FieldTypeString}
	root.MustAdd(email)

	out, err := r.Render(context.Background(), root, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := decodeJSON(t, out)["email"]; got != "dev@example.com" {
		t.Fatalf("email = %v, want corrected value", got)
	}
	if len(driver.infoMessages) == 0 || !strings.Contains(driver.infoMessages[0], "Invalid email") {
		t.Fatalf("expected an invalid announcement, got %v", driver.infoMessages)
	}
}

func TestRenderWarningsAccepted(t *testing.T) {
	driver := &stubDriver{inputs: []string{"a bio that is far too long"}}
	r := newTestRenderer(t, driver)

	root := form.NewGroup("")
	bio := form.NewField("bio", form.Warn(form.MaxLength(5)))
	bio.Def = model.Field{Name: "bio", Type: model.FieldTypeString}
	root.MustAdd(bio)

	out, err := r.Render(context.Background(), root, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := decodeJSON(t, out)["bio"]; got != "a bio that is far too long" {
		t.Fatalf("warned value should be accepted, got %v", got)
	}
	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], "Warning bio") {
		t.Fatalf("expected one warning announcement, got %v", driver.infoMessages)
	}
}

func TestRenderOnSubmitFieldRevisited(t *testing.T) {
	// First answer is accepted silently (on-submit hides the error during
	// entry); the submit pass reveals it and re-asks.
	driver := &stubDriver{passwords: []string{"short", "long enough secret"}}
	r := newTestRenderer(t, driver)

	root := form.NewGroup("")
	password := form.NewField("password", form.Required(), form.MinLength(8))
	password.Def = model.Field{Name: "password", Type: model.FieldTypeString, Format: "password"}
	password.SetStrategy(feedback.StrategyOnSubmit)
	root.MustAdd(password)

	out, err := r.Render(context.Background(), root, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := decodeJSON(t, out)["password"]; got != "long enough secret" {
		t.Fatalf("password = %v, want the corrected answer", got)
	}
	if driver.passPos != 2 {
		t.Fatalf("password prompted %d times, want 2", driver.passPos)
	}
}

func TestRenderNumberParsing(t *testing.T) {
	driver := &stubDriver{inputs: []string{"abc", "17"}}
	r := newTestRenderer(t, driver)

	root := form.NewGroup("")
	age := form.NewField("age", form.Min(13))
	age.Def = model.Field{Name: "age", Type: model.FieldTypeInteger}
	root.MustAdd(age)

	out, err := r.Render(context.Background(), root, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := decodeJSON(t, out)["age"]; got != float64(17) {
		t.Fatalf("age = %v, want 17", got)
	}
	if !strings.Contains(strings.Join(driver.infoMessages, "\n"), "not a number") {
		t.Fatalf("expected a parse announcement, got %v", driver.infoMessages)
	}
}

func TestRenderBooleanConfirm(t *testing.T) {
	driver := &stubDriver{confirm: []bool{true}}
	r := newTestRenderer(t, driver)

	root := form.NewGroup("")
	subscribe := form.NewField("subscribe")
	subscribe.Def = model.Field{Name: "subscribe", Type: model.FieldTypeBoolean}
	root.MustAdd(subscribe)

	out, err := r.Render(context.Background(), root, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := decodeJSON(t, out)["subscribe"]; got != true {
		t.Fatalf("subscribe = %v, want true", got)
	}
}

func TestRenderSkipsHiddenFields(t *testing.T) {
	driver := &stubDriver{inputs: []string{"visible"}}
	r := newTestRenderer(t, driver)

	root := form.NewGroup("")
	shown := form.NewField("shown")
	shown.Def = model.Field{Name: "shown", Type: model.FieldTypeString}
	secret := form.NewField("secret")
	secret.Def = model.Field{Name: "secret", Type: model.FieldTypeString}
	secret.SetHidden(true)
	secret.SetValue("carried")
	root.MustAdd(shown).MustAdd(secret)

	out, err := r.Render(context.Background(), root, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	values := decodeJSON(t, out)
	if values["shown"] != "visible" || values["secret"] != "carried" {
		t.Fatalf("unexpected values: %v", values)
	}
	if driver.inputPos != 1 {
		t.Fatalf("hidden field should not prompt, %d inputs consumed", driver.inputPos)
	}
}

func TestRenderOutputFormats(t *testing.T) {
	root := form.NewGroup("")
	name := form.NewField("name")
	name.Def = model.Field{Name: "name", Type: model.FieldTypeString}
	root.MustAdd(name)

	driver := &stubDriver{inputs: []string{"ada"}}
	r := newTestRenderer(t, driver, WithOutputFormat(OutputFormatFormURLEncoded))
	out, err := r.Render(context.Background(), root, render.Options{})
	if err != nil {
		t.Fatalf("render form-encoded: %v", err)
	}
	if string(out) != "name=ada" {
		t.Fatalf("form output = %q", out)
	}
	if got := r.ContentType(); got != "application/x-www-form-urlencoded" {
		t.Fatalf("content type = %q", got)
	}

	driver = &stubDriver{inputs: []string{"ada"}}
	r = newTestRenderer(t, driver, WithOutputFormat(OutputFormatPrettyText))
	out, err = r.Render(context.Background(), root, render.Options{})
	if err != nil {
		t.Fatalf("render pretty: %v", err)
	}
	if string(out) != "name=ada\n" {
		t.Fatalf("pretty output = %q", out)
	}
}

func TestRenderAbortPropagates(t *testing.T) {
	driver := &stubDriver{} // no scripted answers: first prompt errors
	r := newTestRenderer(t, driver)

	root := form.NewGroup("")
	name := form.NewField("name")
	name.Def = model.Field{Name: "name", Type: model.FieldTypeString}
	root.MustAdd(name)

	if _, err := r.Render(context.Background(), root, render.Options{}); err == nil {
		t.Fatal("expected driver error to propagate")
	}
}

func TestRenderNilTree(t *testing.T) {
	r := newTestRenderer(t, &stubDriver{})
	if _, err := r.Render(context.Background(), nil, render.Options{}); err == nil {
		t.Fatal("expected error for nil tree")
	}
}
