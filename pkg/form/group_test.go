package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/model"
)

func accountTree(t *testing.T) *Group {
	t.Helper()
	root := NewGroup("")
	root.MustAdd(NewField("username", Required()))

	address := NewGroup("address")
	address.MustAdd(NewField("city", Required()))
	address.MustAdd(NewField("zip"))
	root.MustAdd(address)
	return root
}

func TestGroupPathsArePrefixed(t *testing.T) {
	root := accountTree(t)

	city := root.FieldAt("address.city")
	if city == nil {
		t.Fatalf("address.city not found")
	}
	if city.Path() != "address.city" {
		t.Fatalf("got path %q", city.Path())
	}
	if root.FieldAt("address") != nil {
		t.Fatalf("FieldAt must not resolve groups")
	}
	if root.GroupAt("address") == nil {
		t.Fatalf("GroupAt should resolve the nested group")
	}
}

func TestGroupRejectsDuplicateNames(t *testing.T) {
	root := NewGroup("")
	root.MustAdd(NewField("email"))
	if err := root.Add(NewField("email")); err == nil {
		t.Fatalf("duplicate child name must be rejected")
	}
}

func TestGroupMarkAllTouched(t *testing.T) {
	root := accountTree(t)
	root.MarkAllTouched()
	for _, f := range root.Fields() {
		if !f.Touched() {
			t.Fatalf("field %q not touched", f.Path())
		}
	}
}

func TestGroupErrorRefsTraversalOrder(t *testing.T) {
	root := accountTree(t)

	var paths []string
	for _, ref := range root.ErrorRefs() {
		paths = append(paths, ref.Path)
	}
	want := []string{"username", "address.city"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("summary order mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupInvalidIgnoresWarnings(t *testing.T) {
	root := NewGroup("")
	root.MustAdd(NewField("bio", Warn(MaxLength(3))))
	root.FieldAt("bio").SetValue("too long for the warning")

	if root.Invalid() {
		t.Fatalf("warnings alone must not make the form invalid")
	}
	if len(root.ErrorRefs()) != 1 {
		t.Fatalf("the warning should still appear in the summary")
	}
}

func TestArrayElementsGetIndexedPaths(t *testing.T) {
	tags := NewGroup("tags")
	root := NewGroup("")
	root.MustAdd(tags)

	if err := tags.Append(NewField("", Required())); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := tags.Append(NewField("")); err != nil {
		t.Fatalf("append: %v", err)
	}

	first := root.FieldAt("tags.0")
	if first == nil || first.Path() != "tags.0" {
		t.Fatalf("tags.0 not resolvable")
	}
	if root.FieldAt("tags.1") == nil {
		t.Fatalf("tags.1 not resolvable")
	}
}

func TestArrayRemoveCompactsIndices(t *testing.T) {
	tags := NewGroup("tags")
	root := NewGroup("")
	root.MustAdd(tags)

	for i := 0; i < 3; i++ {
		if err := tags.Append(NewField("")); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	root.FieldAt("tags.2").SetValue("last")

	if !tags.RemoveAt(0) {
		t.Fatalf("remove failed")
	}
	if tags.Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", tags.Len())
	}
	// The former tags.2 is now tags.1 and keeps its value.
	moved := root.FieldAt("tags.1")
	if moved == nil || moved.Value() != "last" {
		t.Fatalf("indices did not compact: %+v", moved)
	}
	if root.FieldAt("tags.2") != nil {
		t.Fatalf("stale index should be gone")
	}
}

func TestBuildFromDefinition(t *testing.T) {
	def := model.FormModel{
		ID: "createAccount",
		Fields: []model.Field{
			{Name: "email", Type: model.FieldTypeString, Format: "email", Required: true},
			{Name: "age", Type: model.FieldTypeInteger, Validations: []model.ValidationRule{
				{Kind: "min", Params: map[string]string{"value": "13"}},
			}},
			{Name: "address", Type: model.FieldTypeObject, Nested: []model.Field{
				{Name: "city", Type: model.FieldTypeString, Required: true},
			}},
			{Name: "tags", Type: model.FieldTypeArray, Items: &model.Field{Type: model.FieldTypeString, Validations: []model.ValidationRule{
				{Kind: "maxLength", Params: map[string]string{"value": "16"}},
			}}},
		},
	}

	root, err := Build(def)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	email := root.FieldAt("email")
	if email == nil || !email.Required() {
		t.Fatalf("email should be a required leaf")
	}
	email.SetValue("nope")
	if !email.Invalid() {
		t.Fatalf("email format rule should be attached")
	}

	if root.FieldAt("address.city") == nil {
		t.Fatalf("nested city leaf missing")
	}

	tags := root.GroupAt("tags")
	if tags == nil || !tags.IsArray() {
		t.Fatalf("tags should be an array group")
	}
	node, err := tags.AppendElement()
	if err != nil {
		t.Fatalf("append element: %v", err)
	}
	if node.Path() != "tags.0" {
		t.Fatalf("element path %q", node.Path())
	}
	root.FieldAt("tags.0").SetValue("a-very-long-tag-name-over-limit")
	if !root.FieldAt("tags.0").Invalid() {
		t.Fatalf("element template validations should compile")
	}
}

func TestBuildRejectsBadRules(t *testing.T) {
	def := model.FormModel{Fields: []model.Field{
		{Name: "x", Type: model.FieldTypeString, Validations: []model.ValidationRule{{Kind: "nope"}}},
	}}
	if _, err := Build(def); err == nil {
		t.Fatalf("unknown rule kind must fail the build")
	}
}

func TestFocusFirstInvalidOverTree(t *testing.T) {
	root := accountTree(t)
	var focused []string
	root.FieldAt("username").AttachFocus(func() { focused = append(focused, "username") })
	root.FieldAt("address.city").AttachFocus(func() { focused = append(focused, "city") })

	if !feedback.FocusFirstInvalid(root, zerolog.Nop()) {
		t.Fatalf("expected focus to be issued")
	}
	if len(focused) != 1 || focused[0] != "username" {
		t.Fatalf("only the first invalid field should get focus: %v", focused)
	}
}
