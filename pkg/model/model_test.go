package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultLabeler(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"email", "Email"},
		{"firstName", "First Name"},
		{"shipping_address", "Shipping Address"},
		{"line-2", "Line 2"},
		{"apiV2Key", "Api V2 Key"},
	}
	for _, tc := range cases {
		if got := DefaultLabeler(tc.in); got != tc.want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWarnKind(t *testing.T) {
	if got := WarnKind("weak-password"); got != "warn:weak-password" {
		t.Fatalf("got %q", got)
	}
	if got := WarnKind("warn:weak-password"); got != "warn:weak-password" {
		t.Fatalf("already prefixed kind changed: %q", got)
	}
	if got := WarnKind(""); got != "" {
		t.Fatalf("empty kind should stay empty, got %q", got)
	}
}

func TestWalkYieldsDottedPathsInDocumentOrder(t *testing.T) {
	form := FormModel{
		ID: "createAccount",
		Fields: []Field{
			{Name: "email", Type: FieldTypeString},
			{Name: "address", Type: FieldTypeObject, Nested: []Field{
				{Name: "city", Type: FieldTypeString},
				{Name: "zip", Type: FieldTypeString},
			}},
			{Name: "tags", Type: FieldTypeArray, Items: &Field{Type: FieldTypeString}},
		},
	}

	var paths []string
	Walk(form, func(path string, _ Field) bool {
		paths = append(paths, path)
		return true
	})

	want := []string{"email", "address", "address.city", "address.zip", "tags"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkStopsWhenVisitorReturnsFalse(t *testing.T) {
	form := FormModel{Fields: []Field{{Name: "a"}, {Name: "b"}}}
	count := 0
	Walk(form, func(string, Field) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("expected traversal to stop after first field, visited %d", count)
	}
}
