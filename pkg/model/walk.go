package model

// WalkFunc receives each field definition together with its dotted path.
// Returning false stops the traversal.
type WalkFunc func(path string, field Field) bool

// Walk visits the form's fields depth-first in document order, yielding
// dotted paths for nested members. Array element templates are visited under
// the parent path (the runtime host assigns numeric indices only when
// elements exist).
func Walk(form FormModel, fn WalkFunc) {
	walkFields(form.Fields, "", fn)
}

func walkFields(fields []Field, prefix string, fn WalkFunc) bool {
	for _, field := range fields {
		path := JoinPath(prefix, field.Name)
		if !fn(path, field) {
			return false
		}
		if len(field.Nested) > 0 {
			if !walkFields(field.Nested, path, fn) {
				return false
			}
		}
		if field.Items != nil && len(field.Items.Nested) > 0 {
			if !walkFields(field.Items.Nested, path, fn) {
				return false
			}
		}
	}
	return true
}

// JoinPath joins two path segments with a dot, tolerating empty sides.
func JoinPath(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	default:
		return parent + "." + child
	}
}
