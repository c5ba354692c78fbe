// Package aria derives deterministic DOM identifiers and accessibility
// attribute values from field state. It is a leaf package: pure string work
// plus lenient/strict field-name resolution, no knowledge of the form
// runtime.
package aria

// ErrorID returns the identifier of a field's error region. Identifiers are
// pure functions of the field name so accessibility linkage stays stable
// across re-renders. An empty name yields an empty id.
func ErrorID(fieldName string) string {
	if fieldName == "" {
		return ""
	}
	return fieldName + "-error"
}

// WarningID returns the identifier of a field's warning region.
func WarningID(fieldName string) string {
	if fieldName == "" {
		return ""
	}
	return fieldName + "-warning"
}

// HintID returns the identifier renderers use for a field's hint text.
func HintID(fieldName string) string {
	if fieldName == "" {
		return ""
	}
	return fieldName + "-hint"
}

// ControlID returns the id renderers assign to the control element itself.
func ControlID(fieldName string) string {
	if fieldName == "" {
		return ""
	}
	return "fs-" + fieldName
}
