// Package model defines the declarative form shapes shared by the schema
// import pipeline, the runtime form host, and the feedback engine.
package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

// Canonical validation kinds. These double as the keys of the built-in
// message table in pkg/feedback.
const (
	RuleRequired  = "required"
	RuleEmail     = "email"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RuleMin       = "min"
	RuleMax       = "max"
	RulePattern   = "pattern"
)

// WarnPrefix marks a validation kind as a non-blocking warning. The runtime
// produces a single error shape; this prefix is the only signal that
// distinguishes warnings from blocking errors, so it must survive every
// transformation a rule goes through.
const WarnPrefix = "warn:"

// WarnKind rewrites a kind into its warning form. Kinds already carrying the
// prefix (and empty kinds) are returned unchanged.
func WarnKind(kind string) string {
	if kind == "" || hasWarnPrefix(kind) {
		return kind
	}
	return WarnPrefix + kind
}

func hasWarnPrefix(kind string) bool {
	return len(kind) > len(WarnPrefix) && kind[:len(WarnPrefix)] == WarnPrefix
}

// ValidationRule is a declarative constraint attached to a field definition.
// Thresholds live in Params (e.g. Params["value"] for length and numeric
// bounds, Params["pattern"] for regular expressions). Message, when set,
// becomes the validator-supplied message on errors the compiled rule emits.
type ValidationRule struct {
	Kind    string            `json:"kind"`
	Params  map[string]string `json:"params,omitempty"`
	Message string            `json:"message,omitempty"`
}

// ValidationError is the single error shape the runtime emits. Kind carries
// the semantic classification (see WarnPrefix); Params carries
// validator-specific values the message resolver may interpolate.
type ValidationError struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
}

// Field models one input inside a form definition. Nested holds object
// members, Items the element template for arrays.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	Nested      []Field           `json:"nested,omitempty"`
	Items       *Field            `json:"items,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FormModel is the top-level definition the runtime host and renderers
// consume.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
