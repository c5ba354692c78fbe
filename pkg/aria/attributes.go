package aria

import "strings"

// Attributes is the accessibility triple a consuming UI applies to a control.
// Empty strings mean "omit the attribute".
type Attributes struct {
	Invalid     string
	DescribedBy string
	Required    string
}

// State is the field view Compute consumes. Readable=false represents a
// field whose state could not be adapted; every derived attribute is then
// omitted rather than guessed.
type State struct {
	Readable    bool
	Touched     bool
	HasBlocking bool
	Required    bool

	// Visibility decisions supplied by the strategy evaluator.
	ShowErrors   bool
	ShowWarnings bool

	// Name resolves the generated ids; empty degrades to DescribedBy
	// passthrough only.
	Name string

	// DescribedBy is the pre-existing describedby value on the element,
	// e.g. a hint id. It is always preserved.
	DescribedBy string
}

// Compute derives the attribute triple from a consistent field snapshot.
// Warnings never set aria-invalid; only a touched field with at least one
// blocking error reads as invalid.
func Compute(state State) Attributes {
	if !state.Readable {
		return Attributes{DescribedBy: normalizeTokens(state.DescribedBy)}
	}

	attrs := Attributes{Invalid: "false"}
	if state.Touched && state.HasBlocking {
		attrs.Invalid = "true"
	}
	if state.Required {
		attrs.Required = "true"
	}

	var extra []string
	if state.ShowErrors {
		extra = append(extra, ErrorID(state.Name))
	}
	if state.ShowWarnings {
		extra = append(extra, WarningID(state.Name))
	}
	attrs.DescribedBy = Describe(state.DescribedBy, extra...)
	return attrs
}

// Describe merges additional ids into an existing describedby value. Existing
// tokens are never dropped, order is preserved, duplicates and stray
// whitespace are removed. Empty additions are skipped.
func Describe(existing string, add ...string) string {
	seen := make(map[string]struct{})
	var tokens []string

	push := func(token string) {
		token = strings.TrimSpace(token)
		if token == "" {
			return
		}
		if _, dup := seen[token]; dup {
			return
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}

	for _, token := range strings.Fields(existing) {
		push(token)
	}
	for _, token := range add {
		push(token)
	}
	return strings.Join(tokens, " ")
}

func normalizeTokens(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
