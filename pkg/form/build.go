package form

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/model"
)

// Build converts a declarative form definition into a runtime tree. Object
// fields become groups, arrays become array groups seeded empty with an
// element template, everything else becomes a leaf with compiled validators.
func Build(def model.FormModel) (*Group, error) {
	root := NewGroup("")
	for _, field := range def.Fields {
		node, err := buildNode(field)
		if err != nil {
			return nil, err
		}
		if err := root.Add(node); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func buildNode(def model.Field) (Node, error) {
	switch def.Type {
	case model.FieldTypeObject:
		group := NewGroup(def.Name)
		for _, nested := range def.Nested {
			child, err := buildNode(nested)
			if err != nil {
				return nil, fmt.Errorf("form: build %q: %w", def.Name, err)
			}
			if err := group.Add(child); err != nil {
				return nil, err
			}
		}
		return group, nil

	case model.FieldTypeArray:
		group := NewGroup(def.Name)
		if def.Items != nil {
			template := *def.Items
			group.elem = func() (Node, error) {
				return buildNode(template)
			}
		}
		return group, nil

	default:
		return buildLeaf(def)
	}
}

func buildLeaf(def model.Field) (*Field, error) {
	validators, err := FromRules(def.Validations)
	if err != nil {
		return nil, fmt.Errorf("form: field %q: %w", def.Name, err)
	}

	// A required flag on the definition implies the rule even when the
	// validation list omits it.
	if def.Required && !hasKind(validators, model.RuleRequired) {
		validators = append([]Validator{Required()}, validators...)
	}
	if def.Format == "email" && !hasKind(validators, model.RuleEmail) {
		validators = append(validators, Email())
	}

	field := NewField(def.Name, validators...)
	field.Def = def
	if def.Default != nil {
		field.SetValue(def.Default)
	}
	if raw, ok := def.Metadata["strategy"]; ok {
		strategy, err := feedback.ParseStrategy(raw)
		if err != nil {
			return nil, fmt.Errorf("form: field %q: %w", def.Name, err)
		}
		field.SetStrategy(strategy)
	}
	return field, nil
}

func hasKind(validators []Validator, kind string) bool {
	for _, v := range validators {
		if v.Kind == kind {
			return true
		}
	}
	return false
}
