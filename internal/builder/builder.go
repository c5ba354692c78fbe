// Package builder converts parsed OpenAPI operations into declarative form
// models, compiling schema constraints into validation rules and honouring
// x-formstate display hints.
package builder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
)

// Options configures the builder.
type Options struct {
	// Labeler derives human-friendly labels from property names. Defaults to
	// model.DefaultLabeler.
	Labeler func(string) string
}

// Builder converts OpenAPI operations into form models.
type Builder struct {
	labeler func(string) string
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	labeler := options.Labeler
	if labeler == nil {
		labeler = model.DefaultLabeler
	}
	return &Builder{labeler: labeler}
}

// Build transforms an OpenAPI operation into a FormModel. The request body is
// the form's shape; operation metadata (method, path, display strategy)
// travels in FormModel.Metadata.
func (b *Builder) Build(op pkgopenapi.Operation) (model.FormModel, error) {
	if op.ID == "" {
		return model.FormModel{}, fmt.Errorf("builder: operation id is required")
	}

	form := model.FormModel{
		ID:          op.ID,
		Title:       op.Summary,
		Description: op.Description,
		Metadata: map[string]string{
			"method": strings.ToUpper(op.Method),
			"path":   op.Path,
		},
	}

	hints := formstateHints(op.Extensions)
	if strategy := hints["strategy"]; strategy != "" {
		form.Metadata["strategy"] = strategy
	}

	fields, err := b.fieldsFromSchema("", op.RequestBody, true)
	if err != nil {
		return model.FormModel{}, err
	}
	form.Fields = fields

	return form, nil
}

func (b *Builder) fieldsFromSchema(name string, schema pkgopenapi.Schema, required bool) ([]model.Field, error) {
	if schema.Ref != "" && schema.Type == "" && len(schema.Properties) == 0 {
		// Unresolved reference; capture it for consumers to handle.
		field := model.Field{
			Name:        name,
			Type:        model.FieldTypeObject,
			Required:    required,
			Label:       b.labeler(name),
			Description: schema.Description,
			Metadata:    map[string]string{"$ref": schema.Ref},
		}
		return []model.Field{field}, nil
	}

	switch schema.Type {
	case "object", "":
		return b.fieldsFromObject(name, schema, required)
	case "array":
		field, err := b.fieldFromArray(name, schema, required)
		if err != nil {
			return nil, err
		}
		return []model.Field{field}, nil
	default:
		return []model.Field{b.fieldFromPrimitive(name, schema, required)}, nil
	}
}

func (b *Builder) fieldsFromObject(name string, schema pkgopenapi.Schema, required bool) ([]model.Field, error) {
	var fields []model.Field
	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, item := range schema.Required {
		requiredSet[item] = struct{}{}
	}

	propNames := make([]string, 0, len(schema.Properties))
	for propName := range schema.Properties {
		propNames = append(propNames, propName)
	}
	sort.Strings(propNames)

	for _, propName := range propNames {
		propSchema := schema.Properties[propName]
		_, isRequired := requiredSet[propName]
		converted, err := b.fieldsFromSchema(propName, propSchema, isRequired)
		if err != nil {
			return nil, err
		}
		fields = append(fields, converted...)
	}

	if name != "" {
		// Wrap nested properties inside a parent object field.
		parent := model.Field{
			Name:        name,
			Type:        model.FieldTypeObject,
			Label:       b.labeler(name),
			Description: schema.Description,
			Required:    required,
			Nested:      fields,
		}
		applyHints(&parent, schema)
		return []model.Field{parent}, nil
	}

	return fields, nil
}

func (b *Builder) fieldFromArray(name string, schema pkgopenapi.Schema, required bool) (model.Field, error) {
	if schema.Items == nil {
		return model.Field{}, fmt.Errorf("builder: array field %q missing items", name)
	}
	nested, err := b.fieldsFromSchema(name+"Item", *schema.Items, false)
	if err != nil {
		return model.Field{}, err
	}
	var itemField *model.Field
	if len(nested) > 0 {
		item := nested[0]
		itemField = &item
	}

	field := model.Field{
		Name:        name,
		Type:        model.FieldTypeArray,
		Label:       b.labeler(name),
		Description: schema.Description,
		Required:    required,
		Items:       itemField,
	}
	applyValidations(&field, schema)
	applyHints(&field, schema)
	return field, nil
}

func (b *Builder) fieldFromPrimitive(name string, schema pkgopenapi.Schema, required bool) model.Field {
	field := model.Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Label:       b.labeler(name),
		Description: schema.Description,
		Required:    required,
		Default:     schema.Default,
	}
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}
	applyValidations(&field, schema)
	applyHints(&field, schema)
	return field
}

func mapType(schemaType string) model.FieldType {
	switch schemaType {
	case "integer":
		return model.FieldTypeInteger
	case "number":
		return model.FieldTypeNumber
	case "boolean":
		return model.FieldTypeBoolean
	case "array":
		return model.FieldTypeArray
	case "object":
		return model.FieldTypeObject
	default:
		return model.FieldTypeString
	}
}

func applyValidations(field *model.Field, schema pkgopenapi.Schema) {
	if field == nil {
		return
	}

	if schema.Minimum != nil {
		params := map[string]string{"value": formatFloat(*schema.Minimum)}
		if schema.ExclusiveMinimum {
			params["exclusive"] = "true"
		}
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.RuleMin,
			Params: params,
		})
	}

	if schema.Maximum != nil {
		params := map[string]string{"value": formatFloat(*schema.Maximum)}
		if schema.ExclusiveMaximum {
			params["exclusive"] = "true"
		}
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.RuleMax,
			Params: params,
		})
	}

	if schema.MinLength != nil {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.RuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MinLength)},
		})
	}

	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.RuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MaxLength)},
		})
	}

	if schema.Pattern != "" {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.RulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
}

// applyHints folds the schema's x-formstate extension into the field: a
// "strategy" entry lands in metadata for the runtime host, "warn" demotes the
// named rule kinds to warnings, and "label"/"placeholder"/"hint" override the
// derived display strings.
func applyHints(field *model.Field, schema pkgopenapi.Schema) {
	// The warn marker is a list or bool, not a string hint, so it must be
	// read off the raw extensions even when no string hints are present.
	demoteWarnings(field, warnKinds(schema.Extensions))

	hints := formstateHints(schema.Extensions)
	if len(hints) == 0 {
		return
	}

	if strategy := hints["strategy"]; strategy != "" {
		if field.Metadata == nil {
			field.Metadata = make(map[string]string, 1)
		}
		field.Metadata["strategy"] = strategy
	}
	if label := hints["label"]; label != "" {
		field.Label = label
	}
	if placeholder := hints["placeholder"]; placeholder != "" {
		field.Placeholder = placeholder
	}
	if hint := hints["hint"]; hint != "" && field.Description == "" {
		field.Description = hint
	}
}

// demoteWarnings rewrites the kinds named by the warn marker into their
// warn:-prefixed form. An empty marker list with the marker present demotes
// every attached rule.
func demoteWarnings(field *model.Field, kinds []string) {
	if kinds == nil {
		return
	}
	all := len(kinds) == 0
	named := make(map[string]struct{}, len(kinds))
	for _, kind := range kinds {
		named[kind] = struct{}{}
	}
	for i := range field.Validations {
		rule := &field.Validations[i]
		if _, ok := named[rule.Kind]; ok || all {
			rule.Kind = model.WarnKind(rule.Kind)
		}
	}
}

// formstateHints flattens the x-formstate namespace into string hints,
// accepting both the nested map and flattened x-formstate-* keys.
func formstateHints(ext map[string]any) map[string]string {
	if len(ext) == 0 {
		return nil
	}
	prefix := "x-formstate"
	result := make(map[string]string)
	if nested, ok := ext[prefix].(map[string]any); ok {
		for key, value := range nested {
			if str, ok := value.(string); ok && str != "" {
				result[key] = str
			}
		}
	}
	for key, value := range ext {
		if !strings.HasPrefix(key, prefix+"-") {
			continue
		}
		if str, ok := value.(string); ok && str != "" {
			result[strings.TrimPrefix(key, prefix+"-")] = str
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// warnKinds extracts the warn marker: a list of rule kinds, a single string,
// or a bare true covering every rule. Returns nil when the marker is absent,
// an empty slice for the cover-everything form.
func warnKinds(ext map[string]any) []string {
	nested, ok := ext["x-formstate"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := nested["warn"]
	if !ok {
		return nil
	}
	switch value := raw.(type) {
	case bool:
		if value {
			return []string{}
		}
		return nil
	case string:
		if value == "" {
			return nil
		}
		return []string{value}
	case []any:
		kinds := make([]string, 0, len(value))
		for _, item := range value {
			if str, ok := item.(string); ok && str != "" {
				kinds = append(kinds, str)
			}
		}
		return kinds
	default:
		return nil
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
