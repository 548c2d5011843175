package form

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mastertom/saltofi/pkg/formspec"
)

// Builder converts form definitions into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms a form definition into a FormModel suitable for validation
// and rendering. Only the request schema contributes fields; response schemas
// stay with the definition.
func (b *Builder) Build(def formspec.FormDef) (FormModel, error) {
	if err := validateFormDef(def); err != nil {
		return FormModel{}, err
	}

	fields, err := b.objectFields(def.Request)
	if err != nil {
		return FormModel{}, err
	}

	return FormModel{
		FormID:      def.ID,
		Endpoint:    def.Path,
		Method:      strings.ToUpper(def.Method),
		Summary:     def.Summary,
		Description: def.Description,
		Template:    def.Template,
		Fields:      fields,
	}, nil
}

// objectFields flattens an object schema into one field per property, sorted
// by name so model output is stable. A non-object schema contributes a single
// unnamed field.
func (b *Builder) objectFields(schema formspec.Schema) ([]Field, error) {
	if schema.Type != "object" && schema.Type != "" {
		field, err := b.buildField("", schema, true)
		if err != nil {
			return nil, err
		}
		return []Field{field}, nil
	}

	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		requiredSet[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		_, required := requiredSet[name]
		field, err := b.buildField(name, schema.Properties[name], required)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// buildField converts one schema into one field, recursing into object
// properties and array items.
func (b *Builder) buildField(name string, schema formspec.Schema, required bool) (Field, error) {
	field := Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Label:       b.opts.Labeler(name),
		Description: schema.Description,
		Required:    required,
		Default:     schema.Default,
		Validations: rulesFor(schema),
	}
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}

	switch schema.Type {
	case "object", "":
		nested, err := b.objectFields(schema)
		if err != nil {
			return Field{}, err
		}
		field.Type = FieldTypeObject
		field.Nested = nested
	case "array":
		if schema.Items == nil {
			return Field{}, fmt.Errorf("form builder: array field %q missing items", name)
		}
		item, err := b.buildField(name+"Item", *schema.Items, false)
		if err != nil {
			return Field{}, err
		}
		field.Items = &item
	}

	return field, nil
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	case "array":
		return FieldTypeArray
	case "object":
		return FieldTypeObject
	default:
		return FieldTypeString
	}
}

// rulesFor extracts the schema constraints the validator enforces. Thresholds
// are stringified so models serialise stably.
func rulesFor(schema formspec.Schema) []ValidationRule {
	var rules []ValidationRule

	bound := func(kind string, value *float64, exclusive bool) {
		if value == nil {
			return
		}
		params := map[string]string{
			"value": strconv.FormatFloat(*value, 'f', -1, 64),
		}
		if exclusive {
			params["exclusive"] = "true"
		}
		rules = append(rules, ValidationRule{Kind: kind, Params: params})
	}
	bound(ValidationRuleMin, schema.Minimum, schema.ExclusiveMinimum)
	bound(ValidationRuleMax, schema.Maximum, schema.ExclusiveMaximum)

	length := func(kind string, value *int) {
		if value == nil {
			return
		}
		rules = append(rules, ValidationRule{
			Kind:   kind,
			Params: map[string]string{"value": strconv.Itoa(*value)},
		})
	}
	length(ValidationRuleMinLength, schema.MinLength)
	length(ValidationRuleMaxLength, schema.MaxLength)

	if schema.Pattern != "" {
		rules = append(rules, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
	return rules
}
