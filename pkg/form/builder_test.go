package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mastertom/saltofi/pkg/form"
	"github.com/mastertom/saltofi/pkg/formspec"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func grbRequestSchema() formspec.Schema {
	return formspec.Schema{
		Type:     "object",
		Required: []string{"target_name", "exposure_time"},
		Properties: map[string]formspec.Schema{
			"target_name": {
				Type:      "string",
				MinLength: intPtr(1),
				MaxLength: intPtr(100),
			},
			"exposure_time": {
				Type:    "integer",
				Minimum: floatPtr(1),
				Default: float64(1500),
			},
			"magnitude_filter": {
				Type: "string",
				Enum: []any{"U", "B", "V", "R", "I"},
			},
			"proposal_code": {
				Type:    "string",
				Pattern: `^\d{4}-\d-[A-Z]{3}-\d{3}$`,
			},
		},
	}
}

func TestBuilderBuildsSortedFields(t *testing.T) {
	def := formspec.MustNewFormDef("submitGrbFollowup", "post", "/observations/grb", grbRequestSchema(), nil)
	def.Template = "grb"

	model, err := form.NewBuilder().Build(def)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if model.FormID != "submitGrbFollowup" {
		t.Fatalf("form id = %q", model.FormID)
	}
	if model.Method != "POST" {
		t.Fatalf("method = %q", model.Method)
	}
	if model.Template != "grb" {
		t.Fatalf("template = %q", model.Template)
	}

	var names []string
	for _, field := range model.Fields {
		names = append(names, field.Name)
	}
	want := []string{"exposure_time", "magnitude_filter", "proposal_code", "target_name"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderFieldDetails(t *testing.T) {
	def := formspec.MustNewFormDef("submitGrbFollowup", "post", "/observations/grb", grbRequestSchema(), nil)

	model, err := form.NewBuilder().Build(def)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	exposure, ok := model.FieldByName("exposure_time")
	if !ok {
		t.Fatal("missing exposure_time field")
	}
	if exposure.Type != form.FieldTypeInteger || !exposure.Required {
		t.Fatalf("exposure field = %+v", exposure)
	}
	if exposure.Label != "Exposure Time" {
		t.Fatalf("label = %q", exposure.Label)
	}
	if exposure.Default != float64(1500) {
		t.Fatalf("default = %v", exposure.Default)
	}
	if len(exposure.Validations) != 1 || exposure.Validations[0].Kind != form.ValidationRuleMin {
		t.Fatalf("validations = %+v", exposure.Validations)
	}

	filter, ok := model.FieldByName("magnitude_filter")
	if !ok {
		t.Fatal("missing magnitude_filter field")
	}
	if filter.Required {
		t.Fatal("magnitude_filter must be optional")
	}
	if diff := cmp.Diff([]any{"U", "B", "V", "R", "I"}, filter.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	code, ok := model.FieldByName("proposal_code")
	if !ok {
		t.Fatal("missing proposal_code field")
	}
	if len(code.Validations) != 1 || code.Validations[0].Kind != form.ValidationRulePattern {
		t.Fatalf("validations = %+v", code.Validations)
	}
}

func TestBuilderRejectsIncompleteDefinitions(t *testing.T) {
	_, err := form.NewBuilder().Build(formspec.FormDef{Method: "post", Path: "/x"})
	if err == nil {
		t.Fatal("expected error for missing form id")
	}
}
