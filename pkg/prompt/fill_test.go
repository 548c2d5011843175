package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mastertom/saltofi/pkg/form"
	"github.com/mastertom/saltofi/pkg/prompt"
)

// scriptedDriver replays canned answers and records the prompts it was shown.
type scriptedDriver struct {
	inputs   []string
	confirms []bool
	selects  []string

	inputConfigs  []prompt.InputConfig
	selectConfigs []prompt.SelectConfig
	err           error
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.inputConfigs = append(d.inputConfigs, cfg)
	if len(d.inputs) == 0 {
		return "", errors.New("no scripted input left")
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if len(d.confirms) == 0 {
		return false, errors.New("no scripted confirm left")
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	d.selectConfigs = append(d.selectConfigs, cfg)
	if len(d.selects) == 0 {
		return 0, errors.New("no scripted select left")
	}
	want := d.selects[0]
	d.selects = d.selects[1:]
	for i, option := range cfg.Options {
		if option == want {
			return i, nil
		}
	}
	return -1, nil
}

func (d *scriptedDriver) Info(_ context.Context, _ string) error { return d.err }

func grbModel() form.FormModel {
	return form.FormModel{
		FormID: "submitGrbFollowup",
		Fields: []form.Field{
			{Name: "target_name", Label: "Target Name", Type: form.FieldTypeString, Required: true},
			{Name: "exposure_time", Label: "Exposure Time", Type: form.FieldTypeInteger, Required: true, Default: float64(1500)},
			{Name: "magnitude_filter", Label: "Filter", Type: form.FieldTypeString, Enum: []any{"U", "B", "V", "R", "I"}},
			{Name: "comments", Label: "Comments", Type: form.FieldTypeString},
		},
	}
}

func TestFillCollectsAnswers(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"GRB 200101A", "300", "bright afterglow"},
		selects: []string{"V"},
	}

	values, err := prompt.Fill(context.Background(), driver, grbModel())
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	want := map[string]any{
		"target_name":      "GRB 200101A",
		"exposure_time":    "300",
		"magnitude_filter": "V",
		"comments":         "bright afterglow",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFillOmitsSkippedOptionalFields(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"GRB 200101A", "300", ""},
		selects: []string{"(skip)"},
	}

	values, err := prompt.Fill(context.Background(), driver, grbModel())
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	if _, ok := values["magnitude_filter"]; ok {
		t.Fatalf("skipped enum should be omitted, got %v", values)
	}
	if _, ok := values["comments"]; ok {
		t.Fatalf("empty optional input should be omitted, got %v", values)
	}
}

func TestFillMarksRequiredFieldsAndDefaults(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"GRB 200101A", "300", ""},
		selects: []string{"(skip)"},
	}

	if _, err := prompt.Fill(context.Background(), driver, grbModel()); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	if got := driver.inputConfigs[0].Message; got != "Target Name *" {
		t.Fatalf("required message = %q", got)
	}
	if got := driver.inputConfigs[1].Default; got != "1500" {
		t.Fatalf("default = %q", got)
	}
	if got := driver.inputConfigs[2].Message; got != "Comments" {
		t.Fatalf("optional message = %q", got)
	}

	options := driver.selectConfigs[0].Options
	if len(options) != 6 || options[0] != "(skip)" {
		t.Fatalf("enum options = %v", options)
	}
}

func TestFillValidatorRejectsBadNumbers(t *testing.T) {
	driver := &scriptedDriver{
		inputs:  []string{"GRB 200101A", "300", ""},
		selects: []string{"(skip)"},
	}

	if _, err := prompt.Fill(context.Background(), driver, grbModel()); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	validate := driver.inputConfigs[1].Validator
	if validate == nil {
		t.Fatal("integer field must carry a validator")
	}
	if err := validate("abc"); err == nil {
		t.Fatal("non-numeric exposure time accepted")
	}
	if err := validate("300"); err != nil {
		t.Fatalf("valid exposure time rejected: %v", err)
	}
	if err := validate(""); err == nil {
		t.Fatal("empty required field accepted")
	}

	optional := driver.inputConfigs[2].Validator
	if err := optional(""); err != nil {
		t.Fatalf("empty optional field rejected: %v", err)
	}
}

func TestFillPropagatesAbort(t *testing.T) {
	driver := &scriptedDriver{err: prompt.ErrAborted}

	_, err := prompt.Fill(context.Background(), driver, grbModel())
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("error = %v, want ErrAborted", err)
	}
}

func TestFillHonoursContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := prompt.Fill(ctx, &scriptedDriver{}, grbModel())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
