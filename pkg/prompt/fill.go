package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mastertom/saltofi/pkg/form"
)

// Fill walks the form model field by field and collects raw input values
// keyed by field name. Optional fields left empty are omitted so the
// validator can apply schema defaults. Numeric fields get inline parse
// checks; full constraint checking stays with the validator.
func Fill(ctx context.Context, driver PromptDriver, model form.FormModel) (map[string]any, error) {
	if driver == nil {
		driver = NewSurveyDriver()
	}

	values := make(map[string]any, len(model.Fields))
	for _, field := range model.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		value, ok, err := askField(ctx, driver, field)
		if err != nil {
			return nil, err
		}
		if ok {
			values[field.Name] = value
		}
	}
	return values, nil
}

func askField(ctx context.Context, driver PromptDriver, field form.Field) (any, bool, error) {
	message := field.Label
	if message == "" {
		message = field.Name
	}
	if field.Required {
		message += " *"
	}

	if len(field.Enum) > 0 {
		return askEnum(ctx, driver, field, message)
	}

	switch field.Type {
	case form.FieldTypeBoolean:
		defaultVal, _ := field.Default.(bool)
		out, err := driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: defaultVal,
			Help:    field.Description,
		})
		if err != nil {
			return nil, false, err
		}
		return out, true, nil

	default:
		out, err := driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   defaultString(field.Default),
			Help:      field.Description,
			Validator: inputValidator(field),
		})
		if err != nil {
			return nil, false, err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return nil, false, nil
		}
		return out, true, nil
	}
}

func askEnum(ctx context.Context, driver PromptDriver, field form.Field, message string) (any, bool, error) {
	options := make([]string, 0, len(field.Enum)+1)
	if !field.Required {
		options = append(options, "(skip)")
	}
	for _, option := range field.Enum {
		options = append(options, fmt.Sprint(option))
	}

	defaultIndex := 0
	if d := defaultString(field.Default); d != "" {
		if i := indexOf(options, d); i >= 0 {
			defaultIndex = i
		}
	}

	index, err := driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         field.Description,
	})
	if err != nil {
		return nil, false, err
	}
	if index < 0 {
		return nil, false, nil
	}
	choice := options[index]
	if choice == "(skip)" {
		return nil, false, nil
	}
	return choice, true, nil
}

// inputValidator gives immediate feedback on values that could never pass the
// pipeline's validation, so the user is not told about typos only at the end.
func inputValidator(field form.Field) func(string) error {
	return func(text string) error {
		text = strings.TrimSpace(text)
		if text == "" {
			if field.Required {
				return fmt.Errorf("%s is required", field.Name)
			}
			return nil
		}
		switch field.Type {
		case form.FieldTypeInteger:
			if _, err := strconv.Atoi(text); err != nil {
				return fmt.Errorf("%s must be an integer", field.Name)
			}
		case form.FieldTypeNumber:
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				return fmt.Errorf("%s must be a number", field.Name)
			}
		}
		return nil
	}
}

func defaultString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
