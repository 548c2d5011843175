package form

import (
	"errors"
	"fmt"

	"github.com/mastertom/saltofi/pkg/formspec"
)

var (
	errFormIDMissing     = errors.New("form builder: form id is required")
	errFormPathMissing   = errors.New("form builder: form path is required")
	errFormMethodMissing = errors.New("form builder: form method is required")
)

func validateFormDef(def formspec.FormDef) error {
	if def.ID == "" {
		return errFormIDMissing
	}
	if def.Path == "" {
		return errFormPathMissing
	}
	if def.Method == "" {
		return errFormMethodMissing
	}
	if err := validateSchema(def.Request); err != nil {
		return fmt.Errorf("form builder: invalid request schema: %w", err)
	}
	return nil
}

func validateSchema(schema formspec.Schema) error {
	if schema.Type == "array" && schema.Items == nil {
		return errors.New("array schema requires items")
	}
	if schema.Type == "object" {
		for _, nested := range schema.Properties {
			if err := validateSchema(nested); err != nil {
				return err
			}
		}
	}
	if schema.Items != nil {
		return validateSchema(*schema.Items)
	}
	return nil
}
