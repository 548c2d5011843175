package form

import internalform "github.com/mastertom/saltofi/internal/form"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalform.FieldType

const (
	FieldTypeString  = internalform.FieldTypeString
	FieldTypeInteger = internalform.FieldTypeInteger
	FieldTypeNumber  = internalform.FieldTypeNumber
	FieldTypeBoolean = internalform.FieldTypeBoolean
	FieldTypeArray   = internalform.FieldTypeArray
	FieldTypeObject  = internalform.FieldTypeObject
)

const (
	ValidationRuleMin       = internalform.ValidationRuleMin
	ValidationRuleMax       = internalform.ValidationRuleMax
	ValidationRuleMinLength = internalform.ValidationRuleMinLength
	ValidationRuleMaxLength = internalform.ValidationRuleMaxLength
	ValidationRulePattern   = internalform.ValidationRulePattern
)

type ValidationRule = internalform.ValidationRule
type Field = internalform.Field
type FormModel = internalform.FormModel
