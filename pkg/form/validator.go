package form

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Validator checks raw user input against a FormModel and produces cleaned
// field values. It has no side effects beyond the returned map: failures come
// back as a *ValidationError enumerating every missing, out-of-range, or
// malformed field.
type Validator struct {
	policy *bluemonday.Policy
}

// ValidatorOption configures the validator.
type ValidatorOption func(*Validator)

// WithSanitizer overrides the policy applied to free-text values. The default
// strict policy strips all markup.
func WithSanitizer(policy *bluemonday.Policy) ValidatorOption {
	return func(v *Validator) {
		if policy != nil {
			v.policy = policy
		}
	}
}

// NewValidator constructs a Validator applying any provided options.
func NewValidator(options ...ValidatorOption) *Validator {
	v := &Validator{
		policy: bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Validate coerces and checks input against the model's fields. Keys without a
// matching field are dropped. On success the returned map holds one cleaned
// value per field that was present (or defaulted); on failure the error is a
// *ValidationError carrying one issue per offending field.
func (v *Validator) Validate(model FormModel, input map[string]any) (map[string]any, error) {
	verr := &ValidationError{FormID: model.FormID}
	values := make(map[string]any, len(model.Fields))

	for _, field := range model.Fields {
		raw, present := input[field.Name]
		if !present || isEmptyValue(raw) {
			if field.Default != nil {
				values[field.Name] = field.Default
				continue
			}
			if field.Required {
				verr.Add(field.Name, "is required")
			}
			continue
		}

		value, ok := v.coerce(field, raw, verr)
		if !ok {
			continue
		}
		if !checkRules(field, value, verr) {
			continue
		}
		if !checkEnum(field, value, verr) {
			continue
		}
		values[field.Name] = value
	}

	if verr.HasIssues() {
		return nil, verr
	}
	return values, nil
}

// coerce converts raw into the field's canonical Go type, recording an issue
// and returning ok=false when the value cannot be interpreted.
func (v *Validator) coerce(field Field, raw any, verr *ValidationError) (any, bool) {
	switch field.Type {
	case FieldTypeString:
		s, ok := stringValue(raw)
		if !ok {
			verr.Add(field.Name, "must be a string")
			return nil, false
		}
		return v.sanitize(s), true
	case FieldTypeInteger:
		n, ok := intValue(raw)
		if !ok {
			verr.Add(field.Name, "must be an integer")
			return nil, false
		}
		return n, true
	case FieldTypeNumber:
		f, ok := floatValue(raw)
		if !ok {
			verr.Add(field.Name, "must be a number")
			return nil, false
		}
		return f, true
	case FieldTypeBoolean:
		b, ok := boolValue(raw)
		if !ok {
			verr.Add(field.Name, "must be a boolean")
			return nil, false
		}
		return b, true
	default:
		// Objects and arrays pass through untouched; the SALT forms are flat.
		return raw, true
	}
}

// sanitize strips markup from free text and folds entity escapes back to
// plain characters so later XML escaping happens exactly once.
func (v *Validator) sanitize(s string) string {
	cleaned := v.policy.Sanitize(s)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func checkRules(field Field, value any, verr *ValidationError) bool {
	ok := true
	for _, rule := range field.Validations {
		switch rule.Kind {
		case ValidationRuleMin:
			bound, exclusive := numericRule(rule)
			if f, isNum := floatValue(value); isNum {
				if f < bound || (exclusive && f == bound) {
					verr.Add(field.Name, "must be at least %s", formatBound(bound, exclusive))
					ok = false
				}
			}
		case ValidationRuleMax:
			bound, exclusive := numericRule(rule)
			if f, isNum := floatValue(value); isNum {
				if f > bound || (exclusive && f == bound) {
					verr.Add(field.Name, "must be at most %s", formatBound(bound, exclusive))
					ok = false
				}
			}
		case ValidationRuleMinLength:
			if s, isStr := value.(string); isStr {
				if limit, err := strconv.Atoi(rule.Params["value"]); err == nil && utf8.RuneCountInString(s) < limit {
					verr.Add(field.Name, "must be at least %d characters", limit)
					ok = false
				}
			}
		case ValidationRuleMaxLength:
			if s, isStr := value.(string); isStr {
				if limit, err := strconv.Atoi(rule.Params["value"]); err == nil && utf8.RuneCountInString(s) > limit {
					verr.Add(field.Name, "must be at most %d characters", limit)
					ok = false
				}
			}
		case ValidationRulePattern:
			if s, isStr := value.(string); isStr {
				re, err := regexp.Compile(rule.Params["pattern"])
				if err != nil {
					verr.Add(field.Name, "has an unusable pattern constraint")
					ok = false
					continue
				}
				if !re.MatchString(s) {
					verr.Add(field.Name, "does not match the expected format")
					ok = false
				}
			}
		}
	}
	return ok
}

func checkEnum(field Field, value any, verr *ValidationError) bool {
	if len(field.Enum) == 0 {
		return true
	}
	want := fmt.Sprint(value)
	for _, candidate := range field.Enum {
		if fmt.Sprint(candidate) == want {
			return true
		}
	}
	verr.Add(field.Name, "must be one of %s", enumList(field.Enum))
	return false
}

func numericRule(rule ValidationRule) (float64, bool) {
	bound, err := strconv.ParseFloat(rule.Params["value"], 64)
	if err != nil {
		return 0, false
	}
	return bound, rule.Params["exclusive"] == "true"
}

func formatBound(bound float64, exclusive bool) string {
	s := strconv.FormatFloat(bound, 'f', -1, 64)
	if exclusive {
		return "more than " + s
	}
	return s
}

func enumList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, ", ")
}

func isEmptyValue(raw any) bool {
	s, ok := raw.(string)
	return ok && strings.TrimSpace(s) == ""
}

func stringValue(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	return s, true
}

func intValue(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func floatValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func boolValue(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}
