package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mastertom/saltofi/pkg/form"
)

// TemplateError marks a template/field mismatch: a slot with no corresponding
// value, or substitution that produced unusable markup. It is a
// configuration-time bug, not something the user can fix by re-entering data.
type TemplateError struct {
	// Template names the skeleton being rendered.
	Template string
	// MissingSlots lists placeholder slots with no corresponding value.
	MissingSlots []string
	// Err carries the underlying engine or well-formedness failure, if any.
	Err error
}

// Error summarises the mismatch.
func (e *TemplateError) Error() string {
	switch {
	case len(e.MissingSlots) > 0:
		return fmt.Sprintf("render: template %q has unfilled slots: %s",
			e.Template, strings.Join(e.MissingSlots, ", "))
	case e.Err != nil:
		return fmt.Sprintf("render: template %q: %v", e.Template, e.Err)
	default:
		return fmt.Sprintf("render: template %q failed", e.Template)
	}
}

// Unwrap exposes the underlying failure for errors.Is/As chains.
func (e *TemplateError) Unwrap() error {
	return e.Err
}

// AsTemplateError unwraps err into a *TemplateError when possible.
func AsTemplateError(err error) (*TemplateError, bool) {
	var terr *TemplateError
	if errors.As(err, &terr) {
		return terr, true
	}
	return nil, false
}

// PortalFeedback splits a portal rejection payload into field-level and
// form-level messages keyed by the form's field names.
type PortalFeedback struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapPortalFeedback normalises portal rejection payloads into the field names
// a form UI can attach messages to. Keys that match no field are treated as
// form-level so messages are not lost.
func MapPortalFeedback(model form.FormModel, payload map[string][]string) PortalFeedback {
	feedback := PortalFeedback{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		return feedback
	}

	known := make(map[string]struct{}, len(model.Fields))
	for _, field := range model.Fields {
		known[field.Name] = struct{}{}
	}

	for rawKey, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		key := fieldKey(rawKey, known)
		if key == "" {
			feedback.Form = append(feedback.Form, normalized...)
			continue
		}
		feedback.Fields[key] = append(feedback.Fields[key], normalized...)
	}

	if len(feedback.Fields) == 0 {
		feedback.Fields = nil
	}
	feedback.Form = normalizeMessages(feedback.Form)
	return feedback
}

func fieldKey(raw string, known map[string]struct{}) string {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return ""
	}

	// Portal messages sometimes wrap the field in an element-style path like
	// Block/Target/Name; try the last segment as well as the whole key.
	candidates := []string{trimmed}
	if idx := strings.LastIndexAny(trimmed, "./"); idx >= 0 && idx+1 < len(trimmed) {
		candidates = append(candidates, trimmed[idx+1:])
	}

	for _, candidate := range candidates {
		normalized := strings.ToLower(strings.TrimSpace(candidate))
		if _, ok := known[normalized]; ok {
			return normalized
		}
	}
	return ""
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "block", "proposal", "form", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}
