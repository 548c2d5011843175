package form

import (
	"errors"
	"fmt"
	"strings"
)

// FieldIssue describes a single validation failure on a named field. An empty
// Field marks a form-level issue.
type FieldIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError aggregates every issue found while validating user input
// against a form model. It is recoverable: callers re-prompt the user with the
// enumerated messages.
type ValidationError struct {
	FormID string
	Issues []FieldIssue
}

// Error summarises the issues, one per line after the heading.
func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "form: invalid input"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "form: %d invalid field(s)", len(e.Issues))
	for _, issue := range e.Issues {
		b.WriteString("; ")
		if issue.Field != "" {
			b.WriteString(issue.Field)
			b.WriteString(": ")
		}
		b.WriteString(issue.Message)
	}
	return b.String()
}

// Add appends a formatted issue for the given field.
func (e *ValidationError) Add(field, format string, args ...any) {
	e.Issues = append(e.Issues, FieldIssue{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasIssues reports whether any issue was recorded.
func (e *ValidationError) HasIssues() bool {
	return e != nil && len(e.Issues) > 0
}

// Fields groups messages by field path, in the shape UI layers consume.
func (e *ValidationError) Fields() map[string][]string {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e.Issues))
	for _, issue := range e.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
