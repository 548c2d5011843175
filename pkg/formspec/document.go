package formspec

import "errors"

// Document wraps the raw form definition payload and its origin. Exposing
// this type instead of kin-openapi structs keeps the public API decoupled
// from the parser implementation.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument wraps a payload, rejecting empty input. The payload is copied
// so callers cannot mutate it afterwards.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("formspec: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("formspec: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created. Used for embedded
// schemas and test fixtures.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the document payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// FormDef models one proposal-type form extracted from a document: the
// operation id, the submission endpoint metadata, and the request schema the
// form model builder consumes.
type FormDef struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Request     Schema
	Responses   map[string]Schema
	// Template names the XML block skeleton this proposal type renders with,
	// taken from the x-salt-template extension on the operation.
	Template string
}

// NewFormDef validates the identifying fields and initialises the response
// map.
func NewFormDef(id, method, path string, request Schema, responses map[string]Schema) (FormDef, error) {
	if id == "" {
		return FormDef{}, errors.New("formspec: form id is required")
	}
	if method == "" {
		return FormDef{}, errors.New("formspec: form method is required")
	}
	if path == "" {
		return FormDef{}, errors.New("formspec: form path is required")
	}
	if responses == nil {
		responses = make(map[string]Schema)
	}

	return FormDef{
		ID:        id,
		Method:    method,
		Path:      path,
		Request:   request,
		Responses: responses,
	}, nil
}

// MustNewFormDef panics when construction fails, assisting fixtures and
// tests.
func MustNewFormDef(id, method, path string, request Schema, responses map[string]Schema) FormDef {
	def, err := NewFormDef(id, method, path, request, responses)
	if err != nil {
		panic(err)
	}
	return def
}

// Schema represents request/response bodies and nested fields within a form
// definition, including the constraints the validator enforces.
type Schema struct {
	Ref              string
	Type             string
	Format           string
	Required         []string
	Properties       map[string]Schema
	Items            *Schema
	Enum             []any
	Description      string
	Default          any
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MinLength        *int
	MaxLength        *int
	Pattern          string
}
