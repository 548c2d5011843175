package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mastertom/saltofi/pkg/formspec"
)

// templateExtensionKey names the operation extension that binds a proposal
// type to its XML block skeleton.
const templateExtensionKey = "x-salt-template"

// formMethods are the HTTP methods that can carry a submission form.
var formMethods = []string{"POST", "PUT", "PATCH"}

// Parser implements formspec.Parser using kin-openapi.
type Parser struct {
	options formspec.ParserOptions
}

var _ formspec.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options formspec.ParserOptions) formspec.Parser {
	return &Parser{options: options}
}

// Forms converts a Document into form definitions keyed by operationId.
func (p *Parser) Forms(ctx context.Context, doc formspec.Document) (map[string]formspec.FormDef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("formspec parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("formspec parser: load document: %w", err)
	}

	if (spec.Paths == nil || spec.Paths.Len() == 0) && !p.options.AllowPartialDocuments {
		return nil, errors.New("formspec parser: document does not contain any paths")
	}
	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("formspec parser: validate: %w", err)
		}
	}

	forms := make(map[string]formspec.FormDef)
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, method := range formMethods {
				if op := item.GetOperation(method); op != nil {
					if def, ok := formFromOperation(method, path, op); ok {
						forms[def.ID] = def
					}
				}
			}
		}
	}

	if len(forms) == 0 && !p.options.AllowPartialDocuments {
		return nil, errors.New("formspec parser: no forms extracted")
	}
	return forms, nil
}

// formFromOperation maps one operation onto a form definition. Operations
// that fail basic validation are skipped rather than failing the document.
func formFromOperation(method, path string, operation *openapi3.Operation) (formspec.FormDef, bool) {
	formID := operation.OperationID
	if formID == "" {
		formID = strings.ToLower(method) + ":" + path
	}

	def, err := formspec.NewFormDef(formID, method, path,
		requestSchema(operation.RequestBody),
		responseSchemas(operation.Responses))
	if err != nil {
		return formspec.FormDef{}, false
	}

	def.Summary = operation.Summary
	def.Description = operation.Description
	if raw, ok := operation.Extensions[templateExtensionKey]; ok {
		if name, ok := raw.(string); ok {
			def.Template = strings.TrimSpace(name)
		}
	}
	return def, true
}

// requestSchema picks the schema of the first supported request media type.
func requestSchema(requestBody *openapi3.RequestBodyRef) formspec.Schema {
	if requestBody == nil {
		return formspec.Schema{}
	}
	if requestBody.Value == nil {
		return formspec.Schema{Ref: requestBody.Ref}
	}

	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok {
			return convertSchema(mt.Schema)
		}
	}
	for _, mt := range content {
		return convertSchema(mt.Schema)
	}
	return formspec.Schema{}
}

func responseSchemas(responses *openapi3.Responses) map[string]formspec.Schema {
	if responses == nil || responses.Len() == 0 {
		return nil
	}

	result := make(map[string]formspec.Schema)
	for status, ref := range responses.Map() {
		if ref == nil {
			continue
		}
		schema, ok := responseSchema(ref)
		if !ok {
			continue
		}
		result[status] = schema
	}
	return result
}

func responseSchema(ref *openapi3.ResponseRef) (formspec.Schema, bool) {
	if ref.Value == nil {
		return formspec.Schema{Ref: ref.Ref}, ref.Ref != ""
	}

	content := ref.Value.Content
	if len(content) == 0 {
		return formspec.Schema{}, false
	}

	var schema formspec.Schema
	if mt, ok := content["application/json"]; ok {
		schema = convertSchema(mt.Schema)
	} else {
		for _, mt := range content {
			schema = convertSchema(mt.Schema)
			break
		}
	}
	if schema.Description == "" && ref.Value.Description != nil {
		schema.Description = *ref.Value.Description
	}

	empty := schema.Ref == "" && schema.Type == "" && schema.Items == nil && len(schema.Properties) == 0
	return schema, !empty
}
