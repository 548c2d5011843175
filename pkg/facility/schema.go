package facility

import (
	_ "embed"

	"github.com/mastertom/saltofi/pkg/formspec"
)

//go:embed schemas/salt.json
var saltSchema []byte

// SchemaDocument returns the built-in form schema document describing the
// observation request forms SALT accepts.
func SchemaDocument() formspec.Document {
	return formspec.MustNewDocument(formspec.SourceFromFile("schemas/salt.json"), saltSchema)
}
