package template

import (
	"io"
)

// TemplateRenderer is the engine contract the block renderers rely on. The
// pongo2-backed implementation lives in the gotemplate subpackage.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
