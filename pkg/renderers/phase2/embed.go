package phase2

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.xml
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded block skeletons for consumers that want to
// ship the built-in Phase II templates as-is.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
