package render

import (
	"context"

	"github.com/mastertom/saltofi/pkg/observation"
)

// Renderer converts an observation block into a byte representation (Phase II
// block XML for the built-in renderer).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, block observation.Block, options RenderOptions) ([]byte, error)
}
