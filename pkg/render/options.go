package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the observation block.
type RenderOptions struct {
	// Template names the block skeleton to fill, overriding the renderer's
	// configured default. The pipeline sets it from the form definition's
	// template binding.
	Template string

	// Extra supplies additional slot values keyed by slot name, for template
	// slots the block itself does not carry (for example a finding chart
	// path). Extra values never override block-derived slots.
	Extra map[string]any
}
