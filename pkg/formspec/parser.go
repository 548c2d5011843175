package formspec

import "context"

// Parser extracts the form definitions a document declares, keyed by form id.
type Parser interface {
	Forms(ctx context.Context, doc Document) (map[string]FormDef, error)
}

// ParserOptions holds the parser toggles.
type ParserOptions struct {
	// ResolveReferences makes the parser validate the document and resolve
	// $ref pointers eagerly. On by default.
	ResolveReferences bool

	// AllowPartialDocuments accepts documents that declare no operations.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles eager reference resolution.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles acceptance of operation-free documents.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions resolves a set of ParserOption values.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{ResolveReferences: true}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
