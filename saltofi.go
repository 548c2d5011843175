// Package saltofi turns user-entered observation parameters into SALT Phase
// II proposal blocks: input is validated against a declarative form schema,
// rendered into block XML, and optionally submitted to the SALT Web Manager.
package saltofi

import (
	"context"

	internalLoader "github.com/mastertom/saltofi/internal/formspec/loader"
	internalParser "github.com/mastertom/saltofi/internal/formspec/parser"
	"github.com/mastertom/saltofi/pkg/formspec"
	"github.com/mastertom/saltofi/pkg/orchestrator"
	"github.com/mastertom/saltofi/pkg/render"
)

// RenderOptions describes per-request instructions renderers can use, such as
// extra template slot values; alias exported via the root package for
// convenience.
type RenderOptions = render.RenderOptions

// Request aliases the orchestrator request for callers using the root entry
// points.
type Request = orchestrator.Request

// Result aliases the orchestrator result.
type Result = orchestrator.Result

// NewOrchestrator exposes the pipeline constructor from the top-level module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateBlock loads the form schema, validates the input against the named
// form, and renders the observation block. It is the simplest entry point for
// callers that just want the block XML.
func GenerateBlock(ctx context.Context, source formspec.Source, formID string, input map[string]any, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	result, err := gen.Generate(ctx, orchestrator.Request{
		Source: source,
		FormID: formID,
		Input:  input,
	})
	if err != nil {
		return nil, err
	}
	return result.XML, nil
}

// GenerateBlockFromDocument renders a block using a pre-loaded schema
// document, bypassing the loader stage while still delegating to the
// pipeline.
func GenerateBlockFromDocument(ctx context.Context, doc formspec.Document, formID string, input map[string]any, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	result, err := gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		FormID:   formID,
		Input:    input,
	})
	if err != nil {
		return nil, err
	}
	return result.XML, nil
}

// NewLoader constructs a schema loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...formspec.LoaderOption) formspec.Loader {
	cfg := formspec.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a schema parser backed by the internal implementation.
func NewParser(options ...formspec.ParserOption) formspec.Parser {
	cfg := formspec.NewParserOptions(options...)
	return internalParser.New(cfg)
}
