package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	internalLoader "github.com/mastertom/saltofi/internal/formspec/loader"
	internalParser "github.com/mastertom/saltofi/internal/formspec/parser"
	"github.com/mastertom/saltofi/pkg/form"
	"github.com/mastertom/saltofi/pkg/formspec"
	"github.com/mastertom/saltofi/pkg/observation"
	"github.com/mastertom/saltofi/pkg/render"
	"github.com/mastertom/saltofi/pkg/renderers/phase2"
)

const defaultRendererName = "phase2"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(loader formspec.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom schema parser.
func WithParser(parser formspec.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder form.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithValidator injects a custom input validator.
func WithValidator(validator *form.Validator) Option {
	return func(o *Orchestrator) {
		if validator != nil {
			o.validator = validator
		}
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithClock overrides the time source used for semester assignment. Tests use
// it to pin the semester; production callers keep the default.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// Orchestrator coordinates the pipeline from schema document to rendered
// observation block. It applies sensible defaults (Phase II renderer, built-in
// loader and parser) while remaining open to dependency injection.
type Orchestrator struct {
	loader          formspec.Loader
	parser          formspec.Parser
	builder         form.Builder
	validator       *form.Validator
	registry        *render.Registry
	defaultRenderer string
	now             func() time.Time
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		now:             time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to turn raw form input into a
// rendered observation block.
type Request struct {
	// Source identifies where the schema document lives. Optional when
	// Document is supplied.
	Source formspec.Source

	// Document allows callers to bypass the loader when they already have a
	// loaded payload.
	Document *formspec.Document

	// FormID selects which form definition to validate against.
	FormID string

	// Input holds the raw submitted values keyed by field name.
	Input map[string]any

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as extra template
	// slot values. The orchestrator fills in the template binding from the
	// form definition when the caller leaves it empty.
	RenderOptions render.RenderOptions
}

// Result bundles the outcome of a pipeline run.
type Result struct {
	// Form is the model the input was validated against.
	Form form.FormModel

	// Block is the observation block the document was rendered from, with
	// codes and semester already assigned.
	Block observation.Block

	// XML is the rendered block document.
	XML []byte
}

// Payload converts the result into the submission payload the portal client
// accepts.
func (r Result) Payload() observation.Payload {
	return observation.Payload{
		TargetName:   r.Block.Request.TargetName,
		BlockCode:    r.Block.Code,
		ProposalCode: r.Block.Request.ProposalCode,
		Semester:     r.Block.Semester,
		XML:          r.XML,
	}
}

// Generate executes the loader → parser → builder → validator → renderer
// sequence and returns the rendered block alongside its metadata.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	model, def, err := o.formModel(ctx, req)
	if err != nil {
		return Result{}, err
	}

	values, err := o.validator.Validate(model, req.Input)
	if err != nil {
		return Result{}, err
	}

	obsReq, err := observation.FromValues(values)
	if err != nil {
		return Result{}, err
	}

	block := observation.NewBlock(obsReq, observation.SemesterFor(o.now()))
	return o.renderBlock(ctx, req, def, model, block)
}

// Render renders a pre-built observation block without running validation.
// Callers that constructed the block themselves (or need byte-identical
// re-renders) use this path.
func (o *Orchestrator) Render(ctx context.Context, req Request, block observation.Block) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	model, def, err := o.formModel(ctx, req)
	if err != nil {
		return Result{}, err
	}
	return o.renderBlock(ctx, req, def, model, block)
}

// FormModel resolves and builds the form model for a request, for callers
// that drive input collection themselves (interactive prompts, web handlers).
func (o *Orchestrator) FormModel(ctx context.Context, req Request) (form.FormModel, error) {
	if ctx == nil {
		return form.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return form.FormModel{}, err
	}
	model, _, err := o.formModel(ctx, req)
	return model, err
}

func (o *Orchestrator) formModel(ctx context.Context, req Request) (form.FormModel, formspec.FormDef, error) {
	if req.FormID == "" {
		return form.FormModel{}, formspec.FormDef{}, errors.New("orchestrator: form id is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return form.FormModel{}, formspec.FormDef{}, err
	}

	forms, err := o.parser.Forms(ctx, doc)
	if err != nil {
		return form.FormModel{}, formspec.FormDef{}, fmt.Errorf("orchestrator: parse forms: %w", err)
	}

	def, ok := forms[req.FormID]
	if !ok {
		return form.FormModel{}, formspec.FormDef{}, fmt.Errorf("orchestrator: form %q not found", req.FormID)
	}

	model, err := o.builder.Build(def)
	if err != nil {
		return form.FormModel{}, formspec.FormDef{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	return model, def, nil
}

func (o *Orchestrator) renderBlock(ctx context.Context, req Request, def formspec.FormDef, model form.FormModel, block observation.Block) (Result, error) {
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	options := req.RenderOptions
	if options.Template == "" {
		options.Template = def.Template
	}

	output, err := renderer.Render(ctx, block, options)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render block: %w", err)
	}

	return Result{Form: model, Block: block, XML: output}, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (formspec.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return formspec.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return formspec.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(formspec.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(formspec.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = form.NewBuilder()
	}
	if o.validator == nil {
		o.validator = form.NewValidator()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := phase2.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: initialise default renderer: %w", err)
		} else if err := o.registry.Register(renderer); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register default renderer: %w", err)
		}
	}

	o.defaultsApplied = true
}
