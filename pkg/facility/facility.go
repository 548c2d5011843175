// Package facility ties the form pipeline to the SALT portal: it owns the
// built-in form schema, maps observation types to forms, and turns validated
// input into submitted proposal blocks.
package facility

import (
	"context"
	"errors"
	"fmt"

	"github.com/mastertom/saltofi/pkg/form"
	"github.com/mastertom/saltofi/pkg/observation"
	"github.com/mastertom/saltofi/pkg/orchestrator"
	"github.com/mastertom/saltofi/pkg/portal"
)

// Name identifies the facility.
const Name = "SALT"

// ObservationType pairs an observation type key with its human label.
type ObservationType struct {
	Key   string
	Label string
}

// Site describes an observing site's location.
type Site struct {
	Latitude  float64
	Longitude float64
	Elevation float64
}

// ObservationTypes lists the observation types this facility accepts.
func ObservationTypes() []ObservationType {
	return []ObservationType{
		{Key: "GRB", Label: "GRB Follow-Up"},
	}
}

// Sites returns the observing sites for this facility.
func Sites() map[string]Site {
	return map[string]Site{
		"SALT": {
			Latitude:  -32.376006,
			Longitude: 20.810678,
			Elevation: 1783,
		},
	}
}

// FormID maps an observation type to the form definition that collects its
// parameters. Unknown types fall back to the GRB follow-up form.
func FormID(observationType string) string {
	// every observation type currently maps to the GRB follow-up form
	return "submitGrbFollowup"
}

// Option configures a Facility.
type Option func(*Facility)

// WithOrchestrator injects a custom pipeline.
func WithOrchestrator(pipeline *orchestrator.Orchestrator) Option {
	return func(f *Facility) {
		if pipeline != nil {
			f.pipeline = pipeline
		}
	}
}

// WithPortalClient injects a custom portal client.
func WithPortalClient(client *portal.Client) Option {
	return func(f *Facility) {
		f.portal = client
	}
}

// Facility submits observation requests to SALT.
type Facility struct {
	cfg      Config
	pipeline *orchestrator.Orchestrator
	portal   *portal.Client
}

// New constructs a Facility from portal configuration.
func New(cfg Config, options ...Option) (*Facility, error) {
	f := &Facility{cfg: cfg}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}

	if f.pipeline == nil {
		f.pipeline = orchestrator.New()
	}
	if f.portal == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		client, err := portal.NewClient(cfg.PortalURL, portal.Credentials{
			Username: cfg.Username,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("facility: configure portal client: %w", err)
		}
		f.portal = client
	}
	return f, nil
}

// FormModel builds the form model for an observation type, for callers that
// collect input interactively or render their own UI.
func (f *Facility) FormModel(ctx context.Context, observationType string) (form.FormModel, error) {
	return f.pipeline.FormModel(ctx, f.request(observationType, nil))
}

// Generate validates the input and renders the block document without
// submitting it.
func (f *Facility) Generate(ctx context.Context, observationType string, input map[string]any) (orchestrator.Result, error) {
	return f.pipeline.Generate(ctx, f.request(observationType, input))
}

// Submit validates the input, renders the block, and sends it to the portal.
// It returns the block codes that track the submitted observations.
func (f *Facility) Submit(ctx context.Context, observationType string, input map[string]any) ([]string, error) {
	result, err := f.Generate(ctx, observationType, input)
	if err != nil {
		return nil, err
	}

	return f.SubmitPayload(ctx, result.Payload())
}

// SubmitPayload sends an already rendered block to the portal, for callers
// that ran the pipeline themselves.
func (f *Facility) SubmitPayload(ctx context.Context, payload observation.Payload) ([]string, error) {
	if payload.ProposalCode == "" {
		payload.ProposalCode = f.cfg.ProposalCode
	}
	if f.portal == nil {
		return nil, errors.New("facility: portal client is nil")
	}

	code, err := f.portal.Submit(ctx, payload)
	if err != nil {
		return nil, err
	}
	return []string{code}, nil
}

// ObservationStatus reports the portal-side status of a submitted block. The
// Web Manager offers no status query for blocks submitted this way, so every
// block reports as in progress.
func (f *Facility) ObservationStatus(_ context.Context, _ string) ([]string, error) {
	return []string{"IN_PROGRESS"}, nil
}

// TerminalStates lists the states after which a block will not change again.
func (f *Facility) TerminalStates() []string {
	return []string{"IN_PROGRESS", "COMPLETED"}
}

// ObservationURL returns a link to the observation in the portal. The Web
// Manager has no per-block page, so the URL is empty.
func (f *Facility) ObservationURL(_ string) string {
	return ""
}

// DataProducts lists data products for an observation. SALT serves data
// through its own archive, so there are none to report here.
func (f *Facility) DataProducts(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (f *Facility) request(observationType string, input map[string]any) orchestrator.Request {
	doc := SchemaDocument()
	return orchestrator.Request{
		Document: &doc,
		FormID:   FormID(observationType),
		Input:    input,
	}
}
