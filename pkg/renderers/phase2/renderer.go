// Package phase2 renders observation blocks into SALT Phase II block XML.
//
// Each proposal type maps to a block skeleton template; the renderer fills
// the skeleton's slots from the observation block, verifies up front that
// every slot has a value, and checks that the result is well-formed XML.
package phase2

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"

	"github.com/mastertom/saltofi/pkg/observation"
	"github.com/mastertom/saltofi/pkg/render"
	rendertemplate "github.com/mastertom/saltofi/pkg/render/template"
	gotemplate "github.com/mastertom/saltofi/pkg/render/template/gotemplate"
)

// DefaultTemplate is the block skeleton used when no template is configured.
const DefaultTemplate = "grb"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateName     string
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate skeleton bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads skeletons from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplate selects the block skeleton this renderer fills.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.templateName = name
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	templateFS   fs.FS
	templateName string
}

// New constructs the Phase II block renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		templateName: DefaultTemplate,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".xml"),
		)
		if err != nil {
			return nil, fmt.Errorf("phase2 renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		templateFS:   cfg.templateFS,
		templateName: cfg.templateName,
	}, nil
}

func (r *Renderer) Name() string {
	return "phase2"
}

func (r *Renderer) ContentType() string {
	return "application/xml; charset=utf-8"
}

// Render fills the configured block skeleton from the observation block.
// Every slot the skeleton declares must be covered by the block data or the
// Extra options; uncovered slots fail the render rather than producing a
// document with silently empty elements.
func (r *Renderer) Render(ctx context.Context, block observation.Block, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, errors.New("phase2 renderer: template renderer is nil")
	}

	templateName := r.templateName
	if options.Template != "" {
		templateName = options.Template
	}

	data := slotData(block)
	for name, value := range options.Extra {
		if _, ok := data[name]; ok {
			continue
		}
		data[name] = value
	}

	if err := r.checkSlotCoverage(templateName, data); err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate("templates/"+templateName, data)
	if err != nil {
		return nil, &render.TemplateError{Template: templateName, Err: err}
	}

	out := []byte(result)
	if err := checkWellFormed(out); err != nil {
		return nil, &render.TemplateError{Template: templateName, Err: err}
	}
	return out, nil
}

// slotData maps an observation block onto the skeleton's slot names. All
// values are pre-formatted strings so the rendered document does not depend
// on template-engine number formatting.
func slotData(block observation.Block) map[string]any {
	req := block.Request

	raHours, raMinutes, raSeconds := req.RA.HMS()
	decDegrees, decArcminutes, decArcseconds := req.Dec.DMS()

	sign := ""
	if req.Dec.Negative() {
		sign = "-"
	}

	data := map[string]any{
		"block_name":             block.Name,
		"block_code":             block.Code,
		"block_comment":          block.Comment,
		"proposal_code":          req.ProposalCode,
		"year":                   strconv.Itoa(block.Semester.Year),
		"semester":               strconv.Itoa(block.Semester.Term),
		"priority":               strconv.Itoa(req.Priority),
		"minimum_lunar_distance": formatFloat(req.LunarDistance),
		"target_name":            req.TargetName,
		"target_code":            block.TargetCode,
		"ra_hours":               strconv.Itoa(raHours),
		"ra_minutes":             strconv.Itoa(raMinutes),
		"ra_seconds":             fmt.Sprintf("%f", raSeconds),
		"dec_sign":               sign,
		"dec_degrees":            strconv.Itoa(decDegrees),
		"dec_arcminutes":         strconv.Itoa(decArcminutes),
		"dec_arcseconds":         fmt.Sprintf("%f", decArcseconds),
		"equinox":                formatFloat(req.Equinox),
		"exposure_time":          strconv.Itoa(req.ExposureTime),
		"finding_chart":          "auto-generated",
		"has_magnitude_range":    false,
		"bandpass":               "",
		"magnitude_min":          "",
		"magnitude_max":          "",
	}

	if req.MagnitudeMin != nil && req.MagnitudeMax != nil {
		bandpass := req.MagnitudeFilter
		if bandpass == "" {
			bandpass = "V"
		}
		data["has_magnitude_range"] = true
		data["bandpass"] = bandpass
		data["magnitude_min"] = formatFloat(*req.MagnitudeMin)
		data["magnitude_max"] = formatFloat(*req.MagnitudeMax)
	}

	return data
}

var slotPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)`)

// checkSlotCoverage reads the raw skeleton source and verifies every slot it
// references has a value in the render data.
func (r *Renderer) checkSlotCoverage(templateName string, data map[string]any) error {
	if r.templateFS == nil {
		return nil
	}
	source, err := fs.ReadFile(r.templateFS, "templates/"+templateName+".xml")
	if err != nil {
		return &render.TemplateError{Template: templateName, Err: fmt.Errorf("read skeleton: %w", err)}
	}

	missing := map[string]struct{}{}
	for _, match := range slotPattern.FindAllSubmatch(source, -1) {
		name := string(match[1])
		if _, ok := data[name]; !ok {
			missing[name] = struct{}{}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return &render.TemplateError{Template: templateName, MissingSlots: names}
}

func checkWellFormed(doc []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("malformed document: %w", err)
		}
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
