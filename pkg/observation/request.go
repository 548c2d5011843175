// Package observation holds the domain model for a SALT observation request:
// the validated field values, the proposal semester bookkeeping, and the block
// identity that travels to the observatory portal.
package observation

import (
	"errors"

	"github.com/mastertom/saltofi/pkg/astro"
	"github.com/mastertom/saltofi/pkg/form"
)

// Canonical field names shared by the form schemas, the validator output, and
// the template slot data.
const (
	FieldTargetName      = "target_name"
	FieldRightAscension  = "right_ascension"
	FieldDeclination     = "declination"
	FieldEquinox         = "equinox"
	FieldProposalCode    = "proposal_code"
	FieldExposureTime    = "exposure_time"
	FieldPriority        = "priority"
	FieldLunarDistance   = "minimum_lunar_distance"
	FieldMagnitudeFilter = "magnitude_filter"
	FieldMagnitudeMin    = "magnitude_min"
	FieldMagnitudeMax    = "magnitude_max"
	FieldComments        = "comments"
)

// Request is a validated observation request. It is immutable once rendered
// into a block document; nothing in this core persists it.
type Request struct {
	TargetName      string
	RA              astro.RA
	Dec             astro.Dec
	Equinox         float64
	ProposalCode    string
	ExposureTime    int
	Priority        int
	LunarDistance   float64
	MagnitudeFilter string
	MagnitudeMin    *float64
	MagnitudeMax    *float64
	Comments        string
}

// FromValues builds a Request from validator output. Schema-level checks have
// already run; this applies the semantic rules the schema cannot express
// (coordinate parsing, declination range, positive exposure) and reports them
// through the same *form.ValidationError shape the validator uses.
func FromValues(values map[string]any) (Request, error) {
	verr := &form.ValidationError{}
	req := Request{Equinox: 2000}

	req.TargetName = stringField(values, FieldTargetName)
	if req.TargetName == "" {
		verr.Add(FieldTargetName, "is required")
	}

	if raw := stringField(values, FieldRightAscension); raw == "" {
		verr.Add(FieldRightAscension, "is required")
	} else if ra, err := astro.ParseRA(raw); err != nil {
		verr.Add(FieldRightAscension, "%v", err)
	} else {
		req.RA = ra
	}

	if raw := stringField(values, FieldDeclination); raw == "" {
		verr.Add(FieldDeclination, "is required")
	} else if dec, err := astro.ParseDec(raw); err != nil {
		if errors.Is(err, astro.ErrDecRange) {
			verr.Add(FieldDeclination, "must be between -90 and +90 degrees")
		} else {
			verr.Add(FieldDeclination, "%v", err)
		}
	} else {
		req.Dec = dec
	}

	if eq, ok := floatField(values, FieldEquinox); ok {
		req.Equinox = eq
	}

	req.ProposalCode = stringField(values, FieldProposalCode)
	if req.ProposalCode == "" {
		verr.Add(FieldProposalCode, "is required")
	}

	if n, ok := intField(values, FieldExposureTime); !ok {
		verr.Add(FieldExposureTime, "is required")
	} else if n <= 0 {
		verr.Add(FieldExposureTime, "must be positive")
	} else {
		req.ExposureTime = n
	}

	if n, ok := intField(values, FieldPriority); ok {
		req.Priority = n
	}
	if f, ok := floatField(values, FieldLunarDistance); ok {
		req.LunarDistance = f
	}

	req.MagnitudeFilter = stringField(values, FieldMagnitudeFilter)
	if f, ok := floatField(values, FieldMagnitudeMin); ok {
		value := f
		req.MagnitudeMin = &value
	}
	if f, ok := floatField(values, FieldMagnitudeMax); ok {
		value := f
		req.MagnitudeMax = &value
	}
	req.Comments = stringField(values, FieldComments)

	if verr.HasIssues() {
		return Request{}, verr
	}
	return req, nil
}

func stringField(values map[string]any, name string) string {
	if raw, ok := values[name]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

func intField(values map[string]any, name string) (int, bool) {
	raw, ok := values[name]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func floatField(values map[string]any, name string) (float64, bool) {
	raw, ok := values[name]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
