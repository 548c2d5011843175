package observation

import (
	"strings"
	"testing"

	"github.com/mastertom/saltofi/pkg/form"
)

func validInput() map[string]any {
	return map[string]any{
		FieldTargetName:     "GRB 200101A",
		FieldRightAscension: "10:00:00",
		FieldDeclination:    "-30:00:00",
		FieldProposalCode:   "2020-1-SCI-001",
		FieldExposureTime:   300,
	}
}

func TestFromValues(t *testing.T) {
	req, err := FromValues(validInput())
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}

	if req.TargetName != "GRB 200101A" {
		t.Fatalf("target name = %q", req.TargetName)
	}
	if got := req.RA.Degrees(); got != 150 {
		t.Fatalf("ra = %v degrees, want 150", got)
	}
	if got := req.Dec.Degrees(); got != -30 {
		t.Fatalf("dec = %v degrees, want -30", got)
	}
	if req.Equinox != 2000 {
		t.Fatalf("equinox = %v, want default 2000", req.Equinox)
	}
	if req.ProposalCode != "2020-1-SCI-001" {
		t.Fatalf("proposal code = %q", req.ProposalCode)
	}
	if req.ExposureTime != 300 {
		t.Fatalf("exposure time = %d", req.ExposureTime)
	}
}

func TestFromValuesOptionalFields(t *testing.T) {
	input := validInput()
	input[FieldEquinox] = 1950.0
	input[FieldPriority] = 1
	input[FieldLunarDistance] = 45.0
	input[FieldMagnitudeFilter] = "R"
	input[FieldMagnitudeMin] = 17.5
	input[FieldMagnitudeMax] = 19.0
	input[FieldComments] = "bright afterglow"

	req, err := FromValues(input)
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	if req.Equinox != 1950 {
		t.Fatalf("equinox = %v", req.Equinox)
	}
	if req.Priority != 1 || req.LunarDistance != 45 {
		t.Fatalf("priority = %d lunar distance = %v", req.Priority, req.LunarDistance)
	}
	if req.MagnitudeFilter != "R" {
		t.Fatalf("filter = %q", req.MagnitudeFilter)
	}
	if req.MagnitudeMin == nil || *req.MagnitudeMin != 17.5 {
		t.Fatalf("magnitude min = %v", req.MagnitudeMin)
	}
	if req.MagnitudeMax == nil || *req.MagnitudeMax != 19 {
		t.Fatalf("magnitude max = %v", req.MagnitudeMax)
	}
	if req.Comments != "bright afterglow" {
		t.Fatalf("comments = %q", req.Comments)
	}
}

func TestFromValuesDecOutOfRange(t *testing.T) {
	input := validInput()
	input[FieldDeclination] = "-95:00:00"

	_, err := FromValues(input)
	verr, ok := form.AsValidationError(err)
	if !ok {
		t.Fatalf("error %v, want *form.ValidationError", err)
	}
	messages := verr.Fields()[FieldDeclination]
	if len(messages) != 1 || !strings.Contains(messages[0], "between -90 and +90") {
		t.Fatalf("declination messages = %v", messages)
	}
}

func TestFromValuesCollectsAllIssues(t *testing.T) {
	_, err := FromValues(map[string]any{
		FieldExposureTime: -5,
	})
	verr, ok := form.AsValidationError(err)
	if !ok {
		t.Fatalf("error %v, want *form.ValidationError", err)
	}

	fields := verr.Fields()
	for _, name := range []string{FieldTargetName, FieldRightAscension, FieldDeclination, FieldProposalCode, FieldExposureTime} {
		if len(fields[name]) == 0 {
			t.Fatalf("expected an issue for %s, got %v", name, fields)
		}
	}
	if msgs := fields[FieldExposureTime]; !strings.Contains(msgs[0], "positive") {
		t.Fatalf("exposure messages = %v", msgs)
	}
}

func TestNewBlock(t *testing.T) {
	req, err := FromValues(validInput())
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	sem := Semester{Year: 2020, Term: 1}

	block := NewBlock(req, sem)
	if block.Code == "" || block.TargetCode == "" {
		t.Fatal("expected fresh block and target codes")
	}
	if block.Code == block.TargetCode {
		t.Fatal("block and target codes must differ")
	}
	if block.Name != req.TargetName || block.Comment != req.TargetName {
		t.Fatalf("block named %q/%q, want target name", block.Name, block.Comment)
	}
	if block.Semester != sem {
		t.Fatalf("semester = %+v", block.Semester)
	}

	other := NewBlock(req, sem)
	if other.Code == block.Code {
		t.Fatal("codes must be fresh per block")
	}
}
