package observation

import (
	"github.com/google/uuid"
)

// Block bundles a validated request with the identity and semester metadata a
// rendered Phase II block document carries. Codes are assigned once, when the
// block is created, so rendering stays deterministic.
type Block struct {
	Code       string
	TargetCode string
	Name       string
	Comment    string
	Semester   Semester
	Request    Request
}

// NewBlock assigns fresh block and target codes and names the block after its
// target, matching what the observatory expects for follow-up blocks.
func NewBlock(req Request, sem Semester) Block {
	return Block{
		Code:       uuid.NewString(),
		TargetCode: uuid.NewString(),
		Name:       req.TargetName,
		Comment:    req.TargetName,
		Semester:   sem,
		Request:    req,
	}
}

// Payload is what a facility hands to the portal client: the block code used
// as tracking identifier, the rendered XML document, and the proposal the
// block belongs to.
type Payload struct {
	TargetName   string
	BlockCode    string
	ProposalCode string
	Semester     Semester
	XML          []byte
}
