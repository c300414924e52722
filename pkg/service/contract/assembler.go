package contract

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

// AssembleInput carries everything the assembler merges into a
// contract document.
type AssembleInput struct {
	Vessel      model.VesselInfo
	Charter     model.CharterTerms
	Parties     model.Parties
	Financial   model.FinancialTerms
	Metadata    model.ContractMetadata
	Assessment  *model.Assessment
	Mitigations []model.Recommendation
	Clauses     []model.SelectedClause
}

// Assemble merges the inputs into an immutable contract document with a
// freshly generated contract ID. It is a pure aggregation: the only
// validation is the presence of a vessel name, and an end date before
// the start date clamps the charter duration to 1 day instead of
// failing.
func Assemble(input AssembleInput) (*model.ContractDocument, error) {
	if input.Vessel.Name == "" {
		return nil, goerr.Wrap(types.ErrValidation, "vessel name is required")
	}
	if input.Charter.StartDate.IsZero() || input.Charter.EndDate.IsZero() {
		return nil, goerr.Wrap(types.ErrValidation, "charter start and end dates are required")
	}

	charter := input.Charter
	charter.DurationDays = charterDuration(charter.StartDate, charter.EndDate)

	version := input.Metadata.VersionNumber
	if version == "" {
		version = "1.0"
	}

	clauses := input.Clauses
	if clauses == nil {
		clauses = []model.SelectedClause{}
	}

	doc := &model.ContractDocument{
		ID:            types.NewContractID(),
		VersionNumber: version,
		Vessel:        input.Vessel,
		Charter:       charter,
		Parties:       input.Parties,
		Financial:     input.Financial,
		Metadata:      input.Metadata,
		Assessment:    input.Assessment,
		Mitigations:   input.Mitigations,
		Clauses:       clauses,
		TotalValue:    charter.DailyRate * float64(charter.DurationDays),
		GeneratedAt:   time.Now().UTC(),
	}
	return doc, nil
}

// charterDuration computes whole days between start and end, clamped to
// a 1-day minimum. An end date before the start date is treated as a
// 1-day charter rather than rejected.
func charterDuration(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
