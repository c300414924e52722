package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/types"
)

// Clause is a reusable block of contract text, organized by category.
// Library clauses are immutable seed data; editing one branches a new
// Modified record into the version chain keyed by (name, category).
// Custom clauses are fully user-owned.
type Clause struct {
	ID       int64
	Name     string
	Category string
	Content  string
	Version  string
	Status   types.ClauseStatus

	Jurisdictions  []string
	Language       string
	Complexity     types.Complexity
	RiskLevel      types.RiskLevel
	Rating         float64
	UsageCount     int
	Author         string
	LegalNotes     string
	ApplicableTo   []string
	RelatedClauses []string

	// Version chain fields, set on Modified records only
	BaseVersion       string
	ModificationNotes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChainKey identifies the version chain a clause belongs to.
func (c *Clause) ChainKey() ClauseKey {
	return ClauseKey{Name: c.Name, Category: c.Category}
}

// Validate checks required fields for custom clause creation. Nothing
// is persisted when this fails.
func (c *Clause) Validate() error {
	if c.Name == "" {
		return goerr.Wrap(types.ErrValidation, "clause name is required")
	}
	if c.Category == "" {
		return goerr.Wrap(types.ErrValidation, "clause category is required", goerr.V("name", c.Name))
	}
	if c.Content == "" {
		return goerr.Wrap(types.ErrValidation, "clause content is required", goerr.V("name", c.Name))
	}
	return nil
}

// Clone returns a deep copy of the clause.
func (c *Clause) Clone() *Clause {
	copied := *c
	copied.Jurisdictions = append([]string(nil), c.Jurisdictions...)
	copied.ApplicableTo = append([]string(nil), c.ApplicableTo...)
	copied.RelatedClauses = append([]string(nil), c.RelatedClauses...)
	return &copied
}

// ClauseKey is the (name, category) pair identifying a clause lineage.
type ClauseKey struct {
	Name     string
	Category string
}

// SelectedClause is a clause attached to a specific contract being
// assembled. It is consumed once at contract generation time.
type SelectedClause struct {
	Name     string
	Content  string
	Category string
	Source   types.ClauseSource
}

// ClauseSuggestion is a ranked recommendation produced for a charter
// scenario. Accepted suggestions join the contract with
// source=ai_suggestion.
type ClauseSuggestion struct {
	Name       string
	Category   string
	Content    string
	Reason     string
	Confidence int
	Priority   string
}
