package model

import (
	"time"

	"github.com/charter-lab/charterforge/pkg/domain/types"
)

// RiskFactor is a boolean-selectable condition contributing a fixed
// weight to its category's raw score. Factor IDs are unique within a
// category.
type RiskFactor struct {
	ID          types.FactorID
	Name        string
	Weight      float64
	Description string
}

// RiskCategory is a weighted grouping of related risk factors. Category
// weights are kept normalized so that all categories sum to 1.0.
type RiskCategory struct {
	ID      types.CategoryID
	Name    string
	Weight  float64
	Factors []RiskFactor
}

// Factor returns the factor with the given ID, if present.
func (c *RiskCategory) Factor(id types.FactorID) (RiskFactor, bool) {
	for _, f := range c.Factors {
		if f.ID == id {
			return f, true
		}
	}
	return RiskFactor{}, false
}

// Selection maps category IDs to the set of factor IDs the user checked
// for one assessment pass. Selection state is ephemeral per assessment.
type Selection map[types.CategoryID][]types.FactorID

// CategoryScore is the per-category breakdown of an assessment.
type CategoryScore struct {
	CategoryID    types.CategoryID
	Name          string
	Weight        float64
	RawScore      float64
	WeightedScore float64
	ActiveFactors []RiskFactor
}

// Assessment is the immutable result of one risk computation.
type Assessment struct {
	OverallScore float64
	Level        types.RiskLevel
	Categories   []CategoryScore
	ComputedAt   time.Time
}
