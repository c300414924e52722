package model

import (
	"time"

	"github.com/charter-lab/charterforge/pkg/domain/types"
)

// MitigationStrategy is a recommended action to reduce risk. The static
// catalog is loaded from configuration; users may add custom entries.
type MitigationStrategy struct {
	ID             int64
	Name           string
	Description    string
	Implementation string
	Effectiveness  float64
	CostImpact     types.CostImpact
	Custom         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Recommendation wraps a strategy with its position in a recommendation
// list. The first maxCount entries are flagged recommended; the rest are
// shown as optional extras.
type Recommendation struct {
	Strategy    MitigationStrategy
	Recommended bool
}
