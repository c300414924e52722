package mitigation

import (
	"math"
	"sort"

	"github.com/charter-lab/charterforge/pkg/domain/model"
)

// extraCount is how many optional entries are shown beyond the
// recommended cutoff.
const extraCount = 2

// DefaultMaxCount derives the recommended-strategy count from the risk
// score: the integer part of the score clamped to [1, 3].
func DefaultMaxCount(riskScore float64) int {
	n := int(math.Floor(riskScore))
	if n < 1 {
		return 1
	}
	if n > 3 {
		return 3
	}
	return n
}

// Recommend orders the catalog by effectiveness descending and returns
// at most maxCount+2 entries. The first maxCount are flagged
// recommended; the remainder are optional extras. Ties keep catalog
// order. The function is pure and deterministic.
func Recommend(riskScore float64, catalog []*model.MitigationStrategy, maxCount int) []model.Recommendation {
	if maxCount <= 0 {
		maxCount = DefaultMaxCount(riskScore)
	}

	ordered := make([]*model.MitigationStrategy, len(catalog))
	copy(ordered, catalog)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Effectiveness > ordered[j].Effectiveness
	})

	limit := maxCount + extraCount
	if limit > len(ordered) {
		limit = len(ordered)
	}

	result := make([]model.Recommendation, 0, limit)
	for i := 0; i < limit; i++ {
		result = append(result, model.Recommendation{
			Strategy:    *ordered[i],
			Recommended: i < maxCount,
		})
	}
	return result
}
