package mitigation_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/service/mitigation"
)

func testCatalog() []*model.MitigationStrategy {
	return []*model.MitigationStrategy{
		{Name: "Comprehensive Insurance Review", Effectiveness: 0.90, CostImpact: types.CostImpactHigh},
		{Name: "Professional Crew Augmentation", Effectiveness: 0.85, CostImpact: types.CostImpactHigh},
		{Name: "Enhanced Security Deposit", Effectiveness: 0.80, CostImpact: types.CostImpactMedium},
		{Name: "Weather Routing Service", Effectiveness: 0.75, CostImpact: types.CostImpactMedium},
		{Name: "Escrow Payment Structure", Effectiveness: 0.65, CostImpact: types.CostImpactLow},
		{Name: "Client References Check", Effectiveness: 0.50, CostImpact: types.CostImpactLow},
	}
}

func TestDefaultMaxCount(t *testing.T) {
	cases := []struct {
		score float64
		count int
	}{
		{0.0, 1},
		{0.9, 1},
		{1.0, 1},
		{1.5, 1},
		{2.0, 2},
		{2.9, 2},
		{3.0, 3},
		{5.7, 3},
	}
	for _, tc := range cases {
		gt.Value(t, mitigation.DefaultMaxCount(tc.score)).Equal(tc.count)
	}
}

func TestRecommendOrdering(t *testing.T) {
	result := mitigation.Recommend(2.5, testCatalog(), 0)

	// maxCount derived from score 2.5 is 2, plus 2 optional extras
	gt.Array(t, result).Length(4).Required()

	gt.Value(t, result[0].Strategy.Name).Equal("Comprehensive Insurance Review")
	gt.Value(t, result[1].Strategy.Name).Equal("Professional Crew Augmentation")
	gt.Value(t, result[2].Strategy.Name).Equal("Enhanced Security Deposit")
	gt.Value(t, result[3].Strategy.Name).Equal("Weather Routing Service")

	gt.True(t, result[0].Recommended)
	gt.True(t, result[1].Recommended)
	gt.False(t, result[2].Recommended)
	gt.False(t, result[3].Recommended)
}

func TestRecommendExplicitMaxCount(t *testing.T) {
	result := mitigation.Recommend(0.5, testCatalog(), 3)

	gt.Array(t, result).Length(5).Required()
	gt.True(t, result[2].Recommended)
	gt.False(t, result[3].Recommended)
}

func TestRecommendSmallCatalog(t *testing.T) {
	catalog := testCatalog()[:2]

	result := mitigation.Recommend(3.5, catalog, 0)
	gt.Array(t, result).Length(2)
}

func TestRecommendEmptyCatalog(t *testing.T) {
	result := mitigation.Recommend(2.0, nil, 0)
	gt.Array(t, result).Length(0)
}

func TestRecommendStableTies(t *testing.T) {
	catalog := []*model.MitigationStrategy{
		{Name: "First Entry", Effectiveness: 0.80},
		{Name: "Second Entry", Effectiveness: 0.80},
		{Name: "Third Entry", Effectiveness: 0.80},
	}

	result := mitigation.Recommend(1.0, catalog, 3)
	gt.Array(t, result).Length(3).Required()
	gt.Value(t, result[0].Strategy.Name).Equal("First Entry")
	gt.Value(t, result[1].Strategy.Name).Equal("Second Entry")
	gt.Value(t, result[2].Strategy.Name).Equal("Third Entry")
}

func TestRecommendDoesNotMutateCatalog(t *testing.T) {
	catalog := []*model.MitigationStrategy{
		{Name: "Low Effect", Effectiveness: 0.10},
		{Name: "High Effect", Effectiveness: 0.90},
	}

	_ = mitigation.Recommend(1.0, catalog, 2)

	gt.Value(t, catalog[0].Name).Equal("Low Effect")
	gt.Value(t, catalog[1].Name).Equal("High Effect")
}
