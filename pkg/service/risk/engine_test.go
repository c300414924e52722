package risk_test

import (
	"errors"
	"math"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/service/risk"
)

func testCategories() []model.RiskCategory {
	return []model.RiskCategory{
		{
			ID:     "navigation-risks",
			Name:   "Navigation Risks",
			Weight: 0.30,
			Factors: []model.RiskFactor{
				{ID: "remote-destinations", Name: "Remote destinations", Weight: 1.2},
				{ID: "extended-duration", Name: "Extended duration", Weight: 0.8},
				{ID: "night-operations", Name: "Night operations", Weight: 0.9},
			},
		},
		{
			ID:     "financial-risks",
			Name:   "Financial Risks",
			Weight: 0.25,
			Factors: []model.RiskFactor{
				{ID: "high-value-charter", Name: "High value charter", Weight: 1.0},
				{ID: "corporate-charterer", Name: "Corporate charterer", Weight: 0.6},
			},
		},
		{
			ID:     "regulatory-risks",
			Name:   "Regulatory Risks",
			Weight: 0.20,
			Factors: []model.RiskFactor{
				{ID: "flag-state-restrictions", Name: "Flag state restrictions", Weight: 1.4},
				{ID: "customs-clearance", Name: "Customs clearance", Weight: 0.9},
				{ID: "charter-license", Name: "Charter license", Weight: 0.8},
				{ID: "tax-registration", Name: "Tax registration", Weight: 0.7},
				{ID: "mlc-crew-compliance", Name: "MLC crew compliance", Weight: 1.2},
			},
		},
		{
			ID:     "vessel-risks",
			Name:   "Vessel Risks",
			Weight: 0.15,
			Factors: []model.RiskFactor{
				{ID: "aging-vessel", Name: "Aging vessel", Weight: 1.0},
			},
		},
		{
			ID:     "client-risks",
			Name:   "Client Risks",
			Weight: 0.10,
			Factors: []model.RiskFactor{
				{ID: "first-time-charterer", Name: "First time charterer", Weight: 0.9},
			},
		},
	}
}

func TestComputeEmptySelection(t *testing.T) {
	engine := risk.New(testCategories())

	result := engine.Compute(model.Selection{})

	gt.Value(t, result.OverallScore).Equal(0.0)
	gt.Value(t, result.Level).Equal(types.RiskLevelLow)
	gt.Array(t, result.Categories).Length(5)
	for _, cat := range result.Categories {
		gt.Value(t, cat.RawScore).Equal(0.0)
		gt.Value(t, cat.WeightedScore).Equal(0.0)
		gt.Array(t, cat.ActiveFactors).Length(0)
	}
}

func TestComputeWeightedSum(t *testing.T) {
	engine := risk.New(testCategories())

	// remote-destinations 1.2 x 0.30 + high-value-charter 1.0 x 0.25 = 0.61
	result := engine.Compute(model.Selection{
		"navigation-risks": {"remote-destinations"},
		"financial-risks":  {"high-value-charter"},
	})

	gt.Number(t, math.Abs(result.OverallScore-0.61)).Less(1e-9)
	gt.Value(t, result.Level).Equal(types.RiskLevelLow)

	gt.Value(t, result.Categories[0].RawScore).Equal(1.2)
	gt.Number(t, math.Abs(result.Categories[0].WeightedScore-0.36)).Less(1e-9)
	gt.Array(t, result.Categories[0].ActiveFactors).Length(1)
}

func TestComputeAllRegulatoryFactors(t *testing.T) {
	engine := risk.New(testCategories())

	// 1.4 + 0.9 + 0.8 + 0.7 + 1.2 = 5.0 raw, x0.20 = 1.0 overall
	result := engine.Compute(model.Selection{
		"regulatory-risks": {
			"flag-state-restrictions", "customs-clearance", "charter-license",
			"tax-registration", "mlc-crew-compliance",
		},
	})

	gt.Number(t, math.Abs(result.OverallScore-1.0)).Less(1e-9)
	gt.Value(t, result.Level).Equal(types.RiskLevelMedium)
}

func TestComputeIgnoresUnknownAndDuplicateKeys(t *testing.T) {
	engine := risk.New(testCategories())

	result := engine.Compute(model.Selection{
		"navigation-risks": {"remote-destinations", "remote-destinations", "no-such-factor"},
		"no-such-category": {"remote-destinations"},
	})

	gt.Number(t, math.Abs(result.OverallScore-0.36)).Less(1e-9)
	gt.Array(t, result.Categories[0].ActiveFactors).Length(1)
}

func TestRiskLevelBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		level types.RiskLevel
	}{
		{0.0, types.RiskLevelLow},
		{0.99, types.RiskLevelLow},
		{1.0, types.RiskLevelMedium},
		{1.99, types.RiskLevelMedium},
		{2.0, types.RiskLevelHigh},
		{2.99, types.RiskLevelHigh},
		{3.0, types.RiskLevelCritical},
		{7.5, types.RiskLevelCritical},
	}
	for _, tc := range cases {
		gt.Value(t, types.RiskLevelFromScore(tc.score)).Equal(tc.level)
	}
}

func TestUpdateCategoryWeightRenormalizes(t *testing.T) {
	engine := risk.New(testCategories())

	gt.NoError(t, engine.UpdateCategoryWeight("navigation-risks", 0.60)).Required()

	var total float64
	for _, cat := range engine.Categories() {
		total += cat.Weight
	}
	gt.Number(t, math.Abs(total-1.0)).Less(1e-9)

	// 0.60 over a proposed total of 1.30
	cats := engine.Categories()
	gt.Number(t, math.Abs(cats[0].Weight-0.60/1.30)).Less(1e-9)
}

func TestUpdateCategoryWeightZeroTotal(t *testing.T) {
	engine := risk.New([]model.RiskCategory{
		{ID: "solo", Name: "Solo", Weight: 0.5, Factors: []model.RiskFactor{
			{ID: "only", Name: "Only", Weight: 1.0},
		}},
	})

	err := engine.UpdateCategoryWeight("solo", 0)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrInvalidConfiguration))

	// Rolled back, so the previous weight survives
	gt.Value(t, engine.Categories()[0].Weight).Equal(0.5)
}

func TestUpdateCategoryWeightValidation(t *testing.T) {
	engine := risk.New(testCategories())

	err := engine.UpdateCategoryWeight("navigation-risks", -0.1)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrInvalidConfiguration))

	err = engine.UpdateCategoryWeight("no-such-category", 0.5)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

func TestAddFactor(t *testing.T) {
	engine := risk.New(testCategories())

	factor := model.RiskFactor{ID: "new-factor", Name: "New factor", Weight: 1.5}
	gt.NoError(t, engine.AddFactor("vessel-risks", factor)).Required()

	result := engine.Compute(model.Selection{"vessel-risks": {"new-factor"}})
	gt.Number(t, math.Abs(result.OverallScore-1.5*0.15)).Less(1e-9)

	// Adding the same ID again updates in place
	factor.Weight = 2.0
	gt.NoError(t, engine.AddFactor("vessel-risks", factor)).Required()

	cats := engine.Categories()
	gt.Array(t, cats[3].Factors).Length(2)
}

func TestAddFactorValidation(t *testing.T) {
	engine := risk.New(testCategories())

	err := engine.AddFactor("vessel-risks", model.RiskFactor{ID: "bad", Name: "Bad", Weight: 0})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrInvalidConfiguration))

	err = engine.AddFactor("no-such-category", model.RiskFactor{ID: "ok", Name: "OK", Weight: 1})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

func TestRemoveFactor(t *testing.T) {
	engine := risk.New(testCategories())

	gt.NoError(t, engine.RemoveFactor("navigation-risks", "remote-destinations")).Required()

	result := engine.Compute(model.Selection{"navigation-risks": {"remote-destinations"}})
	gt.Value(t, result.OverallScore).Equal(0.0)

	// Removing an absent factor is a no-op
	gt.NoError(t, engine.RemoveFactor("navigation-risks", "remote-destinations"))
}

func TestCategoriesReturnsCopy(t *testing.T) {
	engine := risk.New(testCategories())

	cats := engine.Categories()
	cats[0].Weight = 99
	cats[0].Factors[0].Weight = 99

	fresh := engine.Categories()
	gt.Value(t, fresh[0].Weight).Equal(0.30)
	gt.Value(t, fresh[0].Factors[0].Weight).Equal(1.2)
}
