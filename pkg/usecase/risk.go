package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/service/mitigation"
	"github.com/charter-lab/charterforge/pkg/service/risk"
)

// RiskUseCase exposes risk assessment and mitigation catalog operations
type RiskUseCase struct {
	repo   interfaces.Repository
	engine *risk.Engine
}

func NewRiskUseCase(repo interfaces.Repository, engine *risk.Engine) *RiskUseCase {
	return &RiskUseCase{repo: repo, engine: engine}
}

// Assess computes a risk assessment from the factor selection
func (uc *RiskUseCase) Assess(ctx context.Context, selection model.Selection) *model.Assessment {
	return uc.engine.Compute(selection)
}

// Categories returns the current risk category configuration
func (uc *RiskUseCase) Categories(ctx context.Context) []model.RiskCategory {
	return uc.engine.Categories()
}

// UpdateCategoryWeight sets a category weight and renormalizes the set
func (uc *RiskUseCase) UpdateCategoryWeight(ctx context.Context, id types.CategoryID, weight float64) error {
	return uc.engine.UpdateCategoryWeight(id, weight)
}

// AddFactor adds or updates a risk factor in a category
func (uc *RiskUseCase) AddFactor(ctx context.Context, id types.CategoryID, factor model.RiskFactor) error {
	return uc.engine.AddFactor(id, factor)
}

// RemoveFactor removes a risk factor from a category
func (uc *RiskUseCase) RemoveFactor(ctx context.Context, id types.CategoryID, factorID types.FactorID) error {
	return uc.engine.RemoveFactor(id, factorID)
}

// SeedStrategies loads the static mitigation catalog. Entries whose
// name already exists are skipped so startup seeding is idempotent.
func (uc *RiskUseCase) SeedStrategies(ctx context.Context, catalog []*model.MitigationStrategy) error {
	existing, err := uc.repo.Mitigation().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list mitigation strategies")
	}

	present := make(map[string]bool, len(existing))
	for _, s := range existing {
		present[s.Name] = true
	}

	for _, s := range catalog {
		if present[s.Name] {
			continue
		}
		if _, err := uc.repo.Mitigation().Create(ctx, s); err != nil {
			return goerr.Wrap(err, "failed to seed mitigation strategy", goerr.V("name", s.Name))
		}
	}
	return nil
}

// ListStrategies returns the mitigation catalog in insertion order
func (uc *RiskUseCase) ListStrategies(ctx context.Context) ([]*model.MitigationStrategy, error) {
	return uc.repo.Mitigation().List(ctx)
}

// AddCustomStrategy stores a user-defined mitigation strategy
func (uc *RiskUseCase) AddCustomStrategy(ctx context.Context, strategy *model.MitigationStrategy) (*model.MitigationStrategy, error) {
	if strategy.Name == "" {
		return nil, goerr.Wrap(types.ErrValidation, "strategy name is required")
	}
	if strategy.Effectiveness < 0 || strategy.Effectiveness > 1 {
		return nil, goerr.Wrap(types.ErrValidation, "strategy effectiveness must be within [0, 1]",
			goerr.V("effectiveness", strategy.Effectiveness))
	}

	strategy.Custom = true
	return uc.repo.Mitigation().Create(ctx, strategy)
}

// DeleteStrategy removes a custom strategy. Catalog entries are
// protected by the repository.
func (uc *RiskUseCase) DeleteStrategy(ctx context.Context, id int64) error {
	return uc.repo.Mitigation().Delete(ctx, id)
}

// Recommend returns ranked mitigation recommendations for a risk score.
// maxCount <= 0 derives the count from the score.
func (uc *RiskUseCase) Recommend(ctx context.Context, riskScore float64, maxCount int) ([]model.Recommendation, error) {
	catalog, err := uc.repo.Mitigation().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list mitigation strategies")
	}
	return mitigation.Recommend(riskScore, catalog, maxCount), nil
}
