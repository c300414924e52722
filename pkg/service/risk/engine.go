package risk

import (
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

// Engine holds the weighted category configuration and computes risk
// assessments from factor selections. Configuration is created from
// static defaults at startup and is editable at runtime; category
// weights are renormalized on every update so they always sum to 1.0.
type Engine struct {
	mu         sync.RWMutex
	categories []model.RiskCategory
}

// New creates an Engine from the given categories. Weights are taken
// as-is; they are renormalized on the first weight update, not at
// construction.
func New(categories []model.RiskCategory) *Engine {
	return &Engine{categories: cloneCategories(categories)}
}

// Categories returns a copy of the current category configuration.
func (e *Engine) Categories() []model.RiskCategory {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneCategories(e.categories)
}

// Compute calculates an assessment from the selection. Unknown category
// or factor keys are ignored to tolerate stale UI state. It has no side
// effects.
func (e *Engine) Compute(selection model.Selection) *model.Assessment {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := &model.Assessment{
		Categories: make([]model.CategoryScore, 0, len(e.categories)),
		ComputedAt: time.Now().UTC(),
	}

	for _, cat := range e.categories {
		score := model.CategoryScore{
			CategoryID: cat.ID,
			Name:       cat.Name,
			Weight:     cat.Weight,
		}

		seen := make(map[types.FactorID]bool, len(selection[cat.ID]))
		for _, factorID := range selection[cat.ID] {
			if seen[factorID] {
				continue
			}
			seen[factorID] = true

			factor, ok := cat.Factor(factorID)
			if !ok {
				continue
			}
			score.RawScore += factor.Weight
			score.ActiveFactors = append(score.ActiveFactors, factor)
		}

		score.WeightedScore = score.RawScore * cat.Weight
		result.OverallScore += score.WeightedScore
		result.Categories = append(result.Categories, score)
	}

	result.Level = types.RiskLevelFromScore(result.OverallScore)
	return result
}

// UpdateCategoryWeight sets the proposed weight of one category and
// renormalizes all category weights to sum to 1.0.
func (e *Engine) UpdateCategoryWeight(id types.CategoryID, weight float64) error {
	if weight < 0 {
		return goerr.Wrap(types.ErrInvalidConfiguration, "category weight must not be negative",
			goerr.V("category", id), goerr.V("weight", weight))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOfLocked(id)
	if idx < 0 {
		return goerr.Wrap(types.ErrNotFound, "unknown risk category", goerr.V("category", id))
	}

	prev := e.categories[idx].Weight
	e.categories[idx].Weight = weight
	if err := e.normalizeLocked(); err != nil {
		e.categories[idx].Weight = prev
		return err
	}
	return nil
}

// AddFactor adds a factor to a category. Adding a factor that already
// exists updates it in place, so the operation is idempotent.
func (e *Engine) AddFactor(id types.CategoryID, factor model.RiskFactor) error {
	if factor.Weight <= 0 {
		return goerr.Wrap(types.ErrInvalidConfiguration, "factor weight must be positive",
			goerr.V("category", id), goerr.V("factor", factor.ID))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOfLocked(id)
	if idx < 0 {
		return goerr.Wrap(types.ErrNotFound, "unknown risk category", goerr.V("category", id))
	}

	for i, f := range e.categories[idx].Factors {
		if f.ID == factor.ID {
			e.categories[idx].Factors[i] = factor
			return nil
		}
	}
	e.categories[idx].Factors = append(e.categories[idx].Factors, factor)
	return nil
}

// UpdateFactor is an alias of AddFactor kept for call-site clarity.
func (e *Engine) UpdateFactor(id types.CategoryID, factor model.RiskFactor) error {
	return e.AddFactor(id, factor)
}

// RemoveFactor removes a factor from a category. Removing an absent
// factor is a no-op.
func (e *Engine) RemoveFactor(id types.CategoryID, factorID types.FactorID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOfLocked(id)
	if idx < 0 {
		return goerr.Wrap(types.ErrNotFound, "unknown risk category", goerr.V("category", id))
	}

	factors := e.categories[idx].Factors
	for i, f := range factors {
		if f.ID == factorID {
			e.categories[idx].Factors = append(factors[:i:i], factors[i+1:]...)
			return nil
		}
	}
	return nil
}

func (e *Engine) indexOfLocked(id types.CategoryID) int {
	for i, cat := range e.categories {
		if cat.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) normalizeLocked() error {
	var total float64
	for _, cat := range e.categories {
		total += cat.Weight
	}
	if total == 0 {
		return goerr.Wrap(types.ErrInvalidConfiguration, "total category weight is zero, cannot normalize")
	}
	for i := range e.categories {
		e.categories[i].Weight /= total
	}
	return nil
}

func cloneCategories(categories []model.RiskCategory) []model.RiskCategory {
	cloned := make([]model.RiskCategory, len(categories))
	for i, cat := range categories {
		cloned[i] = cat
		cloned[i].Factors = append([]model.RiskFactor(nil), cat.Factors...)
	}
	return cloned
}
