package usecase

import (
	"context"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/service/clause"
	"github.com/charter-lab/charterforge/pkg/service/suggest"
)

// ClauseUseCase exposes clause library management, search and AI
// suggestions
type ClauseUseCase struct {
	composer  *clause.Composer
	suggester *suggest.Suggester
}

func NewClauseUseCase(repo interfaces.Repository, suggester *suggest.Suggester) *ClauseUseCase {
	return &ClauseUseCase{
		composer:  clause.NewComposer(repo),
		suggester: suggester,
	}
}

// Seed inserts the library clauses, skipping ones already present
func (uc *ClauseUseCase) Seed(ctx context.Context, library []*model.Clause) error {
	return uc.composer.Seed(ctx, library)
}

// Categories returns all clause category names currently present
func (uc *ClauseUseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.composer.Categories(ctx)
}

// GetByCategory returns the library, custom and version clauses of a
// category
func (uc *ClauseUseCase) GetByCategory(ctx context.Context, category string) (*clause.CategoryClauses, error) {
	return uc.composer.GetByCategory(ctx, category)
}

// AddCustom validates and stores a user-owned clause
func (uc *ClauseUseCase) AddCustom(ctx context.Context, cl *model.Clause) (*model.Clause, error) {
	return uc.composer.AddCustom(ctx, cl)
}

// CreateVersion branches a new version from a library clause
func (uc *ClauseUseCase) CreateVersion(ctx context.Context, key model.ClauseKey, content, notes string) (*model.Clause, error) {
	return uc.composer.CreateVersion(ctx, key, content, notes)
}

// DeleteCustom removes a custom clause
func (uc *ClauseUseCase) DeleteCustom(ctx context.Context, id int64) error {
	return uc.composer.DeleteCustom(ctx, id)
}

// Search scores all clauses against the query and filters
func (uc *ClauseUseCase) Search(ctx context.Context, query string, filters clause.Filters) ([]clause.SearchResult, error) {
	return uc.composer.Search(ctx, query, filters)
}

// Suggest produces ranked clause suggestions for a charter scenario.
// Without a configured suggester the result is empty rather than an
// error.
func (uc *ClauseUseCase) Suggest(ctx context.Context, scenario *suggest.Scenario) ([]model.ClauseSuggestion, error) {
	if uc.suggester == nil {
		return nil, nil
	}
	return uc.suggester.Suggest(ctx, scenario)
}
