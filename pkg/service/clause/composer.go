package clause

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

// Composer manages the clause library: immutable seed clauses, custom
// user-owned clauses, and append-only version chains branched from
// library clauses.
type Composer struct {
	repo interfaces.Repository
}

// NewComposer creates a Composer backed by the given repository.
func NewComposer(repo interfaces.Repository) *Composer {
	return &Composer{repo: repo}
}

// Seed inserts library clauses into the repository. Clauses whose
// (name, category) already exist are skipped so seeding is idempotent.
func (c *Composer) Seed(ctx context.Context, library []*model.Clause) error {
	existing, err := c.repo.Clause().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list clauses for seeding")
	}

	present := make(map[model.ClauseKey]bool, len(existing))
	for _, cl := range existing {
		present[cl.ChainKey()] = true
	}

	for _, cl := range library {
		if present[cl.ChainKey()] {
			continue
		}
		seeded := cl.Clone()
		seeded.Status = types.ClauseStatusLibrary
		if seeded.Version == "" {
			seeded.Version = "1.0"
		}
		if _, err := c.repo.Clause().Create(ctx, seeded); err != nil {
			return goerr.Wrap(err, "failed to seed clause", goerr.V("name", cl.Name))
		}
	}
	return nil
}

// CategoryClauses groups the clause records of one category. Library
// and version entries are logically distinct from custom entries and
// are presented separately.
type CategoryClauses struct {
	Library  []*model.Clause
	Custom   []*model.Clause
	Versions []*model.Clause
}

// GetByCategory returns library clauses for the category plus custom
// clauses and version entries whose category matches.
func (c *Composer) GetByCategory(ctx context.Context, category string) (*CategoryClauses, error) {
	clauses, err := c.repo.Clause().ListByCategory(ctx, category)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list clauses", goerr.V("category", category))
	}

	result := &CategoryClauses{}
	for _, cl := range clauses {
		switch cl.Status {
		case types.ClauseStatusCustom:
			result.Custom = append(result.Custom, cl)
		case types.ClauseStatusModified:
			result.Versions = append(result.Versions, cl)
		default:
			result.Library = append(result.Library, cl)
		}
	}
	return result, nil
}

// Categories returns the distinct category names currently present,
// including implicitly created custom categories.
func (c *Composer) Categories(ctx context.Context) ([]string, error) {
	clauses, err := c.repo.Clause().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list clauses")
	}

	seen := make(map[string]bool)
	var categories []string
	for _, cl := range clauses {
		if !seen[cl.Category] {
			seen[cl.Category] = true
			categories = append(categories, cl.Category)
		}
	}
	return categories, nil
}

// AddCustom validates and stores a user-owned clause. A category that
// does not exist in the library creates a new bucket implicitly.
func (c *Composer) AddCustom(ctx context.Context, clause *model.Clause) (*model.Clause, error) {
	if err := clause.Validate(); err != nil {
		return nil, err
	}

	custom := clause.Clone()
	custom.Status = types.ClauseStatusCustom
	custom.Version = "1.0"

	created, err := c.repo.Clause().Create(ctx, custom)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create custom clause", goerr.V("name", clause.Name))
	}
	return created, nil
}

// CreateVersion branches a new version from the library clause
// identified by (name, category). The original library clause is
// implicitly v1.0 and is never mutated; the first branch is v2.0, the
// next v3.0, and so on.
func (c *Composer) CreateVersion(ctx context.Context, key model.ClauseKey, newContent, modificationNotes string) (*model.Clause, error) {
	if newContent == "" {
		return nil, goerr.Wrap(types.ErrValidation, "version content is required",
			goerr.V("name", key.Name), goerr.V("category", key.Category))
	}

	original, err := c.findOriginal(ctx, key)
	if err != nil {
		return nil, err
	}

	chain, err := c.repo.Clause().ListChain(ctx, key)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list version chain",
			goerr.V("name", key.Name), goerr.V("category", key.Category))
	}

	version := original.Clone()
	version.ID = 0
	version.Content = newContent
	version.Status = types.ClauseStatusModified
	version.Version = fmt.Sprintf("v%d.0", len(chain)+2)
	version.BaseVersion = original.Version
	version.ModificationNotes = modificationNotes

	created, err := c.repo.Clause().Create(ctx, version)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create clause version",
			goerr.V("name", key.Name), goerr.V("version", version.Version))
	}
	return created, nil
}

// DeleteCustom removes a custom clause. Library clauses and version
// chains represent an audit trail and cannot be deleted.
func (c *Composer) DeleteCustom(ctx context.Context, id int64) error {
	clause, err := c.repo.Clause().Get(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get clause", goerr.V("id", id))
	}
	if clause.Status != types.ClauseStatusCustom {
		return goerr.Wrap(types.ErrValidation, "only custom clauses can be deleted",
			goerr.V("id", id), goerr.V("status", clause.Status))
	}
	if err := c.repo.Clause().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete custom clause", goerr.V("id", id))
	}
	return nil
}

// Search scores all clause records against the query after applying
// the filters, ordered by relevance descending. See search.go for the
// scoring rules.
func (c *Composer) Search(ctx context.Context, query string, filters Filters) ([]SearchResult, error) {
	clauses, err := c.repo.Clause().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list clauses for search")
	}
	return Search(query, clauses, filters), nil
}

func (c *Composer) findOriginal(ctx context.Context, key model.ClauseKey) (*model.Clause, error) {
	clauses, err := c.repo.Clause().ListByCategory(ctx, key.Category)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list clauses", goerr.V("category", key.Category))
	}
	for _, cl := range clauses {
		if cl.Name == key.Name && cl.Status == types.ClauseStatusLibrary {
			return cl, nil
		}
	}
	return nil, goerr.Wrap(types.ErrNotFound, "library clause not found",
		goerr.V("name", key.Name), goerr.V("category", key.Category))
}
