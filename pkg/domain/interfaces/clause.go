package interfaces

import (
	"context"

	"github.com/charter-lab/charterforge/pkg/domain/model"
)

type ClauseRepository interface {
	// Create stores a new clause record with auto-generated ID
	Create(ctx context.Context, clause *model.Clause) (*model.Clause, error)

	// Get retrieves a clause by ID
	Get(ctx context.Context, id int64) (*model.Clause, error)

	// List retrieves all clause records
	List(ctx context.Context) ([]*model.Clause, error)

	// ListByCategory retrieves all clause records in a category
	ListByCategory(ctx context.Context, category string) ([]*model.Clause, error)

	// ListChain retrieves the Modified records branched from the given
	// lineage key, in append order
	ListChain(ctx context.Context, key model.ClauseKey) ([]*model.Clause, error)

	// Delete deletes a clause record by ID
	Delete(ctx context.Context, id int64) error
}
