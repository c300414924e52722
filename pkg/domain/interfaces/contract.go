package interfaces

import (
	"context"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

type ContractRepository interface {
	// Put stores an assembled contract document
	Put(ctx context.Context, doc *model.ContractDocument) error

	// Get retrieves a contract document by ID
	Get(ctx context.Context, id types.ContractID) (*model.ContractDocument, error)

	// List retrieves all stored contract documents
	List(ctx context.Context) ([]*model.ContractDocument, error)
}

type MitigationRepository interface {
	// Create stores a new strategy with auto-generated ID
	Create(ctx context.Context, strategy *model.MitigationStrategy) (*model.MitigationStrategy, error)

	// List retrieves all strategies in catalog order
	List(ctx context.Context) ([]*model.MitigationStrategy, error)

	// Delete deletes a custom strategy by ID
	Delete(ctx context.Context, id int64) error
}
