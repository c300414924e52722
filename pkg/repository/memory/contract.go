package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

type contractRepository struct {
	mu        sync.RWMutex
	contracts map[types.ContractID]*model.ContractDocument
}

func newContractRepository() *contractRepository {
	return &contractRepository{
		contracts: make(map[types.ContractID]*model.ContractDocument),
	}
}

func (r *contractRepository) Put(ctx context.Context, doc *model.ContractDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *doc
	r.contracts[doc.ID] = &copied
	return nil
}

func (r *contractRepository) Get(ctx context.Context, id types.ContractID) (*model.ContractDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, exists := r.contracts[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "contract not found", goerr.V("id", id))
	}

	copied := *doc
	return &copied, nil
}

func (r *contractRepository) List(ctx context.Context) ([]*model.ContractDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]*model.ContractDocument, 0, len(r.contracts))
	for _, doc := range r.contracts {
		copied := *doc
		docs = append(docs, &copied)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].GeneratedAt.After(docs[j].GeneratedAt)
	})
	return docs, nil
}
