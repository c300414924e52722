package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

type mitigationRepository struct {
	mu         sync.RWMutex
	strategies map[int64]*model.MitigationStrategy
	nextID     int64
}

func newMitigationRepository() *mitigationRepository {
	return &mitigationRepository{
		strategies: make(map[int64]*model.MitigationStrategy),
		nextID:     1,
	}
}

func (r *mitigationRepository) Create(ctx context.Context, strategy *model.MitigationStrategy) (*model.MitigationStrategy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := *strategy
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.strategies[created.ID] = &created

	copied := created
	return &copied, nil
}

func (r *mitigationRepository) List(ctx context.Context) ([]*model.MitigationStrategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategies := make([]*model.MitigationStrategy, 0, len(r.strategies))
	for _, strategy := range r.strategies {
		copied := *strategy
		strategies = append(strategies, &copied)
	}

	sort.Slice(strategies, func(i, j int) bool {
		return strategies[i].ID < strategies[j].ID
	})
	return strategies, nil
}

func (r *mitigationRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	strategy, exists := r.strategies[id]
	if !exists {
		return goerr.Wrap(types.ErrNotFound, "mitigation strategy not found", goerr.V("id", id))
	}
	if !strategy.Custom {
		return goerr.Wrap(types.ErrValidation, "catalog strategies cannot be deleted", goerr.V("id", id))
	}

	delete(r.strategies, id)
	return nil
}
