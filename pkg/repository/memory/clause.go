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

type clauseRepository struct {
	mu      sync.RWMutex
	clauses map[int64]*model.Clause
	nextID  int64
}

func newClauseRepository() *clauseRepository {
	return &clauseRepository{
		clauses: make(map[int64]*model.Clause),
		nextID:  1,
	}
}

func (r *clauseRepository) Create(ctx context.Context, clause *model.Clause) (*model.Clause, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := clause.Clone()
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.clauses[created.ID] = created
	return created.Clone(), nil
}

func (r *clauseRepository) Get(ctx context.Context, id int64) (*model.Clause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clause, exists := r.clauses[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "clause not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return clause.Clone(), nil
}

func (r *clauseRepository) List(ctx context.Context) ([]*model.Clause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clauses := make([]*model.Clause, 0, len(r.clauses))
	for _, clause := range r.clauses {
		clauses = append(clauses, clause.Clone())
	}

	sort.Slice(clauses, func(i, j int) bool {
		return clauses[i].ID < clauses[j].ID
	})
	return clauses, nil
}

func (r *clauseRepository) ListByCategory(ctx context.Context, category string) ([]*model.Clause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var clauses []*model.Clause
	for _, clause := range r.clauses {
		if clause.Category == category {
			clauses = append(clauses, clause.Clone())
		}
	}

	sort.Slice(clauses, func(i, j int) bool {
		return clauses[i].ID < clauses[j].ID
	})
	return clauses, nil
}

func (r *clauseRepository) ListChain(ctx context.Context, key model.ClauseKey) ([]*model.Clause, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var chain []*model.Clause
	for _, clause := range r.clauses {
		if clause.Status == types.ClauseStatusModified && clause.ChainKey() == key {
			chain = append(chain, clause.Clone())
		}
	}

	// Creation order doubles as chain order since IDs are monotonic
	sort.Slice(chain, func(i, j int) bool {
		return chain[i].ID < chain[j].ID
	})
	return chain, nil
}

func (r *clauseRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clauses[id]; !exists {
		return goerr.Wrap(types.ErrNotFound, "clause not found", goerr.V("id", id))
	}

	delete(r.clauses, id)
	return nil
}
