package memory

import (
	"context"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	clause     *clauseRepository
	contract   *contractRepository
	mitigation *mitigationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		clause:     newClauseRepository(),
		contract:   newContractRepository(),
		mitigation: newMitigationRepository(),
	}
}

func (m *Memory) Clause() interfaces.ClauseRepository {
	return m.clause
}

func (m *Memory) Contract() interfaces.ContractRepository {
	return m.contract
}

func (m *Memory) Mitigation() interfaces.MitigationRepository {
	return m.mitigation
}

func (m *Memory) Close(ctx context.Context) error {
	return nil
}
