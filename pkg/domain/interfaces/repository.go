package interfaces

import "context"

// Repository defines the interface for data persistence
type Repository interface {
	Clause() ClauseRepository
	Contract() ContractRepository
	Mitigation() MitigationRepository

	Close(ctx context.Context) error
}
