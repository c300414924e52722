package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

type Firestore struct {
	client     *firestore.Client
	clause     *clauseRepository
	contract   *contractRepository
	mitigation *mitigationRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.clause.collectionPrefix = prefix
		f.contract.collectionPrefix = prefix
		f.mitigation.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:     client,
		clause:     newClauseRepository(client),
		contract:   newContractRepository(client),
		mitigation: newMitigationRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Clause() interfaces.ClauseRepository {
	return f.clause
}

func (f *Firestore) Contract() interfaces.ContractRepository {
	return f.contract
}

func (f *Firestore) Mitigation() interfaces.MitigationRepository {
	return f.mitigation
}

func (f *Firestore) Close(ctx context.Context) error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// getNextID allocates a monotonic ID from a transactional counter
// document. Counters live in their own collection so repeated
// allocations never contend with record reads.
func getNextID(ctx context.Context, client *firestore.Client, collection, doc string) (int64, error) {
	counterRef := client.Collection(collection).Doc(doc)

	var nextID int64
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snapshot, err := tx.Get(counterRef)
		if err != nil {
			if isNotFound(err) {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := snapshot.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		nextID = currentValue.(int64) + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID")
	}

	return nextID, nil
}
