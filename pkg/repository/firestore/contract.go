package firestore

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

// contractDocument stores the assembled document as a JSON payload next
// to the fields queried for listing. The document is an immutable
// snapshot, so a blob avoids maintaining a firestore mapping for every
// nested section.
type contractDocument struct {
	ID          string    `firestore:"id"`
	Version     string    `firestore:"version"`
	VesselName  string    `firestore:"vessel_name"`
	GeneratedAt time.Time `firestore:"generated_at"`
	Payload     []byte    `firestore:"payload"`
}

type contractRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newContractRepository(client *firestore.Client) *contractRepository {
	return &contractRepository{client: client}
}

func (r *contractRepository) contractsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_contracts"
	}
	return "contracts"
}

func (r *contractRepository) Put(ctx context.Context, doc *model.ContractDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal contract document", goerr.V("id", doc.ID))
	}

	record := &contractDocument{
		ID:          doc.ID.String(),
		Version:     doc.VersionNumber,
		VesselName:  doc.Vessel.Name,
		GeneratedAt: doc.GeneratedAt,
		Payload:     payload,
	}

	docRef := r.client.Collection(r.contractsCollection()).Doc(doc.ID.String())
	if _, err := docRef.Set(ctx, record); err != nil {
		return goerr.Wrap(err, "failed to store contract", goerr.V("id", doc.ID))
	}

	return nil
}

func (r *contractRepository) Get(ctx context.Context, id types.ContractID) (*model.ContractDocument, error) {
	docRef := r.client.Collection(r.contractsCollection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "contract not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get contract", goerr.V("id", id))
	}

	var record contractDocument
	if err := doc.DataTo(&record); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal contract record", goerr.V("id", id))
	}

	var out model.ContractDocument
	if err := json.Unmarshal(record.Payload, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal contract payload", goerr.V("id", id))
	}

	return &out, nil
}

func (r *contractRepository) List(ctx context.Context) ([]*model.ContractDocument, error) {
	iter := r.client.Collection(r.contractsCollection()).
		OrderBy("generated_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var docs []*model.ContractDocument
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate contracts")
		}

		var record contractDocument
		if err := doc.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal contract record")
		}

		var out model.ContractDocument
		if err := json.Unmarshal(record.Payload, &out); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal contract payload", goerr.V("id", record.ID))
		}
		docs = append(docs, &out)
	}

	return docs, nil
}
