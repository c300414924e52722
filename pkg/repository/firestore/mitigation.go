package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

type mitigationDocument struct {
	ID             int64     `firestore:"id"`
	Name           string    `firestore:"name"`
	Description    string    `firestore:"description"`
	Implementation string    `firestore:"implementation"`
	Effectiveness  float64   `firestore:"effectiveness"`
	CostImpact     string    `firestore:"cost_impact"`
	Custom         bool      `firestore:"custom"`
	CreatedAt      time.Time `firestore:"created_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

func (d *mitigationDocument) toModel() *model.MitigationStrategy {
	return &model.MitigationStrategy{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		Implementation: d.Implementation,
		Effectiveness:  d.Effectiveness,
		CostImpact:     types.CostImpact(d.CostImpact),
		Custom:         d.Custom,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type mitigationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMitigationRepository(client *firestore.Client) *mitigationRepository {
	return &mitigationRepository{client: client}
}

func (r *mitigationRepository) mitigationsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_mitigations"
	}
	return "mitigations"
}

func (r *mitigationRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *mitigationRepository) Create(ctx context.Context, strategy *model.MitigationStrategy) (*model.MitigationStrategy, error) {
	id, err := getNextID(ctx, r.client, r.counterCollection(), "mitigation_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &mitigationDocument{
		ID:             id,
		Name:           strategy.Name,
		Description:    strategy.Description,
		Implementation: strategy.Implementation,
		Effectiveness:  strategy.Effectiveness,
		CostImpact:     strategy.CostImpact.String(),
		Custom:         strategy.Custom,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	docRef := r.client.Collection(r.mitigationsCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create mitigation strategy", goerr.V("name", strategy.Name))
	}

	return doc.toModel(), nil
}

func (r *mitigationRepository) List(ctx context.Context) ([]*model.MitigationStrategy, error) {
	iter := r.client.Collection(r.mitigationsCollection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var strategies []*model.MitigationStrategy
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate mitigation strategies")
		}

		var mitigationDoc mitigationDocument
		if err := doc.DataTo(&mitigationDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal mitigation strategy")
		}
		strategies = append(strategies, mitigationDoc.toModel())
	}

	return strategies, nil
}

func (r *mitigationRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.mitigationsCollection()).Doc(fmt.Sprintf("%d", id))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return goerr.Wrap(types.ErrNotFound, "mitigation strategy not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get mitigation strategy", goerr.V("id", id))
	}

	var mitigationDoc mitigationDocument
	if err := doc.DataTo(&mitigationDoc); err != nil {
		return goerr.Wrap(err, "failed to unmarshal mitigation strategy", goerr.V("id", id))
	}
	if !mitigationDoc.Custom {
		return goerr.Wrap(types.ErrValidation, "catalog strategies cannot be deleted", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete mitigation strategy", goerr.V("id", id))
	}

	return nil
}
