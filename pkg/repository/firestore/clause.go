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

type clauseDocument struct {
	ID       int64  `firestore:"id"`
	Name     string `firestore:"name"`
	Category string `firestore:"category"`
	Content  string `firestore:"content"`
	Version  string `firestore:"version"`
	Status   string `firestore:"status"`

	Jurisdictions  []string `firestore:"jurisdictions"`
	Language       string   `firestore:"language"`
	Complexity     string   `firestore:"complexity"`
	RiskLevel      string   `firestore:"risk_level"`
	Rating         float64  `firestore:"rating"`
	UsageCount     int      `firestore:"usage_count"`
	Author         string   `firestore:"author"`
	LegalNotes     string   `firestore:"legal_notes"`
	ApplicableTo   []string `firestore:"applicable_to"`
	RelatedClauses []string `firestore:"related_clauses"`

	BaseVersion       string `firestore:"base_version"`
	ModificationNotes string `firestore:"modification_notes"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toClauseDocument(clause *model.Clause) *clauseDocument {
	return &clauseDocument{
		ID:                clause.ID,
		Name:              clause.Name,
		Category:          clause.Category,
		Content:           clause.Content,
		Version:           clause.Version,
		Status:            clause.Status.String(),
		Jurisdictions:     clause.Jurisdictions,
		Language:          clause.Language,
		Complexity:        clause.Complexity.String(),
		RiskLevel:         clause.RiskLevel.String(),
		Rating:            clause.Rating,
		UsageCount:        clause.UsageCount,
		Author:            clause.Author,
		LegalNotes:        clause.LegalNotes,
		ApplicableTo:      clause.ApplicableTo,
		RelatedClauses:    clause.RelatedClauses,
		BaseVersion:       clause.BaseVersion,
		ModificationNotes: clause.ModificationNotes,
		CreatedAt:         clause.CreatedAt,
		UpdatedAt:         clause.UpdatedAt,
	}
}

func (d *clauseDocument) toModel() *model.Clause {
	return &model.Clause{
		ID:                d.ID,
		Name:              d.Name,
		Category:          d.Category,
		Content:           d.Content,
		Version:           d.Version,
		Status:            types.ClauseStatus(d.Status),
		Jurisdictions:     d.Jurisdictions,
		Language:          d.Language,
		Complexity:        types.Complexity(d.Complexity),
		RiskLevel:         types.RiskLevel(d.RiskLevel),
		Rating:            d.Rating,
		UsageCount:        d.UsageCount,
		Author:            d.Author,
		LegalNotes:        d.LegalNotes,
		ApplicableTo:      d.ApplicableTo,
		RelatedClauses:    d.RelatedClauses,
		BaseVersion:       d.BaseVersion,
		ModificationNotes: d.ModificationNotes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

type clauseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newClauseRepository(client *firestore.Client) *clauseRepository {
	return &clauseRepository{client: client}
}

func (r *clauseRepository) clausesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_clauses"
	}
	return "clauses"
}

func (r *clauseRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *clauseRepository) Create(ctx context.Context, clause *model.Clause) (*model.Clause, error) {
	id, err := getNextID(ctx, r.client, r.counterCollection(), "clause_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := clause.Clone()
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.clausesCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, toClauseDocument(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create clause", goerr.V("name", clause.Name))
	}

	return created, nil
}

func (r *clauseRepository) Get(ctx context.Context, id int64) (*model.Clause, error) {
	docRef := r.client.Collection(r.clausesCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "clause not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get clause", goerr.V("id", id))
	}

	var clauseDoc clauseDocument
	if err := doc.DataTo(&clauseDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal clause", goerr.V("id", id))
	}

	return clauseDoc.toModel(), nil
}

func (r *clauseRepository) List(ctx context.Context) ([]*model.Clause, error) {
	iter := r.client.Collection(r.clausesCollection()).OrderBy("id", firestore.Asc).Documents(ctx)
	return r.collect(iter)
}

func (r *clauseRepository) ListByCategory(ctx context.Context, category string) ([]*model.Clause, error) {
	iter := r.client.Collection(r.clausesCollection()).
		Where("category", "==", category).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	return r.collect(iter)
}

func (r *clauseRepository) ListChain(ctx context.Context, key model.ClauseKey) ([]*model.Clause, error) {
	iter := r.client.Collection(r.clausesCollection()).
		Where("name", "==", key.Name).
		Where("category", "==", key.Category).
		Where("status", "==", types.ClauseStatusModified.String()).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	return r.collect(iter)
}

func (r *clauseRepository) collect(iter *firestore.DocumentIterator) ([]*model.Clause, error) {
	defer iter.Stop()

	var clauses []*model.Clause
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate clauses")
		}

		var clauseDoc clauseDocument
		if err := doc.DataTo(&clauseDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal clause")
		}
		clauses = append(clauses, clauseDoc.toModel())
	}

	return clauses, nil
}

func (r *clauseRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.clausesCollection()).Doc(fmt.Sprintf("%d", id))

	if _, err := docRef.Get(ctx); err != nil {
		if isNotFound(err) {
			return goerr.Wrap(types.ErrNotFound, "clause not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get clause", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete clause", goerr.V("id", id))
	}

	return nil
}
