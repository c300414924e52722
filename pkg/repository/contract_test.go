package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/repository/memory"
)

func testContract(vessel string, generatedAt time.Time) *model.ContractDocument {
	return &model.ContractDocument{
		ID:            types.NewContractID(),
		VersionNumber: "1.0",
		Vessel:        model.VesselInfo{Name: vessel, Type: "Motor Yacht"},
		Charter: model.CharterTerms{
			StartDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC),
			DurationDays: 7,
			DailyRate:    12000,
			Currency:     "EUR",
		},
		Parties: model.Parties{
			Lessor: model.Party{Name: "Azure Charters Ltd"},
			Lessee: model.Party{Name: "J. Moreau"},
		},
		Assessment: &model.Assessment{
			OverallScore: 0.61,
			Level:        types.RiskLevelLow,
		},
		Clauses: []model.SelectedClause{
			{Name: "Standard Cancellation Terms", Content: "...", Source: types.ClauseSourceLibrary},
		},
		TotalValue:  84000,
		GeneratedAt: generatedAt,
	}
}

func runContractRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get roundtrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		doc := testContract("M/Y Serenity", time.Now().UTC())
		gt.NoError(t, repo.Contract().Put(ctx, doc)).Required()

		got, err := repo.Contract().Get(ctx, doc.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, got.ID).Equal(doc.ID)
		gt.Value(t, got.Vessel.Name).Equal("M/Y Serenity")
		gt.Value(t, got.TotalValue).Equal(84000.0)
		gt.Value(t, got.Parties.Lessee.Name).Equal("J. Moreau")
		gt.Value(t, got.Assessment.OverallScore).Equal(0.61)
		gt.Array(t, got.Clauses).Length(1)
	})

	t.Run("Get returns ErrNotFound for missing ID", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Contract().Get(context.Background(), "MISSING1")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrNotFound))
	})

	t.Run("List returns newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC()
		oldest := testContract("Oldest Vessel", base.Add(-2*time.Hour))
		middle := testContract("Middle Vessel", base.Add(-time.Hour))
		newest := testContract("Newest Vessel", base)

		gt.NoError(t, repo.Contract().Put(ctx, middle)).Required()
		gt.NoError(t, repo.Contract().Put(ctx, oldest)).Required()
		gt.NoError(t, repo.Contract().Put(ctx, newest)).Required()

		docs, err := repo.Contract().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, docs).Length(3).Required()

		gt.Value(t, docs[0].Vessel.Name).Equal("Newest Vessel")
		gt.Value(t, docs[1].Vessel.Name).Equal("Middle Vessel")
		gt.Value(t, docs[2].Vessel.Name).Equal("Oldest Vessel")
	})

	t.Run("Stored document is isolated from later edits", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		doc := testContract("M/Y Serenity", time.Now().UTC())
		gt.NoError(t, repo.Contract().Put(ctx, doc)).Required()

		doc.Vessel.Name = "Renamed"

		got, err := repo.Contract().Get(ctx, doc.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Vessel.Name).Equal("M/Y Serenity")
	})
}

func TestMemoryContractRepository(t *testing.T) {
	runContractRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreContractRepository(t *testing.T) {
	runContractRepositoryTest(t, newFirestoreRepository)
}
