package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/repository/memory"
	"github.com/charter-lab/charterforge/pkg/service/archive"
	"github.com/charter-lab/charterforge/pkg/service/contract"
	"github.com/charter-lab/charterforge/pkg/service/pdf"
	"github.com/charter-lab/charterforge/pkg/service/render"
	"github.com/charter-lab/charterforge/pkg/usecase"
)

type captureNotifier struct {
	notified chan *model.ContractDocument
}

func (n *captureNotifier) NotifyContractGenerated(ctx context.Context, doc *model.ContractDocument) error {
	n.notified <- doc
	return nil
}

func generateInput() contract.AssembleInput {
	return contract.AssembleInput{
		Vessel: model.VesselInfo{Name: "M/Y Serenity", Type: "Motor Yacht"},
		Charter: model.CharterTerms{
			StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC),
			DailyRate: 12000,
			Currency:  "EUR",
		},
		Parties: model.Parties{
			Lessor: model.Party{Name: "Azure Charters Ltd"},
			Lessee: model.Party{Name: "J. Moreau"},
		},
	}
}

func TestGenerateContract(t *testing.T) {
	dir, err := archive.NewDir(t.TempDir())
	gt.NoError(t, err).Required()

	notifier := &captureNotifier{notified: make(chan *model.ContractDocument, 1)}

	uc := usecase.New(memory.New(),
		usecase.WithRenderer(render.NewHTML()),
		usecase.WithExporter(pdf.New()),
		usecase.WithArchive(dir),
		usecase.WithNotifier(notifier),
	)
	ctx := context.Background()

	generated, err := uc.Contract.Generate(ctx, generateInput())
	gt.NoError(t, err).Required()

	doc := generated.Document
	gt.String(t, string(doc.ID)).NotEqual("")
	gt.Value(t, doc.TotalValue).Equal(84000.0)
	gt.True(t, bytes.Contains(generated.HTML, []byte("M/Y Serenity")))
	gt.True(t, bytes.HasPrefix(generated.PDF, []byte("%PDF")))

	// Stored and retrievable
	stored, err := uc.Contract.Get(ctx, doc.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.Vessel.Name).Equal("M/Y Serenity")

	// Notification is dispatched asynchronously
	select {
	case notified := <-notifier.notified:
		gt.Value(t, notified.ID).Equal(doc.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not dispatched")
	}

	// Snapshot archiving is asynchronous too; poll briefly
	deadline := time.Now().Add(2 * time.Second)
	for {
		snapshots, err := uc.Contract.Snapshots(ctx)
		gt.NoError(t, err).Required()
		if len(snapshots) > 0 {
			gt.Value(t, snapshots[0].ContractID).Equal(doc.ID)
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("snapshot was not archived")
		}
		time.Sleep(10 * time.Millisecond)
	}

	html, err := uc.Contract.SnapshotHTML(ctx, doc.ID, doc.VersionNumber)
	gt.NoError(t, err).Required()
	gt.True(t, bytes.Contains(html, []byte("M/Y Serenity")))
}

func TestGenerateContractValidation(t *testing.T) {
	uc := usecase.New(memory.New(),
		usecase.WithRenderer(render.NewHTML()),
		usecase.WithExporter(pdf.New()),
	)

	input := generateInput()
	input.Vessel.Name = ""

	_, err := uc.Contract.Generate(context.Background(), input)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrValidation))
}

func TestContractListNewestFirst(t *testing.T) {
	uc := usecase.New(memory.New(),
		usecase.WithRenderer(render.NewHTML()),
		usecase.WithExporter(pdf.New()),
	)
	ctx := context.Background()

	first, err := uc.Contract.Generate(ctx, generateInput())
	gt.NoError(t, err).Required()

	time.Sleep(10 * time.Millisecond)

	second, err := uc.Contract.Generate(ctx, generateInput())
	gt.NoError(t, err).Required()

	docs, err := uc.Contract.List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, docs).Length(2).Required()
	gt.Value(t, docs[0].ID).Equal(second.Document.ID)
	gt.Value(t, docs[1].ID).Equal(first.Document.ID)
}

func TestSnapshotsWithoutArchive(t *testing.T) {
	uc := usecase.New(memory.New(),
		usecase.WithRenderer(render.NewHTML()),
		usecase.WithExporter(pdf.New()),
	)
	ctx := context.Background()

	snapshots, err := uc.Contract.Snapshots(ctx)
	gt.NoError(t, err)
	gt.Array(t, snapshots).Length(0)

	_, err = uc.Contract.SnapshotHTML(ctx, "ABCD1234", "1.0")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}
