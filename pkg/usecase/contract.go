package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/service/contract"
	"github.com/charter-lab/charterforge/pkg/utils/async"
	"github.com/charter-lab/charterforge/pkg/utils/logging"
)

// Notifier announces generated contracts to an external channel
type Notifier interface {
	NotifyContractGenerated(ctx context.Context, doc *model.ContractDocument) error
}

// GeneratedContract bundles the document with its rendered artifacts
type GeneratedContract struct {
	Document *model.ContractDocument
	HTML     []byte
	PDF      []byte
}

// ContractUseCase assembles contract documents, renders them and keeps
// snapshot history
type ContractUseCase struct {
	repo     interfaces.Repository
	renderer interfaces.Renderer
	exporter interfaces.Exporter
	archive  interfaces.Archive
	notifier Notifier
}

func NewContractUseCase(repo interfaces.Repository, renderer interfaces.Renderer, exporter interfaces.Exporter, archive interfaces.Archive, notifier Notifier) *ContractUseCase {
	return &ContractUseCase{
		repo:     repo,
		renderer: renderer,
		exporter: exporter,
		archive:  archive,
		notifier: notifier,
	}
}

// Generate assembles the contract, renders HTML and PDF, persists the
// document and archives a snapshot. Archiving and notification run
// asynchronously; their failures are logged, not returned, because the
// caller already holds the generated artifacts.
func (uc *ContractUseCase) Generate(ctx context.Context, input contract.AssembleInput) (*GeneratedContract, error) {
	doc, err := contract.Assemble(input)
	if err != nil {
		return nil, err
	}

	html, err := uc.renderer.Render(ctx, doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render contract", goerr.V("contract_id", doc.ID))
	}

	pdf, err := uc.exporter.Export(ctx, doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to export contract PDF", goerr.V("contract_id", doc.ID))
	}

	if err := uc.repo.Contract().Put(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to store contract", goerr.V("contract_id", doc.ID))
	}

	if uc.archive != nil {
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.archive.Save(ctx, doc, html)
		})
	}
	if uc.notifier != nil {
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.notifier.NotifyContractGenerated(ctx, doc)
		})
	}

	logging.From(ctx).Info("contract generated",
		"contract_id", doc.ID,
		"vessel", doc.Vessel.Name,
		"total_value", doc.TotalValue,
	)

	return &GeneratedContract{Document: doc, HTML: html, PDF: pdf}, nil
}

// Get returns a stored contract document
func (uc *ContractUseCase) Get(ctx context.Context, id types.ContractID) (*model.ContractDocument, error) {
	return uc.repo.Contract().Get(ctx, id)
}

// List returns stored contract documents, newest first
func (uc *ContractUseCase) List(ctx context.Context) ([]*model.ContractDocument, error) {
	return uc.repo.Contract().List(ctx)
}

// RenderHTML re-renders the HTML artifact for a stored contract
func (uc *ContractUseCase) RenderHTML(ctx context.Context, id types.ContractID) ([]byte, error) {
	doc, err := uc.repo.Contract().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.renderer.Render(ctx, doc)
}

// ExportPDF re-exports the PDF artifact for a stored contract
func (uc *ContractUseCase) ExportPDF(ctx context.Context, id types.ContractID) ([]byte, error) {
	doc, err := uc.repo.Contract().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Export(ctx, doc)
}

// Snapshots lists archived contract snapshots, newest first
func (uc *ContractUseCase) Snapshots(ctx context.Context) ([]model.SnapshotInfo, error) {
	if uc.archive == nil {
		return nil, nil
	}
	return uc.archive.List(ctx)
}

// SnapshotHTML returns the archived HTML of a contract version
func (uc *ContractUseCase) SnapshotHTML(ctx context.Context, id types.ContractID, version string) ([]byte, error) {
	if uc.archive == nil {
		return nil, goerr.Wrap(types.ErrNotFound, "snapshot archive is not configured")
	}
	return uc.archive.GetHTML(ctx, id, version)
}
