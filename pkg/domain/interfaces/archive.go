package interfaces

import (
	"context"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

// Archive stores contract snapshots (HTML + JSON) keyed by contract ID
// and version, and lists stored snapshots by modification time for
// version history display.
type Archive interface {
	Save(ctx context.Context, doc *model.ContractDocument, html []byte) error
	List(ctx context.Context) ([]model.SnapshotInfo, error)
	GetHTML(ctx context.Context, id types.ContractID, version string) ([]byte, error)
	GetDocument(ctx context.Context, id types.ContractID, version string) (*model.ContractDocument, error)
}
