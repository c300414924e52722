package interfaces

import (
	"context"

	"github.com/charter-lab/charterforge/pkg/domain/model"
)

// Renderer turns an assembled contract document into an HTML document.
type Renderer interface {
	Render(ctx context.Context, doc *model.ContractDocument) ([]byte, error)
}

// Exporter produces a binary PDF from the rendered document. Export is
// best effort: implementations must degrade to a minimal fallback
// artifact instead of failing outright.
type Exporter interface {
	Export(ctx context.Context, doc *model.ContractDocument) ([]byte, error)
}
