package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/utils/safe"
)

const gcsPrefix = "contracts/"

// GCS stores contract snapshots in a Google Cloud Storage bucket under
// contracts/{id}/{version}.{html,json}.
type GCS struct {
	client *storage.Client
	bucket string
}

var _ interfaces.Archive = &GCS{}

// NewGCS creates a GCS archive for the given bucket.
func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}
	return &GCS{client: client, bucket: bucket}, nil
}

// Close releases the underlying storage client.
func (g *GCS) Close(ctx context.Context) error {
	return g.client.Close()
}

func (g *GCS) objectName(id types.ContractID, version, ext string) string {
	return fmt.Sprintf("%s%s/%s.%s", gcsPrefix, id, version, ext)
}

// Save writes the HTML and JSON objects concurrently.
func (g *GCS) Save(ctx context.Context, doc *model.ContractDocument, html []byte) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal contract document", goerr.V("contract_id", doc.ID))
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return g.write(egCtx, g.objectName(doc.ID, doc.VersionNumber, "html"), "text/html", html)
	})
	eg.Go(func() error {
		return g.write(egCtx, g.objectName(doc.ID, doc.VersionNumber, "json"), "application/json", raw)
	})
	if err := eg.Wait(); err != nil {
		return goerr.Wrap(err, "failed to store snapshot", goerr.V("contract_id", doc.ID))
	}
	return nil
}

func (g *GCS) write(ctx context.Context, name, contentType string, data []byte) error {
	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object", goerr.V("object", name))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to close object writer", goerr.V("object", name))
	}
	return nil
}

// List returns stored snapshots ordered by update time, newest first.
func (g *GCS) List(ctx context.Context) ([]model.SnapshotInfo, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: gcsPrefix})

	var snapshots []model.SnapshotInfo
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate snapshot objects")
		}
		if !strings.HasSuffix(attrs.Name, ".html") {
			continue
		}

		rest := strings.TrimPrefix(strings.TrimSuffix(attrs.Name, ".html"), gcsPrefix)
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 {
			continue
		}

		snapshots = append(snapshots, model.SnapshotInfo{
			ContractID: types.ContractID(parts[0]),
			Version:    parts[1],
			Size:       attrs.Size,
			ModTime:    attrs.Updated,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ModTime.After(snapshots[j].ModTime)
	})
	return snapshots, nil
}

// GetHTML returns the stored HTML snapshot.
func (g *GCS) GetHTML(ctx context.Context, id types.ContractID, version string) ([]byte, error) {
	return g.read(ctx, g.objectName(id, version, "html"))
}

// GetDocument returns the stored JSON document snapshot.
func (g *GCS) GetDocument(ctx context.Context, id types.ContractID, version string) (*model.ContractDocument, error) {
	raw, err := g.read(ctx, g.objectName(id, version, "json"))
	if err != nil {
		return nil, err
	}

	var doc model.ContractDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal contract document", goerr.V("contract_id", id))
	}
	return &doc, nil
}

func (g *GCS) read(ctx context.Context, name string) ([]byte, error) {
	r, err := g.client.Bucket(g.bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, goerr.Wrap(types.ErrNotFound, "snapshot not found", goerr.V("object", name))
		}
		return nil, goerr.Wrap(err, "failed to open snapshot object", goerr.V("object", name))
	}
	defer safe.Close(ctx, r)

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read snapshot object", goerr.V("object", name))
	}
	return raw, nil
}
