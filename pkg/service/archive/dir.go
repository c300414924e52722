package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
)

// Dir stores contract snapshots as HTML and JSON files under a local
// directory, named contract_v{version}_{id}.{html,json}. History is
// listed by file modification time, newest first.
type Dir struct {
	root string
}

var _ interfaces.Archive = &Dir{}

// NewDir creates a Dir archive rooted at the given path, creating the
// directory when missing.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, goerr.Wrap(err, "failed to create archive directory", goerr.V("path", root))
	}
	return &Dir{root: root}, nil
}

func (d *Dir) basename(id types.ContractID, version string) string {
	return fmt.Sprintf("contract_v%s_%s", version, id)
}

// Save writes both the rendered HTML and the JSON document snapshot.
func (d *Dir) Save(ctx context.Context, doc *model.ContractDocument, html []byte) error {
	base := d.basename(doc.ID, doc.VersionNumber)

	if err := os.WriteFile(filepath.Join(d.root, base+".html"), html, 0o640); err != nil {
		return goerr.Wrap(err, "failed to write HTML snapshot", goerr.V("contract_id", doc.ID))
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal contract document", goerr.V("contract_id", doc.ID))
	}
	if err := os.WriteFile(filepath.Join(d.root, base+".json"), raw, 0o640); err != nil {
		return goerr.Wrap(err, "failed to write JSON snapshot", goerr.V("contract_id", doc.ID))
	}
	return nil
}

// List returns stored snapshots ordered by modification time, newest
// first.
func (d *Dir) List(ctx context.Context) ([]model.SnapshotInfo, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read archive directory", goerr.V("path", d.root))
	}

	var snapshots []model.SnapshotInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".html") {
			continue
		}
		id, version, ok := parseSnapshotName(strings.TrimSuffix(name, ".html"))
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		snapshot := model.SnapshotInfo{
			ContractID: id,
			Version:    version,
			Size:       info.Size(),
			ModTime:    info.ModTime(),
		}
		if doc, err := d.GetDocument(ctx, id, version); err == nil {
			snapshot.VesselName = doc.Vessel.Name
		}
		snapshots = append(snapshots, snapshot)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ModTime.After(snapshots[j].ModTime)
	})
	return snapshots, nil
}

// GetHTML returns the stored HTML snapshot.
func (d *Dir) GetHTML(ctx context.Context, id types.ContractID, version string) ([]byte, error) {
	path := filepath.Join(d.root, d.basename(id, version)+".html")
	raw, err := os.ReadFile(path) // #nosec G304 - path is built from validated identifiers
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "snapshot not found",
				goerr.V("contract_id", id), goerr.V("version", version))
		}
		return nil, goerr.Wrap(err, "failed to read HTML snapshot", goerr.V("contract_id", id))
	}
	return raw, nil
}

// GetDocument returns the stored JSON document snapshot.
func (d *Dir) GetDocument(ctx context.Context, id types.ContractID, version string) (*model.ContractDocument, error) {
	path := filepath.Join(d.root, d.basename(id, version)+".json")
	raw, err := os.ReadFile(path) // #nosec G304 - path is built from validated identifiers
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "snapshot not found",
				goerr.V("contract_id", id), goerr.V("version", version))
		}
		return nil, goerr.Wrap(err, "failed to read JSON snapshot", goerr.V("contract_id", id))
	}

	var doc model.ContractDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal contract document", goerr.V("contract_id", id))
	}
	return &doc, nil
}

// parseSnapshotName splits contract_v{version}_{id} into its parts.
func parseSnapshotName(base string) (types.ContractID, string, bool) {
	parts := strings.Split(base, "_")
	if len(parts) < 3 || parts[0] != "contract" || !strings.HasPrefix(parts[1], "v") {
		return "", "", false
	}
	version := strings.TrimPrefix(parts[1], "v")
	id := types.ContractID(parts[len(parts)-1])
	return id, version, true
}
