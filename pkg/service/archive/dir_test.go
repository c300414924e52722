package archive_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/domain/types"
	"github.com/charter-lab/charterforge/pkg/service/archive"
)

func testDocument(vessel string) *model.ContractDocument {
	return &model.ContractDocument{
		ID:            types.NewContractID(),
		VersionNumber: "1.0",
		Vessel:        model.VesselInfo{Name: vessel},
		Charter: model.CharterTerms{
			StartDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC),
			DurationDays: 7,
			DailyRate:    12000,
			Currency:     "EUR",
		},
		TotalValue:  84000,
		GeneratedAt: time.Now().UTC(),
	}
}

func TestDirSaveAndGet(t *testing.T) {
	dir, err := archive.NewDir(t.TempDir())
	gt.NoError(t, err).Required()
	ctx := context.Background()

	doc := testDocument("M/Y Serenity")
	html := []byte("<html><body>M/Y Serenity</body></html>")

	gt.NoError(t, dir.Save(ctx, doc, html)).Required()

	stored, err := dir.GetHTML(ctx, doc.ID, doc.VersionNumber)
	gt.NoError(t, err).Required()
	gt.Value(t, string(stored)).Equal(string(html))

	restored, err := dir.GetDocument(ctx, doc.ID, doc.VersionNumber)
	gt.NoError(t, err).Required()
	gt.Value(t, restored.ID).Equal(doc.ID)
	gt.Value(t, restored.Vessel.Name).Equal("M/Y Serenity")
	gt.Value(t, restored.TotalValue).Equal(84000.0)
}

func TestDirList(t *testing.T) {
	dir, err := archive.NewDir(t.TempDir())
	gt.NoError(t, err).Required()
	ctx := context.Background()

	first := testDocument("First Vessel")
	gt.NoError(t, dir.Save(ctx, first, []byte("<html>first</html>"))).Required()

	time.Sleep(10 * time.Millisecond)

	second := testDocument("Second Vessel")
	gt.NoError(t, dir.Save(ctx, second, []byte("<html>second</html>"))).Required()

	snapshots, err := dir.List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, snapshots).Length(2).Required()

	// Newest first
	gt.Value(t, snapshots[0].ContractID).Equal(second.ID)
	gt.Value(t, snapshots[0].VesselName).Equal("Second Vessel")
	gt.Value(t, snapshots[1].ContractID).Equal(first.ID)
}

func TestDirListIgnoresForeignFiles(t *testing.T) {
	root := t.TempDir()
	dir, err := archive.NewDir(root)
	gt.NoError(t, err).Required()
	ctx := context.Background()

	gt.NoError(t, writeFile(filepath.Join(root, "notes.html"), "not a snapshot"))
	gt.NoError(t, writeFile(filepath.Join(root, "readme.txt"), "text"))

	snapshots, err := dir.List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, snapshots).Length(0)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o640)
}

func TestDirGetMissingSnapshot(t *testing.T) {
	dir, err := archive.NewDir(t.TempDir())
	gt.NoError(t, err).Required()
	ctx := context.Background()

	_, err = dir.GetHTML(ctx, "NOPE1234", "1.0")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrNotFound))

	_, err = dir.GetDocument(ctx, "NOPE1234", "1.0")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrNotFound))
}

func TestDirVersionsAreDistinct(t *testing.T) {
	dir, err := archive.NewDir(t.TempDir())
	gt.NoError(t, err).Required()
	ctx := context.Background()

	doc := testDocument("M/Y Serenity")
	gt.NoError(t, dir.Save(ctx, doc, []byte("v1"))).Required()

	doc.VersionNumber = "2.0"
	gt.NoError(t, dir.Save(ctx, doc, []byte("v2"))).Required()

	v1, err := dir.GetHTML(ctx, doc.ID, "1.0")
	gt.NoError(t, err).Required()
	gt.Value(t, string(v1)).Equal("v1")

	v2, err := dir.GetHTML(ctx, doc.ID, "2.0")
	gt.NoError(t, err).Required()
	gt.Value(t, string(v2)).Equal("v2")
}
