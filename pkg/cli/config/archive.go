package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
	"github.com/charter-lab/charterforge/pkg/service/archive"
	"github.com/charter-lab/charterforge/pkg/utils/logging"
)

// Archive holds CLI flags for the snapshot archive backend
type Archive struct {
	backend string
	dir     string
	bucket  string
}

// Flags returns CLI flags for archive configuration
func (a *Archive) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-backend",
			Usage:       "Snapshot archive backend (dir, gcs or none)",
			Value:       "dir",
			Sources:     cli.EnvVars("CHARTERFORGE_ARCHIVE_BACKEND"),
			Destination: &a.backend,
		},
		&cli.StringFlag{
			Name:        "archive-dir",
			Usage:       "Directory for contract snapshots (dir backend)",
			Value:       "contract_archive",
			Sources:     cli.EnvVars("CHARTERFORGE_ARCHIVE_DIR"),
			Destination: &a.dir,
		},
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "GCS bucket for contract snapshots (gcs backend)",
			Sources:     cli.EnvVars("CHARTERFORGE_ARCHIVE_BUCKET"),
			Destination: &a.bucket,
		},
	}
}

// Configure initializes the archive backend. The none backend returns
// nil, which disables snapshot history.
func (a *Archive) Configure(ctx context.Context) (interfaces.Archive, error) {
	switch a.backend {
	case "dir":
		arc, err := archive.NewDir(a.dir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize directory archive")
		}
		logging.Default().Info("Using directory snapshot archive", "path", a.dir)
		return arc, nil

	case "gcs":
		if a.bucket == "" {
			return nil, goerr.New("archive-bucket is required when using gcs backend")
		}
		arc, err := archive.NewGCS(ctx, a.bucket)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize GCS archive")
		}
		logging.Default().Info("Using GCS snapshot archive", "bucket", a.bucket)
		return arc, nil

	case "none":
		logging.Default().Info("Snapshot archive disabled")
		return nil, nil

	default:
		return nil, goerr.New("unknown archive backend", goerr.V("backend", a.backend))
	}
}
