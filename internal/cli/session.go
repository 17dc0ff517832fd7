package cli

import (
	"context"
	"log/slog"

	"github.com/impactlab/varcat/internal/catalog"
	"github.com/impactlab/varcat/internal/ledger"
	"github.com/impactlab/varcat/internal/objstore"
)

// session bundles the catalog with the resources behind it so commands
// can release them in one place.
type session struct {
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	gcs     *objstore.GCS
}

// openSession builds a catalog from the config file. An offline config
// (no bucket) gets no remote client; a missing ledger path gets no
// audit trail.
func openSession(ctx context.Context, opts *RootOptions) (*session, error) {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	s := &session{}
	var remote objstore.Client
	if cfg.Remote() {
		gcs, err := objstore.NewGCS(ctx, cfg.Credentials)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to create object store client", err)
		}
		s.gcs = gcs
		remote = gcs
	}

	if cfg.Ledger != "" {
		led, err := ledger.Open(cfg.Ledger)
		if err != nil {
			s.Close()
			return nil, WrapExitError(ExitCommandError, "failed to open provenance ledger", err)
		}
		s.ledger = led
	}

	s.catalog = catalog.New(catalog.Config{
		Remote:    remote,
		Bucket:    cfg.Bucket,
		Object:    cfg.Object,
		LocalPath: cfg.Snapshot,
		Ledger:    s.ledger,
		Logger:    slog.Default(),
	})
	return s, nil
}

func (s *session) Close() {
	if s.ledger != nil {
		if err := s.ledger.Close(); err != nil {
			slog.Error("error closing ledger", "error", err)
		}
	}
	if s.gcs != nil {
		if err := s.gcs.Close(); err != nil {
			slog.Error("error closing object store client", "error", err)
		}
	}
}
