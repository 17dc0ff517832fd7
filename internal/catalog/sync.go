package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/impactlab/varcat/internal/canon"
	"github.com/impactlab/varcat/internal/objstore"
)

// Update synchronizes the catalog from the remote snapshot.
//
// A connectivity failure degrades to the last-written local snapshot
// with a warning; it is fatal only when no local snapshot exists
// either. The fetched document is schema-validated, reified, and merged
// into the existing collections; on success the merged state is
// persisted back to the local snapshot, whether or not the remote fetch
// succeeded.
func (c *Catalog) Update(ctx context.Context) error {
	data, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	if err := validateRaw(data); err != nil {
		return err
	}

	var raw rawCatalog
	if err := canon.Decode(data, &raw); err != nil {
		return &Error{Code: ErrCodeMalformed, Message: "catalog cannot be decoded", Err: err}
	}

	in, err := reify(&raw)
	if err != nil {
		return err
	}
	if err := c.merge(ctx, in); err != nil {
		return err
	}
	return c.writeLocal()
}

// Commit pushes the catalog to remote storage. It always re-runs
// Update first so remote changes since the last sync are folded in (a
// commit never silently clobbers them), rewrites the local snapshot,
// and uploads that file.
func (c *Catalog) Commit(ctx context.Context) error {
	if c.remote == nil {
		return fmt.Errorf("catalog: commit requires a remote object store")
	}
	if err := c.Update(ctx); err != nil {
		return err
	}
	if err := c.writeLocal(); err != nil {
		return err
	}
	if err := c.remote.Upload(ctx, c.bucket, c.object, c.localPath); err != nil {
		return fmt.Errorf("catalog: upload snapshot: %w", err)
	}
	c.log.Info("catalog committed", "bucket", c.bucket, "object", c.object)
	return nil
}

// fetch returns the raw catalog document: remote when reachable, the
// local snapshot otherwise.
func (c *Catalog) fetch(ctx context.Context) ([]byte, error) {
	if c.remote == nil {
		c.log.Debug("no remote configured, reading local snapshot", "path", c.localPath)
		return c.readLocal()
	}

	data, err := c.remote.Download(ctx, c.bucket, c.object)
	if err != nil {
		if !objstore.IsConnectivity(err) {
			return nil, fmt.Errorf("catalog: fetch remote snapshot: %w", err)
		}
		c.log.Warn("connection to catalog store could not be established, using local snapshot",
			"bucket", c.bucket, "object", c.object, "error", err)
		return c.readLocal()
	}
	return data, nil
}

func (c *Catalog) readLocal() ([]byte, error) {
	data, err := os.ReadFile(c.localPath)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeNoData,
			Message: fmt.Sprintf("remote unavailable and no local snapshot at %s", c.localPath),
			Err:     err,
		}
	}
	return data, nil
}
