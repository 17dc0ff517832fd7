package catalog

import (
	"context"

	"github.com/impactlab/varcat/internal/canon"
	"github.com/impactlab/varcat/internal/ledger"
)

// merge folds a reified source into the catalog's collections.
//
// Validate-then-apply: every incoming version record is checked against
// the local history before anything mutates, so a conflict leaves the
// catalog exactly as it was. Merging the same source twice is a no-op.
func (c *Catalog) merge(ctx context.Context, in *collections) error {
	adoptions, err := c.validateMerge(in)
	if err != nil {
		return err
	}
	c.applyMerge(in, adoptions)
	c.recordAdoptions(ctx, adoptions)
	return nil
}

// adoption is one version record to be adopted during apply.
type adoption struct {
	gcpID   string
	version string
	payload any
}

// validateMerge compares incoming version histories against local ones
// and returns the records to adopt. A version label present on both
// sides with structurally different payloads is a hard conflict.
func (c *Catalog) validateMerge(in *collections) ([]adoption, error) {
	var adoptions []adoption

	for _, gcpID := range sortedKeys(in.variables) {
		inVar := in.variables[gcpID]
		inVersions := versionsOf(inVar.Attrs())

		cur, exists := c.variables[gcpID]
		if !exists {
			// Adopted wholesale in apply; its versions still get
			// provenance events.
			for _, label := range sortedKeys(inVersions) {
				adoptions = append(adoptions, adoption{gcpID, label, inVersions[label]})
			}
			continue
		}

		curVersions := versionsOf(cur.Attrs())
		for _, label := range sortedKeys(inVersions) {
			curPayload, present := curVersions[label]
			if !present {
				adoptions = append(adoptions, adoption{gcpID, label, inVersions[label]})
				continue
			}
			eq, err := canon.Equal(curPayload, inVersions[label])
			if err != nil {
				return nil, &Error{
					Code:    ErrCodeMalformed,
					Message: "version record cannot be compared",
					GcpID:   gcpID,
					Version: label,
					Err:     err,
				}
			}
			if !eq {
				return nil, &Error{
					Code:    ErrCodeVersionConflict,
					Message: "version record inconsistent with current catalog",
					GcpID:   gcpID,
					Version: label,
				}
			}
		}
	}
	return adoptions, nil
}

// applyMerge mutates the collections. Only called after validation.
func (c *Catalog) applyMerge(in *collections, adoptions []adoption) {
	// Non-variable collections: last source wins per key.
	for k, v := range in.dims {
		c.dims[k] = v
	}
	for k, v := range in.files {
		c.files[k] = v
	}
	for k, v := range in.functions {
		c.functions[k] = v
	}
	for k, v := range in.scenarios {
		c.scenarios[k] = v
	}

	// Variables: adopt unknown records wholesale; for known records,
	// graft missing version labels and touch nothing else.
	for gcpID, inVar := range in.variables {
		if _, exists := c.variables[gcpID]; !exists {
			c.variables[gcpID] = inVar
		}
	}
	for _, ad := range adoptions {
		cur := c.variables[ad.gcpID]
		attrs := cur.Attrs()
		versions, ok := attrs["versions"].(map[string]any)
		if !ok {
			versions = map[string]any{}
			attrs["versions"] = versions
		}
		versions[ad.version] = ad.payload
	}
}

// recordAdoptions writes provenance events for adopted versions.
// Best-effort: the ledger is an audit trail, not part of the merge's
// consistency contract, so failures are logged and swallowed.
func (c *Catalog) recordAdoptions(ctx context.Context, adoptions []adoption) {
	if c.ledger == nil {
		return
	}
	recorded := c.now().Format("2006-01-02 15:04:05")
	for _, ad := range adoptions {
		hash, err := canon.Hash(canon.DomainVersion, ad.payload)
		if err != nil {
			c.log.Warn("cannot hash adopted version record", "gcp_id", ad.gcpID, "version", ad.version, "error", err)
			continue
		}
		ev := ledger.Event{
			Kind:         ledger.KindAdopt,
			GcpID:        ad.gcpID,
			Version:      ad.version,
			PayloadHash:  hash,
			Recorded:     recorded,
			Dependencies: payloadDependencies(ad.payload),
		}
		if err := c.ledger.Record(ctx, ev); err != nil {
			c.log.Warn("cannot record provenance event", "gcp_id", ad.gcpID, "version", ad.version, "error", err)
		}
	}
}

// versionsOf extracts the versions sub-mapping from a variable's
// attributes, which may legitimately be absent on freshly published
// sources.
func versionsOf(attrs map[string]any) map[string]any {
	versions, ok := attrs["versions"].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return versions
}

// payloadDependencies pulls the declared dependency list out of a
// version record payload, tolerating both decoded-JSON and
// locally-built shapes.
func payloadDependencies(payload any) []string {
	rec, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	switch deps := rec["dependencies"].(type) {
	case []string:
		return deps
	case []any:
		out := make([]string, 0, len(deps))
		for _, d := range deps {
			if s, ok := d.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
