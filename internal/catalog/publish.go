package catalog

import (
	"context"

	"github.com/impactlab/varcat/internal/canon"
	"github.com/impactlab/varcat/internal/ledger"
	"github.com/impactlab/varcat/internal/variable"
)

// requiredFields must all resolve before a variable is admitted.
var requiredFields = []string{"gcp_id", "name", "latex", "description", "author"}

// Fields supplies publish metadata explicitly. An empty field falls
// back to the corresponding attribute already on the variable; a field
// resolvable from neither source fails the publish before any record
// is constructed.
type Fields struct {
	GcpID       string
	Name        string
	LaTeX       string
	Description string
	Author      string
}

// Publish admits a new variable to the catalog under a fresh version
// record and rewrites the local snapshot. The returned variable carries
// the full published attribute set. A duplicate gcp_id aborts with
// nothing written; so does any unresolvable required field.
func (c *Catalog) Publish(ctx context.Context, v *variable.Variable, fields Fields) (*variable.Variable, error) {
	resolved, err := resolveFields(v, fields)
	if err != nil {
		return nil, err
	}
	gcpID := resolved["gcp_id"]

	if _, exists := c.variables[gcpID]; exists {
		return nil, &Error{
			Code:    ErrCodeDuplicateID,
			Message: "already in catalog",
			GcpID:   gcpID,
		}
	}

	dims, err := c.dimRefs(v)
	if err != nil {
		return nil, err
	}

	updated := c.now().Format("2006-01-02 15:04:05")
	versionLabel := gcpID + "." + updated
	versionRecord := map[string]any{
		"uuid":         c.newUUID(),
		"version":      versionLabel,
		"updated":      updated,
		"dependencies": v.Dependencies(),
		"filepath":     "",
	}

	attrs := map[string]any{
		"gcp_id":      gcpID,
		"name":        resolved["name"],
		"latex":       resolved["latex"],
		"description": resolved["description"],
		"author":      resolved["author"],
		"uuid":        c.newUUID(),
		"updated":     updated,
		"dims":        dims,
		"derived":     v.Derived(),
		"derivation":  v.Derivation(),
		"versions":    map[string]any{versionLabel: versionRecord},
	}

	published := v.WithAttrs(attrs)
	c.variables[gcpID] = published

	if err := c.writeLocal(); err != nil {
		// Roll back so a failed publish leaves no trace in memory
		// either.
		delete(c.variables, gcpID)
		return nil, err
	}

	c.recordPublish(ctx, gcpID, versionLabel, versionRecord, updated)
	c.log.Info("variable published", "gcp_id", gcpID, "version", versionLabel)
	return published, nil
}

// resolveFields resolves every required field or fails fast, so a
// record is never left partially populated.
func resolveFields(v *variable.Variable, fields Fields) (map[string]string, error) {
	supplied := map[string]string{
		"gcp_id":      fields.GcpID,
		"name":        fields.Name,
		"latex":       fields.LaTeX,
		"description": fields.Description,
		"author":      fields.Author,
	}
	attrs := v.Attrs()

	resolved := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		val := supplied[field]
		if val == "" {
			val, _ = attrs[field].(string)
		}
		if val == "" {
			return nil, &Error{
				Code:    ErrCodeMissingField,
				Message: "required publish attribute unresolved",
				Field:   field,
			}
		}
		resolved[field] = val
	}
	return resolved, nil
}

// dimRefs builds the published dims list from the variable's current
// dimensions; every dimension must already be declared in the catalog.
func (c *Catalog) dimRefs(v *variable.Variable) ([]any, error) {
	varDims := v.Value().Dims()
	dims := make([]any, 0, len(varDims))
	for _, d := range varDims {
		rec, ok := c.dims[d]
		if !ok {
			return nil, &Error{
				Code:    ErrCodeNotFound,
				Message: "variable uses undeclared dimension",
				GcpID:   d,
			}
		}
		ref := map[string]any{"gcp_id": d}
		if name, ok := rec["name"]; ok {
			ref["name"] = name
		}
		if values := v.Value().Coords(d); len(values) > 0 && values[0] != "" {
			vals := make([]any, len(values))
			for i, val := range values {
				vals[i] = val
			}
			ref["values"] = vals
		}
		dims = append(dims, ref)
	}
	return dims, nil
}

func (c *Catalog) recordPublish(ctx context.Context, gcpID, versionLabel string, record map[string]any, recorded string) {
	if c.ledger == nil {
		return
	}
	hash, err := canon.Hash(canon.DomainVersion, record)
	if err != nil {
		c.log.Warn("cannot hash published version record", "gcp_id", gcpID, "error", err)
		return
	}
	ev := ledger.Event{
		Kind:         ledger.KindPublish,
		GcpID:        gcpID,
		Version:      versionLabel,
		PayloadHash:  hash,
		Recorded:     recorded,
		Dependencies: payloadDependencies(record),
	}
	if err := c.ledger.Record(ctx, ev); err != nil {
		c.log.Warn("cannot record publish event", "gcp_id", gcpID, "version", versionLabel, "error", err)
	}
}
