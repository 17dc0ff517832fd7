package catalog

import (
	"fmt"

	"github.com/impactlab/varcat/internal/array"
	"github.com/impactlab/varcat/internal/variable"
)

// rawCatalog is the decoded shape of a catalog JSON snapshot. Record
// payloads stay as generic maps (numbers as json.Number) so canonical
// comparison sees the source literals.
type rawCatalog struct {
	Dims      map[string]map[string]any `json:"dims"`
	Variables map[string]map[string]any `json:"variables"`
	Files     map[string]map[string]any `json:"files"`
	Functions map[string]map[string]any `json:"functions"`
	Scenarios map[string]map[string]any `json:"scenarios"`
}

// collections is the reified in-memory form of a catalog source.
type collections struct {
	variables map[string]*variable.Variable
	dims      map[string]map[string]any
	files     map[string]map[string]any
	functions map[string]map[string]any
	scenarios map[string]map[string]any
}

// reify turns raw catalog JSON into typed records. Non-variable
// collections copy through verbatim. Each variable becomes a tracked
// variable over a ones-filled placeholder array shaped from its
// declared dimensions; a dimension with no declared values gets a
// single synthetic coordinate.
func reify(raw *rawCatalog) (*collections, error) {
	out := &collections{
		variables: make(map[string]*variable.Variable, len(raw.Variables)),
		dims:      orEmpty(raw.Dims),
		files:     orEmpty(raw.Files),
		functions: orEmpty(raw.Functions),
		scenarios: orEmpty(raw.Scenarios),
	}

	for gcpID, attrs := range raw.Variables {
		v, err := reifyVariable(gcpID, attrs, raw.Dims)
		if err != nil {
			return nil, err
		}
		out.variables[gcpID] = v
	}
	return out, nil
}

func reifyVariable(gcpID string, attrs map[string]any, dimRecords map[string]map[string]any) (*variable.Variable, error) {
	dimSpecs, ok := attrs["dims"].([]any)
	if !ok {
		return nil, &Error{
			Code:    ErrCodeMalformed,
			Message: "variable has no dims list",
			GcpID:   gcpID,
		}
	}

	var dims []string
	coords := make(map[string][]string, len(dimSpecs))
	dimTex := make(map[string]string, len(dimSpecs))

	for i, spec := range dimSpecs {
		ref, ok := spec.(map[string]any)
		if !ok {
			return nil, &Error{
				Code:    ErrCodeMalformed,
				Message: fmt.Sprintf("dims[%d] is not an object", i),
				GcpID:   gcpID,
			}
		}
		dimID, ok := ref["gcp_id"].(string)
		if !ok {
			return nil, &Error{
				Code:    ErrCodeMalformed,
				Message: fmt.Sprintf("dims[%d] has no gcp_id", i),
				GcpID:   gcpID,
			}
		}
		rec, ok := dimRecords[dimID]
		if !ok {
			return nil, &Error{
				Code:    ErrCodeMalformed,
				Message: fmt.Sprintf("references undeclared dimension %q", dimID),
				GcpID:   gcpID,
			}
		}

		dims = append(dims, dimID)
		coords[dimID] = coordLabels(ref["values"])
		if tex, ok := rec["latex"].(string); ok {
			dimTex[dimID] = tex
		}
	}

	value, err := array.Ones(dims, coords, attrs)
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeMalformed,
			Message: "cannot shape placeholder array",
			GcpID:   gcpID,
			Err:     err,
		}
	}

	derived := true
	if d, ok := attrs["derived"].(bool); ok {
		derived = d
	}
	derivation, _ := attrs["derivation"].(string)

	return variable.New(value, variable.Options{
		Derivation: derivation,
		Derived:    derived,
		DimTeX:     dimTex,
	}), nil
}

// coordLabels renders a declared values list as coordinate labels. An
// absent or empty list yields one synthetic coordinate so the axis
// still exists in the placeholder.
func coordLabels(values any) []string {
	vals, ok := values.([]any)
	if !ok || len(vals) == 0 {
		return []string{""}
	}
	labels := make([]string, len(vals))
	for i, v := range vals {
		labels[i] = fmt.Sprint(v)
	}
	return labels
}

func orEmpty(m map[string]map[string]any) map[string]map[string]any {
	if m == nil {
		return map[string]map[string]any{}
	}
	return m
}
