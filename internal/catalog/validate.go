package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
	schemaErr   error
)

// catalogSchema compiles the embedded schema once. Uses CUE SDK's Go
// API directly (not CLI subprocess).
func catalogSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile catalog schema: %w", err)
			return
		}
		schemaValue = v.LookupPath(cue.ParsePath("#Catalog"))
		if err := schemaValue.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Catalog: %w", err)
		}
	})
	return schemaValue, schemaErr
}

// validateRaw checks a catalog JSON document against the embedded
// schema. Failures are malformed-catalog errors: without the declared
// dims and variables shape, placeholder arrays cannot be built.
func validateRaw(data []byte) error {
	schema, err := catalogSchema()
	if err != nil {
		return err
	}

	expr, err := cuejson.Extract("catalog.json", data)
	if err != nil {
		return &Error{Code: ErrCodeMalformed, Message: "catalog is not valid JSON", Err: err}
	}

	doc := schema.Context().BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return &Error{Code: ErrCodeMalformed, Message: "catalog could not be evaluated", Err: err}
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return &Error{Code: ErrCodeMalformed, Message: "catalog fails schema validation", Err: err}
	}
	return nil
}
