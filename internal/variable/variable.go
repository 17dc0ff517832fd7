package variable

import (
	"maps"
	"slices"
	"strings"

	"github.com/impactlab/varcat/internal/array"
)

// Variable pairs an array backend value with its symbolic derivation
// and the set of upstream version identifiers it depends on.
// Variables are immutable: composition allocates, never mutates.
type Variable struct {
	value   *array.Array
	deriv   string // empty until composed; Derivation() falls back
	deps    map[string]struct{}
	derived bool
	dimTex  map[string]string // dimension name -> LaTeX label
}

// Options configures construction of a Variable from a backend value.
type Options struct {
	// Derivation is the symbolic expression that produced the value.
	// Empty means "not yet composed": Derivation() then renders the
	// variable's own symbol and dimension labels instead.
	Derivation string

	// Derived marks the variable as produced by composition rather
	// than loaded as primary data.
	Derived bool

	// Dependencies seeds the upstream version identifier set.
	Dependencies []string

	// DimTeX maps dimension names to their LaTeX labels, resolved from
	// the catalog's dims collection. Missing entries degrade to the raw
	// dimension name.
	DimTeX map[string]string
}

// New wraps a backend value as a Variable.
func New(value *array.Array, opts Options) *Variable {
	deps := make(map[string]struct{}, len(opts.Dependencies))
	for _, d := range opts.Dependencies {
		deps[d] = struct{}{}
	}
	return &Variable{
		value:   value,
		deriv:   opts.Derivation,
		deps:    deps,
		derived: opts.Derived,
		dimTex:  maps.Clone(opts.DimTeX),
	}
}

// Operand is the sealed sum type accepted by composition functions.
// Exactly two variants exist: *Variable and Literal.
type Operand interface {
	asVariable() *Variable
}

func (v *Variable) asVariable() *Variable { return v }

// Literal is a raw numeric operand. It coerces to a non-derived
// Variable whose derivation is the literal's default string rendering.
type Literal float64

func (l Literal) asVariable() *Variable {
	return &Variable{
		value:   array.Scalar(float64(l)),
		derived: false,
		deps:    map[string]struct{}{},
	}
}

// Value returns the underlying backend value.
func (v *Variable) Value() *array.Array { return v.value }

// Attrs returns the attribute mapping of the underlying value.
func (v *Variable) Attrs() map[string]any { return v.value.Attrs() }

// Derived reports whether the variable was produced by composition (or
// loaded as a derived catalog entry) rather than as primary data.
func (v *Variable) Derived() bool { return v.derived }

// Symbol returns the variable's configured LaTeX symbol, or "" if none
// is set in its attributes.
func (v *Variable) Symbol() string {
	if s, ok := v.value.Attrs()["latex"].(string); ok {
		return s
	}
	return ""
}

// Derivation returns the symbolic expression that produced the value.
// An uncomposed variable renders its own symbol with dimension labels;
// failing that, the value's string rendering (the literal case).
func (v *Variable) Derivation() string {
	if v.deriv != "" {
		return v.deriv
	}
	if sym := v.Symbol(); sym != "" {
		return sym + v.texDims()
	}
	return v.value.String()
}

// Dependencies returns the sorted upstream version identifiers.
func (v *Variable) Dependencies() []string {
	out := make([]string, 0, len(v.deps))
	for d := range v.deps {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// DependsOn reports whether the variable carries the given version
// identifier in its dependency set.
func (v *Variable) DependsOn(version string) bool {
	_, ok := v.deps[version]
	return ok
}

// Latest resolves the variable's own most recent version identifier
// from the versions mapping in its attributes. Version labels embed
// timestamps, so the lexicographically greatest label is the newest.
func (v *Variable) Latest() (string, bool) {
	versions, ok := v.value.Attrs()["versions"].(map[string]any)
	if !ok || len(versions) == 0 {
		return "", false
	}
	var latest string
	for label := range versions {
		if label > latest {
			latest = label
		}
	}
	return latest, true
}

// Equation renders the full equation: the variable's symbol with
// dimension subscripts, " = ", and the derivation. With no symbol
// configured it degrades to the bare derivation. Pure formatting, never
// fails.
func (v *Variable) Equation() string {
	sym := v.Symbol()
	if sym == "" {
		return v.Derivation()
	}
	return sym + v.texDims() + " = " + v.Derivation()
}

// WithAttrs returns a copy of the variable whose value carries the
// given attributes (deep-copied). Derivation, dependencies, and the
// derived flag are preserved.
func (v *Variable) WithAttrs(attrs map[string]any) *Variable {
	return &Variable{
		value:   v.value.WithAttrs(attrs),
		deriv:   v.deriv,
		deps:    maps.Clone(v.deps),
		derived: v.derived,
		dimTex:  maps.Clone(v.dimTex),
	}
}

// texDims renders the subscript for the value's current dimensions,
// e.g. "_{i,t}". Dimensions without a LaTeX label fall back to their
// raw name. No dimensions yields no subscript.
func (v *Variable) texDims() string {
	dims := v.value.Dims()
	if len(dims) == 0 {
		return ""
	}
	labels := make([]string, len(dims))
	for i, d := range dims {
		if tex, ok := v.dimTex[d]; ok && tex != "" {
			labels[i] = tex
		} else {
			labels[i] = d
		}
	}
	return "_{" + strings.Join(labels, ",") + "}"
}
