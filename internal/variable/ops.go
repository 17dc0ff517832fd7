package variable

import (
	"fmt"
	"maps"
	"strings"

	"github.com/impactlab/varcat/internal/array"
)

// Per-operator derivation templates. Composition is exact template
// substitution: fully left-nested, fully parenthesized, no algebraic
// simplification. Reflected forms swap the arguments, not the template.
const (
	addTemplate = `%s + %s`
	subTemplate = `%s - %s`
	mulTemplate = `\left(%s\right)\left(%s\right)`
	divTemplate = `\frac{\left(%s\right)}{\left(%s\right)}`
	powTemplate = `{\left(%s\right)}^{\left(%s\right)}`
	lnTemplate  = `\ln{\left(%s\right)}`
)

// Add returns a + b.
func Add(a, b Operand) (*Variable, error) {
	return compose(a, b, addTemplate, (*array.Array).Add)
}

// Sub returns a - b.
func Sub(a, b Operand) (*Variable, error) {
	return compose(a, b, subTemplate, (*array.Array).Sub)
}

// Mul returns the product of a and b.
func Mul(a, b Operand) (*Variable, error) {
	return compose(a, b, mulTemplate, (*array.Array).Mul)
}

// Div returns the quotient a / b.
func Div(a, b Operand) (*Variable, error) {
	return compose(a, b, divTemplate, (*array.Array).Div)
}

// Pow returns a raised to the power b.
func Pow(a, b Operand) (*Variable, error) {
	return compose(a, b, powTemplate, (*array.Array).Pow)
}

// compose performs a binary composition: backend computation, template
// substitution on the operand derivations, and dependency-set union.
func compose(a, b Operand, template string, op func(x, y *array.Array) (*array.Array, error)) (*Variable, error) {
	av, bv := a.asVariable(), b.asVariable()

	value, err := op(av.value, bv.value)
	if err != nil {
		return nil, fmt.Errorf("variable: %w", err)
	}

	return &Variable{
		value:   value,
		deriv:   fmt.Sprintf(template, av.Derivation(), bv.Derivation()),
		deps:    unionDeps(av, bv),
		derived: true,
		dimTex:  unionDimTex(av, bv),
	}, nil
}

// Sum reduces over the named dimension; an empty dim reduces over all
// dimensions. The derivation wraps in sum/set notation, subscripted
// with the reduced dimension when one is named. Dependencies are
// unchanged beyond the operand's own latest marker.
func Sum(a Operand, dim string) (*Variable, error) {
	av := a.asVariable()

	value, err := av.value.Sum(dim)
	if err != nil {
		return nil, fmt.Errorf("variable: %w", err)
	}

	deriv := fmt.Sprintf(`\sum{\left\{%s\right\}}`, av.Derivation())
	if dim != "" {
		deriv = fmt.Sprintf(`\sum_{%s\in %s}{\left\{%s\right\}}`, dim, strings.ToUpper(dim), av.Derivation())
	}

	return &Variable{
		value:   value,
		deriv:   deriv,
		deps:    unionDeps(av, nil),
		derived: true,
		dimTex:  maps.Clone(av.dimTex),
	}, nil
}

// Ln returns the natural logarithm. It cannot fail; the backend follows
// IEEE 754 for non-positive inputs.
func Ln(a Operand) *Variable {
	av := a.asVariable()
	return &Variable{
		value:   av.value.Log(),
		deriv:   fmt.Sprintf(lnTemplate, av.Derivation()),
		deps:    unionDeps(av, nil),
		derived: true,
		dimTex:  maps.Clone(av.dimTex),
	}
}

// unionDeps unions the operands' dependency sets and folds in each
// operand's own latest version marker when resolvable. The result is
// always a superset of both inputs: no composition drops a dependency.
func unionDeps(a, b *Variable) map[string]struct{} {
	deps := maps.Clone(a.deps)
	if deps == nil {
		deps = map[string]struct{}{}
	}
	if latest, ok := a.Latest(); ok {
		deps[latest] = struct{}{}
	}
	if b != nil {
		for d := range b.deps {
			deps[d] = struct{}{}
		}
		if latest, ok := b.Latest(); ok {
			deps[latest] = struct{}{}
		}
	}
	return deps
}

func unionDimTex(a, b *Variable) map[string]string {
	out := maps.Clone(a.dimTex)
	if out == nil {
		out = map[string]string{}
	}
	for d, tex := range b.dimTex {
		if _, ok := out[d]; !ok {
			out[d] = tex
		}
	}
	return out
}
