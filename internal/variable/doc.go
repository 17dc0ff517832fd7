// Package variable implements expression-tracked variables.
//
// A Variable wraps an array backend value and tracks, alongside the
// numeric result, a symbolic LaTeX derivation string and the set of
// upstream version identifiers the value depends on. Composition is via
// explicit named functions (Add, Sub, Mul, Div, Pow, Sum, Ln) rather
// than operator overloading; each returns a NEW Variable and never
// mutates its operands.
//
// Key invariants:
//   - Dependency sets are monotonically non-decreasing: a composed
//     variable carries the union of its operands' dependencies plus each
//     operand's latest version marker when resolvable
//   - Derivation strings are exact template substitutions with no
//     algebraic simplification; expressions nest fully parenthesized
//   - Reflected operator forms are expressed by argument order:
//     Add(Literal(2), x) is "2 + x"
package variable
