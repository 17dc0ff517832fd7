// Package array provides the labeled n-dimensional array backend for
// tracked variables.
//
// An Array pairs a dense row-major float64 buffer with named dimensions,
// per-dimension coordinate labels, and an attributes mapping. All numeric
// work (elementwise arithmetic, reductions, logarithm) happens here; the
// variable layer above only composes results and derivation metadata.
//
// Key design constraints:
//   - Arrays are immutable after construction; every operation allocates
//   - Attribute mappings are deep-copied at construction so composing a
//     value into a derived variable can never be retroactively changed by
//     mutating the operand's attributes
//   - Binary operations broadcast by dimension NAME: the result carries
//     the union of operand dimensions, and shared dimensions must agree
//     on their coordinate labels
package array
