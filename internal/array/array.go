package array

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Array is a dense labeled n-dimensional array.
//
// The data buffer is row-major over dims: the last dimension varies
// fastest. A zero-dimensional Array is a scalar.
type Array struct {
	dims   []string
	coords map[string][]string
	shape  []int
	data   []float64
	attrs  map[string]any
}

// New constructs an Array from a flat row-major buffer.
// len(data) must equal the product of the coordinate counts of dims.
// Every dim must have a non-empty coordinate list in coords.
// attrs is deep-copied; the caller's map is never retained.
func New(data []float64, dims []string, coords map[string][]string, attrs map[string]any) (*Array, error) {
	shape := make([]int, len(dims))
	size := 1
	for i, d := range dims {
		vals, ok := coords[d]
		if !ok || len(vals) == 0 {
			return nil, fmt.Errorf("array: dimension %q has no coordinates", d)
		}
		shape[i] = len(vals)
		size *= len(vals)
	}
	if len(data) != size {
		return nil, fmt.Errorf("array: data length %d does not match shape %v (size %d)", len(data), shape, size)
	}

	kept := make(map[string][]string, len(dims))
	for _, d := range dims {
		kept[d] = slices.Clone(coords[d])
	}

	return &Array{
		dims:   slices.Clone(dims),
		coords: kept,
		shape:  shape,
		data:   slices.Clone(data),
		attrs:  CopyAttrs(attrs),
	}, nil
}

// Ones constructs an Array of the given dimensions filled with 1.0.
// Used for placeholder values when reifying catalog entries whose real
// data lives elsewhere.
func Ones(dims []string, coords map[string][]string, attrs map[string]any) (*Array, error) {
	size := 1
	for _, d := range dims {
		size *= len(coords[d])
	}
	data := make([]float64, size)
	for i := range data {
		data[i] = 1.0
	}
	return New(data, dims, coords, attrs)
}

// Scalar constructs a zero-dimensional Array holding a single value.
func Scalar(v float64) *Array {
	return &Array{
		dims:   nil,
		coords: map[string][]string{},
		shape:  nil,
		data:   []float64{v},
		attrs:  map[string]any{},
	}
}

// Dims returns the ordered dimension names.
func (a *Array) Dims() []string {
	return slices.Clone(a.dims)
}

// Coords returns the coordinate labels of a dimension, or nil if the
// dimension is not present.
func (a *Array) Coords(dim string) []string {
	return slices.Clone(a.coords[dim])
}

// Shape returns the per-dimension sizes.
func (a *Array) Shape() []int {
	return slices.Clone(a.shape)
}

// Values returns a copy of the flat row-major data buffer.
func (a *Array) Values() []float64 {
	return slices.Clone(a.data)
}

// Attrs returns the attribute mapping. The map was deep-copied at
// construction; mutating it affects only this Array.
func (a *Array) Attrs() map[string]any {
	return a.attrs
}

// WithAttrs returns a copy of the Array carrying a fresh deep copy of
// the given attributes. Data and labels are shared (both immutable).
func (a *Array) WithAttrs(attrs map[string]any) *Array {
	return &Array{
		dims:   a.dims,
		coords: a.coords,
		shape:  a.shape,
		data:   a.data,
		attrs:  CopyAttrs(attrs),
	}
}

// IsScalar reports whether the Array is zero-dimensional.
func (a *Array) IsScalar() bool {
	return len(a.dims) == 0
}

// String renders scalars as their bare numeric value and arrays as a
// compact dims summary. The scalar form is what coerced numeric literals
// contribute to derivation strings.
func (a *Array) String() string {
	if a.IsScalar() {
		return strconv.FormatFloat(a.data[0], 'g', -1, 64)
	}
	return fmt.Sprintf("array(%s)", strings.Join(a.dims, ","))
}

// CopyAttrs deep-copies an attribute mapping. Nested maps and slices are
// copied recursively; all other values are shared (assumed immutable).
// A nil input yields an empty, writable map.
func CopyAttrs(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = copyValue(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = copyValue(elem)
		}
		return out
	default:
		return v
	}
}
