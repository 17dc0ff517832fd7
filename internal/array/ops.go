package array

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Add returns the elementwise sum of a and b, broadcasting by dimension
// name. The result carries no attributes.
func (a *Array) Add(b *Array) (*Array, error) {
	return a.binary(b, floats.Add, func(x, y float64) float64 { return x + y })
}

// Sub returns the elementwise difference a - b.
func (a *Array) Sub(b *Array) (*Array, error) {
	return a.binary(b, floats.Sub, func(x, y float64) float64 { return x - y })
}

// Mul returns the elementwise product of a and b.
func (a *Array) Mul(b *Array) (*Array, error) {
	return a.binary(b, floats.Mul, func(x, y float64) float64 { return x * y })
}

// Div returns the elementwise quotient a / b. Division by zero follows
// IEEE 754 (yields +/-Inf or NaN), matching the numeric substrate.
func (a *Array) Div(b *Array) (*Array, error) {
	return a.binary(b, floats.Div, func(x, y float64) float64 { return x / y })
}

// Pow returns a raised elementwise to the power b.
// gonum/floats has no elementwise pow kernel, so this always takes the
// general broadcasting path.
func (a *Array) Pow(b *Array) (*Array, error) {
	return a.broadcast(b, math.Pow)
}

// binary applies an elementwise operation with name-based broadcasting.
//
// fast is a gonum in-place kernel used on the aligned path (identical
// dimension order). op is the general scalar kernel used everywhere else.
func (a *Array) binary(b *Array, fast func(dst, s []float64), op func(x, y float64) float64) (*Array, error) {
	if b == nil {
		return nil, fmt.Errorf("array: nil operand")
	}

	// Aligned fast path: same dims in the same order.
	if slices.Equal(a.dims, b.dims) {
		if err := checkSharedCoords(a, b); err != nil {
			return nil, err
		}
		dst := slices.Clone(a.data)
		fast(dst, b.data)
		return &Array{
			dims:   slices.Clone(a.dims),
			coords: cloneCoords(a.coords),
			shape:  slices.Clone(a.shape),
			data:   dst,
			attrs:  map[string]any{},
		}, nil
	}

	return a.broadcast(b, op)
}

// broadcast applies op over the union of the operands' dimensions.
// Dimensions of a come first, followed by dimensions only b has. Shared
// dimensions must carry identical coordinate labels.
func (a *Array) broadcast(b *Array, op func(x, y float64) float64) (*Array, error) {
	if b == nil {
		return nil, fmt.Errorf("array: nil operand")
	}
	if err := checkSharedCoords(a, b); err != nil {
		return nil, err
	}

	dims := slices.Clone(a.dims)
	coords := cloneCoords(a.coords)
	for _, d := range b.dims {
		if !slices.Contains(dims, d) {
			dims = append(dims, d)
			coords[d] = slices.Clone(b.coords[d])
		}
	}

	shape := make([]int, len(dims))
	size := 1
	for i, d := range dims {
		shape[i] = len(coords[d])
		size *= shape[i]
	}

	aStride := operandStrides(dims, a.dims, a.shape)
	bStride := operandStrides(dims, b.dims, b.shape)

	data := make([]float64, size)
	idx := make([]int, len(dims))
	for flat := 0; flat < size; flat++ {
		ai, bi := 0, 0
		for axis, pos := range idx {
			ai += aStride[axis] * pos
			bi += bStride[axis] * pos
		}
		data[flat] = op(a.data[ai], b.data[bi])

		// Advance the multi-index, last axis fastest.
		for axis := len(idx) - 1; axis >= 0; axis-- {
			idx[axis]++
			if idx[axis] < shape[axis] {
				break
			}
			idx[axis] = 0
		}
	}

	return &Array{dims: dims, coords: coords, shape: shape, data: data, attrs: map[string]any{}}, nil
}

// Sum reduces over the named dimension. An empty dim reduces over all
// dimensions to a scalar. The result carries no attributes.
func (a *Array) Sum(dim string) (*Array, error) {
	if dim == "" {
		return Scalar(floats.Sum(a.data)), nil
	}
	axis := slices.Index(a.dims, dim)
	if axis < 0 {
		return nil, fmt.Errorf("array: cannot sum over unknown dimension %q", dim)
	}

	dims := slices.Delete(a.Dims(), axis, axis+1)
	coords := cloneCoords(a.coords)
	delete(coords, dim)

	shape := make([]int, len(dims))
	size := 1
	for i, d := range dims {
		shape[i] = len(coords[d])
		size *= shape[i]
	}

	// For each source element, drop the reduced axis from its
	// multi-index and accumulate into the corresponding output slot.
	outStride := strides(shape)
	srcStride := strides(a.shape)
	data := make([]float64, size)
	for flat := range a.data {
		out := 0
		rem := flat
		outAxis := 0
		for srcAxis, st := range srcStride {
			pos := rem / st
			rem %= st
			if srcAxis == axis {
				continue
			}
			out += outStride[outAxis] * pos
			outAxis++
		}
		data[out] += a.data[flat]
	}

	return &Array{dims: dims, coords: coords, shape: shape, data: data, attrs: map[string]any{}}, nil
}

// Log returns the elementwise natural logarithm.
func (a *Array) Log() *Array {
	data := make([]float64, len(a.data))
	for i, v := range a.data {
		data[i] = math.Log(v)
	}
	return &Array{
		dims:   slices.Clone(a.dims),
		coords: cloneCoords(a.coords),
		shape:  slices.Clone(a.shape),
		data:   data,
		attrs:  map[string]any{},
	}
}

// checkSharedCoords verifies that dimensions present in both operands
// carry identical coordinate labels. Broadcasting never realigns.
func checkSharedCoords(a, b *Array) error {
	for _, d := range a.dims {
		bv, ok := b.coords[d]
		if !ok {
			continue
		}
		if !slices.Equal(a.coords[d], bv) {
			return fmt.Errorf("array: coordinate mismatch on shared dimension %q", d)
		}
	}
	return nil
}

// operandStrides maps each result axis to the operand's stride for that
// dimension, or 0 when the operand lacks it (broadcast axis).
func operandStrides(resultDims, dims []string, shape []int) []int {
	st := strides(shape)
	out := make([]int, len(resultDims))
	for i, d := range resultDims {
		if j := slices.Index(dims, d); j >= 0 {
			out[i] = st[j]
		}
	}
	return out
}

// strides computes row-major strides for a shape.
func strides(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= shape[i]
	}
	return st
}

func cloneCoords(coords map[string][]string) map[string][]string {
	out := make(map[string][]string, len(coords))
	for k, v := range coords {
		out[k] = slices.Clone(v)
	}
	return out
}
