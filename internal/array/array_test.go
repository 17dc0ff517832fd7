package array

import (
	"math"
	"slices"
	"testing"
)

func mustNew(t *testing.T, data []float64, dims []string, coords map[string][]string) *Array {
	t.Helper()
	a, err := New(data, dims, coords, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return a
}

func TestNew_RejectsShapeMismatch(t *testing.T) {
	_, err := New([]float64{1, 2, 3}, []string{"x"}, map[string][]string{"x": {"a", "b"}}, nil)
	if err == nil {
		t.Fatal("expected error for data/shape mismatch")
	}
}

func TestNew_RejectsMissingCoords(t *testing.T) {
	_, err := New([]float64{1, 2}, []string{"x"}, map[string][]string{}, nil)
	if err == nil {
		t.Fatal("expected error for dimension without coordinates")
	}
}

func TestNew_DeepCopiesAttrs(t *testing.T) {
	attrs := map[string]any{
		"versions": map[string]any{"v1": map[string]any{"uuid": "abc"}},
	}
	b, err := New([]float64{1, 2}, []string{"x"}, map[string][]string{"x": {"a", "b"}}, attrs)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	// Mutating the caller's nested map must not leak into the array.
	attrs["versions"].(map[string]any)["v1"].(map[string]any)["uuid"] = "mutated"
	got := b.Attrs()["versions"].(map[string]any)["v1"].(map[string]any)["uuid"]
	if got != "abc" {
		t.Errorf("attrs not deep-copied: got %v", got)
	}
}

func TestAdd_Aligned(t *testing.T) {
	coords := map[string][]string{"x": {"a", "b"}}
	a := mustNew(t, []float64{1, 2}, []string{"x"}, coords)
	b := mustNew(t, []float64{10, 20}, []string{"x"}, coords)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if got := sum.Values(); !slices.Equal(got, []float64{11, 22}) {
		t.Errorf("Add() = %v, want [11 22]", got)
	}
	if len(sum.Attrs()) != 0 {
		t.Errorf("derived result should carry no attributes, got %v", sum.Attrs())
	}
}

func TestAdd_BroadcastsByName(t *testing.T) {
	a := mustNew(t, []float64{1, 2}, []string{"x"}, map[string][]string{"x": {"a", "b"}})
	b := mustNew(t, []float64{10, 20, 30}, []string{"y"}, map[string][]string{"y": {"p", "q", "r"}})

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if got := sum.Dims(); !slices.Equal(got, []string{"x", "y"}) {
		t.Fatalf("result dims = %v, want [x y]", got)
	}
	want := []float64{11, 21, 31, 12, 22, 32}
	if got := sum.Values(); !slices.Equal(got, want) {
		t.Errorf("Add() = %v, want %v", got, want)
	}
}

func TestAdd_RejectsCoordMismatch(t *testing.T) {
	a := mustNew(t, []float64{1, 2}, []string{"x"}, map[string][]string{"x": {"a", "b"}})
	b := mustNew(t, []float64{1, 2}, []string{"x"}, map[string][]string{"x": {"c", "d"}})
	if _, err := a.Add(b); err == nil {
		t.Fatal("expected coordinate mismatch error")
	}
}

func TestDiv_ByZeroFollowsIEEE(t *testing.T) {
	a := Scalar(1)
	q, err := a.Div(Scalar(0))
	if err != nil {
		t.Fatalf("Div() failed: %v", err)
	}
	if v := q.Values()[0]; !math.IsInf(v, 1) {
		t.Errorf("1/0 = %v, want +Inf", v)
	}
}

func TestPow_Scalar(t *testing.T) {
	a := mustNew(t, []float64{2, 3}, []string{"x"}, map[string][]string{"x": {"a", "b"}})
	p, err := a.Pow(Scalar(2))
	if err != nil {
		t.Fatalf("Pow() failed: %v", err)
	}
	if got := p.Values(); !slices.Equal(got, []float64{4, 9}) {
		t.Errorf("Pow() = %v, want [4 9]", got)
	}
}

func TestSum_NamedDimension(t *testing.T) {
	a := mustNew(t, []float64{1, 2, 3, 4, 5, 6}, []string{"x", "y"}, map[string][]string{
		"x": {"a", "b"},
		"y": {"p", "q", "r"},
	})

	s, err := a.Sum("y")
	if err != nil {
		t.Fatalf("Sum() failed: %v", err)
	}
	if got := s.Dims(); !slices.Equal(got, []string{"x"}) {
		t.Fatalf("result dims = %v, want [x]", got)
	}
	if got := s.Values(); !slices.Equal(got, []float64{6, 15}) {
		t.Errorf("Sum(y) = %v, want [6 15]", got)
	}
}

func TestSum_AllDimensions(t *testing.T) {
	a := mustNew(t, []float64{1, 2, 3, 4}, []string{"x"}, map[string][]string{"x": {"a", "b", "c", "d"}})
	s, err := a.Sum("")
	if err != nil {
		t.Fatalf("Sum() failed: %v", err)
	}
	if !s.IsScalar() {
		t.Fatal("full reduction should yield a scalar")
	}
	if got := s.Values()[0]; got != 10 {
		t.Errorf("Sum() = %v, want 10", got)
	}
}

func TestSum_UnknownDimension(t *testing.T) {
	a := Scalar(1)
	if _, err := a.Sum("t"); err == nil {
		t.Fatal("expected error for unknown dimension")
	}
}

func TestLog(t *testing.T) {
	a := Scalar(math.E)
	if got := a.Log().Values()[0]; math.Abs(got-1) > 1e-12 {
		t.Errorf("Log(e) = %v, want 1", got)
	}
}

func TestString_ScalarUsesDefaultRendering(t *testing.T) {
	cases := map[float64]string{
		5:    "5",
		2.5:  "2.5",
		-0.1: "-0.1",
	}
	for v, want := range cases {
		if got := Scalar(v).String(); got != want {
			t.Errorf("Scalar(%v).String() = %q, want %q", v, got, want)
		}
	}
}

func TestOnes_PlaceholderShape(t *testing.T) {
	a, err := Ones([]string{"x", "y"}, map[string][]string{"x": {"a"}, "y": {"p", "q"}}, nil)
	if err != nil {
		t.Fatalf("Ones() failed: %v", err)
	}
	if got := a.Shape(); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("shape = %v, want [1 2]", got)
	}
	for _, v := range a.Values() {
		if v != 1 {
			t.Errorf("placeholder value = %v, want 1", v)
		}
	}
}
