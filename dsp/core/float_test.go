package core

import "testing"

func TestWidenNarrowRoundTrip(t *testing.T) {
	src := []float32{0.5, -0.25, 1, 0}
	acc := make([]float64, len(src))

	if n := Widen(acc, src); n != len(src) {
		t.Fatalf("Widen copied %d, want %d", n, len(src))
	}

	for i := range acc {
		acc[i] *= 2
	}

	dst := make([]float32, len(src))
	if n := Narrow(dst, acc); n != len(src) {
		t.Fatalf("Narrow copied %d, want %d", n, len(src))
	}

	for i, v := range dst {
		if v != 2*src[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, v, 2*src[i])
		}
	}
}

func TestWidenShortDestination(t *testing.T) {
	acc := make([]float64, 2)
	if n := Widen(acc, []float64{1, 2, 3}); n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if acc[1] != 2 {
		t.Fatalf("acc[1] = %v, want 2", acc[1])
	}
}
