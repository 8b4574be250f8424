package conv

import (
	"testing"

	"github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-fastconv/internal/testutil"
)

// referenceConvolve computes the linear convolution with go-dsp, an FFT
// implementation independent of the one the partitioned mode uses.
func referenceConvolve(x, h []float64) []float64 {
	n := len(x) + len(h) - 1

	xc := make([]complex128, n)
	hc := make([]complex128, n)
	for i, v := range x {
		xc[i] = complex(v, 0)
	}
	for i, v := range h {
		hc[i] = complex(v, 0)
	}

	yc := fft.Convolve(xc, hc)

	y := make([]float64, n)
	for i := range y {
		y[i] = real(yc[i])
	}
	return y
}

func TestDirectMatchesReference(t *testing.T) {
	x := testutil.DeterministicNoise(30, 1, 300)
	h := testutil.DecayingNoise(31, 45)

	got, err := Direct(x, h)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, got, referenceConvolve(x, h), 1e-9)
}

func TestConvolverMatchesReference(t *testing.T) {
	x := testutil.DeterministicNoise(32, 1, 1500)

	tests := []struct {
		name  string
		irLen int
		mode  Mode
		chunk int
	}{
		{"direct", 200, DirectMode{}, 77},
		{"partitioned", 200, PartitionedMode{BlockSize: 64}, 64},
		{"partitioned long IR", 1200, PartitionedMode{BlockSize: 100}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testutil.DecayingNoise(33, tt.irLen)
			c := newConvolver64(t, h, tt.mode)

			got := runStream(t, c, x, tt.chunk)
			testutil.RequireSliceNearlyEqual(t, got, referenceConvolve(x, h), 1e-8)
		})
	}
}
