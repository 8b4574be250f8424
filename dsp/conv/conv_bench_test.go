package conv

import (
	"fmt"
	"math"
	"testing"
)

// Benchmark direct convolution with various sizes.
func BenchmarkDirect(b *testing.B) {
	sizes := []struct {
		signal int
		kernel int
	}{
		{256, 8},
		{256, 64},
		{1024, 8},
		{1024, 64},
		{4096, 32},
		{4096, 64},
	}

	for _, size := range sizes {
		signal := makeTestSignal(size.signal)
		kernel := makeTestKernel(size.kernel)

		b.Run(fmt.Sprintf("signal=%d_kernel=%d", size.signal, size.kernel), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = Direct(signal, kernel)
			}
		})
	}
}

// Benchmark one streaming block in each mode.
func BenchmarkConvolverProcess(b *testing.B) {
	sizes := []struct {
		block  int
		kernel int
	}{
		{64, 64},
		{256, 256},
		{256, 4096},
		{512, 48000},
	}

	for _, size := range sizes {
		kernel := toFloat32(makeTestKernel(size.kernel))
		input := toFloat32(makeTestSignal(size.block))
		output := make([]float32, size.block)

		modes := []Mode{PartitionedMode{BlockSize: size.block}}
		if size.kernel <= 4096 {
			modes = append(modes, DirectMode{})
		}

		for _, mode := range modes {
			c, err := NewConvolver(kernel, mode)
			if err != nil {
				b.Fatal(err)
			}

			b.Run(fmt.Sprintf("%v_block=%d_kernel=%d", mode, size.block, size.kernel), func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(size.block * 4))
				for b.Loop() {
					_ = c.Process(input, output)
				}
			})
		}
	}
}

// Helper to create test signals.
func makeTestSignal(n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2*math.Pi*float64(i)/100) + 0.5*math.Cos(2*math.Pi*float64(i)/30)
	}
	return signal
}

// Helper to create test kernels.
func makeTestKernel(n int) []float64 {
	kernel := make([]float64, n)
	for i := range kernel {
		kernel[i] = math.Exp(-float64(i)/float64(n)*6) * math.Cos(float64(i)*0.3)
	}
	return kernel
}

func toFloat32(x []float64) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}
	return out
}
