package conv_test

import (
	"fmt"

	"github.com/cwbudde/algo-fastconv/dsp/conv"
)

func ExampleDirect() {
	// Simple moving average filter
	signal := []float64{1, 2, 3, 4, 5, 4, 3, 2, 1}
	kernel := []float64{0.25, 0.5, 0.25}

	result, _ := conv.Direct(signal, kernel)

	fmt.Printf("Input length: %d\n", len(signal))
	fmt.Printf("Kernel length: %d\n", len(kernel))
	fmt.Printf("Output length: %d\n", len(result))
	fmt.Printf("First few values: %.2f, %.2f, %.2f\n", result[0], result[1], result[2])

	// Output:
	// Input length: 9
	// Kernel length: 3
	// Output length: 11
	// First few values: 0.25, 1.00, 2.00
}

func ExampleConvolver() {
	// An impulse response that delays by two samples and adds a quiet echo.
	ir := []float32{0, 0, 1, 0, 0.5}

	c, err := conv.NewConvolver(ir, conv.DirectMode{})
	if err != nil {
		fmt.Println(err)
		return
	}

	out := make([]float32, 3)
	for _, block := range [][]float32{{1, 0, 0}, {0, 0, 0}} {
		_ = c.Process(block, out)
		fmt.Println(out)
	}

	tail := make([]float32, c.TailLen())
	_ = c.Flush(tail)
	fmt.Println(tail)

	// Output:
	// [0 0 1]
	// [0 0.5 0]
	// [0 0 0 0]
}

func ExampleConvolver_partitioned() {
	ir := make([]float32, 1000)
	ir[0] = 1

	c, err := conv.NewConvolver(ir, conv.PartitionedMode{BlockSize: 256})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Mode: %v\n", c.Mode())
	fmt.Printf("FFT size: %d\n", c.FFTSize())
	fmt.Printf("Partitions: %d\n", c.PartitionCount())
	fmt.Printf("Output for 4096 input samples: %d\n", c.OutputSizeFor(4096))

	// Output:
	// Mode: partitioned(block=256)
	// FFT size: 512
	// Partitions: 4
	// Output for 4096 input samples: 5095
}

func ExampleConvolver_ProcessFinal() {
	ir := []float32{1, 1}

	c, _ := conv.NewConvolver(ir, conv.PartitionedMode{BlockSize: 4})

	// The last block is short; it is padded internally and the tail is
	// appended to the same output.
	out := make([]float32, c.OutputSizeFor(2))
	_ = c.ProcessFinal([]float32{1, 2}, out)
	fmt.Printf("%.1f\n", out)

	// Output:
	// [1.0 3.0 2.0]
}
