package conv

import "github.com/cwbudde/algo-fastconv/dsp/core"

// StreamingConvolver performs block-by-block convolution with persistent state.
//
// The concatenated output of every Process call followed by one Flush is the
// full linear convolution of the concatenated input with the kernel. Both
// modes of ConvolverT implement it; they produce equivalent results with
// different cost profiles:
//   - Direct: O(n*M) per block, any block length, best for short kernels
//   - Partitioned: FFT-based, fixed block length, best for long kernels
type StreamingConvolver[F core.Float] interface {
	// Process convolves one input block into an output block of equal length.
	Process(input, output []F) error

	// Flush writes the remaining OutputSizeFor(0) samples of the stream.
	Flush(output []F) error

	// Reset clears internal state for processing a new signal stream.
	Reset()

	// OutputSizeFor returns the total output length for inputLen input samples.
	OutputSizeFor(inputLen int) int
}

var (
	_ StreamingConvolver[float32] = (*Convolver)(nil)
	_ StreamingConvolver[float64] = (*Convolver64)(nil)
)
