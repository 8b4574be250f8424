// Package conv provides streaming convolution of audio with a fixed impulse
// response.
//
// The central type is [ConvolverT], which accepts a stream of sample blocks and
// produces the full linear convolution of the stream with the impulse
// response, independent of how the stream is split into blocks. Two modes are
// available:
//
//   - [DirectMode]: time-domain convolution, O(N*M), accepts blocks of any
//     length. Best for short impulse responses (< 64 samples).
//   - [PartitionedMode]: uniformly partitioned FFT convolution. The impulse
//     response is cut into K = ceil(M/B) partitions whose spectra are computed
//     once at construction; every block costs one forward and K inverse
//     transforms. Blocks must be exactly B samples long.
//
// # Usage
//
//	c, err := conv.NewConvolver(ir, conv.PartitionedMode{BlockSize: 256})
//	for each block {
//		err = c.Process(block, out)
//	}
//	tail := make([]float32, c.TailLen())
//	err = c.Flush(tail)
//
// A stream that ends with a short block can be finished in one call with
// [ConvolverT.ProcessFinal].
//
// For one-shot convolution of two whole signals use [Direct] or [DirectTo].
//
// # Real-time behaviour
//
// Process and Flush do not block, lock or log. All partitioned-mode storage
// is allocated at construction. Direct mode allocates only when a block
// longer than core.WithBlockSize (or any earlier block) arrives.
package conv
