package conv

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-fastconv/dsp/core"
	"github.com/cwbudde/algo-fastconv/dsp/ring"
)

// algorithm is the mode-specific half of a Convolver. Exactly one
// implementation exists per instance, holding only the state its mode needs.
type algorithm interface {
	// checkBlock validates an input length before any state is touched.
	// final is set for the last, possibly short, block of a stream.
	checkBlock(n int, final bool) error

	// process convolves in and returns the finished samples of this call.
	// The returned slice is scratch owned by the algorithm.
	process(in []float64) ([]float64, error)

	// tailBuffer returns the ring holding output that is not emitted yet.
	tailBuffer() *ring.Buffer[float64]
}

// ConvolverT applies a fixed impulse response to a stream of sample blocks.
//
// The concatenation of all Process outputs followed by Flush equals the full
// linear convolution of the concatenated input with the impulse response,
// independent of how the input was split into blocks. Internally all
// accumulation happens in float64.
//
// A ConvolverT is not safe for concurrent use. Process and Flush do not
// block, log or allocate (Direct mode allocates once when a block longer
// than any seen before, or than the configured block size, arrives).
type ConvolverT[F core.Float] struct {
	mode      Mode
	kernelLen int
	cfg       core.ProcessorConfig

	alg     algorithm
	in64    []float64
	drained bool
}

// Convolver is the float32 specialization of ConvolverT.
type Convolver = ConvolverT[float32]

// Convolver64 is the float64 specialization of ConvolverT.
type Convolver64 = ConvolverT[float64]

// NewConvolverT creates a streaming convolver for the impulse response ir.
// The impulse response is copied.
//
// In DirectMode, core.WithBlockSize pre-sizes the scratch storage for the
// largest expected block. core.WithSampleRate is only used by TailDuration.
func NewConvolverT[F core.Float](ir []F, mode Mode, opts ...core.ProcessorOption) (*ConvolverT[F], error) {
	if len(ir) == 0 {
		return nil, ErrEmptyImpulseResponse
	}

	cfg := core.ApplyProcessorOptions(opts...)

	kernel := make([]float64, len(ir))
	core.Widen(kernel, ir)

	var (
		alg      algorithm
		inputLen int
		err      error
	)

	switch m := mode.(type) {
	case DirectMode:
		alg, err = newDirectState(kernel, cfg.BlockSize)
		inputLen = cfg.BlockSize
	case PartitionedMode:
		alg, err = newPartitionedState(kernel, m.BlockSize)
		inputLen = m.BlockSize
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	}

	if err != nil {
		return nil, err
	}

	return &ConvolverT[F]{
		mode:      mode,
		kernelLen: len(ir),
		cfg:       cfg,
		alg:       alg,
		in64:      make([]float64, inputLen),
		drained:   true,
	}, nil
}

// NewConvolver creates a float32 streaming convolver.
func NewConvolver(ir []float32, mode Mode, opts ...core.ProcessorOption) (*Convolver, error) {
	return NewConvolverT(ir, mode, opts...)
}

// NewConvolver64 creates a float64 streaming convolver.
func NewConvolver64(ir []float64, mode Mode, opts ...core.ProcessorOption) (*Convolver64, error) {
	return NewConvolverT(ir, mode, opts...)
}

// Process convolves one input block into output.
//
// output must have the same length as input. In PartitionedMode the length
// must equal the block size; pad a short final block or use ProcessFinal.
// On error neither output nor the carried tail is modified.
func (c *ConvolverT[F]) Process(input, output []F) error {
	if len(input) != len(output) {
		return fmt.Errorf("%w: input length %d != output length %d",
			ErrLengthMismatch, len(input), len(output))
	}

	if err := c.alg.checkBlock(len(input), false); err != nil {
		return err
	}

	if len(input) == 0 {
		return nil
	}

	result, err := c.run(input)
	if err != nil {
		return err
	}

	core.Narrow(output, result)
	return nil
}

// Flush drains the remaining TailLen() samples into output. After Flush the
// tail is empty; a second Flush without an intervening Process writes zeros
// and returns ErrFlushAfterDrain. The same holds for a Flush before any
// Process on a new or reset convolver.
func (c *ConvolverT[F]) Flush(output []F) error {
	if len(output) != c.TailLen() {
		return fmt.Errorf("%w: expected %d tail samples, got %d",
			ErrLengthMismatch, c.TailLen(), len(output))
	}

	if c.drained {
		clear(output)
		return ErrFlushAfterDrain
	}

	c.drain(output)
	return nil
}

// ProcessFinal processes the last block of a stream and drains the tail in
// one call. output must have length OutputSizeFor(len(input)). In
// PartitionedMode the block may be shorter than the block size; it is
// zero-padded internally.
func (c *ConvolverT[F]) ProcessFinal(input, output []F) error {
	if len(output) != c.OutputSizeFor(len(input)) {
		return fmt.Errorf("%w: expected %d output samples, got %d",
			ErrLengthMismatch, c.OutputSizeFor(len(input)), len(output))
	}

	if len(input) == 0 {
		return c.Flush(output)
	}

	if err := c.alg.checkBlock(len(input), true); err != nil {
		return err
	}

	result, err := c.run(input)
	if err != nil {
		return err
	}

	// A padded partitioned block yields more finished samples than needed
	// when the tail is short; Narrow stops at len(output).
	n := core.Narrow(output, result)
	c.drain(output[n:])
	return nil
}

// run widens input and hands it to the active algorithm.
func (c *ConvolverT[F]) run(input []F) ([]float64, error) {
	c.in64 = core.EnsureLen(c.in64, len(input))
	core.Widen(c.in64, input)

	result, err := c.alg.process(c.in64)
	if err != nil {
		return nil, err
	}

	c.drained = false
	return result, nil
}

// drain pops len(output) pending samples and zeroes the tail.
func (c *ConvolverT[F]) drain(output []F) {
	tail := c.alg.tailBuffer()
	for i := range output {
		output[i] = F(tail.Pop())
	}

	tail.Reset()
	c.drained = true
}

// Reset returns the convolver to its freshly constructed state. The baked
// partition table and FFT plans are kept.
func (c *ConvolverT[F]) Reset() {
	c.alg.tailBuffer().Reset()
	c.drained = true
}

// OutputSizeFor returns the total number of output samples (Process plus
// Flush) for a stream of inputLen samples: inputLen + KernelLen() - 1.
func (c *ConvolverT[F]) OutputSizeFor(inputLen int) int {
	return inputLen + c.kernelLen - 1
}

// Mode returns the mode the convolver was constructed with.
func (c *ConvolverT[F]) Mode() Mode {
	return c.mode
}

// KernelLen returns the impulse response length.
func (c *ConvolverT[F]) KernelLen() int {
	return c.kernelLen
}

// TailLen returns the number of samples Flush emits: KernelLen() - 1.
func (c *ConvolverT[F]) TailLen() int {
	return c.kernelLen - 1
}

// TailDuration returns TailLen() expressed in time at the configured sample rate.
func (c *ConvolverT[F]) TailDuration() time.Duration {
	return c.cfg.Duration(c.TailLen())
}

// BlockSize returns the fixed block size in PartitionedMode and 0 in DirectMode.
func (c *ConvolverT[F]) BlockSize() int {
	if p, ok := c.alg.(*partitionedState); ok {
		return p.blockSize
	}
	return 0
}

// FFTSize returns the transform size in PartitionedMode and 0 in DirectMode.
func (c *ConvolverT[F]) FFTSize() int {
	if p, ok := c.alg.(*partitionedState); ok {
		return p.fftSize
	}
	return 0
}

// PartitionCount returns the number of kernel partitions in PartitionedMode
// and 0 in DirectMode.
func (c *ConvolverT[F]) PartitionCount() int {
	if p, ok := c.alg.(*partitionedState); ok {
		return len(p.spectra)
	}
	return 0
}

// Latency returns the processing latency in samples. Both modes emit the
// convolution aligned with their input, so it is always 0.
func (c *ConvolverT[F]) Latency() int {
	return 0
}
