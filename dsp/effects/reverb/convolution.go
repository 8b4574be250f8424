package reverb

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fastconv/dsp/conv"
	"github.com/cwbudde/algo-fastconv/dsp/core"
)

// ErrEmptyIR is returned for a zero-length impulse response.
var ErrEmptyIR = errors.New("reverb: empty impulse response kernel")

// ConvolutionReverbT applies a room impulse response to a mono signal and
// mixes the result with the dry input.
//
// The block rules of the chosen mode apply to ProcessInPlace: any length in
// conv.DirectMode, exactly BlockSize samples in conv.PartitionedMode.
type ConvolutionReverbT[F core.Float] struct {
	engine *conv.ConvolverT[F]
	wet    float64
	dry    float64
	buf    []F // wet scratch
}

// ConvolutionReverb is the float32 specialization of ConvolutionReverbT.
type ConvolutionReverb = ConvolutionReverbT[float32]

// NewConvolutionReverbT creates a convolution reverb from a mono IR.
// Wet and dry levels start at 1.
func NewConvolutionReverbT[F core.Float](ir []F, mode conv.Mode, opts ...core.ProcessorOption) (*ConvolutionReverbT[F], error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	engine, err := conv.NewConvolverT(ir, mode, opts...)
	if err != nil {
		return nil, fmt.Errorf("reverb: failed to create convolution engine: %w", err)
	}

	cfg := core.ApplyProcessorOptions(opts...)
	size := cfg.BlockSize
	if b := engine.BlockSize(); b > 0 {
		size = b
	}

	return &ConvolutionReverbT[F]{
		engine: engine,
		wet:    1.0,
		dry:    1.0,
		buf:    make([]F, max(size, engine.TailLen())),
	}, nil
}

// NewConvolutionReverb creates a float32 convolution reverb.
func NewConvolutionReverb(ir []float32, mode conv.Mode, opts ...core.ProcessorOption) (*ConvolutionReverb, error) {
	return NewConvolutionReverbT(ir, mode, opts...)
}

// SetWetDry sets the wet and dry mix levels.
// wet controls the convolution reverb send level.
// dry controls the pass-through level of the original signal.
func (r *ConvolutionReverbT[F]) SetWetDry(wet, dry float64) {
	r.wet = wet
	r.dry = dry
}

// WetDry returns the current wet and dry levels.
func (r *ConvolutionReverbT[F]) WetDry() (wet, dry float64) {
	return r.wet, r.dry
}

// ProcessInPlace applies reverb to block in place (mono).
// The output is: block[i] = dry*block[i] + wet*reverb(block[i]).
func (r *ConvolutionReverbT[F]) ProcessInPlace(block []F) error {
	n := len(block)
	if n == 0 {
		return nil
	}

	r.buf = core.EnsureLen(r.buf, max(n, len(r.buf)))
	wetOut := r.buf[:n]

	if err := r.engine.Process(block, wetOut); err != nil {
		return fmt.Errorf("reverb: convolution engine: %w", err)
	}

	for i := range n {
		block[i] = F(r.dry*float64(block[i]) + r.wet*float64(wetOut[i]))
	}

	return nil
}

// Tail writes the reverb decay that follows the last processed block, scaled
// by the wet level. out must have TailLen() samples.
func (r *ConvolutionReverbT[F]) Tail(out []F) error {
	if err := r.engine.Flush(out); err != nil {
		return fmt.Errorf("reverb: convolution engine: %w", err)
	}

	for i, v := range out {
		out[i] = F(r.wet * float64(v))
	}
	return nil
}

// TailLen returns the number of samples Tail writes.
func (r *ConvolutionReverbT[F]) TailLen() int {
	return r.engine.TailLen()
}

// Reset clears convolution state.
func (r *ConvolutionReverbT[F]) Reset() {
	r.engine.Reset()
}

// Latency returns the reverb latency in samples.
func (r *ConvolutionReverbT[F]) Latency() int {
	return r.engine.Latency()
}
