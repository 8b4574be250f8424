package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-fastconv/dsp/ring"
)

// partitionedState is the uniformly partitioned frequency-domain algorithm.
//
// The kernel is cut into K chunks of B samples. Chunk k contributes to the
// output with a delay of k*B samples, so the linear convolution of one input
// block with chunk k (2B-1 samples) lands on output windows t+k and t+k+1.
// Windows that are not complete yet live in a ring of K*B samples.
type partitionedState struct {
	blockSize int
	fftSize   int

	plan    *algofft.Plan[complex128]
	spectra [][]complex128 // baked kernel chunks, index 0 is the least delayed

	inFreq []complex128 // fftSize
	work   []complex128 // fftSize
	parts  [][]float64  // K x 2B, time-domain result per partition
	out    []float64    // B

	tail *ring.Buffer[float64] // capacity K*B
}

func newPartitionedState(kernel []float64, blockSize int) (*partitionedState, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	// Linear convolution of two B-sample chunks needs 2B-1 points; the plan
	// is rounded up to a power of two.
	fftSize := nextPowerOf2(2 * blockSize)
	count := (len(kernel) + blockSize - 1) / blockSize

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	tail, err := ring.New[float64](count * blockSize)
	if err != nil {
		return nil, fmt.Errorf("conv: partitioned tail: %w", err)
	}

	p := &partitionedState{
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		spectra:   make([][]complex128, count),
		inFreq:    make([]complex128, fftSize),
		work:      make([]complex128, fftSize),
		parts:     make([][]float64, count),
		out:       make([]float64, blockSize),
		tail:      tail,
	}

	for k := range p.parts {
		p.parts[k] = make([]float64, 2*blockSize)
	}

	if err := p.bake(kernel); err != nil {
		return nil, err
	}

	return p, nil
}

// bake transforms each zero-padded kernel chunk once.
func (p *partitionedState) bake(kernel []float64) error {
	for k := range p.spectra {
		clear(p.work)

		start := k * p.blockSize
		end := min(start+p.blockSize, len(kernel))
		for i, v := range kernel[start:end] {
			p.work[i] = complex(v, 0)
		}

		p.spectra[k] = make([]complex128, p.fftSize)
		if err := p.plan.Forward(p.spectra[k], p.work); err != nil {
			return fmt.Errorf("conv: failed to compute kernel FFT (partition %d): %w", k, err)
		}
	}

	return nil
}

func (p *partitionedState) checkBlock(n int, final bool) error {
	if n == p.blockSize || (final && n < p.blockSize) {
		return nil
	}
	return fmt.Errorf("%w: expected %d samples, got %d", ErrBlockSizeMismatch, p.blockSize, n)
}

// process convolves one block (zero-padded when shorter than B) and returns
// the B finished samples of the current window.
func (p *partitionedState) process(in []float64) ([]float64, error) {
	clear(p.inFreq)
	for i, v := range in {
		p.inFreq[i] = complex(v, 0)
	}

	if err := p.plan.Forward(p.inFreq, p.inFreq); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	// All transforms run before the tail is touched so that a failure
	// leaves the stream state intact. The inverse plan already scales by
	// 1/fftSize.
	for k, spectrum := range p.spectra {
		for i := range p.work {
			p.work[i] = p.inFreq[i] * spectrum[i]
		}

		if err := p.plan.Inverse(p.work, p.work); err != nil {
			return nil, fmt.Errorf("conv: inverse FFT failed (partition %d): %w", k, err)
		}

		part := p.parts[k]
		for i := range part {
			part[i] = real(p.work[i])
		}
	}

	p.overlapAdd()

	return p.out, nil
}

// overlapAdd folds the partition results into the pending windows.
//
// On entry the ring is full and holds windows t..t+K-1 starting at the read
// cursor. Window t+k receives the first half of partition k and the second
// half of partition k-1, always in increasing partition order. Window t is
// emitted, the rest rotate back into the ring, and window t+K (the second
// half of the last partition) is appended.
func (p *partitionedState) overlapAdd() {
	b := p.blockSize
	last := len(p.parts) - 1

	first := p.parts[0]
	for i := range b {
		p.out[i] = p.tail.Pop() + first[i]
	}

	for k := 1; k <= last; k++ {
		cur, prev := p.parts[k], p.parts[k-1]
		for i := range b {
			p.tail.Push(p.tail.Pop() + cur[i] + prev[b+i])
		}
	}

	final := p.parts[last]
	for i := range b {
		p.tail.Push(final[b+i])
	}
}

func (p *partitionedState) tailBuffer() *ring.Buffer[float64] {
	return p.tail
}
