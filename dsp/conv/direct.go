package conv

import (
	"fmt"

	"github.com/cwbudde/algo-fastconv/dsp/core"
	"github.com/cwbudde/algo-fastconv/dsp/ring"
)

// directState is the time-domain algorithm.
//
// Every call computes the complete local convolution of the block with the
// kernel, adds the carried tail onto its first M-1 samples and replaces the
// tail with the last M-1 samples. Because the local result is complete, the
// stream may be split at any sample boundary.
type directState struct {
	kernel []float64
	tail   *ring.Buffer[float64] // capacity M-1

	scratch []float64 // n + M - 1, grows to the largest block seen
	temp    []float64 // M, scaled kernel for the vecmath loop
}

func newDirectState(kernel []float64, maxBlock int) (*directState, error) {
	tailLen := len(kernel) - 1

	tail := ring.Empty[float64]()
	if tailLen > 0 {
		var err error
		tail, err = ring.New[float64](tailLen)
		if err != nil {
			return nil, fmt.Errorf("conv: direct tail: %w", err)
		}
	}

	return &directState{
		kernel:  kernel,
		tail:    tail,
		scratch: make([]float64, max(maxBlock, 1)+tailLen),
		temp:    make([]float64, len(kernel)),
	}, nil
}

func (d *directState) checkBlock(int, bool) error {
	return nil
}

func (d *directState) process(in []float64) ([]float64, error) {
	n := len(in)
	tailLen := len(d.kernel) - 1

	d.scratch = core.EnsureLen(d.scratch, n+tailLen)
	directTo(d.scratch, in, d.kernel, d.temp)

	head := d.tail.ReadCursor()
	for k := range tailLen {
		d.scratch[k] += d.tail.Get(head + k)
	}

	// The tail is replaced, not accumulated: rewind the writer to the head
	// and lay down the M-1 samples that extend past this block.
	d.tail.SetWriteCursor(head)
	for _, v := range d.scratch[n:] {
		d.tail.Push(v)
	}

	return d.scratch[:n], nil
}

func (d *directState) tailBuffer() *ring.Buffer[float64] {
	return d.tail
}
