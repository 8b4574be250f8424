package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions and by the streaming convolver.
var (
	ErrEmptyInput           = errors.New("conv: empty input")
	ErrEmptyKernel          = errors.New("conv: empty kernel")
	ErrEmptyImpulseResponse = errors.New("conv: empty impulse response")
	ErrLengthMismatch       = errors.New("conv: buffer length mismatch")
	ErrInvalidBlockSize     = errors.New("conv: invalid block size")
	ErrBlockSizeMismatch    = errors.New("conv: block size mismatch")
	ErrInvalidMode          = errors.New("conv: invalid convolution mode")

	// ErrFlushAfterDrain is advisory: the tail was already drained by an
	// earlier Flush and the output has been filled with zeros.
	ErrFlushAfterDrain = errors.New("conv: flush after tail was drained")
)

// simdThreshold is the kernel length from which the vecmath inner loop pays off.
const simdThreshold = 4

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// This is an O(N*M) algorithm and serves as the reference every streaming
// mode is tested against.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)

	DirectTo(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	var temp []float64
	if len(b) >= simdThreshold {
		temp = make([]float64, len(b))
	}
	directTo(dst, a, b, temp)
}

// directTo clears dst and accumulates a*b into it. temp is scratch of
// length len(b) and is only touched for kernels of simdThreshold taps or more.
func directTo(dst, a, b, temp []float64) {
	clear(dst)

	if len(b) >= simdThreshold {
		directToSIMD(dst, a, b, temp)
	} else {
		directToScalar(dst, a, b)
	}
}

// directToScalar performs scalar convolution for small kernels.
func directToScalar(dst, a, b []float64) {
	m := len(b)
	for i, x := range a {
		for j := 0; j < m; j++ {
			dst[i+j] += x * b[j]
		}
	}
}

// directToSIMD scales the kernel by each input sample and accumulates it
// into the destination with vecmath block operations.
func directToSIMD(dst, a, b, temp []float64) {
	m := len(b)
	for i, x := range a {
		if x == 0 {
			continue
		}
		vecmath.ScaleBlock(temp, b, x)
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
