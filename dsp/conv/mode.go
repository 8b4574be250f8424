package conv

import "fmt"

// Mode selects the algorithm a Convolver runs. It is chosen once at
// construction. The only implementations are DirectMode and PartitionedMode.
type Mode interface {
	fmt.Stringer
	isMode()
}

// DirectMode convolves in the time domain. Blocks may have any length,
// including 1, and may change length from call to call.
type DirectMode struct{}

// PartitionedMode convolves in the frequency domain with a uniformly
// partitioned impulse response. Every Process call must pass exactly
// BlockSize samples.
type PartitionedMode struct {
	BlockSize int
}

func (DirectMode) isMode()      {}
func (PartitionedMode) isMode() {}

// String implements fmt.Stringer.
func (DirectMode) String() string { return "direct" }

// String implements fmt.Stringer.
func (m PartitionedMode) String() string {
	return fmt.Sprintf("partitioned(block=%d)", m.BlockSize)
}
