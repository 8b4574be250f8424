// Package ring provides a fixed-capacity circular sample buffer with
// independent read and write cursors.
//
// All index arithmetic is modulo the capacity, so no accessor can go out of
// bounds. A zero-capacity buffer from [Empty] is a valid pass-through: writes
// are discarded and reads return zero.
//
//	b, err := ring.New[float64](4)
//	b.Push(1)
//	b.Push(2)
//	v := b.Pop() // 1
package ring
