package ring

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fastconv/dsp/core"
)

// ErrInvalidCapacity is returned by New for a non-positive capacity.
var ErrInvalidCapacity = errors.New("ring: invalid capacity")

// Buffer is a circular sample buffer.
type Buffer[F core.Float] struct {
	data     []F
	readPos  int
	writePos int
}

// New returns a zero-filled buffer with the given capacity and both cursors at 0.
func New[F core.Float](capacity int) (*Buffer[F], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Buffer[F]{data: make([]F, capacity)}, nil
}

// Empty returns a zero-capacity buffer. Push and Put discard their value,
// Pop, Peek and Get return 0 and cursor setters have no effect.
func Empty[F core.Float]() *Buffer[F] {
	return &Buffer[F]{}
}

// Cap returns the fixed capacity.
func (b *Buffer[F]) Cap() int {
	return len(b.data)
}

// wrap maps any integer, including negative ones, into [0, Cap()).
func (b *Buffer[F]) wrap(i int) int {
	n := len(b.data)
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Put stores v at the write cursor without advancing it.
func (b *Buffer[F]) Put(v F) {
	if len(b.data) == 0 {
		return
	}
	b.data[b.writePos] = v
}

// Peek returns the value at the read cursor without advancing it.
func (b *Buffer[F]) Peek() F {
	if len(b.data) == 0 {
		return 0
	}
	return b.data[b.readPos]
}

// Push stores v at the write cursor and advances it.
func (b *Buffer[F]) Push(v F) {
	if len(b.data) == 0 {
		return
	}
	b.data[b.writePos] = v
	b.writePos++
	if b.writePos == len(b.data) {
		b.writePos = 0
	}
}

// Pop returns the value at the read cursor and advances it.
func (b *Buffer[F]) Pop() F {
	if len(b.data) == 0 {
		return 0
	}
	v := b.data[b.readPos]
	b.readPos++
	if b.readPos == len(b.data) {
		b.readPos = 0
	}
	return v
}

// Get reads the absolute slot offset mod Cap() without moving either cursor.
func (b *Buffer[F]) Get(offset int) F {
	if len(b.data) == 0 {
		return 0
	}
	return b.data[b.wrap(offset)]
}

// ReadCursor returns the read cursor.
func (b *Buffer[F]) ReadCursor() int {
	return b.readPos
}

// WriteCursor returns the write cursor.
func (b *Buffer[F]) WriteCursor() int {
	return b.writePos
}

// SetReadCursor moves the read cursor to i mod Cap().
func (b *Buffer[F]) SetReadCursor(i int) {
	b.readPos = b.wrap(i)
}

// SetWriteCursor moves the write cursor to i mod Cap().
func (b *Buffer[F]) SetWriteCursor(i int) {
	b.writePos = b.wrap(i)
}

// Reset zeroes the storage and returns both cursors to 0.
func (b *Buffer[F]) Reset() {
	clear(b.data)
	b.readPos = 0
	b.writePos = 0
}
