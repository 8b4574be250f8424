package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// Contents are unspecified when buf has to grow; callers overwrite or Zero it.
func EnsureLen[F Float](buf []F, n int) []F {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]F, n)
}

// Zero sets all values in buf to 0.
func Zero[F Float](buf []F) {
	clear(buf)
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto[F Float](dst, src []F) int {
	return copy(dst, src)
}
