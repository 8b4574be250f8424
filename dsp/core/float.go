package core

// Float is the set of sample types accepted by the streaming processors.
type Float interface {
	~float32 | ~float64
}

// Widen converts src into the float64 accumulator dst and returns the
// number of converted samples.
func Widen[F Float](dst []float64, src []F) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float64(src[i])
	}
	return n
}

// Narrow converts the float64 accumulator src back into samples of type F.
func Narrow[F Float](dst []F, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = F(src[i])
	}
	return n
}
