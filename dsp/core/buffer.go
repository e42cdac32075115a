package core

// EnsureLen returns a slice of length n, reusing buf's capacity when it is
// large enough. Stages use it to keep one output block alive across Process
// calls without reallocating.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}
