package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// SameLen reports whether every slice has the length n.
func SameLen(n int, bufs ...[]float64) bool {
	for _, b := range bufs {
		if len(b) != n {
			return false
		}
	}
	return true
}
