// Package kernels provides pure-Go math kernels for embedding similarity.
//
// All kernels read float32 rows and accumulate in float64 so that a batched
// evaluation and a one-at-a-time evaluation agree far below the similarity
// tolerance used by the solver.
package kernels

// Dot computes the dot product of two equal-length vectors.
func Dot(a, b []float32) float64 {
	if len(a) != len(b) {
		panic("Dot: length mismatch")
	}
	if wideLanes && len(a) >= 8 {
		return dotUnrolled(a, b)
	}
	return dotScalar(a, b)
}

// dotScalar is the portable scalar implementation
func dotScalar(a, b []float32) float64 {
	sum := float64(0)
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// dotUnrolled processes 4 elements per iteration with independent
// accumulators, then folds the tail.
func dotUnrolled(a, b []float32) float64 {
	n := len(a)
	b = b[:n]
	var s0, s1, s2, s3 float64
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += float64(a[i]) * float64(b[i])
		s1 += float64(a[i+1]) * float64(b[i+1])
		s2 += float64(a[i+2]) * float64(b[i+2])
		s3 += float64(a[i+3]) * float64(b[i+3])
	}
	sum := (s0 + s1) + (s2 + s3)
	for ; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
