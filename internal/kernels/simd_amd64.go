//go:build amd64 && !noasm

package kernels

import "golang.org/x/sys/cpu"

// SIMD support flags
var (
	hasAVX2   = cpu.X86.HasAVX2
	hasAVX512 = cpu.X86.HasAVX512F
)

// wideLanes selects the 4-accumulator dot product. With AVX2 the compiler
// keeps the independent accumulators in flight; without it the scalar loop
// is just as fast and has fewer rounding steps.
var wideLanes = hasAVX2 || hasAVX512
