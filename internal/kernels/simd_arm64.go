//go:build arm64 && !noasm

package kernels

import "golang.org/x/sys/cpu"

// SIMD support flags for ARM64
var (
	hasNEON = cpu.ARM64.HasASIMD // Advanced SIMD (NEON) - always available on ARM64
)

var wideLanes = hasNEON
