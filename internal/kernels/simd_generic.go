//go:build (!amd64 && !arm64) || noasm

package kernels

// SIMD not available on this platform
var wideLanes = false
