package kernels

import (
	"fmt"
	"math"
)

// L2Norm returns the euclidean norm of v.
func L2Norm(v []float32) float64 {
	return math.Sqrt(Dot(v, v))
}

// RowNorms fills dst[i] with the L2 norm of row i of a row-major arena.
// dst must hold len(arena)/dim entries.
func RowNorms(dst []float64, arena []float32, dim int) {
	if dim <= 0 {
		panic("RowNorms: dimension must be positive")
	}
	rows := len(arena) / dim
	if len(dst) < rows {
		panic(fmt.Sprintf("RowNorms: dst too small: %d < %d", len(dst), rows))
	}
	for i := 0; i < rows; i++ {
		dst[i] = L2Norm(arena[i*dim : (i+1)*dim])
	}
}
