package kernels

import (
	"fmt"
	"sync"
)

// ParallelThreshold is the smallest row count worth splitting across
// workers. Below it goroutine start-up costs more than the rows themselves.
const ParallelThreshold = 4096

// MatVec computes dst[i] = dot(arena[rows[i]], vec) for a gathered subset of
// rows in a row-major arena of width len(vec).
//
// This is the batched form of the similarity numerator: one pass over the
// candidate rows with the query held hot in cache, instead of one lookup and
// one call per candidate.
func MatVec(dst []float64, arena []float32, rows []int32, vec []float32) {
	checkMatVec(dst, arena, rows, vec)
	matVecSerial(dst, arena, rows, vec)
}

// MatVecParallel is MatVec with rows split into contiguous chunks across
// workers. Every output element is produced by exactly one worker, so the
// result is identical to the serial path.
func MatVecParallel(dst []float64, arena []float32, rows []int32, vec []float32, workers int) {
	checkMatVec(dst, arena, rows, vec)
	if workers <= 1 || len(rows) < ParallelThreshold {
		matVecSerial(dst, arena, rows, vec)
		return
	}

	chunkSize := (len(rows) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(rows); start += chunkSize {
		end := min(start+chunkSize, len(rows))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			matVecSerial(dst[start:end], arena, rows[start:end], vec)
		}(start, end)
	}
	wg.Wait()
}

func matVecSerial(dst []float64, arena []float32, rows []int32, vec []float32) {
	dim := len(vec)
	for i, r := range rows {
		base := int(r) * dim
		dst[i] = Dot(arena[base:base+dim], vec)
	}
}

func checkMatVec(dst []float64, arena []float32, rows []int32, vec []float32) {
	dim := len(vec)
	if dim == 0 {
		panic("MatVec: empty query vector")
	}
	if len(dst) < len(rows) {
		panic(fmt.Sprintf("MatVec: dst too small: %d < %d", len(dst), len(rows)))
	}
	count := len(arena) / dim
	for _, r := range rows {
		if r < 0 || int(r) >= count {
			panic(fmt.Sprintf("MatVec: row %d out of range [0,%d)", r, count))
		}
	}
}
