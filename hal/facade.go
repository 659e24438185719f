package hal

import "fmt"

// VecDot forwards to the active backend's VecDot kernel through one
// function-value load. With no active backend this is a no-op: it
// writes nothing and returns NoBackend.
func VecDot(n int, out []float32, outStride int, weights []byte, weightRowStride int, acts []int8, actRowStride int, nrc int) Status {
	b, st := global.GetActive()
	if st != OK {
		return NoBackend
	}
	if st := checkShape(b.Config, n, out, weights, acts); st != OK {
		return st
	}
	return b.VecDot(n, out, outStride, weights, weightRowStride, acts, actRowStride, nrc)
}

// Quantize forwards to the active backend's Quantize kernel.
func Quantize(src []float32, dst []byte, nrow, nPerRow int, quantWeights []float32) (int, Status) {
	b, st := global.GetActive()
	if st != OK {
		return 0, NoBackend
	}
	if b.Config.QK == 0 || nPerRow%b.Config.QK != 0 {
		return 0, Invalid
	}
	if src == nil || dst == nil {
		return 0, Invalid
	}
	return b.Quantize(src, dst, nrow, nPerRow, quantWeights)
}

// Gemv computes out = weights . acts over one activation vector of length
// n shared by every row of weights. If the active backend's Gemv is nil,
// the facade synthesizes it by iterating VecDot one row at a time; nCols
// must equal n and is validated rather than silently ignored.
func Gemv(n int, out []float32, outStride int, weights []byte, acts []int8, nRows, nCols int) Status {
	b, st := global.GetActive()
	if st != OK {
		return NoBackend
	}
	if st := checkShape(b.Config, n, out, weights, acts); st != OK {
		return st
	}
	if nCols != n {
		return Invalid
	}
	if b.Gemv != nil {
		return b.Gemv(n, out, outStride, weights, acts, nRows, nCols)
	}

	rowBytes := PackedRowBytes(n)
	for r := 0; r < nRows; r++ {
		wOff := r * rowBytes
		oOff := r * outStride
		if st := b.VecDot(n, out[oOff:], outStride, weights[wOff:], rowBytes, acts, 0, 1); st != OK {
			return st
		}
	}
	return OK
}

// Gemm computes out = weights . acts^T, weights laid out as nRows rows of
// n packed ternary weights and acts laid out as nCols rows of n signed-8
// activations. If the active backend's Gemm is nil, the facade
// synthesizes it by tiling rows/columns per the active KernelConfig and
// issuing one VecDot call per column-tile of each row.
func Gemm(n int, out []float32, outStride int, weights []byte, acts []int8, nRows, nCols int) Status {
	b, st := global.GetActive()
	if st != OK {
		return NoBackend
	}
	if st := checkShape(b.Config, n, out, weights, acts); st != OK {
		return st
	}
	if b.Gemm != nil {
		return b.Gemm(n, out, outStride, weights, acts, nRows, nCols)
	}

	rowBytes := PackedRowBytes(n)
	rowBlock := b.Config.RowBlock
	if rowBlock <= 0 {
		rowBlock = 1
	}
	colBlock := b.Config.ColBlock
	if colBlock <= 0 {
		colBlock = nCols
	}

	for r0 := 0; r0 < nRows; r0 += rowBlock {
		rEnd := min(r0+rowBlock, nRows)
		for r := r0; r < rEnd; r++ {
			wOff := r * rowBytes
			for c0 := 0; c0 < nCols; c0 += colBlock {
				cEnd := min(c0+colBlock, nCols)
				nc := cEnd - c0
				outOff := r*outStride + c0
				actOff := c0 * n
				if st := b.VecDot(n, out[outOff:], 1, weights[wOff:], 0, acts[actOff:], n, nc); st != OK {
					return st
				}
			}
		}
	}
	return OK
}

// checkShape validates the common preconditions shared by every dispatch
// entry point.
func checkShape(cfg KernelConfig, n int, out []float32, weights []byte, acts []int8) Status {
	if cfg.QK == 0 || n <= 0 || n%cfg.QK != 0 {
		return Invalid
	}
	if out == nil || weights == nil || acts == nil {
		return Invalid
	}
	return OK
}

// PrintInfo returns a human-readable diagnostic summary of the registry
// state. The format is not part of any stability contract.
func PrintInfo() string {
	var sb []byte
	appendf := func(format string, args ...any) {
		sb = append(sb, []byte(fmt.Sprintf(format, args...))...)
	}

	appendf("NeuronOS HAL\n")
	appendf("  features: %s\n", global.GetFeatures())
	appendf("  backends: %d registered\n", global.Count())
	for i := 0; i < global.Count(); i++ {
		b, _ := global.Get(i)
		marker := " "
		if i == global.activeIndex {
			marker = "*"
		}
		appendf("  %s [%d] %-12s type=%-10s priority=%-4d required=%s\n", marker, i, b.Name, b.Type, b.Priority, b.RequiredFeatures)
	}
	if active, st := global.GetActive(); st == OK {
		appendf("  active: %s qk=%d row_block=%d col_block=%d parallel=%d\n",
			active.Name, active.Config.QK, active.Config.RowBlock, active.Config.ColBlock, active.Config.Parallel)
	} else {
		appendf("  active: none\n")
	}
	appendf("  tier: %s\n", DetectDeviceTier())
	return string(sb)
}
