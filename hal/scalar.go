package hal

import (
	"encoding/binary"
	"math"
)

// scalarRowMetaBytes is the size of the per-row metadata this backend
// appends after the packed groups: a single little-endian float32 scale.
const scalarRowMetaBytes = 4

func init() {
	registerDefault(newScalarBackend())
}

func newScalarBackend() Backend {
	return Backend{
		Name:             "scalar",
		Type:             BackendScalar,
		Priority:         PriorityScalar,
		RequiredFeatures: 0, // always eligible, every host qualifies
		Config: KernelConfig{
			RowBlock: 1,
			ColBlock: 0, // 0 means "no column tiling" to the facade
			Parallel: 1,
			QK:       GroupSize,
		},
		VecDot:   scalarVecDot,
		Quantize: scalarQuantize,
	}
}

// scalarVecDot is the portable correctness oracle: unpack each 2-bit code
// to signed ternary {-1,0,+1}, multiply by the i8 activation in i32,
// accumulate, and cast to f32 once at the end.
func scalarVecDot(n int, out []float32, outStride int, weights []byte, weightRowStride int, acts []int8, actRowStride int, nrc int) Status {
	rowBytes := PackedRowBytes(n)
	for r := 0; r < nrc; r++ {
		wBase := r * weightRowStride
		aBase := r * actRowStride
		wRow := weights[wBase : wBase+rowBytes]
		aRow := acts[aBase : aBase+n]

		var sum int32
		for g := 0; g*GroupSize < n; g++ {
			groupBytes := wRow[g*BytesPerGroup : g*BytesPerGroup+BytesPerGroup]
			base := g * GroupSize
			for lane := 0; lane < BytesPerGroup; lane++ {
				b := groupBytes[lane]
				sum += unpackTernary((b>>6)&0x3) * int32(aRow[base+lane])
				sum += unpackTernary((b>>4)&0x3) * int32(aRow[base+BytesPerGroup+lane])
				sum += unpackTernary((b>>2)&0x3) * int32(aRow[base+2*BytesPerGroup+lane])
				sum += unpackTernary(b&0x3) * int32(aRow[base+3*BytesPerGroup+lane])
			}
		}
		out[r*outStride] = float32(sum)
	}
	return OK
}

// scalarQuantize computes a per-row max-abs scale (or importance-weighted
// variant when quantWeights is non-nil), rounds to the nearest ternary
// value, and packs four values per byte in the group layout PackGroup
// expects. Each row's output is its packed groups followed by a trailing
// f32 scale.
func scalarQuantize(src []float32, dst []byte, nrow, nPerRow int, quantWeights []float32) (int, Status) {
	rowBytes := PackedRowBytes(nPerRow)
	stride := rowBytes + scalarRowMetaBytes

	var codes [GroupSize]byte
	for r := 0; r < nrow; r++ {
		srcOff := r * nPerRow
		srcRow := src[srcOff : srcOff+nPerRow]

		var maxAbs float32
		for i, v := range srcRow {
			w := float32(1)
			if quantWeights != nil {
				w = quantWeights[srcOff+i]
			}
			av := v * w
			if av < 0 {
				av = -av
			}
			if av > maxAbs {
				maxAbs = av
			}
		}
		scale := maxAbs
		if scale == 0 {
			scale = 1
		}

		dstOff := r * stride
		dstRow := dst[dstOff : dstOff+rowBytes]
		for g := 0; g*GroupSize < nPerRow; g++ {
			base := g * GroupSize
			for i := 0; i < GroupSize; i++ {
				ratio := srcRow[base+i] / scale
				switch {
				case ratio > 0.5:
					codes[i] = 2
				case ratio < -0.5:
					codes[i] = 0
				default:
					codes[i] = 1
				}
			}
			PackGroup(codes[:], dstRow[g*BytesPerGroup:g*BytesPerGroup+BytesPerGroup])
		}
		binary.LittleEndian.PutUint32(dst[dstOff+rowBytes:dstOff+stride], math.Float32bits(scale))
	}
	return nrow * stride, OK
}

// scalarRowScale reads back the trailing per-row scale written by
// scalarQuantize, used by tests validating the quantizer's round-trip.
func scalarRowScale(dst []byte, row, nPerRow int) float32 {
	rowBytes := PackedRowBytes(nPerRow)
	stride := rowBytes + scalarRowMetaBytes
	off := row*stride + rowBytes
	return math.Float32frombits(binary.LittleEndian.Uint32(dst[off : off+scalarRowMetaBytes]))
}
