//go:build !amd64 && !arm64

package hal

import "runtime"

// Compile-time inference only: RISC-V, WASM, and any other target have no
// portable runtime feature probe in this module, so the bit is inferred
// from GOARCH alone.
func init() {
	probeFeatures = probeOtherFeatures
}

func probeOtherFeatures() FeatureSet {
	var fs FeatureSet
	switch runtime.GOARCH {
	case "riscv64":
		fs = fs.With(FeatureRVV)
	case "wasm":
		fs = fs.With(FeatureWASMSIMD)
	}
	return fs
}
