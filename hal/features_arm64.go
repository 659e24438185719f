//go:build arm64

package hal

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// NEON is unconditional on aarch64 (part of the ARMv8-A base
// architecture), DOTPROD is unconditional on Apple silicon, and the
// remaining bits are read from the OS-exposed capability words via
// golang.org/x/sys/cpu.
func init() {
	probeFeatures = probeARM64Features
}

func probeARM64Features() FeatureSet {
	fs := FeatureSet(0).With(FeatureNEON)

	if cpu.ARM64.HasASIMDDP || runtime.GOOS == "darwin" {
		fs = fs.With(FeatureDOTPROD)
	}
	if cpu.ARM64.HasSVE {
		fs = fs.With(FeatureSVE)
	}
	if cpu.ARM64.HasSVE2 {
		fs = fs.With(FeatureSVE2)
	}
	if cpu.ARM64.HasI8MM {
		fs = fs.With(FeatureI8MM)
	}
	return fs
}
