//go:build amd64

package hal

import "golang.org/x/sys/cpu"

// Maps golang.org/x/sys/cpu's leaf-1/leaf-7 derived booleans onto the
// named feature bits, issuing no CPUID ourselves (x/sys/cpu already
// guards against faulting on hosts that lack the identification
// instruction).
func init() {
	probeFeatures = probeAMD64Features
}

func probeAMD64Features() FeatureSet {
	var fs FeatureSet
	if cpu.X86.HasSSE3 {
		fs = fs.With(FeatureSSE3)
	}
	if cpu.X86.HasSSSE3 {
		fs = fs.With(FeatureSSSE3)
	}
	if cpu.X86.HasAVX {
		fs = fs.With(FeatureAVX)
	}
	if cpu.X86.HasAVX2 {
		fs = fs.With(FeatureAVX2)
	}
	if cpu.X86.HasAVXVNNI {
		fs = fs.With(FeatureAVXVNNI)
	}
	if cpu.X86.HasAVX512F {
		fs = fs.With(FeatureAVX512F)
	}
	if cpu.X86.HasAVX512VNNI {
		fs = fs.With(FeatureAVX512VNNI)
	}
	if cpu.X86.HasFMA {
		fs = fs.With(FeatureFMA)
	}
	return fs
}
