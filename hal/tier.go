package hal

import "runtime"

// Profile is the compile-time build profile. It gates which surrounding
// features are available but never changes kernel semantics.
type Profile int

const (
	ProfileFull Profile = iota
	ProfileLite
	ProfileMinimal
)

func (p Profile) String() string {
	switch p {
	case ProfileFull:
		return "full"
	case ProfileLite:
		return "lite"
	case ProfileMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// CompileProfile is the profile this build was produced under. There is
// no runtime toggle: swap it with a build constraint in a profile_*.go
// file if a future build wants ProfileLite/ProfileMinimal defaults.
var CompileProfile = ProfileFull

// Tier is the coarse device-tier label derived from available RAM. It is
// advisory only, fed to the engine for model auto-selection.
type Tier int

const (
	TierD Tier = iota
	TierC
	TierB
	TierA
	TierS
)

func (t Tier) String() string {
	switch t {
	case TierS:
		return "S"
	case TierA:
		return "A"
	case TierB:
		return "B"
	case TierC:
		return "C"
	case TierD:
		return "D"
	default:
		return "?"
	}
}

const (
	tierThresholdS = 32 << 30 // 32 GiB
	tierThresholdA = 2 << 30  // 2 GiB
	tierThresholdC = 64 << 20 // 64 MiB
)

// DetectDeviceTier derives a Tier from total RAM: >=32GiB -> S, >=2GiB ->
// A, >=64MiB -> C, otherwise D, and B overrides everything when running
// under a browser-style sandbox (wasm/js).
func DetectDeviceTier() Tier {
	if isSandboxProfile() {
		return TierB
	}
	ram := totalRAMBytes()
	switch {
	case ram >= tierThresholdS:
		return TierS
	case ram >= tierThresholdA:
		return TierA
	case ram >= tierThresholdC:
		return TierC
	default:
		return TierD
	}
}

func isSandboxProfile() bool {
	return runtime.GOOS == "js" && runtime.GOARCH == "wasm"
}

// totalRAMBytes is implemented per-OS in tier_linux.go and tier_other.go.
