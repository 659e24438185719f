//go:build !linux

package hal

// No portable RAM-size syscall exists across darwin/windows/wasm without
// cgo or OS-specific packages this module doesn't depend on; reporting 0
// conservatively classifies these hosts as TierD rather than guessing.
// The tier is advisory only, so this is an acceptable default.
func totalRAMBytes() uint64 {
	return 0
}
