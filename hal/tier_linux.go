//go:build linux

package hal

import "golang.org/x/sys/unix"

// totalRAMBytes uses the Sysinfo syscall via golang.org/x/sys/unix, the
// sibling package to golang.org/x/sys/cpu used for feature probing.
func totalRAMBytes() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	return uint64(info.Totalram) * uint64(info.Unit)
}
