//go:build linux

package gridpath

import "golang.org/x/sys/unix"

// prefaultRegion asks the kernel to fault in a read-only mapped region
// ahead of use, so the first search over a mapped grid does not stall on
// page faults. Best-effort: errors are silently ignored.
func prefaultRegion(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_WILLNEED)
}
