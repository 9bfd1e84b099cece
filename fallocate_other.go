//go:build !linux && !darwin

package gridpath

import "os"

// fallocateFile pre-allocates disk blocks so a full disk fails the map
// write up front instead of partway through the cell bitmap.
// On platforms without native fallocate, uses Truncate as a fallback.
// Note: This sets file size but may not reserve actual disk blocks on all filesystems.
func fallocateFile(file *os.File, size int64) error {
	return file.Truncate(size)
}
