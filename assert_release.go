//go:build !gridpath_debug

package gridpath

// debugAssert compiles away in release builds.
func debugAssert(bool) {}
