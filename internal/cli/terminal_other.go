//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package cli

// isTerminal always reports false here, so ringy reads commands from stdin
// in batch mode.
func isTerminal(int) bool {
	return false
}
