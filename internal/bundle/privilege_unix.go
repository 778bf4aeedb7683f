//go:build !windows

package bundle

import "os"

// isElevated reports whether the process runs with effective UID 0.
func isElevated() bool {
	return os.Geteuid() == 0
}
