//go:build windows

package bundle

// isElevated always reports false on Windows; the system-wide bundle
// store is a unix layout, so everything resolves under the user's home.
func isElevated() bool {
	return false
}
