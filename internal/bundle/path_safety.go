package bundle

import (
	"os"
	"path/filepath"
	"strings"
)

// isPathWithinDir reports whether path sits strictly inside dir after
// cleaning. Used as a guard before recursive removal so that a bundle
// name like ".." or an absolute path can never escape the store root.
func isPathWithinDir(path, dir string) bool {
	pathClean := filepath.Clean(path)
	dirClean := filepath.Clean(dir)
	if pathClean == dirClean {
		return false
	}
	return strings.HasPrefix(pathClean, dirClean+string(os.PathSeparator))
}
