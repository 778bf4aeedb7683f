package bundle

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	binDirName      = "bin"
	sourceExtension = ".py"
	entryMarker     = "def main()"
)

// inferEntryPoint determines the relative path that should be executed
// to run the package rooted at packageRoot. Best effort, convention
// over configuration:
//
//  1. A bin/ directory directly under the root wins. The first regular
//     file in lexicographic order (os.ReadDir's sorted listing) becomes
//     the entry point. A bin/ directory with no regular files yields
//     absence; it does not fall through to the source scan.
//  2. Otherwise the tree is walked depth-first in lexical order
//     (filepath.WalkDir) and the first .py file whose contents contain
//     the "def main()" marker becomes the entry point.
//
// The returned path is slash-separated and relative to packageRoot.
// Absence is reported through the bool, not an error.
func inferEntryPoint(packageRoot string) (string, bool, error) {
	binDir := filepath.Join(packageRoot, binDirName)
	info, err := os.Stat(binDir)
	switch {
	case err == nil && info.IsDir():
		entries, err := os.ReadDir(binDir)
		if err != nil {
			return "", false, fmt.Errorf("list %s: %w", binDir, err)
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				return binDirName + "/" + entry.Name(), true, nil
			}
		}
		return "", false, nil
	case err != nil && !os.IsNotExist(err):
		return "", false, fmt.Errorf("stat %s: %w", binDir, err)
	}

	return scanForEntryMarker(packageRoot)
}

func scanForEntryMarker(packageRoot string) (string, bool, error) {
	marker := []byte(entryMarker)
	var found string
	err := filepath.WalkDir(packageRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), sourceExtension) {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if !bytes.Contains(content, marker) {
			return nil
		}
		rel, err := filepath.Rel(packageRoot, path)
		if err != nil {
			return err
		}
		found = filepath.ToSlash(rel)
		return fs.SkipAll
	})
	if err != nil {
		return "", false, fmt.Errorf("scan %s for entry point: %w", packageRoot, err)
	}
	if found == "" {
		return "", false, nil
	}
	return found, true, nil
}
