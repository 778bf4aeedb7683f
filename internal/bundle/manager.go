package bundle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
)

const providerFetchVerb = "get-pypi"

// Bootstrap fetches packageName through the external provider into the
// bundle store, infers its entry point, and writes the bundle metadata
// record. A failed fetch or a package with no recognizable entry point
// aborts before any metadata is written; a partially fetched package
// directory is left in place for inspection, not rolled back.
// Re-bootstrapping an existing bundle overwrites its record silently
// (last write wins).
func (m *Manager) Bootstrap(ctx context.Context, packageName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	paths, provider, err := m.resolvePaths()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(paths.tempDir, bundleDirPerm); err != nil {
		return fmt.Errorf("create temp directory %s: %w", paths.tempDir, err)
	}
	if err := os.MkdirAll(paths.bundleDir, bundleDirPerm); err != nil {
		return fmt.Errorf("create bundle directory %s: %w", paths.bundleDir, err)
	}

	packageDir := filepath.Join(paths.bundleDir, packageName)
	argv := []string{provider, providerFetchVerb, packageName, "-t", packageDir}
	if err := m.runProvider(ctx, argv); err != nil {
		return fmt.Errorf("%w: download %q via %s: %v", ErrFetchFailed, packageName, provider, err)
	}
	m.statusf("'%s' successfully installed in '%s'.\n", packageName, packageDir)

	entry, ok, err := inferEntryPoint(packageDir)
	if err != nil {
		return fmt.Errorf("inspect package %q: %w", packageName, err)
	}
	if !ok {
		return fmt.Errorf("%w: %q has no usable bin/ file and no source file declaring %q",
			ErrNoEntryPoint, packageName, entryMarker)
	}

	bundleName := NormalizeBundleName(packageName)
	bundleDir := filepath.Join(paths.bundleDir, bundleName)
	if err := writeMetadata(bundleDir, newMetadata(bundleName, entry)); err != nil {
		return err
	}
	m.statusf("App bundle created at '%s'.\n", bundleDir)
	return nil
}

// Run resolves the named bundle's metadata and executes its entry
// point, forwarding extraArgs verbatim and blocking until the child
// exits. The bundle's on-disk state is never modified.
func (m *Manager) Run(ctx context.Context, bundleName string, extraArgs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	paths, _, err := m.resolvePaths()
	if err != nil {
		return err
	}

	bundleDir := filepath.Join(paths.bundleDir, bundleName)
	if _, err := os.Stat(bundleDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %q in %s", ErrBundleNotFound, bundleName, paths.bundleDir)
		}
		return fmt.Errorf("stat bundle %s: %w", bundleDir, err)
	}

	meta, err := readMetadata(bundleDir)
	if err != nil {
		return err
	}
	if strings.TrimSpace(meta.Bin) == "" {
		return fmt.Errorf("%w: metadata for %q has no bin entry", ErrExecutableMissing, bundleName)
	}

	execPath := filepath.Join(bundleDir, filepath.FromSlash(meta.Bin))
	if _, err := os.Stat(execPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrExecutableMissing, execPath)
		}
		return fmt.Errorf("stat executable %s: %w", execPath, err)
	}

	if err := m.runBundle(ctx, execPath, extraArgs); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrExecutionFailed, execPath, err)
	}
	return nil
}

// Delete removes the named bundle after interactive confirmation. A
// decline leaves the bundle untouched and is not an error.
func (m *Manager) Delete(ctx context.Context, bundleName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	paths, _, err := m.resolvePaths()
	if err != nil {
		return err
	}

	bundleDir := filepath.Join(paths.bundleDir, bundleName)
	if !isPathWithinDir(bundleDir, paths.bundleDir) {
		return fmt.Errorf("%w: %q does not name a directory inside %s", ErrDeleteFailed, bundleName, paths.bundleDir)
	}
	if _, err := os.Stat(bundleDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %q in %s", ErrBundleNotFound, bundleName, paths.bundleDir)
		}
		return fmt.Errorf("stat bundle %s: %w", bundleDir, err)
	}

	confirmed, err := m.confirm(bundleName)
	if err != nil {
		return err
	}
	if !confirmed {
		m.statusf("%s was not deleted.\n", bundleName)
		return nil
	}

	if err := os.RemoveAll(bundleDir); err != nil {
		return fmt.Errorf("%w: remove %s: %v", ErrDeleteFailed, bundleDir, err)
	}
	m.statusf("Deleted %s.\n", bundleName)
	return nil
}

// Install is an extension point for installing an app from a
// repository. It only acknowledges the request today.
func (m *Manager) Install(ctx context.Context, appName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.statusf("Installing app: %s\n", appName)
	return nil
}

// List prints a table of the bundles in the store. Directories without
// a metadata record (fetched package payloads live next to bundles in
// the same root) are skipped; bundles with a corrupt record are listed
// with a diagnostic instead of aborting the listing.
func (m *Manager) List(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	paths, _, err := m.resolvePaths()
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(paths.bundleDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.statusf("No bundles installed in '%s'.\n", paths.bundleDir)
			return nil
		}
		return fmt.Errorf("list bundle directory %s: %w", paths.bundleDir, err)
	}

	type row struct {
		name, version, bin, description string
	}
	var rows []row
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := readMetadata(filepath.Join(paths.bundleDir, entry.Name()))
		switch {
		case errors.Is(err, ErrMetadataMissing):
			continue
		case err != nil:
			rows = append(rows, row{name: entry.Name(), description: "(metadata unreadable)"})
		default:
			rows = append(rows, row{name: entry.Name(), version: meta.Version, bin: meta.Bin, description: meta.Description})
		}
	}

	if len(rows) == 0 {
		m.statusf("No bundles installed in '%s'.\n", paths.bundleDir)
		return nil
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	tw := tabwriter.NewWriter(m.out(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tBIN\tDESCRIPTION")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.name, r.version, r.bin, r.description)
	}
	return tw.Flush()
}

// NormalizeBundleName derives a bundle name from a package name;
// hyphens are not allowed in bundle names and become underscores.
func NormalizeBundleName(packageName string) string {
	return strings.ReplaceAll(packageName, "-", "_")
}
