package bundle

import "errors"

// Failure kinds surfaced by the lifecycle operations. Every operation
// recovers at its own boundary: it wraps one of these sentinels with
// the concrete detail and returns it to the CLI layer, which maps the
// kind to an exit code. Callers classify with errors.Is.
var (
	ErrFetchFailed       = errors.New("package fetch failed")
	ErrNoEntryPoint      = errors.New("no entry point found")
	ErrBundleNotFound    = errors.New("bundle not found")
	ErrMetadataMissing   = errors.New("metadata.json not found")
	ErrMetadataCorrupt   = errors.New("metadata.json is invalid")
	ErrExecutableMissing = errors.New("executable not found")
	ErrExecutionFailed   = errors.New("bundle execution failed")
	ErrDeleteFailed      = errors.New("bundle delete failed")
)
