package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	metadataFileName = "metadata.json"
	metadataVersion  = "1.0.0"
)

// Metadata is the on-disk record that makes a bundle self-describing.
// Unknown fields in an existing record are ignored and missing fields
// decode as empty strings, so older and newer records stay readable as
// long as bin is present when the bundle is run.
type Metadata struct {
	Name        string `json:"name"`
	Bin         string `json:"bin"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

func newMetadata(name, bin string) Metadata {
	return Metadata{
		Name:        name,
		Bin:         bin,
		Version:     metadataVersion,
		Description: "App bundle for " + name,
	}
}

// metadataSchema rejects records whose fields are present but not
// strings. Nothing is required: per-field absence is tolerated and
// reported by the caller, not the parser.
const metadataSchemaJSON = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"bin": {"type": "string"},
		"version": {"type": "string"},
		"description": {"type": "string"}
	}
}`

var compileMetadataSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(metadataSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("decode metadata schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("metadata.schema.json", doc); err != nil {
		return nil, fmt.Errorf("add metadata schema resource: %w", err)
	}
	schema, err := compiler.Compile("metadata.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile metadata schema: %w", err)
	}
	return schema, nil
})

// writeMetadata creates the bundle directory if needed and replaces its
// metadata record. The write goes through a temp file and rename so a
// crash never leaves a half-written record behind.
func writeMetadata(bundleDir string, meta Metadata) error {
	if err := os.MkdirAll(bundleDir, bundleDirPerm); err != nil {
		return fmt.Errorf("create bundle directory %s: %w", bundleDir, err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(bundleDir, ".metadata-*.json")
	if err != nil {
		return fmt.Errorf("create metadata temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write metadata temp file: %w", err)
	}
	if err := tmp.Chmod(metadataFilePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod metadata temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close metadata temp file: %w", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(bundleDir, metadataFileName)); err != nil {
		return fmt.Errorf("replace metadata: %w", err)
	}
	return nil
}

// readMetadata loads and validates the record inside bundleDir. The
// error wraps ErrMetadataMissing when no record exists and
// ErrMetadataCorrupt when the record fails to parse or violates the
// schema.
func readMetadata(bundleDir string) (Metadata, error) {
	path := filepath.Join(bundleDir, metadataFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Metadata{}, fmt.Errorf("%w in %s", ErrMetadataMissing, bundleDir)
		}
		return Metadata{}, fmt.Errorf("read %s: %w", path, err)
	}

	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return Metadata{}, fmt.Errorf("%w: parse %s: %v", ErrMetadataCorrupt, path, err)
	}

	schema, err := compileMetadataSchema()
	if err != nil {
		return Metadata{}, err
	}
	if err := schema.Validate(raw); err != nil {
		return Metadata{}, fmt.Errorf("%w: %s: %v", ErrMetadataCorrupt, path, err)
	}

	var meta Metadata
	if err := json.Unmarshal(b, &meta); err != nil {
		return Metadata{}, fmt.Errorf("%w: parse %s: %v", ErrMetadataCorrupt, path, err)
	}
	return meta, nil
}
