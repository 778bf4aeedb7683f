package bundle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMetadataRoundTrip(t *testing.T) {
	bundleDir := filepath.Join(t.TempDir(), "demo_pkg")

	if err := writeMetadata(bundleDir, newMetadata("demo_pkg", "bin/run.sh")); err != nil {
		t.Fatalf("write metadata: %v", err)
	}

	meta, err := readMetadata(bundleDir)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if meta.Bin != "bin/run.sh" {
		t.Fatalf("expected bin %q, got %q", "bin/run.sh", meta.Bin)
	}
	if meta.Name != "demo_pkg" {
		t.Fatalf("expected name %q, got %q", "demo_pkg", meta.Name)
	}
	if meta.Version != "1.0.0" {
		t.Fatalf("expected version 1.0.0, got %q", meta.Version)
	}
	if meta.Description != "App bundle for demo_pkg" {
		t.Fatalf("unexpected description %q", meta.Description)
	}
}

func TestWriteMetadata_OverwritesExistingRecord(t *testing.T) {
	bundleDir := filepath.Join(t.TempDir(), "demo_pkg")

	if err := writeMetadata(bundleDir, newMetadata("demo_pkg", "bin/old")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := writeMetadata(bundleDir, newMetadata("demo_pkg", "bin/new")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	meta, err := readMetadata(bundleDir)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if meta.Bin != "bin/new" {
		t.Fatalf("expected last write to win, got bin %q", meta.Bin)
	}
}

func TestReadMetadata_Missing(t *testing.T) {
	_, err := readMetadata(t.TempDir())
	if !errors.Is(err, ErrMetadataMissing) {
		t.Fatalf("expected ErrMetadataMissing, got %v", err)
	}
}

func TestReadMetadata_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{{not json"},
		{name: "wrong field type", content: `{"name": "x", "bin": 42}`},
		{name: "array record", content: `["bin/run.sh"]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bundleDir := t.TempDir()
			path := filepath.Join(bundleDir, metadataFileName)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("seed metadata: %v", err)
			}

			_, err := readMetadata(bundleDir)
			if !errors.Is(err, ErrMetadataCorrupt) {
				t.Fatalf("expected ErrMetadataCorrupt, got %v", err)
			}
		})
	}
}

func TestReadMetadata_ForwardCompatible(t *testing.T) {
	bundleDir := t.TempDir()
	record := `{"bin": "bin/run.sh", "license": "MIT", "tags": ["cli"]}`
	if err := os.WriteFile(filepath.Join(bundleDir, metadataFileName), []byte(record), 0o644); err != nil {
		t.Fatalf("seed metadata: %v", err)
	}

	meta, err := readMetadata(bundleDir)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if meta.Bin != "bin/run.sh" {
		t.Fatalf("expected bin preserved despite unknown fields, got %q", meta.Bin)
	}
	if meta.Name != "" || meta.Version != "" {
		t.Fatalf("expected absent fields to decode empty, got name=%q version=%q", meta.Name, meta.Version)
	}
}
