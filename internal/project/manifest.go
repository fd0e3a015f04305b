// Package project reads and writes lumen.toml module manifests.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"lumen/internal/metadata"
)

// ManifestName is the canonical manifest file name.
const ManifestName = "lumen.toml"

// Manifest describes one compilation module and its metadata options.
type Manifest struct {
	Module   ModuleSection   `toml:"module"`
	Metadata MetadataSection `toml:"metadata"`
}

// ModuleSection names the module.
type ModuleSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// MetadataSection configures metadata output.
type MetadataSection struct {
	// ToolVersion is stamped into every envelope this module emits.
	ToolVersion string `toml:"tool_version"`
	// EmbedInlineBodies ships lowered IR for inline declarations so other
	// modules can inline across the boundary.
	EmbedInlineBodies bool `toml:"embed_inline_bodies"`
	// Output is the envelope path, relative to the manifest directory.
	Output string `toml:"output"`
}

// Default returns the manifest `lumen init` writes.
func Default(name string) *Manifest {
	return &Manifest{
		Module: ModuleSection{Name: name, Version: "0.1.0"},
		Metadata: MetadataSection{
			ToolVersion:       "0.1.0",
			EmbedInlineBodies: true,
			Output:            name + ".lmm",
		},
	}
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("project: reading %s: %w", path, err)
	}
	if m.Module.Name == "" {
		return nil, fmt.Errorf("project: %s: module.name is required", path)
	}
	if m.Metadata.Output == "" {
		m.Metadata.Output = m.Module.Name + ".lmm"
	}
	return &m, nil
}

// Write stores the manifest at path, creating parent directories.
func (m *Manifest) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(m); err != nil {
		_ = f.Close()
		return fmt.Errorf("project: writing %s: %w", path, err)
	}
	return f.Close()
}

// Extension returns the serializer extension the manifest asks for.
func (m *Manifest) Extension() metadata.Extension {
	if m.Metadata.EmbedInlineBodies {
		return metadata.InlineBodyExtension{}
	}
	return metadata.NopExtension{}
}
