package project

import (
	"os"
	"path/filepath"
	"testing"

	"lumen/internal/metadata"
)

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := Default("palette").Write(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Module.Name != "palette" || m.Metadata.Output != "palette.lmm" {
		t.Fatalf("roundtrip lost fields: %+v", m)
	}
}

func TestLoadRequiresModuleName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte("[module]\nversion = \"1.0.0\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("a manifest without module.name must be rejected")
	}
}

func TestLoadDefaultsOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte("[module]\nname = \"m\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Metadata.Output != "m.lmm" {
		t.Fatalf("output must default to <name>.lmm, got %q", m.Metadata.Output)
	}
}

func TestExtensionSelection(t *testing.T) {
	m := Default("m")
	if _, ok := m.Extension().(metadata.InlineBodyExtension); !ok {
		t.Fatalf("embed_inline_bodies=true must select the IR-aware extension")
	}
	m.Metadata.EmbedInlineBodies = false
	if _, ok := m.Extension().(metadata.NopExtension); !ok {
		t.Fatalf("embed_inline_bodies=false must select the nop extension")
	}
}
