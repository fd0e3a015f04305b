package metadata

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"lumen/internal/ir"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	ctx := testContext()
	cls := makeClass(ctx, "Color")
	job := &ModuleJob{
		Name:        "palette",
		ToolVersion: "0.1.0",
		Context:     ctx,
		Extension:   NopExtension{},
		Classes:     []*ir.Class{cls},
	}
	env := SerializeModule(job)

	var buf bytes.Buffer
	if err := WriteModule(&buf, env); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := ReadModule(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if back.ModuleName != "palette" || back.Schema != SchemaVersion {
		t.Fatalf("header lost: %+v", back)
	}
	if len(back.Classes) != 1 {
		t.Fatalf("expected one class record")
	}
	name := back.Strings[back.Classes[0].Name]
	if name != "Color" {
		t.Fatalf("class name must resolve through the string table, got %q", name)
	}
}

func TestWriteModuleDoesNotMutateInput(t *testing.T) {
	env := &ModuleEnvelope{ModuleName: "palette"}
	var buf bytes.Buffer
	if err := WriteModule(&buf, env); err != nil {
		t.Fatalf("write: %v", err)
	}
	if env.Schema != 0 {
		t.Fatalf("writing must leave the caller's envelope alone, schema became %d", env.Schema)
	}
	back, err := ReadModule(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if back.Schema != SchemaVersion {
		t.Fatalf("written form must carry the current schema, got %d", back.Schema)
	}
}

func TestReadModuleRejectsUnknownSchema(t *testing.T) {
	env := &ModuleEnvelope{Schema: SchemaVersion + 1, ModuleName: "future"}
	raw, err := msgpack.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := ReadModule(bytes.NewReader(raw)); err == nil {
		t.Fatalf("an unknown schema must be rejected, not guessed at")
	}
}

func TestWriteModuleFileIsReadable(t *testing.T) {
	ctx := testContext()
	cls := makeClass(ctx, "Color")
	env := SerializeModule(&ModuleJob{
		Name:      "palette",
		Context:   ctx,
		Extension: NopExtension{},
		Classes:   []*ir.Class{cls},
	})

	path := filepath.Join(t.TempDir(), "out", "palette.lmm")
	if err := WriteModuleFile(path, env); err != nil {
		t.Fatalf("write file: %v", err)
	}
	back, err := ReadModuleFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if back.ModuleName != "palette" {
		t.Fatalf("roundtrip lost module name")
	}
}
