package metafmt

import (
	"bytes"
	"strings"
	"testing"

	"lumen/internal/ir"
	"lumen/internal/metadata"
	"lumen/internal/source"
	"lumen/internal/types"
)

func sampleEnvelope() *metadata.ModuleEnvelope {
	ctx := &metadata.Context{
		Strings:             source.NewInterner(),
		Types:               types.NewInterner(),
		SyntheticProperties: make(map[*ir.Class][]*ir.Property),
	}
	name := ctx.Strings.Intern("Color")
	enum := ir.NewClass(name, ir.ClassEnum, ir.Public, ir.Final, ctx.Types.RegisterClass(name))
	enum.AddMember(ir.NewEnumEntry(ctx.Strings.Intern("RED"), enum.Type))
	return metadata.SerializeModule(&metadata.ModuleJob{
		Name:      "palette",
		Context:   ctx,
		Extension: metadata.NopExtension{},
		Classes:   []*ir.Class{enum},
	})
}

func TestPrettyMentionsDeclarations(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleEnvelope(), PrettyOpts{}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"module palette", "Color", "entry RED"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONIsValid(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleEnvelope()); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), "\"ModuleName\": \"palette\"") {
		t.Fatalf("json output missing module name:\n%s", buf.String())
	}
}
