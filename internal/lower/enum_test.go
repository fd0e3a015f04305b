package lower

import (
	"testing"

	"lumen/internal/ir"
	"lumen/internal/source"
	"lumen/internal/types"
)

// testContext builds a context with a root class carrying a no-arg
// constructor, an array class carrying "get", and a synthesizer producing a
// single fake override.
func testContext(t *testing.T) *Context {
	t.Helper()
	strs := source.NewInterner()
	tys := types.NewInterner()

	anyName := strs.Intern("Any")
	anyClass := ir.NewClass(anyName, ir.ClassOrdinary, ir.Public, ir.Open, tys.Builtins().Any)
	anyClass.AddMember(ir.NewConstructor(strs.Intern("<init>"), ir.Public, true))

	arrName := strs.Intern("Array")
	arrClass := ir.NewClass(arrName, ir.ClassOrdinary, ir.Public, ir.Final, tys.RegisterClass(arrName))
	get := ir.NewFunc(strs.Intern("get"), ir.Public, ir.Final, ir.FlagOperator, tys.Builtins().Any)
	get.Params = []*ir.ValueParam{{Name: strs.Intern("index"), Type: tys.Builtins().Int}}
	arrClass.AddMember(get)

	synth := SynthesizerFunc(func(c *ir.Class) []ir.Decl {
		return []ir.Decl{ir.NewFunc(strs.Intern("toString"), ir.Public, ir.Open, ir.FlagSynthetic, tys.Builtins().String)}
	})

	return &Context{
		Strings:     strs,
		Types:       tys,
		AnyClass:    anyClass,
		ArrayClass:  arrClass,
		Synthesizer: synth,
	}
}

func makeEnum(ctx *Context, name string, entries ...string) *ir.Class {
	id := ctx.Strings.Intern(name)
	enum := ir.NewClass(id, ir.ClassEnum, ir.Public, ir.Final, ctx.Types.RegisterClass(id))
	for _, e := range entries {
		enum.AddMember(ir.NewEnumEntry(ctx.Strings.Intern(e), enum.Type))
	}
	return enum
}

func TestEntriesSortedLexicographically(t *testing.T) {
	ctx := testContext(t)
	enum := makeEnum(ctx, "Fruit", "Banana", "Apple", "Cherry")

	lowered := CreateLoweredEnum(ctx, enum)
	want := map[string]int{"Apple": 0, "Banana": 1, "Cherry": 2}
	if len(lowered.Entries) != len(want) {
		t.Fatalf("entries size mismatch: %v", lowered.Entries)
	}
	for name, ord := range want {
		if lowered.Entries[name] != ord {
			t.Fatalf("entry %s: got ordinal %d want %d", name, lowered.Entries[name], ord)
		}
	}
}

func TestOrdinalsAreContiguous(t *testing.T) {
	ctx := testContext(t)
	enum := makeEnum(ctx, "Huge", "zeta", "alpha", "Mu", "beta", "Zed")

	lowered := CreateLoweredEnum(ctx, enum)
	seen := make(map[int]bool, len(lowered.Entries))
	for _, ord := range lowered.Entries {
		if ord < 0 || ord >= len(lowered.Entries) {
			t.Fatalf("ordinal %d out of range 0..%d", ord, len(lowered.Entries)-1)
		}
		if seen[ord] {
			t.Fatalf("duplicate ordinal %d", ord)
		}
		seen[ord] = true
	}
}

func TestLoweringNeverCaches(t *testing.T) {
	ctx := testContext(t)
	enum := makeEnum(ctx, "Color", "RED", "GREEN", "BLUE")

	first := CreateLoweredEnum(ctx, enum)
	second := CreateLoweredEnum(ctx, enum)
	if first.ImplObject == second.ImplObject {
		t.Fatalf("each lowering must build a fresh holder object")
	}
	if first.ValuesField == second.ValuesField {
		t.Fatalf("each lowering must build a fresh values field")
	}
}

func TestLoweredColorEndToEnd(t *testing.T) {
	ctx := testContext(t)
	enum := makeEnum(ctx, "Color", "RED", "GREEN", "BLUE")

	lowered := CreateLoweredEnum(ctx, enum)

	if len(lowered.ValuesGetter.Params) != 0 {
		t.Fatalf("values getter must take no parameters")
	}
	ret := ctx.Types.MustLookup(lowered.ValuesGetter.Result)
	if ret.Kind != types.KindArray || ret.Elem != enum.Type {
		t.Fatalf("values getter must return array of the enum type, got %v", ret)
	}
	want := map[string]int{"BLUE": 0, "GREEN": 1, "RED": 2}
	for name, ord := range want {
		if lowered.Entries[name] != ord {
			t.Fatalf("entry %s: got ordinal %d want %d", name, lowered.Entries[name], ord)
		}
	}
}

func TestHolderIsAdoptedButNotInserted(t *testing.T) {
	ctx := testContext(t)
	enum := makeEnum(ctx, "Color", "RED")
	before := len(enum.Members)

	lowered := CreateLoweredEnum(ctx, enum)
	if lowered.ImplObject.Parent() != enum {
		t.Fatalf("holder object must be parented under the enum class")
	}
	if len(enum.Members) != before {
		t.Fatalf("lowering must not insert the holder into the enum's members")
	}

	enum.AddMember(lowered.ImplObject)
	if len(enum.Members) != before+1 {
		t.Fatalf("caller insertion must add exactly one member")
	}
}

func TestHolderMemberOrder(t *testing.T) {
	ctx := testContext(t)
	enum := makeEnum(ctx, "Color", "RED")

	lowered := CreateLoweredEnum(ctx, enum)
	obj := lowered.ImplObject
	if len(obj.Members) != 4 {
		t.Fatalf("expected field, getter, constructor and one override, got %d members", len(obj.Members))
	}
	if obj.Members[0] != lowered.ValuesField {
		t.Fatalf("values field must come first")
	}
	if obj.Members[1] != lowered.ValuesGetter {
		t.Fatalf("values getter must come second")
	}
	ctor, ok := obj.Members[2].(*ir.Constructor)
	if !ok {
		t.Fatalf("constructor must precede synthesized overrides")
	}
	if ctor.Delegate == nil || ctor.Delegate.Parent() != ctx.AnyClass {
		t.Fatalf("constructor must delegate to the root type's constructor")
	}
	if obj.Members[3].DeclKind() != ir.DeclFunc {
		t.Fatalf("synthesized override must come last")
	}
}

func TestItemGetterIsShared(t *testing.T) {
	ctx := testContext(t)
	first := CreateLoweredEnum(ctx, makeEnum(ctx, "Color", "RED"))
	second := CreateLoweredEnum(ctx, makeEnum(ctx, "Fruit", "Apple"))
	if first.ItemGetter != second.ItemGetter {
		t.Fatalf("item getter must be the shared array function, not a copy")
	}
	if first.ItemGetter.Parent() != ctx.ArrayClass {
		t.Fatalf("item getter must stay owned by the array class")
	}
}

func TestMissingRootConstructorPanics(t *testing.T) {
	ctx := testContext(t)
	bare := ir.NewClass(ctx.Strings.Intern("BareAny"), ir.ClassOrdinary, ir.Public, ir.Open, ctx.Types.Builtins().Any)
	ctx.AnyClass = bare
	enum := makeEnum(ctx, "Color", "RED")

	defer func() {
		if recover() == nil {
			t.Fatalf("missing root constructor must panic")
		}
	}()
	CreateLoweredEnum(ctx, enum)
}

func TestMissingArrayGetterPanics(t *testing.T) {
	ctx := testContext(t)
	empty := ir.NewClass(ctx.Strings.Intern("BareArray"), ir.ClassOrdinary, ir.Public, ir.Final, ctx.Types.RegisterClass(ctx.Strings.Intern("BareArray")))
	ctx.ArrayClass = empty
	enum := makeEnum(ctx, "Color", "RED")

	defer func() {
		if recover() == nil {
			t.Fatalf("missing array element-access function must panic")
		}
	}()
	CreateLoweredEnum(ctx, enum)
}
