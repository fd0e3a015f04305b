package ir

import (
	"testing"

	"lumen/internal/source"
	"lumen/internal/types"
)

func newTestClass(strs *source.Interner, tys *types.Interner, name string) *Class {
	id := strs.Intern(name)
	return NewClass(id, ClassOrdinary, Public, Final, tys.RegisterClass(id))
}

func TestAddMemberBindsParentOnce(t *testing.T) {
	strs := source.NewInterner()
	tys := types.NewInterner()
	cls := newTestClass(strs, tys, "Outer")
	fn := NewFunc(strs.Intern("run"), Public, Final, 0, tys.Builtins().Unit)

	cls.AddMember(fn)
	if fn.Parent() != cls {
		t.Fatalf("AddMember must bind the parent scope")
	}

	other := newTestClass(strs, tys, "Other")
	defer func() {
		if recover() == nil {
			t.Fatalf("inserting into a second scope must panic")
		}
	}()
	other.AddMember(fn)
}

func TestAdoptDoesNotInsert(t *testing.T) {
	strs := source.NewInterner()
	tys := types.NewInterner()
	cls := newTestClass(strs, tys, "Color")
	obj := NewClass(strs.Intern("ColorImpl"), ClassObject, Public, Final, tys.RegisterClass(strs.Intern("ColorImpl")))

	cls.Adopt(obj)
	if obj.Parent() != cls {
		t.Fatalf("Adopt must bind the parent")
	}
	if len(cls.Members) != 0 {
		t.Fatalf("Adopt must not insert into Members")
	}

	cls.AddMember(obj)
	if len(cls.Members) != 1 {
		t.Fatalf("AddMember after Adopt must insert exactly one member")
	}
}

func TestRebindPanics(t *testing.T) {
	strs := source.NewInterner()
	tys := types.NewInterner()
	a := newTestClass(strs, tys, "A")
	b := newTestClass(strs, tys, "B")
	fld := NewField(strs.Intern("x"), Private, 0, tys.Builtins().Int)
	a.Adopt(fld)

	defer func() {
		if recover() == nil {
			t.Fatalf("rebinding an owned declaration must panic")
		}
	}()
	b.Adopt(fld)
}

func TestEnumEntriesPreserveDeclarationOrder(t *testing.T) {
	strs := source.NewInterner()
	tys := types.NewInterner()
	enum := NewClass(strs.Intern("Fruit"), ClassEnum, Public, Final, tys.RegisterClass(strs.Intern("Fruit")))
	for _, n := range []string{"Banana", "Apple", "Cherry"} {
		enum.AddMember(NewEnumEntry(strs.Intern(n), enum.Type))
	}
	entries := enum.EnumEntries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if strs.MustLookup(entries[0].DeclName()) != "Banana" {
		t.Fatalf("entries must keep declaration order")
	}
}

func TestFindFuncAndConstructor(t *testing.T) {
	strs := source.NewInterner()
	tys := types.NewInterner()
	cls := newTestClass(strs, tys, "Widget")
	get := NewFunc(strs.Intern("get"), Public, Final, 0, tys.Builtins().Int)
	cls.AddMember(get)
	ctor := NewConstructor(strs.Intern("<init>"), Public, true)
	cls.AddMember(ctor)

	if cls.FindFunc(strs.Intern("get")) != get {
		t.Fatalf("FindFunc must locate the member by name")
	}
	if cls.FindFunc(strs.Intern("missing")) != nil {
		t.Fatalf("FindFunc must return nil for unknown names")
	}
	if cls.FindConstructor(0) != ctor {
		t.Fatalf("FindConstructor must locate by arity")
	}
	if cls.FindConstructor(2) != nil {
		t.Fatalf("FindConstructor must return nil when no arity matches")
	}
}
