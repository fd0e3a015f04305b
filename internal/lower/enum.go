// Package lower rewrites high-level declarations into the compiler-internal
// scaffolding later passes consume.
//
// The only pass implemented here is enum lowering: each enum class gets a
// hidden singleton holder object carrying the ordered array of enum
// instances, an accessor for that array, and an ordinal table keyed by entry
// name. Codegen indexes the array through a shared element-access function.
package lower

import (
	"fmt"
	"sort"

	"lumen/internal/ir"
	"lumen/internal/source"
	"lumen/internal/types"
)

// MemberSynthesizer computes the fake overrides a declaration needs to
// satisfy its supertypes' member contracts. It is invoked explicitly after
// supertypes are attached; attaching a supertype alone has no side effects.
type MemberSynthesizer interface {
	FakeOverrides(c *ir.Class) []ir.Decl
}

// SynthesizerFunc adapts a function to the MemberSynthesizer interface.
type SynthesizerFunc func(c *ir.Class) []ir.Decl

// FakeOverrides implements MemberSynthesizer.
func (f SynthesizerFunc) FakeOverrides(c *ir.Class) []ir.Decl { return f(c) }

// Context carries the capabilities enum lowering consumes. Everything enters
// through this context; the pass keeps no package state.
type Context struct {
	Strings *source.Interner
	Types   *types.Interner

	// AnyClass is the root type's declaration. Its no-argument constructor
	// is the delegation target for every holder object.
	AnyClass *ir.Class

	// ArrayClass is the shared generic array declaration exposing the
	// element-access function reused by every lowered enum.
	ArrayClass *ir.Class

	Synthesizer MemberSynthesizer
}

// LoweredEnum is the synthetic scaffolding produced for one enum class.
type LoweredEnum struct {
	// ImplObject is the singleton holder object, parented under the enum
	// class but not yet inserted into its member list.
	ImplObject *ir.Class

	// ValuesField is the private backing field for the ordered instance
	// array. Its initializer is built by a later pass.
	ValuesField *ir.Field

	// ValuesGetter is the public accessor returning ValuesField's value.
	ValuesGetter *ir.Func

	// ItemGetter is the shared array element-access function. It is a
	// reference, not a copy: type substitution happens at each call site.
	ItemGetter *ir.Func

	// Entries maps entry name to ordinal. Ordinals follow the
	// case-sensitive lexicographic order of entry names, not declaration
	// order, and always form the contiguous range 0..n-1.
	Entries map[string]int
}

// CreateLoweredEnum builds the holder-object subtree for an enum class.
//
// The result is built fresh on every call; callers that must not lower the
// same enum twice enforce that themselves. The holder object is adopted by
// enumClass but not inserted into its members: the caller inserts it exactly
// once at the insertion point of its choosing.
//
// Build order is fixed for determinism: values field, values getter,
// delegating constructor, then synthesized overrides in the synthesizer's
// order.
func CreateLoweredEnum(ctx *Context, enumClass *ir.Class) *LoweredEnum {
	enumName := ctx.Strings.MustLookup(enumClass.DeclName())
	if enumClass.Kind != ir.ClassEnum {
		panic(fmt.Sprintf("lower: %s is not an enum class", enumName))
	}
	entries := enumClass.EnumEntries()
	if len(entries) == 0 {
		panic(fmt.Sprintf("lower: enum %s has no entries", enumName))
	}

	anyType := ctx.Types.Builtins().Any
	arrayType := ctx.Types.Intern(types.MakeArray(enumClass.Type))

	objName := ctx.Strings.Intern(enumName + "Impl")
	obj := ir.NewClass(objName, ir.ClassObject, ir.Public, ir.Final, ctx.Types.RegisterClass(objName))
	obj.Flags |= ir.FlagSynthetic
	obj.AddSupertype(anyType)
	enumClass.Adopt(obj)

	field := ir.NewField(ctx.Strings.Intern("values"), ir.Private, ir.FlagSynthetic, arrayType)
	obj.AddMember(field)

	getter := ir.NewFunc(ctx.Strings.Intern("getValues"), ir.Public, ir.Final, ir.FlagSynthetic, arrayType)
	getter.Body = ir.GetFieldBody(field)
	obj.AddMember(getter)

	ctor := delegatingConstructor(ctx, obj, enumName)
	obj.AddMember(ctor)

	for _, m := range ctx.Synthesizer.FakeOverrides(obj) {
		obj.AddMember(m)
	}

	return &LoweredEnum{
		ImplObject:   obj,
		ValuesField:  field,
		ValuesGetter: getter,
		ItemGetter:   arrayItemGetter(ctx, enumName),
		Entries:      entriesByName(ctx, entries),
	}
}

// delegatingConstructor builds the holder object's constructor forwarding to
// the root type's no-argument constructor.
func delegatingConstructor(ctx *Context, obj *ir.Class, enumName string) *ir.Constructor {
	anyCtor := ctx.AnyClass.FindConstructor(0)
	if anyCtor == nil {
		panic(fmt.Sprintf("lower: enum %s: root type has no no-argument constructor", enumName))
	}
	ctor := ir.NewConstructor(ctx.Strings.Intern("<init>"), ir.Private, true)
	ctor.Flags |= ir.FlagSynthetic
	ctor.Delegate = anyCtor
	ctor.Body = ir.DelegatingCallBody(anyCtor)
	return ctor
}

// arrayItemGetter locates the shared element-access function by name. The
// returned function is never copied or specialized here.
func arrayItemGetter(ctx *Context, enumName string) *ir.Func {
	get := ctx.ArrayClass.FindFunc(ctx.Strings.Intern("get"))
	if get == nil {
		panic(fmt.Sprintf("lower: enum %s: array class has no element-access function", enumName))
	}
	return get
}

// entriesByName assigns ordinals by sorting entry names lexicographically.
// The ordering is independent of declaration order so that every compilation
// of the same enum reproduces the same runtime indices.
func entriesByName(ctx *Context, entries []*ir.EnumEntry) map[string]int {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, ctx.Strings.MustLookup(e.DeclName()))
	}
	sort.Strings(names)
	out := make(map[string]int, len(names))
	for i, n := range names {
		out[n] = i
	}
	return out
}
