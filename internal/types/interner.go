package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types every module shares.
type Builtins struct {
	Invalid TypeID
	Any     TypeID
	Unit    TypeID
	Bool    TypeID
	Int     TypeID
	String  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Ids are append-only and first-seen-wins: interning a structurally equal
// descriptor twice yields the same id, and no id is ever reused.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins

	classes    []ClassInfo
	typeParams []TypeParamInfo
	funcs      []FuncInfo
	tpIndex    map[tpKey]TypeID
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:   make(map[typeKey]TypeID, 64),
		tpIndex: make(map[tpKey]TypeID, 16),
	}
	in.classes = append(in.classes, ClassInfo{}) // reserve 0 as invalid sentinel
	in.typeParams = append(in.typeParams, TypeParamInfo{})
	in.funcs = append(in.funcs, FuncInfo{})
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Any = in.Intern(Type{Kind: KindAny})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}
